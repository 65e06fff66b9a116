package service

import (
	"context"
	"fmt"

	"ticket-registry/config"
	"ticket-registry/internal/authority"
	"ticket-registry/internal/ledger"
	"ticket-registry/internal/model"
	"ticket-registry/internal/queue"
	apperrors "ticket-registry/pkg/app_errors"

	"github.com/google/uuid"
)

type IssuanceService interface {
	// Issue 發行單張票券，持有人為發行人（管理員）
	Issue(ctx context.Context, caller string, info string) (uint64, error)
	// BatchIssue 批次發行：依設定採 atomic（預設）或 best_effort 策略
	BatchIssue(ctx context.Context, caller string, infos []string) (*model.BatchIssueResult, error)
}

type IssuanceServiceImpl struct {
	authority  *authority.AdminAuthority
	ledger     ledger.TicketLedger
	eventQueue queue.TicketEventQueue
	cfg        config.RegistryConfig
}

func NewIssuanceService(
	auth *authority.AdminAuthority,
	ledger ledger.TicketLedger,
	eventQueue queue.TicketEventQueue,
	cfg config.RegistryConfig,
) IssuanceService {
	return &IssuanceServiceImpl{
		authority:  auth,
		ledger:     ledger,
		eventQueue: eventQueue,
		cfg:        cfg,
	}
}

// validateInfo info 必須非空且不超過上限（以 byte 計）
func (s *IssuanceServiceImpl) validateInfo(info string) error {
	if len(info) == 0 || len(info) > s.cfg.MaxInfoBytes {
		return apperrors.ErrInvalidInfo
	}
	return nil
}

func (s *IssuanceServiceImpl) Issue(ctx context.Context, caller string, info string) (uint64, error) {
	if !s.authority.IsAdmin(caller) {
		return 0, apperrors.ErrNotAdmin
	}

	if err := s.validateInfo(info); err != nil {
		return 0, err
	}

	id, err := s.ledger.IssueOne(ctx, info, caller)
	if err != nil {
		return 0, err
	}

	publishEvent(ctx, s.eventQueue, model.EventIssued, id, caller)

	return id, nil
}

func (s *IssuanceServiceImpl) BatchIssue(ctx context.Context, caller string, infos []string) (*model.BatchIssueResult, error) {
	if !s.authority.IsAdmin(caller) {
		return nil, apperrors.ErrNotAdmin
	}

	if len(infos) > s.cfg.MaxBatchSize {
		return nil, apperrors.ErrBatchTooLarge
	}

	// 批次來源備註：記錄批次識別碼與批量
	batchRef := fmt.Sprintf("batch:%s:size=%d", uuid.New().String(), len(infos))

	switch s.cfg.BatchIssuePolicy {
	case config.BatchPolicyBestEffort:
		return s.batchIssueBestEffort(ctx, caller, infos, batchRef)
	default:
		return s.batchIssueAtomic(ctx, caller, infos, batchRef)
	}
}

// batchIssueAtomic 全有全無：先驗證每一項，任一項無效整批失敗，
// 計數器不動、零張發行
func (s *IssuanceServiceImpl) batchIssueAtomic(ctx context.Context, caller string, infos []string, batchRef string) (*model.BatchIssueResult, error) {
	for _, info := range infos {
		if err := s.validateInfo(info); err != nil {
			return nil, err
		}
	}

	ids, err := s.ledger.IssueBatch(ctx, infos, caller, batchRef)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		publishEvent(ctx, s.eventQueue, model.EventIssued, id, caller)
	}

	return &model.BatchIssueResult{TicketIDs: ids}, nil
}

// batchIssueBestEffort 盡力而為：無效項跳過並回報索引，有效項照輸入順序發行
func (s *IssuanceServiceImpl) batchIssueBestEffort(ctx context.Context, caller string, infos []string, batchRef string) (*model.BatchIssueResult, error) {
	valid := make([]string, 0, len(infos))
	failed := make([]model.BatchItemFailure, 0)

	for i, info := range infos {
		if err := s.validateInfo(info); err != nil {
			failed = append(failed, model.BatchItemFailure{Index: i, Reason: err.Error()})
			continue
		}
		valid = append(valid, info)
	}

	ids, err := s.ledger.IssueBatch(ctx, valid, caller, batchRef)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		publishEvent(ctx, s.eventQueue, model.EventIssued, id, caller)
	}

	return &model.BatchIssueResult{TicketIDs: ids, Failed: failed}, nil
}
