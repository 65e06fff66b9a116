package service

import (
	"context"
	"errors"

	"ticket-registry/internal/authority"
	"ticket-registry/internal/cache"
	"ticket-registry/internal/ledger"
	"ticket-registry/internal/model"
	apperrors "ticket-registry/pkg/app_errors"
	"ticket-registry/pkg/logger"

	"go.uber.org/zap"
)

// QueryService 統一的讀取 API：存在性、持有人、作廢狀態、info、
// 批次備註、計數、管理員查詢都收在這裡，不另外開重複的存取器
type QueryService interface {
	GetTicket(ctx context.Context, id uint64) (*model.Ticket, error)
	// GetOwner 回傳登記持有人；nil 代表帳上沒有持有人
	GetOwner(ctx context.Context, id uint64) (*string, error)
	// Exists 檢查票券是否發行過（不論是否已作廢）
	Exists(ctx context.Context, id uint64) (bool, error)
	IsCancelled(ctx context.Context, id uint64) (bool, error)
	// IsTransferable 存在、未作廢且有登記持有人
	IsTransferable(ctx context.Context, id uint64) (bool, error)
	// TotalIssued 已發行總數（含作廢票券）
	TotalIssued(ctx context.Context) (uint64, error)
	GetBatchMetadata(ctx context.Context, id uint64) (string, error)
	AdminID() string
	IsAdmin(identity string) bool
}

type QueryServiceImpl struct {
	authority  *authority.AdminAuthority
	ledger     ledger.TicketLedger
	stateCache cache.TicketStateCache
}

func NewQueryService(
	auth *authority.AdminAuthority,
	ledger ledger.TicketLedger,
	stateCache cache.TicketStateCache,
) QueryService {
	return &QueryServiceImpl{
		authority:  auth,
		ledger:     ledger,
		stateCache: stateCache,
	}
}

// GetTicket read-through：先讀快取，未命中回源並寫入
// 快取故障時直接回源，查詢不因快取而失敗
func (s *QueryServiceImpl) GetTicket(ctx context.Context, id uint64) (*model.Ticket, error) {
	cached, err := s.stateCache.GetTicket(ctx, id)
	if err != nil {
		logger.WithComponent("service").Warn("read ticket cache failed",
			zap.Uint64("ticket_id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	ticket, err := s.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.stateCache.SetTicket(ctx, ticket); err != nil {
		logger.WithComponent("service").Warn("write ticket cache failed",
			zap.Uint64("ticket_id", id), zap.Error(err))
	}

	return ticket, nil
}

func (s *QueryServiceImpl) GetOwner(ctx context.Context, id uint64) (*string, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	return ticket.Owner, nil
}

func (s *QueryServiceImpl) Exists(ctx context.Context, id uint64) (bool, error) {
	_, err := s.ledger.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTicketNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *QueryServiceImpl) IsCancelled(ctx context.Context, id uint64) (bool, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return false, err
	}
	return ticket.Cancelled, nil
}

func (s *QueryServiceImpl) IsTransferable(ctx context.Context, id uint64) (bool, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return false, err
	}
	return ticket.IsTransferable(), nil
}

func (s *QueryServiceImpl) TotalIssued(ctx context.Context) (uint64, error) {
	return s.ledger.Count(ctx)
}

func (s *QueryServiceImpl) GetBatchMetadata(ctx context.Context, id uint64) (string, error) {
	return s.ledger.BatchMetadata(ctx, id)
}

func (s *QueryServiceImpl) AdminID() string {
	return s.authority.AdminID()
}

func (s *QueryServiceImpl) IsAdmin(identity string) bool {
	return s.authority.IsAdmin(identity)
}
