package service

import (
	"context"

	"ticket-registry/internal/authority"
	"ticket-registry/internal/cache"
	"ticket-registry/internal/ledger"
	"ticket-registry/internal/model"
	"ticket-registry/internal/queue"
	apperrors "ticket-registry/pkg/app_errors"
	"ticket-registry/pkg/logger"

	"go.uber.org/zap"
)

type CancellationService interface {
	// Cancel 作廢票券並清除持有人，只有現任持有人能作廢
	Cancel(ctx context.Context, caller string, id uint64) error
	// Restore 管理員限定的復原：清除作廢旗標，但不會恢復先前的持有人
	// （不保存持有人歷史），復原後的票券在重新指派前沒有登記持有人
	Restore(ctx context.Context, caller string, id uint64) error
}

type CancellationServiceImpl struct {
	authority  *authority.AdminAuthority
	ledger     ledger.TicketLedger
	stateCache cache.TicketStateCache
	eventQueue queue.TicketEventQueue
}

func NewCancellationService(
	auth *authority.AdminAuthority,
	ledger ledger.TicketLedger,
	stateCache cache.TicketStateCache,
	eventQueue queue.TicketEventQueue,
) CancellationService {
	return &CancellationServiceImpl{
		authority:  auth,
		ledger:     ledger,
		stateCache: stateCache,
		eventQueue: eventQueue,
	}
}

func (s *CancellationServiceImpl) Cancel(ctx context.Context, caller string, id uint64) error {
	// 檢查與改寫由存放層在同一個原子單位內完成，
	// 兩個併發的作廢只會有一個成功，另一個拿到 AlreadyCancelled
	if err := s.ledger.Cancel(ctx, id, caller); err != nil {
		return err
	}

	s.invalidateCache(ctx, id)
	publishEvent(ctx, s.eventQueue, model.EventCancelled, id, caller)

	return nil
}

func (s *CancellationServiceImpl) Restore(ctx context.Context, caller string, id uint64) error {
	if !s.authority.IsAdmin(caller) {
		return apperrors.ErrNotAdmin
	}

	if err := s.ledger.Restore(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx, id)
	publishEvent(ctx, s.eventQueue, model.EventRestored, id, caller)

	return nil
}

func (s *CancellationServiceImpl) invalidateCache(ctx context.Context, id uint64) {
	if err := s.stateCache.Invalidate(ctx, id); err != nil {
		logger.WithComponent("service").Warn("invalidate ticket cache failed",
			zap.Uint64("ticket_id", id), zap.Error(err))
	}
}
