package service

import (
	"context"

	"ticket-registry/internal/cache"
	"ticket-registry/internal/ledger"
	"ticket-registry/internal/model"
	"ticket-registry/internal/queue"
	"ticket-registry/pkg/logger"

	"go.uber.org/zap"
)

type TransferService interface {
	// Transfer 轉讓持有權：受讓人發起（to 必須等於 caller），
	// 且帳上持有人必須等於 from
	Transfer(ctx context.Context, caller string, id uint64, from string, to string) error
}

type TransferServiceImpl struct {
	ledger     ledger.TicketLedger
	stateCache cache.TicketStateCache
	eventQueue queue.TicketEventQueue
}

func NewTransferService(
	ledger ledger.TicketLedger,
	stateCache cache.TicketStateCache,
	eventQueue queue.TicketEventQueue,
) TransferService {
	return &TransferServiceImpl{
		ledger:     ledger,
		stateCache: stateCache,
		eventQueue: eventQueue,
	}
}

func (s *TransferServiceImpl) Transfer(ctx context.Context, caller string, id uint64, from string, to string) error {
	// 檢查與改寫由存放層在同一個原子單位內完成，
	// 避免與併發的作廢交錯出已作廢卻仍登記持有人的狀態
	if err := s.ledger.Transfer(ctx, id, caller, from, to); err != nil {
		return err
	}

	s.invalidateCache(ctx, id)
	publishEvent(ctx, s.eventQueue, model.EventTransferred, id, caller)

	return nil
}

func (s *TransferServiceImpl) invalidateCache(ctx context.Context, id uint64) {
	if err := s.stateCache.Invalidate(ctx, id); err != nil {
		// 快取有 TTL，失效失敗只記 log
		logger.WithComponent("service").Warn("invalidate ticket cache failed",
			zap.Uint64("ticket_id", id), zap.Error(err))
	}
}
