package service

import (
	"context"
	"time"

	"ticket-registry/internal/model"
	"ticket-registry/internal/queue"
	"ticket-registry/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// publishEvent 發佈生命週期事件到 journal queue
// journal 是事後紀錄：發佈失敗只記 log，絕不回滾已提交的註冊表狀態
func publishEvent(ctx context.Context, q queue.TicketEventQueue, eventType model.TicketEventType, ticketID uint64, actor string) {
	event := &model.TicketEvent{
		EventID:  uuid.New().String(),
		Type:     eventType,
		TicketID: ticketID,
		Actor:    actor,
		At:       time.Now().UTC(),
	}

	if err := q.PublishEvent(ctx, event); err != nil {
		logger.WithComponent("service").Warn("publish ticket event failed",
			zap.String("event_type", string(eventType)),
			zap.Uint64("ticket_id", ticketID),
			zap.Error(err))
	}
}
