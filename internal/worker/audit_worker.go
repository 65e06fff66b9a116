package worker

import (
	"context"
	"ticket-registry/internal/model"
	"ticket-registry/internal/queue"
	"ticket-registry/pkg/logger"

	"go.uber.org/zap"
)

// AuditRecorder AuditWorker 需要的最小寫入介面，RegistryRepository 已實作
type AuditRecorder interface {
	AppendAudit(ctx context.Context, event *model.TicketEvent) error
}

type AuditWorker interface {
	// Start 訂閱事件隊列並開始落地稽核紀錄
	Start(ctx context.Context) error
}

type AuditWorkerImpl struct {
	recorder AuditRecorder
	queue    queue.TicketEventQueue
}

func NewAuditWorker(recorder AuditRecorder, queue queue.TicketEventQueue) AuditWorker {
	return &AuditWorkerImpl{
		recorder: recorder,
		queue:    queue,
	}
}

func (w *AuditWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeEvents(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			err := w.recorder.AppendAudit(ctx, msg.Data)

			if err != nil {
				// 資料庫暫時寫不進去，留給隊列重試
				logger.WithComponent("worker").Warn("append audit failed",
					zap.String("event_id", msg.Data.EventID), zap.Error(err))
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
