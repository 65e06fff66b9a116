package queue

import (
	"context"
	"ticket-registry/internal/model"
)

type Delivery struct {
	Data *model.TicketEvent
	Ack  func()
	Nack func(requeue bool)
}

// TicketEventQueue 票券生命週期事件的 journal queue
// 純事後紀錄：發佈失敗由呼叫端記 log，不影響註冊表狀態
type TicketEventQueue interface {
	// PublishEvent 發送事件到隊列
	PublishEvent(ctx context.Context, event *model.TicketEvent) error
	// SubscribeEvents 訂閱事件隊列
	SubscribeEvents(ctx context.Context) (<-chan Delivery, error)
}

type TicketEventQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.TicketEvent
}

func NewTicketEventQueue(bufferSize int) TicketEventQueue {
	return &TicketEventQueueImpl{
		ch: make(chan *model.TicketEvent, bufferSize),
	}
}

func (q *TicketEventQueueImpl) PublishEvent(ctx context.Context, event *model.TicketEvent) error {
	q.ch <- event
	return nil
}

func (q *TicketEventQueueImpl) SubscribeEvents(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: event,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- event // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
