package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ticket-registry/internal/model"
	"ticket-registry/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey          = "ticket-events:stream"
	ConsumerGroupName  = "audit-workers"
	ConsumerNamePrefix = "worker"
)

// 事件在 stream entry 內展平成獨立欄位，稽核時可直接用 XRANGE 檢視，
// 不需要先解 JSON
const (
	fieldEventID  = "event_id"
	fieldType     = "type"
	fieldTicketID = "ticket_id"
	fieldActor    = "actor"
	fieldAt       = "at"
)

// RedisStreamEventQueueConfig 可注入的逾時與重試設定；nil 或零值時使用預設。
type RedisStreamEventQueueConfig struct {
	ClaimMinIdleTime   time.Duration // PEL 中超過此時間才被 XAUTOCLAIM 領取
	MaxRetryCount      int           // 超過此次數視為毒藥消息並丟棄
	ReadGroupBlockTime time.Duration // XReadGroup 阻塞時間
	StreamMaxLen       int64         // journal 上限，XADD 時近似修剪
}

// journal 是純事後紀錄，掉一筆不影響註冊表狀態，
// 所以重試次數壓低、stream 長度設上限
func defaultRedisStreamConfig() RedisStreamEventQueueConfig {
	return RedisStreamEventQueueConfig{
		ClaimMinIdleTime:   5 * time.Second,
		MaxRetryCount:      3,
		ReadGroupBlockTime: 2 * time.Second,
		StreamMaxLen:       100_000,
	}
}

type RedisStreamEventQueueImpl struct {
	client       *redis.Client
	streamKey    string
	groupName    string
	consumerName string
	cfg          RedisStreamEventQueueConfig
}

// NewRedisStreamEventQueue 建立 Redis Stream 版 TicketEventQueue。config 可為 nil，則使用預設逾時與重試次數。
func NewRedisStreamEventQueue(client *redis.Client, consumerID string, config *RedisStreamEventQueueConfig) (TicketEventQueue, error) {
	if consumerID == "" {
		consumerID = uuid.New().String()
	}

	cfg := defaultRedisStreamConfig()
	if config != nil {
		if config.ClaimMinIdleTime > 0 {
			cfg.ClaimMinIdleTime = config.ClaimMinIdleTime
		}
		if config.MaxRetryCount > 0 {
			cfg.MaxRetryCount = config.MaxRetryCount
		}
		if config.ReadGroupBlockTime > 0 {
			cfg.ReadGroupBlockTime = config.ReadGroupBlockTime
		}
		if config.StreamMaxLen > 0 {
			cfg.StreamMaxLen = config.StreamMaxLen
		}
	}

	q := &RedisStreamEventQueueImpl{
		client:       client,
		streamKey:    StreamKey,
		groupName:    ConsumerGroupName,
		consumerName: fmt.Sprintf("%s:%s", ConsumerNamePrefix, consumerID),
		cfg:          cfg,
	}

	err := q.client.XGroupCreateMkStream(context.Background(), q.streamKey, q.groupName, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}
	return q, nil
}

func (q *RedisStreamEventQueueImpl) PublishEvent(ctx context.Context, event *model.TicketEvent) error {
	if !event.Type.IsValid() {
		return fmt.Errorf("invalid event type: %q", event.Type)
	}

	err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.streamKey,
		ID:     "*",
		MaxLen: q.cfg.StreamMaxLen,
		Approx: true, // journal 有長度上限，讓 Redis 以低成本方式修剪舊事件
		Values: q.encodeEvent(event),
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

func (q *RedisStreamEventQueueImpl) encodeEvent(event *model.TicketEvent) map[string]interface{} {
	return map[string]interface{}{
		fieldEventID:  event.EventID,
		fieldType:     string(event.Type),
		fieldTicketID: strconv.FormatUint(event.TicketID, 10),
		fieldActor:    event.Actor,
		fieldAt:       event.At.UTC().Format(time.RFC3339Nano),
	}
}

// decodeEvent 還原 stream entry；欄位缺漏或型別不合都視為壞掉的 entry
func (q *RedisStreamEventQueueImpl) decodeEvent(values map[string]interface{}) (*model.TicketEvent, error) {
	str := func(field string) (string, error) {
		v, ok := values[field].(string)
		if !ok {
			return "", fmt.Errorf("missing field %q", field)
		}
		return v, nil
	}

	eventID, err := str(fieldEventID)
	if err != nil {
		return nil, err
	}
	typeStr, err := str(fieldType)
	if err != nil {
		return nil, err
	}
	eventType := model.TicketEventType(typeStr)
	if !eventType.IsValid() {
		return nil, fmt.Errorf("invalid event type: %q", typeStr)
	}
	ticketStr, err := str(fieldTicketID)
	if err != nil {
		return nil, err
	}
	ticketID, err := strconv.ParseUint(ticketStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket_id %q: %w", ticketStr, err)
	}
	actor, err := str(fieldActor)
	if err != nil {
		return nil, err
	}
	atStr, err := str(fieldAt)
	if err != nil {
		return nil, err
	}
	at, err := time.Parse(time.RFC3339Nano, atStr)
	if err != nil {
		return nil, fmt.Errorf("invalid at %q: %w", atStr, err)
	}

	return &model.TicketEvent{
		EventID:  eventID,
		Type:     eventType,
		TicketID: ticketID,
		Actor:    actor,
		At:       at,
	}, nil
}

func (q *RedisStreamEventQueueImpl) SubscribeEvents(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)
		go q.reclaimLoop(ctx, out)
		q.consumeLoop(ctx, out)
	}()
	return out, nil
}

// consumeLoop 主讀取循環：只讀 ">"（新事件）。
// Pending 的 entry 已投遞過，不重複投遞，逾時未 Ack 的交給 reclaimLoop 領回。
func (q *RedisStreamEventQueueImpl) consumeLoop(ctx context.Context, out chan<- Delivery) {
	for ctx.Err() == nil {
		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    q.groupName,
			Consumer: q.consumerName,
			Streams:  []string{q.streamKey, ">"},
			Count:    10,
			Block:    q.cfg.ReadGroupBlockTime,
		}).Result()

		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.WithComponent("journal").Error("XReadGroup failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			if stream.Stream != q.streamKey {
				continue
			}
			if !q.deliverAll(ctx, out, stream.Messages) {
				return
			}
		}
	}
}

// reclaimLoop 定時用 XAUTOCLAIM 領回逾時未 Ack 的事件；
// 超過 MaxRetryCount 的毒藥 entry 直接 Ack 丟棄
func (q *RedisStreamEventQueueImpl) reclaimLoop(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	startID := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		claimed, nextID, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   q.streamKey,
			Group:    q.groupName,
			Consumer: q.consumerName,
			MinIdle:  q.cfg.ClaimMinIdleTime,
			Count:    10,
			Start:    startID,
		}).Result()

		if err != nil && err != redis.Nil {
			if ctx.Err() != nil {
				return
			}
			logger.WithComponent("journal").Error("XAutoClaim failed", zap.Error(err))
			continue
		}
		startID = "0-0"
		if nextID != "" && nextID != "0-0" {
			startID = nextID
		}

		retriable := claimed[:0]
		for _, msg := range claimed {
			if q.exceededRetryBudget(ctx, msg.ID) {
				continue
			}
			retriable = append(retriable, msg)
		}
		if !q.deliverAll(ctx, out, retriable) {
			return
		}
	}
}

// deliverAll 逐筆組裝並投遞；回傳 false 表示 context 已取消
func (q *RedisStreamEventQueueImpl) deliverAll(ctx context.Context, out chan<- Delivery, msgs []redis.XMessage) bool {
	for _, msg := range msgs {
		event, err := q.decodeEvent(msg.Values)
		if err != nil {
			// 壞掉的 entry 沒有重試價值，Ack 掉避免卡住 PEL
			logger.WithComponent("journal").Warn("discard malformed entry",
				zap.String("message_id", msg.ID), zap.Error(err))
			q.ack(ctx, msg.ID)
			continue
		}

		select {
		case out <- q.newDelivery(ctx, msg.ID, event):
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// exceededRetryBudget 毒藥判斷：PEL 中重試次數已達上限的 entry 直接丟棄
func (q *RedisStreamEventQueueImpl) exceededRetryBudget(ctx context.Context, messageID string) bool {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: q.streamKey,
		Group:  q.groupName,
		Start:  messageID,
		End:    messageID,
		Count:  1,
	}).Result()
	if err != nil {
		if err != redis.Nil {
			logger.WithComponent("journal").Warn("XPending lookup failed",
				zap.String("message_id", messageID), zap.Error(err))
		}
		return false
	}
	if len(pending) == 0 {
		return false
	}

	retries := int(pending[0].RetryCount)
	if retries < q.cfg.MaxRetryCount {
		return false
	}

	logger.WithComponent("journal").Warn("discard poison entry",
		zap.String("message_id", messageID),
		zap.Int("retries", retries),
		zap.Int("max_retries", q.cfg.MaxRetryCount))
	q.ack(ctx, messageID)
	return true
}

func (q *RedisStreamEventQueueImpl) ack(ctx context.Context, messageID string) {
	if err := q.client.XAck(ctx, q.streamKey, q.groupName, messageID).Err(); err != nil {
		logger.WithComponent("journal").Error("XAck failed",
			zap.String("message_id", messageID), zap.Error(err))
	}
}

func (q *RedisStreamEventQueueImpl) newDelivery(ctx context.Context, messageID string, event *model.TicketEvent) Delivery {
	return Delivery{
		Data: event,
		Ack: func() {
			q.ack(ctx, messageID)
		},
		Nack: func(requeue bool) {
			if requeue {
				// 留在 PEL，等 ClaimMinIdleTime 後由 XAUTOCLAIM 領回，形成延遲重試
				logger.WithComponent("journal").Info("entry nack(requeue), will retry",
					zap.String("message_id", messageID),
					zap.Duration("claim_min_idle", q.cfg.ClaimMinIdleTime))
				return
			}
			q.ack(ctx, messageID)
		},
	}
}
