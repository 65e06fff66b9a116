package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ticket-registry/internal/model"

	"github.com/redis/go-redis/v9"
)

const cachedStateTTL = 5 * time.Minute

// TicketStateCache 票券狀態的 read-through 快取
// 查詢路徑先讀快取，未命中回源後寫入；任何改動票券的操作都要 Invalidate
type TicketStateCache interface {
	// GetTicket 讀取快取；未命中回傳 (nil, nil)
	GetTicket(ctx context.Context, id uint64) (*model.Ticket, error)
	// SetTicket 寫入快取
	SetTicket(ctx context.Context, ticket *model.Ticket) error
	// Invalidate 移除快取項
	Invalidate(ctx context.Context, id uint64) error
}

type RedisTicketStateCacheImpl struct {
	client *redis.Client
}

func NewRedisTicketStateCache(client *redis.Client) TicketStateCache {
	return &RedisTicketStateCacheImpl{
		client: client,
	}
}

func (c *RedisTicketStateCacheImpl) getStateKey(id uint64) string {
	return fmt.Sprintf("ticket:%d:state", id)
}

func (c *RedisTicketStateCacheImpl) GetTicket(ctx context.Context, id uint64) (*model.Ticket, error) {
	key := c.getStateKey(id)
	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	// 檢查 key 是否存在
	if len(result) == 0 {
		return nil, nil
	}

	cancelled, err := strconv.ParseBool(result["cancelled"])
	if err != nil {
		return nil, fmt.Errorf("invalid cancelled flag: %v", err)
	}

	ticket := &model.Ticket{
		ID:        id,
		Info:      result["info"],
		Cancelled: cancelled,
	}

	// owner 欄位不存在代表沒有登記持有人
	if owner, ok := result["owner"]; ok {
		ticket.Owner = &owner
	}

	return ticket, nil
}

func (c *RedisTicketStateCacheImpl) SetTicket(ctx context.Context, ticket *model.Ticket) error {
	key := c.getStateKey(ticket.ID)

	fields := map[string]interface{}{
		"info":      ticket.Info,
		"cancelled": strconv.FormatBool(ticket.Cancelled),
	}
	if ticket.Owner != nil {
		fields["owner"] = *ticket.Owner
	}

	pipe := c.client.TxPipeline()
	// 先刪再寫：避免舊的 owner 欄位殘留
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, cachedStateTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisTicketStateCacheImpl) Invalidate(ctx context.Context, id uint64) error {
	return c.client.Del(ctx, c.getStateKey(id)).Err()
}
