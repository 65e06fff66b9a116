package ledger

import (
	"context"
	"sync"
	"time"

	"ticket-registry/internal/model"
	apperrors "ticket-registry/pkg/app_errors"
)

// MemoryTicketLedger 記憶體版存放層
// 所有欄位共用一把鎖：公開操作各自是一個不可分割的單位，
// 批次發行在單次持鎖內循序處理，確保 id 連續性
type MemoryTicketLedger struct {
	mu            sync.RWMutex
	nextID        uint64
	tickets       map[uint64]*model.Ticket
	batchMetadata map[uint64]string
}

func NewMemoryTicketLedger() *MemoryTicketLedger {
	return &MemoryTicketLedger{
		tickets:       make(map[uint64]*model.Ticket),
		batchMetadata: make(map[uint64]string),
	}
}

func (l *MemoryTicketLedger) AllocateID(ctx context.Context) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allocateLocked(), nil
}

func (l *MemoryTicketLedger) allocateLocked() uint64 {
	l.nextID++
	return l.nextID
}

func (l *MemoryTicketLedger) Put(ctx context.Context, id uint64, info string, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.putLocked(id, info, owner)
	return nil
}

func (l *MemoryTicketLedger) putLocked(id uint64, info string, owner string) {
	now := time.Now().UTC()
	l.tickets[id] = &model.Ticket{
		ID:        id,
		Info:      info,
		Owner:     &owner,
		Cancelled: false,
		IssuedAt:  now,
		UpdatedAt: now,
	}
}

func (l *MemoryTicketLedger) Get(ctx context.Context, id uint64) (*model.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ticket, ok := l.tickets[id]
	if !ok {
		return nil, apperrors.ErrTicketNotFound
	}

	// 回傳副本，避免呼叫端繞過鎖直接改動內部狀態
	copied := *ticket
	if ticket.Owner != nil {
		owner := *ticket.Owner
		copied.Owner = &owner
	}
	return &copied, nil
}

func (l *MemoryTicketLedger) SetOwner(ctx context.Context, id uint64, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.tickets[id]
	if !ok {
		return apperrors.ErrTicketNotFound
	}

	ticket.Owner = &owner
	ticket.UpdatedAt = time.Now().UTC()
	return nil
}

func (l *MemoryTicketLedger) SetCancelled(ctx context.Context, id uint64, cancelled bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.tickets[id]
	if !ok {
		return apperrors.ErrTicketNotFound
	}

	ticket.Cancelled = cancelled
	if cancelled {
		// 作廢與持有權耦合：作廢票券沒有登記持有人
		ticket.Owner = nil
	}
	ticket.UpdatedAt = time.Now().UTC()
	return nil
}

func (l *MemoryTicketLedger) Transfer(ctx context.Context, id uint64, caller string, from string, to string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.tickets[id]
	if !ok {
		return apperrors.ErrTicketNotFound
	}

	// 轉讓由受讓人發起並接受，不是持有人單方推送
	if to != caller {
		return apperrors.ErrUnauthorized
	}

	if ticket.Cancelled {
		return apperrors.ErrAlreadyCancelled
	}

	// 帳上持有人必須與 from 相符；復原後尚無持有人的票券同樣擋下
	if ticket.Owner == nil || *ticket.Owner != from {
		return apperrors.ErrUnauthorized
	}

	ticket.Owner = &to
	ticket.UpdatedAt = time.Now().UTC()
	return nil
}

func (l *MemoryTicketLedger) Cancel(ctx context.Context, id uint64, caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.tickets[id]
	if !ok {
		return apperrors.ErrTicketNotFound
	}

	// 先判斷作廢旗標：重複作廢回 AlreadyCancelled，而不是因持有人已清除而回 NotFound
	if ticket.Cancelled {
		return apperrors.ErrAlreadyCancelled
	}

	// 帳上沒有持有人（例如復原後尚未重新指派）：沒有可作廢的持有紀錄
	if ticket.Owner == nil {
		return apperrors.ErrTicketNotFound
	}

	if *ticket.Owner != caller {
		return apperrors.ErrUnauthorized
	}

	ticket.Cancelled = true
	ticket.Owner = nil
	ticket.UpdatedAt = time.Now().UTC()
	return nil
}

func (l *MemoryTicketLedger) Restore(ctx context.Context, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.tickets[id]
	if !ok {
		// 不存在的票券視為「並非作廢狀態」
		return apperrors.ErrCancelFailed
	}

	if !ticket.Cancelled {
		return apperrors.ErrCancelFailed
	}

	// 不保存持有人歷史，復原後的票券在重新指派前沒有登記持有人
	ticket.Cancelled = false
	ticket.UpdatedAt = time.Now().UTC()
	return nil
}

func (l *MemoryTicketLedger) ExistsActive(ctx context.Context, id uint64) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ticket, ok := l.tickets[id]
	return ok && !ticket.Cancelled, nil
}

func (l *MemoryTicketLedger) Count(ctx context.Context) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nextID, nil
}

func (l *MemoryTicketLedger) IssueOne(ctx context.Context, info string, owner string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.allocateLocked()
	l.putLocked(id, info, owner)
	return id, nil
}

func (l *MemoryTicketLedger) IssueBatch(ctx context.Context, infos []string, owner string, batchRef string) ([]uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]uint64, 0, len(infos))
	for _, info := range infos {
		id := l.allocateLocked()
		l.putLocked(id, info, owner)
		if batchRef != "" {
			l.batchMetadata[id] = batchRef
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (l *MemoryTicketLedger) PutBatchMetadata(ctx context.Context, id uint64, note string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.batchMetadata[id] = note
	return nil
}

func (l *MemoryTicketLedger) BatchMetadata(ctx context.Context, id uint64) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	note, ok := l.batchMetadata[id]
	if !ok {
		return "", apperrors.ErrTicketNotFound
	}
	return note, nil
}
