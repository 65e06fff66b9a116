package ledger

import (
	"context"

	"ticket-registry/internal/model"
)

// TicketLedger 票券實體存放層：id 計數器、票券表、批次來源備註表
//
// 不變量（每次操作後都必須成立）：
//   - 票券 id 構成 [1, Count()] 的連續區間，不跳號、不重用
//   - 票券 info 永遠非空
//   - owner 有值 ⟺ 票券存在且未作廢；作廢同時清除持有人
//   - 計數器單調遞增
//
// 轉讓、作廢、復原的「讀取—驗證—改寫」必須是單一不可分割的單位，
// 否則併發下會出現已作廢卻仍登記持有人的狀態，因此這三個操作
// 由存放層在持鎖（或同一交易）內完成整段檢查與改寫。
// 逐項輸入驗證（info 長度、批次大小、管理員身分）仍是上層 service 的責任。
type TicketLedger interface {
	// AllocateID 原子遞增並回傳計數器，保證唯一且單調
	AllocateID(ctx context.Context) (uint64, error)
	// Put 寫入一張新票券，持有人即為發行人
	Put(ctx context.Context, id uint64, info string, owner string) error
	// Get 依 id 取票券；不存在回 ErrTicketNotFound
	Get(ctx context.Context, id uint64) (*model.Ticket, error)
	// SetOwner 改寫持有人
	SetOwner(ctx context.Context, id uint64, owner string) error
	// SetCancelled 設定作廢旗標；設為 true 時同步清除持有人，
	// 設為 false（復原）不會恢復先前的持有人
	SetCancelled(ctx context.Context, id uint64, cancelled bool) error
	// ExistsActive 檢查票券存在且未作廢
	ExistsActive(ctx context.Context, id uint64) (bool, error)
	// Count 回傳已發行總數（等於目前計數器值）
	Count(ctx context.Context) (uint64, error)

	// Transfer 在單一原子單位內驗證並改寫持有權。
	// 失敗順序：不存在回 ErrTicketNotFound；to 不等於 caller 回
	// ErrUnauthorized（轉讓由受讓人發起）；已作廢回 ErrAlreadyCancelled；
	// 帳上持有人不等於 from（含沒有持有人）回 ErrUnauthorized。
	Transfer(ctx context.Context, id uint64, caller string, from string, to string) error
	// Cancel 在單一原子單位內驗證並作廢，同時清除持有人。
	// 失敗順序：不存在回 ErrTicketNotFound；已作廢回 ErrAlreadyCancelled；
	// 沒有持有人回 ErrTicketNotFound；caller 不是持有人回 ErrUnauthorized。
	Cancel(ctx context.Context, id uint64, caller string) error
	// Restore 在單一原子單位內清除作廢旗標；不存在或未作廢都回
	// ErrCancelFailed。不會恢復先前的持有人。
	Restore(ctx context.Context, id uint64) error

	// IssueOne 在單一原子單位內配發 id 並寫入票券
	IssueOne(ctx context.Context, info string, owner string) (uint64, error)
	// IssueBatch 全有全無地發行一批票券（呼叫端已完成逐項驗證），
	// 依輸入順序配發 id，並為每張票寫入批次來源備註
	IssueBatch(ctx context.Context, infos []string, owner string, batchRef string) ([]uint64, error)

	// PutBatchMetadata 寫入批次來源備註，與票券表互相獨立
	PutBatchMetadata(ctx context.Context, id uint64, note string) error
	// BatchMetadata 讀取批次來源備註；不存在回 ErrTicketNotFound
	BatchMetadata(ctx context.Context, id uint64) (string, error)
}
