package model

import "time"

// TicketEventType 票券生命週期事件類型
type TicketEventType string

const (
	EventIssued      TicketEventType = "issued"
	EventTransferred TicketEventType = "transferred"
	EventCancelled   TicketEventType = "cancelled"
	EventRestored    TicketEventType = "restored"
)

// IsValid 驗證事件類型是否有效
func (t TicketEventType) IsValid() bool {
	switch t {
	case EventIssued, EventTransferred, EventCancelled, EventRestored:
		return true
	}
	return false
}

// TicketEvent 票券生命週期事件，發佈到 journal queue 供 AuditWorker 落地
// 純粹是事後紀錄：核心操作不依賴它，發佈失敗也不回滾註冊表狀態
type TicketEvent struct {
	EventID  string          `json:"event_id"`
	Type     TicketEventType `json:"type"`
	TicketID uint64          `json:"ticket_id"`
	Actor    string          `json:"actor"`
	At       time.Time       `json:"at"`
}
