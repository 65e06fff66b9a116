package model

import "time"

// Ticket 票券實體：id 從 1 起連續配發，永不重用
type Ticket struct {
	ID        uint64     `json:"id" db:"id"`
	Info      string     `json:"info" db:"info"`
	Owner     *string    `json:"owner,omitempty" db:"owner"`
	Cancelled bool       `json:"cancelled" db:"cancelled"`
	IssuedAt  time.Time  `json:"issued_at" db:"issued_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// IsActive 檢查票券是否有效（未作廢）
func (t *Ticket) IsActive() bool {
	return !t.Cancelled
}

// HasOwner 檢查票券是否有登記持有人
// 作廢票券一定沒有持有人；復原後的票券在重新指派前也沒有
func (t *Ticket) HasOwner() bool {
	return t.Owner != nil
}

// IsTransferable 檢查票券是否可轉讓：有效且有登記持有人
func (t *Ticket) IsTransferable() bool {
	return t.IsActive() && t.HasOwner()
}

// IssueTicketRequest 發行票券請求
type IssueTicketRequest struct {
	Info string `json:"info" binding:"required"`
}

// BatchIssueRequest 批次發行請求
type BatchIssueRequest struct {
	Infos []string `json:"infos" binding:"required"`
}

// TransferRequest 轉讓請求：to 必須等於呼叫者（受讓人發起）
type TransferRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// TicketIDUri 路徑參數 :id，票券編號從 1 起算
type TicketIDUri struct {
	ID uint64 `uri:"id" binding:"required,min=1"`
}

// AdminCheckUri 路徑參數 :identity
type AdminCheckUri struct {
	Identity string `uri:"identity" binding:"required"`
}

// ValidatePriceRequest 價格驗證請求（獨立檢查，不影響票券狀態）
type ValidatePriceRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// BatchItemFailure 批次發行中單項失敗的紀錄（僅 best_effort 策略會出現）
type BatchItemFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// BatchIssueResult 批次發行結果
type BatchIssueResult struct {
	TicketIDs []uint64           `json:"ticket_ids"`
	Failed    []BatchItemFailure `json:"failed,omitempty"`
}

// TicketResponse 票券響應
type TicketResponse struct {
	ID           uint64  `json:"id"`
	Info         string  `json:"info"`
	Owner        *string `json:"owner,omitempty"`
	Cancelled    bool    `json:"cancelled"`
	Transferable bool    `json:"transferable"`
}

func NewTicketResponse(t *Ticket) *TicketResponse {
	return &TicketResponse{
		ID:           t.ID,
		Info:         t.Info,
		Owner:        t.Owner,
		Cancelled:    t.Cancelled,
		Transferable: t.IsTransferable(),
	}
}
