package repository

import (
	"context"
	"time"

	"ticket-registry/internal/ledger"
	"ticket-registry/internal/model"
	apperrors "ticket-registry/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegistryRepository Postgres 版存放層：tickets、batch_metadata、registry_counter 三個面
// 加上 audit_log（供 AuditWorker 落地事件）
type RegistryRepository interface {
	ledger.TicketLedger

	// AppendAudit 追加一筆稽核紀錄
	AppendAudit(ctx context.Context, event *model.TicketEvent) error
}

type RegistryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRegistryRepository(pool *pgxpool.Pool) RegistryRepository {
	return &RegistryRepositoryImpl{
		pool: pool,
	}
}

// allocateQuery 計數器遞增：單一 SQL 語句，天然原子
const allocateQuery = `
	INSERT INTO registry_counter (id, next_id) VALUES (1, 1)
	ON CONFLICT (id) DO UPDATE SET next_id = registry_counter.next_id + 1
	RETURNING next_id
`

func (r *RegistryRepositoryImpl) AllocateID(ctx context.Context) (uint64, error) {
	var id uint64
	err := r.pool.QueryRow(ctx, allocateQuery).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RegistryRepositoryImpl) Put(ctx context.Context, id uint64, info string, owner string) error {
	query := `
		INSERT INTO tickets (id, info, owner, cancelled, issued_at, updated_at)
		VALUES ($1, $2, $3, false, $4, $4)
	`

	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, query, id, info, owner, now)
	return err
}

func (r *RegistryRepositoryImpl) Get(ctx context.Context, id uint64) (*model.Ticket, error) {
	query := `
		SELECT id, info, owner, cancelled, issued_at, updated_at
		FROM tickets
		WHERE id = $1
	`

	var ticket model.Ticket
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Info,
		&ticket.Owner,
		&ticket.Cancelled,
		&ticket.IssuedAt,
		&ticket.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *RegistryRepositoryImpl) SetOwner(ctx context.Context, id uint64, owner string) error {
	query := `
		UPDATE tickets
		SET owner = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, owner, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}

func (r *RegistryRepositoryImpl) SetCancelled(ctx context.Context, id uint64, cancelled bool) error {
	// 作廢同時清除持有人；復原不會恢復先前持有人
	query := `
		UPDATE tickets
		SET cancelled = $1,
			owner = CASE WHEN $1 THEN NULL ELSE owner END,
			updated_at = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, cancelled, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}

// lockTicketTx 在交易內以 FOR UPDATE 鎖住該票券列，
// 讓「讀取—驗證—改寫」整段對同一張票串行化
func (r *RegistryRepositoryImpl) lockTicketTx(ctx context.Context, tx pgx.Tx, id uint64) (owner *string, cancelled bool, err error) {
	query := `
		SELECT owner, cancelled FROM tickets WHERE id = $1 FOR UPDATE
	`

	err = tx.QueryRow(ctx, query, id).Scan(&owner, &cancelled)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, apperrors.ErrTicketNotFound
		}
		return nil, false, err
	}
	return owner, cancelled, nil
}

func (r *RegistryRepositoryImpl) Transfer(ctx context.Context, id uint64, caller string, from string, to string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	owner, cancelled, err := r.lockTicketTx(ctx, tx, id)
	if err != nil {
		return err
	}

	// 轉讓由受讓人發起並接受，不是持有人單方推送
	if to != caller {
		return apperrors.ErrUnauthorized
	}

	if cancelled {
		return apperrors.ErrAlreadyCancelled
	}

	// 帳上持有人必須與 from 相符；復原後尚無持有人的票券同樣擋下
	if owner == nil || *owner != from {
		return apperrors.ErrUnauthorized
	}

	query := `
		UPDATE tickets SET owner = $1, updated_at = $2 WHERE id = $3
	`
	if _, err := tx.Exec(ctx, query, to, time.Now().UTC(), id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *RegistryRepositoryImpl) Cancel(ctx context.Context, id uint64, caller string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	owner, cancelled, err := r.lockTicketTx(ctx, tx, id)
	if err != nil {
		return err
	}

	// 先判斷作廢旗標：重複作廢回 AlreadyCancelled，而不是因持有人已清除而回 NotFound
	if cancelled {
		return apperrors.ErrAlreadyCancelled
	}

	// 帳上沒有持有人（例如復原後尚未重新指派）：沒有可作廢的持有紀錄
	if owner == nil {
		return apperrors.ErrTicketNotFound
	}

	if *owner != caller {
		return apperrors.ErrUnauthorized
	}

	query := `
		UPDATE tickets SET cancelled = true, owner = NULL, updated_at = $1 WHERE id = $2
	`
	if _, err := tx.Exec(ctx, query, time.Now().UTC(), id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *RegistryRepositoryImpl) Restore(ctx context.Context, id uint64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, cancelled, err := r.lockTicketTx(ctx, tx, id)
	if err != nil {
		// 不存在的票券視為「並非作廢狀態」
		if err == apperrors.ErrTicketNotFound {
			return apperrors.ErrCancelFailed
		}
		return err
	}

	if !cancelled {
		return apperrors.ErrCancelFailed
	}

	// 不保存持有人歷史，復原後的票券在重新指派前沒有登記持有人
	query := `
		UPDATE tickets SET cancelled = false, updated_at = $1 WHERE id = $2
	`
	if _, err := tx.Exec(ctx, query, time.Now().UTC(), id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *RegistryRepositoryImpl) ExistsActive(ctx context.Context, id uint64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tickets WHERE id = $1 AND cancelled = false
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *RegistryRepositoryImpl) Count(ctx context.Context) (uint64, error) {
	query := `
		SELECT COALESCE((SELECT next_id FROM registry_counter WHERE id = 1), 0)
	`

	var count uint64
	err := r.pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *RegistryRepositoryImpl) IssueOne(ctx context.Context, info string, owner string) (uint64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	id, err := r.allocateTx(ctx, tx)
	if err != nil {
		return 0, err
	}

	if err := r.putTx(ctx, tx, id, info, owner); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return id, nil
}

// IssueBatch 全有全無：整批在同一個 transaction 內依輸入順序配發，
// 任何寫入失敗即回滾，不留下跳號
func (r *RegistryRepositoryImpl) IssueBatch(ctx context.Context, infos []string, owner string, batchRef string) ([]uint64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uint64, 0, len(infos))
	for _, info := range infos {
		id, err := r.allocateTx(ctx, tx)
		if err != nil {
			return nil, err
		}
		if err := r.putTx(ctx, tx, id, info, owner); err != nil {
			return nil, err
		}
		if batchRef != "" {
			if err := r.putBatchMetadataTx(ctx, tx, id, batchRef); err != nil {
				return nil, err
			}
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *RegistryRepositoryImpl) allocateTx(ctx context.Context, tx pgx.Tx) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx, allocateQuery).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RegistryRepositoryImpl) putTx(ctx context.Context, tx pgx.Tx, id uint64, info string, owner string) error {
	query := `
		INSERT INTO tickets (id, info, owner, cancelled, issued_at, updated_at)
		VALUES ($1, $2, $3, false, $4, $4)
	`

	now := time.Now().UTC()
	_, err := tx.Exec(ctx, query, id, info, owner, now)
	return err
}

func (r *RegistryRepositoryImpl) putBatchMetadataTx(ctx context.Context, tx pgx.Tx, id uint64, note string) error {
	query := `
		INSERT INTO batch_metadata (ticket_id, note)
		VALUES ($1, $2)
		ON CONFLICT (ticket_id) DO UPDATE SET note = EXCLUDED.note
	`

	_, err := tx.Exec(ctx, query, id, note)
	return err
}

func (r *RegistryRepositoryImpl) PutBatchMetadata(ctx context.Context, id uint64, note string) error {
	query := `
		INSERT INTO batch_metadata (ticket_id, note)
		VALUES ($1, $2)
		ON CONFLICT (ticket_id) DO UPDATE SET note = EXCLUDED.note
	`

	_, err := r.pool.Exec(ctx, query, id, note)
	return err
}

func (r *RegistryRepositoryImpl) BatchMetadata(ctx context.Context, id uint64) (string, error) {
	query := `
		SELECT note FROM batch_metadata WHERE ticket_id = $1
	`

	var note string
	err := r.pool.QueryRow(ctx, query, id).Scan(&note)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", apperrors.ErrTicketNotFound
		}
		return "", err
	}

	return note, nil
}

func (r *RegistryRepositoryImpl) AppendAudit(ctx context.Context, event *model.TicketEvent) error {
	query := `
		INSERT INTO audit_log (event_id, event_type, ticket_id, actor, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		event.EventID, string(event.Type), event.TicketID, event.Actor, event.At,
	)
	return err
}
