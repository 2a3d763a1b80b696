package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones sobre PostgreSQL. La deduplicación la garantiza el índice
// único notifications_dedup_key (customer_id, product_id, old_price, new_price).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notificationColumns = `id, customer_id, product_id, old_price, new_price, COALESCE(email, ''), message, status, created_at, sent_at`

// CreateIfAbsent INSERT ... ON CONFLICT DO NOTHING: verificación e inserción en una sola sentencia.
func (r *NotificationRepo) CreateIfAbsent(ctx context.Context, n *entity.Notification) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, customer_id, product_id, old_price, new_price, email, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
		ON CONFLICT (customer_id, product_id, old_price, new_price) DO NOTHING`,
		n.ID, n.CustomerID, n.ProductID,
		entity.NormalizePrice(n.OldPrice), entity.NormalizePrice(n.NewPrice),
		n.Email, n.Message, n.Status, n.CreatedAt,
	)
	if err != nil {
		return false, mapWriteError("insert notification", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *NotificationRepo) List(ctx context.Context) ([]*entity.Notification, error) {
	return r.query(ctx, `SELECT `+notificationColumns+` FROM notifications ORDER BY created_at DESC, id DESC`)
}

func (r *NotificationRepo) ListPending(ctx context.Context) ([]*entity.Notification, error) {
	return r.query(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE status = $1 ORDER BY created_at, id`,
		entity.NotificationPending)
}

// Transition UPDATE condicional sobre status = 'PENDING'; 0 filas = otro despachador ya la movió.
func (r *NotificationRepo) Transition(ctx context.Context, id, status string, sentAt *time.Time) (bool, error) {
	if !entity.CanTransition(entity.NotificationPending, status) {
		return false, fmt.Errorf("transición inválida a %s", status)
	}
	if !isUUID(id) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE notifications SET status = $2, sent_at = $3 WHERE id = $1 AND status = $4`,
		id, status, sentAt, entity.NotificationPending,
	)
	if err != nil {
		return false, fmt.Errorf("update notification status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *NotificationRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Notification, error) {
		var n entity.Notification
		err := row.Scan(&n.ID, &n.CustomerID, &n.ProductID, &n.OldPrice, &n.NewPrice,
			&n.Email, &n.Message, &n.Status, &n.CreatedAt, &n.SentAt)
		return &n, err
	})
}
