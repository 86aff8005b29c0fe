package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones persistidas sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create inserta todas las notificaciones en un solo batch.
func (r *NotificationRepo) Create(ctx context.Context, list ...*entity.Notification) error {
	if len(list) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, n := range list {
		batch.Queue(`
			INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			n.ID, n.UserID, n.Title, n.Message, n.Type, n.IsRead, n.CreatedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range list {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
	}
	return nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, title, message, type, is_read, created_at FROM notifications
		WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return collect(rows, scanNotification)
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) (*entity.Notification, error) {
	n, err := scanNotification(r.q.QueryRow(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, message, type, is_read, created_at`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

func scanNotification(row pgxScanner) (*entity.Notification, error) {
	var n entity.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
