package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `r.id, r.user_id, r.type, r.subject, r.details, r.status, r.is_anonymous,
	r.reviewed_by, r.created_at, r.updated_at`

// RequestRepo solicitudes y reportes sobre PostgreSQL.
type RequestRepo struct {
	q Querier
}

func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

func (r *RequestRepo) Create(ctx context.Context, x *entity.Request) error {
	query := `
		INSERT INTO requests (id, user_id, type, subject, details, status, is_anonymous, reviewed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		x.ID, x.UserID, x.Type, x.Subject, x.Details, x.Status, x.IsAnonymous, x.ReviewedBy, x.CreatedAt, x.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (r *RequestRepo) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	x, err := scanRequest(r.q.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests r WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return x, nil
}

func (r *RequestRepo) List(ctx context.Context, scope policy.Scope, filter repository.RequestFilter) ([]*entity.RequestWithOwner, error) {
	cond, args := scopeCondition(scope, "u", 1)
	if filter.Status != "" {
		args = append(args, filter.Status)
		cond += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.ExcludeUserID != "" {
		args = append(args, filter.ExcludeUserID)
		cond += fmt.Sprintf(" AND r.user_id <> $%d", len(args))
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+requestColumns+`, u.name
		FROM requests r JOIN users u ON u.id = r.user_id
		WHERE `+cond+`
		ORDER BY r.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return collect(rows, func(row pgxScanner) (*entity.RequestWithOwner, error) {
		var x entity.RequestWithOwner
		if err := row.Scan(&x.ID, &x.UserID, &x.Type, &x.Subject, &x.Details, &x.Status, &x.IsAnonymous,
			&x.ReviewedBy, &x.CreatedAt, &x.UpdatedAt, &x.UserName); err != nil {
			return nil, err
		}
		return &x, nil
	})
}

// Transition es un compare-and-set sobre status: dos revisores concurrentes no pisan la decisión.
func (r *RequestRepo) Transition(ctx context.Context, id, from, to, reviewerID string, now time.Time) (*entity.Request, error) {
	row := r.q.QueryRow(ctx, `
		UPDATE requests r SET status = $3, reviewed_by = $4, updated_at = $5
		WHERE r.id = $1 AND r.status = $2
		RETURNING `+requestColumns, id, from, to, reviewerID, now)
	x, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("transition request: %w", err)
	}
	return x, nil
}

func (r *RequestRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}

func scanRequest(row pgxScanner) (*entity.Request, error) {
	var x entity.Request
	if err := row.Scan(&x.ID, &x.UserID, &x.Type, &x.Subject, &x.Details, &x.Status, &x.IsAnonymous,
		&x.ReviewedBy, &x.CreatedAt, &x.UpdatedAt); err != nil {
		return nil, err
	}
	return &x, nil
}
