package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.SOSRepository = (*SOSRepo)(nil)

// SOSRepo alertas de emergencia sobre PostgreSQL.
type SOSRepo struct {
	q Querier
}

func NewSOSRepository(q Querier) *SOSRepo {
	return &SOSRepo{q: q}
}

func (r *SOSRepo) Create(ctx context.Context, a *entity.SOSAlert) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sos_alerts (id, user_id, type, resolved, created_at) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.Type, a.Resolved, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sos alert: %w", err)
	}
	return nil
}

func (r *SOSRepo) GetByID(ctx context.Context, id string) (*entity.SOSAlert, error) {
	return r.one(ctx, `SELECT a.id, a.user_id, a.type, a.resolved, a.created_at FROM sos_alerts a WHERE a.id = $1`, id)
}

func (r *SOSRepo) List(ctx context.Context, scope policy.Scope) ([]*entity.SOSAlert, error) {
	cond, args := scopeCondition(scope, "u", 1)
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.user_id, a.type, a.resolved, a.created_at
		FROM sos_alerts a JOIN users u ON u.id = a.user_id
		WHERE `+cond+`
		ORDER BY a.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list sos alerts: %w", err)
	}
	return collect(rows, scanSOS)
}

func (r *SOSRepo) ListUnresolved(ctx context.Context, companyID string, limit int) ([]*entity.SOSAlert, error) {
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.user_id, a.type, a.resolved, a.created_at
		FROM sos_alerts a JOIN users u ON u.id = a.user_id
		WHERE u.company_id = $1 AND NOT a.resolved
		ORDER BY a.created_at DESC
		LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list unresolved sos alerts: %w", err)
	}
	return collect(rows, scanSOS)
}

func (r *SOSRepo) Resolve(ctx context.Context, id string) (*entity.SOSAlert, error) {
	return r.one(ctx, `
		UPDATE sos_alerts a SET resolved = TRUE WHERE a.id = $1
		RETURNING a.id, a.user_id, a.type, a.resolved, a.created_at`, id)
}

func (r *SOSRepo) one(ctx context.Context, query string, args ...any) (*entity.SOSAlert, error) {
	a, err := scanSOS(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sos alert: %w", err)
	}
	return a, nil
}

func scanSOS(row pgxScanner) (*entity.SOSAlert, error) {
	var a entity.SOSAlert
	if err := row.Scan(&a.ID, &a.UserID, &a.Type, &a.Resolved, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
