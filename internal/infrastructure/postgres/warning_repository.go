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

var _ repository.WarningRepository = (*WarningRepo)(nil)

const warningColumns = `w.id, w.user_id, w.issued_by, w.reason, w.status, w.is_firing_notice,
	w.market_wide, w.market_id, w.created_at, w.updated_at`

// WarningRepo amonestaciones sobre PostgreSQL.
type WarningRepo struct {
	q Querier
}

func NewWarningRepository(q Querier) *WarningRepo {
	return &WarningRepo{q: q}
}

func (r *WarningRepo) Create(ctx context.Context, w *entity.Warning) error {
	query := `
		INSERT INTO warnings (id, user_id, issued_by, reason, status, is_firing_notice, market_wide, market_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.UserID, w.IssuedBy, w.Reason, w.Status, w.IsFiringNotice, w.MarketWide, w.MarketID, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert warning: %w", err)
	}
	return nil
}

func (r *WarningRepo) GetByID(ctx context.Context, id string) (*entity.Warning, error) {
	return r.one(ctx, `SELECT `+warningColumns+` FROM warnings w WHERE w.id = $1`, id)
}

func (r *WarningRepo) List(ctx context.Context, scope policy.Scope) ([]*entity.Warning, error) {
	cond, args := scopeCondition(scope, "u", 1)
	rows, err := r.q.Query(ctx, `
		SELECT `+warningColumns+`
		FROM warnings w JOIN users u ON u.id = w.user_id
		WHERE `+cond+`
		ORDER BY w.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list warnings: %w", err)
	}
	return collect(rows, scanWarning)
}

func (r *WarningRepo) Resolve(ctx context.Context, id string, now time.Time) (*entity.Warning, error) {
	return r.one(ctx, `
		UPDATE warnings w SET status = 'resolved', updated_at = $2
		WHERE w.id = $1
		RETURNING `+warningColumns, id, now)
}

func (r *WarningRepo) one(ctx context.Context, query string, args ...any) (*entity.Warning, error) {
	w, err := scanWarning(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("warning: %w", err)
	}
	return w, nil
}

func scanWarning(row pgxScanner) (*entity.Warning, error) {
	var w entity.Warning
	if err := row.Scan(&w.ID, &w.UserID, &w.IssuedBy, &w.Reason, &w.Status, &w.IsFiringNotice,
		&w.MarketWide, &w.MarketID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
