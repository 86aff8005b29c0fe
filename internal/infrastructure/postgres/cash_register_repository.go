package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

// CashRegisterRepo cuadres de caja sobre PostgreSQL.
type CashRegisterRepo struct {
	q Querier
}

func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

func (r *CashRegisterRepo) Create(ctx context.Context, e *entity.CashRegisterEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cash_register_entries (id, user_id, shift_date, status, amount, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.ShiftDate, e.Status, e.Amount, e.Notes, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash entry: %w", err)
	}
	return nil
}

func (r *CashRegisterRepo) List(ctx context.Context, scope policy.Scope) ([]*entity.CashRegisterEntry, error) {
	cond, args := scopeCondition(scope, "u", 1)
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.user_id, c.shift_date, c.status, c.amount, c.notes, c.created_at
		FROM cash_register_entries c JOIN users u ON u.id = c.user_id
		WHERE `+cond+`
		ORDER BY c.shift_date DESC, c.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list cash entries: %w", err)
	}
	return collect(rows, func(row pgxScanner) (*entity.CashRegisterEntry, error) {
		var e entity.CashRegisterEntry
		if err := row.Scan(&e.ID, &e.UserID, &e.ShiftDate, &e.Status, &e.Amount, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		return &e, nil
	})
}
