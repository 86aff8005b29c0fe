package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.SalaryRepository = (*SalaryRepo)(nil)

// SalaryRepo pagos de salario. RecordPayment necesita su propia transacción, por eso recibe el pool.
type SalaryRepo struct {
	pool *pgxpool.Pool
}

func NewSalaryRepository(pool *pgxpool.Pool) *SalaryRepo {
	return &SalaryRepo{pool: pool}
}

// RecordPayment descuenta el saldo en la base de datos y registra el pago en la misma tx.
// El saldo puede quedar negativo (pagos adelantados).
func (r *SalaryRepo) RecordPayment(ctx context.Context, p *entity.SalaryPayment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE users SET accumulated_salary = accumulated_salary - $1, updated_at = $3
		WHERE id = $2`, p.Amount, p.UserID, p.PaidAt)
	if err != nil {
		return fmt.Errorf("decrement salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO salary_payments (id, user_id, amount, period, paid_at) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.UserID, p.Amount, p.Period, p.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert salary payment: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *SalaryRepo) ListByUser(ctx context.Context, userID string) ([]*entity.SalaryPayment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, amount, period, paid_at FROM salary_payments
		WHERE user_id = $1 ORDER BY paid_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list salary payments: %w", err)
	}
	return collect(rows, func(row pgxScanner) (*entity.SalaryPayment, error) {
		var p entity.SalaryPayment
		if err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.Period, &p.PaidAt); err != nil {
			return nil, err
		}
		return &p, nil
	})
}
