package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

const contractColumns = `k.id, k.user_id, k.start_date, k.end_date, k.is_active, k.notice_date,
	k.renewal_requested, k.created_at, k.updated_at`

// ContractRepo contratos sobre PostgreSQL.
type ContractRepo struct {
	q Querier
}

func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contracts (id, user_id, start_date, end_date, is_active, notice_date, renewal_requested, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.UserID, c.StartDate, c.EndDate, c.IsActive, c.NoticeDate, c.RenewalRequested, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

func (r *ContractRepo) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	return r.one(ctx, `SELECT `+contractColumns+` FROM contracts k WHERE k.id = $1`, id)
}

// GetActiveByUser contrato activo más reciente del usuario.
func (r *ContractRepo) GetActiveByUser(ctx context.Context, userID string) (*entity.Contract, error) {
	return r.one(ctx, `
		SELECT `+contractColumns+` FROM contracts k
		WHERE k.user_id = $1 AND k.is_active
		ORDER BY k.start_date DESC LIMIT 1`, userID)
}

func (r *ContractRepo) List(ctx context.Context, scope policy.Scope) ([]*entity.Contract, error) {
	cond, args := scopeCondition(scope, "u", 1)
	rows, err := r.q.Query(ctx, `
		SELECT `+contractColumns+`
		FROM contracts k JOIN users u ON u.id = k.user_id
		WHERE `+cond+`
		ORDER BY k.start_date DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return collect(rows, scanContract)
}

func (r *ContractRepo) Update(ctx context.Context, c *entity.Contract) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE contracts SET start_date = $2, end_date = $3, is_active = $4, notice_date = $5,
			renewal_requested = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.StartDate, c.EndDate, c.IsActive, c.NoticeDate, c.RenewalRequested, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContractRepo) DeactivateOthers(ctx context.Context, userID, keepID string, at time.Time) error {
	_, err := r.q.Exec(ctx, `
		UPDATE contracts SET is_active = FALSE, updated_at = $3
		WHERE user_id = $1 AND id <> $2 AND is_active`, userID, keepID, at)
	if err != nil {
		return fmt.Errorf("deactivate contracts: %w", err)
	}
	return nil
}

func (r *ContractRepo) one(ctx context.Context, query string, args ...any) (*entity.Contract, error) {
	c, err := scanContract(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

func scanContract(row pgxScanner) (*entity.Contract, error) {
	var c entity.Contract
	if err := row.Scan(&c.ID, &c.UserID, &c.StartDate, &c.EndDate, &c.IsActive, &c.NoticeDate,
		&c.RenewalRequested, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
