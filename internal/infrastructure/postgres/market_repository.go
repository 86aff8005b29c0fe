package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.MarketRepository = (*MarketRepo)(nil)

// MarketRepo implementación de MarketRepository. Delete abre su propia transacción.
type MarketRepo struct {
	pool *pgxpool.Pool
}

// NewMarketRepository construye el adaptador.
func NewMarketRepository(pool *pgxpool.Pool) *MarketRepo {
	return &MarketRepo{pool: pool}
}

func (r *MarketRepo) Create(ctx context.Context, m *entity.Market) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO markets (id, company_id, name, address, created_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.CompanyID, m.Name, m.Address, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert market: %w", err)
	}
	return nil
}

func (r *MarketRepo) GetByID(ctx context.Context, id, companyID string) (*entity.Market, error) {
	var m entity.Market
	err := r.pool.QueryRow(ctx,
		`SELECT id, company_id, name, address, created_at FROM markets WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(&m.ID, &m.CompanyID, &m.Name, &m.Address, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get market: %w", err)
	}
	return &m, nil
}

func (r *MarketRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Market, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, company_id, name, address, created_at FROM markets WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	return collect(rows, func(row pgxScanner) (*entity.Market, error) {
		var m entity.Market
		if err := row.Scan(&m.ID, &m.CompanyID, &m.Name, &m.Address, &m.CreatedAt); err != nil {
			return nil, err
		}
		return &m, nil
	})
}

func (r *MarketRepo) ListWithCounts(ctx context.Context, companyID string) ([]*entity.MarketWithCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.company_id, m.name, m.address, m.created_at, COUNT(u.id)
		FROM markets m LEFT JOIN users u ON u.market_id = m.id
		WHERE m.company_id = $1
		GROUP BY m.id
		ORDER BY m.created_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list markets with counts: %w", err)
	}
	return collect(rows, func(row pgxScanner) (*entity.MarketWithCount, error) {
		var m entity.MarketWithCount
		if err := row.Scan(&m.ID, &m.CompanyID, &m.Name, &m.Address, &m.CreatedAt, &m.UserCount); err != nil {
			return nil, err
		}
		return &m, nil
	})
}

func (r *MarketRepo) Update(ctx context.Context, m *entity.Market) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE markets SET name = $3, address = $4 WHERE id = $1 AND company_id = $2`,
		m.ID, m.CompanyID, m.Name, m.Address,
	)
	if err != nil {
		return fmt.Errorf("update market: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete desasigna usuarios, turnos y amonestaciones y borra el market en una transacción.
func (r *MarketRepo) Delete(ctx context.Context, id, companyID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range []string{
		`UPDATE users SET market_id = NULL WHERE market_id = $1`,
		`UPDATE schedules SET market_id = NULL WHERE market_id = $1`,
		`UPDATE warnings SET market_id = NULL WHERE market_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return fmt.Errorf("unassign market: %w", err)
		}
	}
	tag, err := tx.Exec(ctx, `DELETE FROM markets WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete market: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
