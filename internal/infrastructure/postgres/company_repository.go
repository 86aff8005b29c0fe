package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa. Código duplicado -> domain.ErrCompanyCodeExists.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, code, address, default_hourly_rate, default_holiday_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Code, c.Address, c.DefaultHourlyRate, c.DefaultHolidayRate, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCompanyCodeExists
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByCode obtiene una empresa por su código de acceso.
func (r *CompanyRepo) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	return r.getOne(ctx, `WHERE code = $1`, code)
}

// Update actualiza nombre, dirección y tarifas. El código es inmutable.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, address = $3, default_hourly_rate = $4, default_holiday_rate = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Address, c.DefaultHourlyRate, c.DefaultHolidayRate)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Company, error) {
	query := `
		SELECT id, name, code, address, default_hourly_rate, default_holiday_rate, created_at
		FROM companies ` + where
	var c entity.Company
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Code, &c.Address, &c.DefaultHourlyRate, &c.DefaultHolidayRate, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
