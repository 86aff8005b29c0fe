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
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `u.id, u.company_id, u.email, u.password_hash, u.name, u.phone, u.profile_picture,
	u.role, u.standing, u.market_id, u.hourly_rate, u.holiday_rate, u.accumulated_salary,
	u.theme, u.accent_color, u.language, u.two_factor_enabled, u.failed_login_attempts, u.locked_until,
	u.created_at, u.updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, email, password_hash, name, phone, profile_picture, role, standing,
			market_id, hourly_rate, holiday_rate, accumulated_salary, theme, accent_color, language,
			two_factor_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.CompanyID, u.Email, u.PasswordHash, u.Name, u.Phone, u.ProfilePicture, string(u.Role), u.Standing,
		u.MarketID, u.HourlyRate, u.HolidayRate, u.AccumulatedSalary, u.Theme, u.AccentColor, u.Language,
		u.TwoFactorEnabled, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
}

// GetByIDInCompany obtiene un usuario si pertenece a la empresa.
func (r *UserRepo) GetByIDInCompany(ctx context.Context, id, companyID string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1 AND u.company_id = $2`, id, companyID)
}

// GetByEmailAndCompany obtiene un usuario por email y company.
func (r *UserRepo) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = $1 AND u.company_id = $2`, email, companyID)
}

// List usuarios dentro del alcance, más recientes primero.
func (r *UserRepo) List(ctx context.Context, scope policy.Scope, filter repository.UserFilter) ([]*entity.User, error) {
	cond, args := scopeCondition(scope, "u", 1)
	if len(filter.Roles) > 0 {
		roles := make([]string, len(filter.Roles))
		for i, role := range filter.Roles {
			roles[i] = string(role)
		}
		args = append(args, roles)
		cond += fmt.Sprintf(" AND u.role = ANY($%d)", len(args))
	}
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users u WHERE `+cond+` ORDER BY u.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collect(rows, scanUser)
}

// Update guarda los campos editables. No toca hash, salario acumulado ni estado de login.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET email = $2, name = $3, phone = $4, profile_picture = $5, role = $6, standing = $7,
			market_id = $8, hourly_rate = $9, holiday_rate = $10, theme = $11, accent_color = $12,
			language = $13, two_factor_enabled = $14, updated_at = $15
		WHERE id = $1 AND company_id = $16`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.Name, u.Phone, u.ProfilePicture, string(u.Role), u.Standing,
		u.MarketID, u.HourlyRate, u.HolidayRate, u.Theme, u.AccentColor,
		u.Language, u.TwoFactorEnabled, u.UpdatedAt, u.CompanyID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePassword reemplaza el hash de la contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string, now time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, id, hash, now)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el usuario. Las filas dependientes y sus sesiones caen por ON DELETE CASCADE
// dentro de la misma sentencia.
func (r *UserRepo) Delete(ctx context.Context, id, companyID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RegisterFailedLogin incremento atómico con bloqueo. Si el bloqueo anterior venció, la cuenta
// vuelve a empezar en 1; al llegar a $2 intentos se fija locked_until = $3 + $4.
func (r *UserRepo) RegisterFailedLogin(ctx context.Context, id string, lockout policy.Lockout, now time.Time) (int, *time.Time, error) {
	query := `
		WITH next AS (
			SELECT id,
				CASE WHEN locked_until IS NOT NULL AND locked_until <= $3 THEN 1
				     ELSE failed_login_attempts + 1 END AS attempts,
				CASE WHEN locked_until IS NOT NULL AND locked_until <= $3 THEN NULL
				     ELSE locked_until END AS prev_lock
			FROM users WHERE id = $1 FOR UPDATE
		)
		UPDATE users u SET
			failed_login_attempts = next.attempts,
			locked_until = CASE WHEN next.attempts >= $2 THEN $4::timestamptz ELSE next.prev_lock END
		FROM next WHERE u.id = next.id
		RETURNING u.failed_login_attempts, u.locked_until`
	var attempts int
	var lockedUntil *time.Time
	err := r.q.QueryRow(ctx, query, id, lockout.MaxAttempts, now, lockout.LockUntil(now)).Scan(&attempts, &lockedUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, domain.ErrNotFound
		}
		return 0, nil, fmt.Errorf("register failed login: %w", err)
	}
	return attempts, lockedUntil, nil
}

// ResetFailedLogins pone el contador a cero y quita el bloqueo.
func (r *UserRepo) ResetFailedLogins(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET failed_login_attempts = 0, locked_until = NULL WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reset failed logins: %w", err)
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgxScanner) (*entity.User, error) {
	var u entity.User
	var role string
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.ProfilePicture,
		&role, &u.Standing, &u.MarketID, &u.HourlyRate, &u.HolidayRate, &u.AccumulatedSalary,
		&u.Theme, &u.AccentColor, &u.Language, &u.TwoFactorEnabled, &u.FailedLoginAttempts, &u.LockedUntil,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = rbac.Role(role)
	return &u, nil
}
