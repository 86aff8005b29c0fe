package repository

import (
	"context"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
)

// UserFilter filtros adicionales sobre el alcance de listado.
type UserFilter struct {
	Roles []rbac.Role // vacío = todos
}

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByIDInCompany solo devuelve el usuario si pertenece a companyID.
	GetByIDInCompany(ctx context.Context, id, companyID string) (*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
	List(ctx context.Context, scope policy.Scope, filter UserFilter) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string, now time.Time) error
	// Delete borra el usuario y sus filas dependientes en una transacción.
	Delete(ctx context.Context, id, companyID string) error

	// RegisterFailedLogin incrementa el contador de forma atómica y bloquea al alcanzar
	// lockout.MaxAttempts. Un bloqueo vencido reinicia la cuenta. Devuelve el estado resultante.
	RegisterFailedLogin(ctx context.Context, id string, lockout policy.Lockout, now time.Time) (attempts int, lockedUntil *time.Time, err error)
	ResetFailedLogins(ctx context.Context, id string) error
}
