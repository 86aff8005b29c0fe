package repository

import (
	"context"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
)

// SessionStore persiste sesiones opacas. Get devuelve (nil, nil) si el token no existe;
// la comprobación de expiración la hace el Session Manager.
type SessionStore interface {
	Create(ctx context.Context, s *entity.Session) error
	Get(ctx context.Context, token string) (*entity.Session, error)
	// Delete es idempotente.
	Delete(ctx context.Context, token string) error
	// DeleteByUser borra todas las sesiones del usuario salvo exceptToken (vacío = todas).
	DeleteByUser(ctx context.Context, userID, exceptToken string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
