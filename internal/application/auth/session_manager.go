package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
	"github.com/jhoicas/staffhub-api/internal/metrics"
)

// TokenBytes entropía del token de sesión (256 bits). Se serializa en hex: 64 caracteres.
const TokenBytes = 32

// DefaultSessionTTL duración absoluta de una sesión.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Clock fuente de tiempo inyectable.
type Clock func() time.Time

// SessionManager emite, resuelve y revoca tokens opacos sobre un SessionStore.
// Las sesiones no se deslizan: ExpiresAt queda fijo al crearlas.
type SessionManager struct {
	store repository.SessionStore
	ttl   time.Duration
	now   Clock
}

// NewSessionManager construye el manager. ttl <= 0 usa DefaultSessionTTL; now nil usa time.Now.
func NewSessionManager(store repository.SessionStore, ttl time.Duration, now Clock) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &SessionManager{store: store, ttl: ttl, now: now}
}

// Create emite un token nuevo para el usuario. No hay límite de sesiones concurrentes.
func (m *SessionManager) Create(ctx context.Context, userID string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	now := m.now()
	s := &entity.Session{Token: token, UserID: userID, ExpiresAt: now.Add(m.ttl), CreatedAt: now}
	if err := m.store.Create(ctx, s); err != nil {
		return "", fmt.Errorf("crear sesión: %w", err)
	}
	metrics.RecordSessionCreated()
	return token, nil
}

// Resolve devuelve el userID del token o domain.ErrSessionExpired si no existe o venció.
// Un token vencido se borra en la misma llamada.
func (m *SessionManager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrSessionExpired
	}
	s, err := m.store.Get(ctx, token)
	if err != nil {
		return "", fmt.Errorf("leer sesión: %w", err)
	}
	if s == nil {
		return "", domain.ErrSessionExpired
	}
	if !s.ValidAt(m.now()) {
		if err := m.store.Delete(ctx, token); err != nil {
			return "", fmt.Errorf("purgar sesión: %w", err)
		}
		return "", domain.ErrSessionExpired
	}
	return s.UserID, nil
}

// Destroy revoca el token. Revocar un token inexistente no es error.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// DestroyOthers revoca todas las sesiones del usuario excepto keep.
func (m *SessionManager) DestroyOthers(ctx context.Context, userID, keep string) error {
	return m.store.DeleteByUser(ctx, userID, keep)
}

// DestroyAll revoca todas las sesiones del usuario.
func (m *SessionManager) DestroyAll(ctx context.Context, userID string) error {
	return m.store.DeleteByUser(ctx, userID, "")
}

// Sweep borra las sesiones vencidas y devuelve cuántas eran.
func (m *SessionManager) Sweep(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx, m.now())
	if err != nil {
		return 0, err
	}
	metrics.RecordSessionsSwept(n)
	return n, nil
}

func newToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
