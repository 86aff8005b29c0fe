package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/infrastructure/memory"
)

// manualClock reloj que solo avanza cuando el test lo pide.
type manualClock struct{ t time.Time }

func (c *manualClock) Now() time.Time          { return c.t }
func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(t *testing.T) (*SessionManager, *memory.SessionStore, *manualClock) {
	t.Helper()
	clock := &manualClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	store := memory.NewSessionStore()
	return NewSessionManager(store, time.Hour, clock.Now), store, clock
}

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestSessionManager_CreateYResolve(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	token, err := m.Create(ctx, "u1")
	require.NoError(t, err)
	assert.Regexp(t, hexToken, token)

	userID, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestSessionManager_TokensUnicos(t *testing.T) {
	m, _, _ := newTestManager(t)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := m.Create(context.Background(), "u1")
		require.NoError(t, err)
		require.False(t, seen[token], "token repetido")
		seen[token] = true
	}
}

// Vencida una vez, vencida siempre: el token se purga y avanzar solo el reloj no la revive.
func TestSessionManager_ExpiraYSePurga(t *testing.T) {
	m, store, clock := newTestManager(t)
	ctx := context.Background()
	token, err := m.Create(ctx, "u1")
	require.NoError(t, err)

	clock.Advance(time.Hour - time.Second)
	_, err = m.Resolve(ctx, token)
	require.NoError(t, err, "todavía vigente")

	clock.Advance(time.Second)
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, 0, store.Len(), "el token vencido se borra en el lookup")

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

// Las sesiones no se deslizan: usarla no extiende la expiración.
func TestSessionManager_NoDeslizante(t *testing.T) {
	m, _, clock := newTestManager(t)
	ctx := context.Background()
	token, err := m.Create(ctx, "u1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		clock.Advance(20 * time.Minute)
		_, _ = m.Resolve(ctx, token)
	}
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestSessionManager_TokenVacioODesconocido(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	_, err = m.Resolve(context.Background(), "ffff")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestSessionManager_DestroyOthersYDestroyAll(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	a, _ := m.Create(ctx, "u1")
	b, _ := m.Create(ctx, "u1")
	other, _ := m.Create(ctx, "u2")

	require.NoError(t, m.DestroyOthers(ctx, "u1", a))
	_, err := m.Resolve(ctx, a)
	assert.NoError(t, err)
	_, err = m.Resolve(ctx, b)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	require.NoError(t, m.DestroyAll(ctx, "u1"))
	_, err = m.Resolve(ctx, a)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	_, err = m.Resolve(ctx, other)
	assert.NoError(t, err, "las sesiones de otro usuario siguen vivas")

	assert.NoError(t, m.Destroy(ctx, a), "revocar dos veces no es error")
}

func TestSessionManager_Sweep(t *testing.T) {
	m, store, clock := newTestManager(t)
	ctx := context.Background()
	_, _ = m.Create(ctx, "u1")
	_, _ = m.Create(ctx, "u2")
	clock.Advance(2 * time.Hour)
	live, _ := m.Create(ctx, "u3")

	n, err := m.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 1, store.Len())

	_, err = m.Resolve(ctx, live)
	assert.NoError(t, err)
}

func TestNewSessionManager_TTLPorDefecto(t *testing.T) {
	m := NewSessionManager(memory.NewSessionStore(), 0, nil)
	assert.Equal(t, DefaultSessionTTL, m.ttl)
}
