package redis_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	redisstore "github.com/jhoicas/staffhub-api/internal/infrastructure/redis"
	"github.com/jhoicas/staffhub-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newTestStore(t *testing.T) (*redisstore.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisstore.NewSessionStore(rdb, time.Now), mr
}

func newSession(token, userID string, ttl time.Duration) *entity.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &entity.Session{Token: token, UserID: userID, CreatedAt: now, ExpiresAt: now.Add(ttl)}
}

func mustGet(t *testing.T, s *redisstore.SessionStore, token string) *entity.Session {
	t.Helper()
	got, err := s.Get(context.Background(), token)
	require.NoError(t, err)
	return got
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Get
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionStore_CreateYGet(t *testing.T) {
	s, mr := newTestStore(t)
	sess := newSession("tok-1", "u1", time.Hour)
	require.NoError(t, s.Create(context.Background(), sess))

	got := mustGet(t, s, "tok-1")
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.ExpiresAt.Equal(sess.ExpiresAt))
	assert.True(t, got.CreatedAt.Equal(sess.CreatedAt))

	ttl := mr.TTL("session:tok-1")
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
	assert.True(t, mr.Exists("user_sessions:u1"))

	assert.Nil(t, mustGet(t, s, "desconocido"))
}

// Redis borra la clave al vencer el TTL; no hace falta barrido.
func TestSessionStore_ExpiraPorTTL(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, s.Create(context.Background(), newSession("tok-1", "u1", time.Hour)))

	mr.FastForward(61 * time.Minute)
	assert.Nil(t, mustGet(t, s, "tok-1"))

	n, err := s.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSessionStore_CreateYaVencidaNoSeGuarda(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, s.Create(context.Background(), newSession("tok-1", "u1", -time.Minute)))

	assert.False(t, mr.Exists("session:tok-1"))
	assert.Nil(t, mustGet(t, s, "tok-1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Revocación
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionStore_DeleteIdempotente(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, newSession("tok-1", "u1", time.Hour)))

	require.NoError(t, s.Delete(ctx, "tok-1"))
	require.NoError(t, s.Delete(ctx, "tok-1"))
	assert.Nil(t, mustGet(t, s, "tok-1"))
}

func TestSessionStore_DeleteByUser(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	for _, tok := range []string{"a1", "a2", "a3"} {
		require.NoError(t, s.Create(ctx, newSession(tok, "ana", time.Hour)))
	}
	require.NoError(t, s.Create(ctx, newSession("l1", "luis", time.Hour)))

	// Conserva la sesión actual.
	require.NoError(t, s.DeleteByUser(ctx, "ana", "a2"))
	assert.Nil(t, mustGet(t, s, "a1"))
	assert.Nil(t, mustGet(t, s, "a3"))
	assert.NotNil(t, mustGet(t, s, "a2"))
	assert.NotNil(t, mustGet(t, s, "l1"), "otro usuario no se toca")

	members, err := mr.Members("user_sessions:ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"a2"}, members)

	// Sin excepción: todas.
	require.NoError(t, s.DeleteByUser(ctx, "ana", ""))
	assert.Nil(t, mustGet(t, s, "a2"))
	assert.NotNil(t, mustGet(t, s, "l1"))

	// Usuario sin sesiones.
	assert.NoError(t, s.DeleteByUser(ctx, "nadie", ""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de conexión
// ──────────────────────────────────────────────────────────────────────────────

// Un servidor caído es un error, nunca un "token inexistente".
func TestSessionStore_ServidorCaido(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	got, err := s.Get(context.Background(), "tok-1")
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	host := mr.Host()

	rdb, err := redisstore.NewClient(context.Background(), config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	require.NoError(t, rdb.Close())

	mr.Close()
	_, err = redisstore.NewClient(context.Background(), config.RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}
