// Package redis implementa el SessionStore sobre Redis usando el TTL nativo de las claves.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
	"github.com/jhoicas/staffhub-api/pkg/config"
)

var _ repository.SessionStore = (*SessionStore)(nil)

const (
	sessionPrefix     = "session:"
	userSessionPrefix = "user_sessions:"
)

// NewClient abre el cliente y comprueba la conexión con un PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

type sessionValue struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore guarda cada sesión en session:<token> con TTL hasta su expiración y
// mantiene un set user_sessions:<userId> para revocar por usuario.
type SessionStore struct {
	rdb *redis.Client
	now func() time.Time
}

// NewSessionStore construye el store. now se usa para calcular el TTL de cada clave.
func NewSessionStore(rdb *redis.Client, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{rdb: rdb, now: now}
}

func (s *SessionStore) Create(ctx context.Context, sess *entity.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(sessionValue{UserID: sess.UserID, ExpiresAt: sess.ExpiresAt, CreatedAt: sess.CreatedAt})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionPrefix+sess.Token, raw, ttl)
	pipe.SAdd(ctx, userSessionPrefix+sess.UserID, sess.Token)
	pipe.ExpireAt(ctx, userSessionPrefix+sess.UserID, sess.ExpiresAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*entity.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var v sessionValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &entity.Session{Token: token, UserID: v.UserID, ExpiresAt: v.ExpiresAt, CreatedAt: v.CreatedAt}, nil
}

// Delete borra la clave; el miembro del set del usuario se limpia en el siguiente DeleteByUser.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID, exceptToken string) error {
	key := userSessionPrefix + userID
	tokens, err := s.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	for _, t := range tokens {
		if t == exceptToken {
			continue
		}
		pipe.Del(ctx, sessionPrefix+t)
		pipe.SRem(ctx, key, t)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

// DeleteExpired no tiene trabajo que hacer: Redis expira las claves por TTL.
func (s *SessionStore) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
