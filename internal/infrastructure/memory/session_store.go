package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore sesiones en un mapa del proceso. Solo válido con una única instancia del servicio:
// un reinicio invalida todas las sesiones.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
}

// NewSessionStore crea un store vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]entity.Session)}
}

func (s *SessionStore) Create(_ context.Context, sess *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = *sess
	return nil
}

func (s *SessionStore) Get(_ context.Context, token string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *SessionStore) DeleteByUser(_ context.Context, userID, exceptToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, sess := range s.sessions {
		if sess.UserID == userID && t != exceptToken {
			delete(s.sessions, t)
		}
	}
	return nil
}

func (s *SessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for t, sess := range s.sessions {
		if !sess.ValidAt(now) {
			delete(s.sessions, t)
			n++
		}
	}
	return n, nil
}

// Len número de sesiones almacenadas, vencidas incluidas.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
