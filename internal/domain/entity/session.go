package entity

import "time"

// Session token opaco asociado a un usuario con expiración absoluta (no deslizante).
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ValidAt informa si la sesión sigue vigente en el instante now.
func (s *Session) ValidAt(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
