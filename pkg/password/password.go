// Package password encapsula la función unidireccional usada para las contraseñas.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher es el contrato que necesita auth: hash y verificación.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// BcryptHasher implementa Hasher con bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcrypt construye el hasher. Un coste fuera de rango usa bcrypt.DefaultCost.
func NewBcrypt(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash genera el hash bcrypt de la contraseña.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("password: demasiado larga: %w", err)
		}
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(b), nil
}

// Verify compara en tiempo constante; cualquier error cuenta como no coincidencia.
func (h *BcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
