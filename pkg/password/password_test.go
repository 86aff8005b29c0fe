package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashYVerify(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, h.Verify("secret123", hash))
	assert.False(t, h.Verify("Secret123", hash))
}

func TestBcrypt_HashNoDeterminista(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	a, err := h.Hash("secret123")
	require.NoError(t, err)
	b, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "cada hash lleva su propia sal")
}

func TestBcrypt_HashInvalidoNoCoincide(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	assert.False(t, h.Verify("secret123", ""))
	assert.False(t, h.Verify("secret123", "no-es-bcrypt"))
}

func TestBcrypt_ContraseñaDemasiadoLarga(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestNewBcrypt_CosteFueraDeRango(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewBcrypt(12).cost)
}
