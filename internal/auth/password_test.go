package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
)

func TestContainsCyrillic(t *testing.T) {
	t.Parallel()

	assert.False(t, ContainsCyrillic("Str0ng!Passw0rd"))
	assert.True(t, ContainsCyrillic("пароль"))
	assert.True(t, ContainsCyrillic("abcЀ"))
	assert.True(t, ContainsCyrillic("abcӿ"))
	assert.False(t, ContainsCyrillic("abcԀ"))
	assert.False(t, ContainsCyrillic("abcϿ"))
}

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("Str0ng!Passw0rd")
	require.NoError(t, err)

	assert.NotEqual(t, "Str0ng!Passw0rd", hash)
	assert.True(t, h.Compare(hash, "Str0ng!Passw0rd"))
	assert.False(t, h.Compare(hash, "wrong"))
}

func TestPasswordHasher_DefaultCost(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(0)
	assert.Equal(t, DefaultBcryptCost, h.cost)
}

func TestPasswordHasher_TooLong(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", 100))
	assert.ErrorIs(t, err, apperrors.ErrPasswordTooLong)
}
