package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
	assert.False(t, CheckPassword("", "secret123"))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("secret123")
	require.NoError(t, err)
	h2, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestNewSessionToken(t *testing.T) {
	t1 := NewSessionToken()
	t2 := NewSessionToken()
	assert.NotEmpty(t, t1)
	assert.NotEqual(t, t1, t2)
	assert.Len(t, t1, 36)
}
