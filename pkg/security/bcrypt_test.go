package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify(t *testing.T) {
	h := New(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, h.Verify("secret123", hash))
	assert.False(t, h.Verify("wrong", hash))
}

func TestHashIsSalted(t *testing.T) {
	h := New(bcrypt.MinCost)

	h1, err := h.Hash("secret123")
	require.NoError(t, err)

	h2, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, h.Verify("secret123", h1))
	assert.True(t, h.Verify("secret123", h2))
}

func TestVerifyMalformedHash(t *testing.T) {
	h := New(bcrypt.MinCost)

	assert.False(t, h.Verify("secret123", ""))
	assert.False(t, h.Verify("secret123", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("secret123", "$2a$xx$garbage"))
}

func TestNewClampsBadCost(t *testing.T) {
	assert.Equal(t, DefaultCost, New(0).Cost)
	assert.Equal(t, DefaultCost, New(99).Cost)
	assert.Equal(t, 10, New(10).Cost)
}
