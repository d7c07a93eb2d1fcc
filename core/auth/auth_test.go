package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2", hash)
	assert.False(t, strings.Contains(hash, "hunter2"))

	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("Hunter2", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("hunter2")
	require.NoError(t, err)
	second, err := HashPassword("hunter2")
	require.NoError(t, err)

	// bcrypt salts every hash, so two hashes of the same password differ
	// while both still verify.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash("hunter2", first))
	assert.True(t, CheckPasswordHash("hunter2", second))
}

func TestTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"

	token, err := GenerateToken(secret, "tristan")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "tristan", claims.Username)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", "tristan")
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}
