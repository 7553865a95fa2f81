package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyTokenPair(t *testing.T) {
	m := NewManager("test-secret", 3600, 86400)

	access, refresh, err := m.GenerateTokenPair(42, "linnaeus")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := m.VerifyToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.MemberDocumentID)
	assert.Equal(t, "linnaeus", claims.Username)
	assert.False(t, claims.Refresh)

	refreshClaims, err := m.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.Refresh)
}

func TestVerifyRefreshRejectsAccessToken(t *testing.T) {
	m := NewManager("test-secret", 3600, 86400)

	access, _, err := m.GenerateTokenPair(42, "linnaeus")
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := NewManager("test-secret", 3600, 86400)
	other := NewManager("other-secret", 3600, 86400)

	access, _, err := m.GenerateTokenPair(42, "linnaeus")
	require.NoError(t, err)

	_, err = other.VerifyToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -1, 86400)

	access, _, err := m.GenerateTokenPair(42, "linnaeus")
	require.NoError(t, err)

	_, err = m.VerifyToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", 3600, 86400)

	_, err := m.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
