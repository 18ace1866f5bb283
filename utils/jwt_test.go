package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	j := NewJWTService("test-secret")

	pair, err := j.GenerateTokenPair("user-1", "admin@example.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := j.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	pair, err := NewJWTService("secret-a").GenerateTokenPair("user-1", "a@example.com", "staff")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestRefreshTokensRequiresRefreshToken(t *testing.T) {
	j := NewJWTService("test-secret")

	pair, err := j.GenerateTokenPair("user-1", "a@example.com", "staff")
	require.NoError(t, err)

	// An access token must not be usable for refresh.
	_, err = j.RefreshTokens(pair.AccessToken)
	assert.Error(t, err)

	fresh, err := j.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	claims, err := j.ValidateToken(fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}
