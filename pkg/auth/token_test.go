// pkg/auth/token_test.go
package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, userID int, expiresAt time.Time) string {
	t.Helper()
	claims := SessionClaims{
		UserID: userID,
		Email:  "student@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	return token
}

func TestInspectValidToken(t *testing.T) {
	inspector := NewTokenInspector()
	token := signedToken(t, 42, time.Now().Add(time.Hour))

	claims, err := inspector.Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "student@example.com", claims.Email)
}

func TestInspectExpiredToken(t *testing.T) {
	inspector := NewTokenInspector()
	token := signedToken(t, 42, time.Now().Add(-time.Hour))

	_, err := inspector.Inspect(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestInspectGarbage(t *testing.T) {
	inspector := NewTokenInspector()
	_, err := inspector.Inspect("not.a.token")
	assert.Error(t, err)
}

func TestValid(t *testing.T) {
	inspector := NewTokenInspector()

	assert.True(t, inspector.Valid(signedToken(t, 1, time.Now().Add(time.Hour))))
	assert.False(t, inspector.Valid(signedToken(t, 1, time.Now().Add(-time.Hour))))
	assert.False(t, inspector.Valid(""))
	assert.False(t, inspector.Valid("garbage"))
}

func TestBearerHeaderRoundTrip(t *testing.T) {
	header := BearerHeader("abc123")
	assert.Equal(t, "Bearer abc123", header)

	token, err := ExtractTokenFromHeader(header)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractTokenFromHeader("Basic abc123")
	assert.Error(t, err)
}
