package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("unit-test-secret")

func TestSessionTokenRoundtrip(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "user-1", "fiscal")
	require.NoError(t, err)

	claims, err := ParseSessionToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "fiscal", claims.Role)
}

func TestSessionExpiryIsIssuedAtPlusTTL(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "user-1", "operador")
	require.NoError(t, err)

	claims, err := ParseSessionToken(testSecret, token)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, SessionTTL, ttl)
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "user-1", "usuario")
	require.NoError(t, err)

	_, err = ParseSessionToken([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestSessionTokenRejectsExpired(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	claims := &SessionClaims{
		Role: "usuario",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(SessionTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, token)
	assert.Error(t, err)
}

func TestSessionTokenRejectsMissingExpiry(t *testing.T) {
	claims := &SessionClaims{
		Role: "usuario",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "user-1",
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, token)
	assert.Error(t, err)
}
