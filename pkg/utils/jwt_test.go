package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "auth-provider", time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "owner@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", claims.Email)
	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", "auth-provider", time.Hour)
	id := uuid.New()

	expired := NewJWTManager("secret", "auth-provider", -time.Minute)
	token, err := expired.GenerateAccessToken(id, "")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	other := NewJWTManager("other", "auth-provider", time.Hour)
	token, err = other.GenerateAccessToken(id, "")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	wrongIssuer := NewJWTManager("secret", "someone-else", time.Hour)
	token, err = wrongIssuer.GenerateAccessToken(id, "")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)

	badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		Issuer:    "auth-provider",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	signed, err := badSubject.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(signed)
	assert.Error(t, err)
}
