package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manara-transit/backend/internal/config"
)

func newTestManager(t *testing.T, accessTTL time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(config.JWTConfig{SigningKey: "secret", AccessTokenTTL: accessTTL, RefreshTokenTTL: time.Hour})
	require.NoError(t, err)
	return m
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager(config.JWTConfig{AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "k", RefreshTokenTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "k", AccessTokenTTL: time.Minute})
	assert.Error(t, err)
}

func TestManager_NewJWTAndParse(t *testing.T) {
	m := newTestManager(t, 15*time.Minute)
	id := uuid.New()

	token, ttl, err := m.NewJWT(Subject{UserID: id, Email: "alice@example.com", IsVerified: true})
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, ttl)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.True(t, claims.IsVerified)
}

func TestManager_Parse_Expired(t *testing.T) {
	m := newTestManager(t, 15*time.Minute)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrAccessTokenExpired)
}

func TestManager_Parse_WrongKey(t *testing.T) {
	m := newTestManager(t, 15*time.Minute)
	other, err := NewManager(config.JWTConfig{SigningKey: "other", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	require.NoError(t, err)

	token, _, err := other.NewJWT(Subject{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestManager_RefreshToken(t *testing.T) {
	m := newTestManager(t, time.Minute)

	token, ttl, err := m.NewRefreshToken()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	parsed, err := m.ValidateRefreshToken(token.String())
	require.NoError(t, err)
	assert.Equal(t, token, *parsed)

	_, err = m.ValidateRefreshToken("not-a-uuid")
	assert.Error(t, err)
}
