package jwt

import (
	"testing"
	"time"

	"trial-bridge/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	identity := Identity{UserID: uuid.New(), Email: "sarah.johnson@example.com", Username: "dr.johnson", Phone: "5551234567", RoleID: 1}

	access, accessID, err := svc.GenerateAccessToken(identity)
	require.NoError(t, err)
	refresh, refreshID, err := svc.GenerateRefreshToken(identity)
	require.NoError(t, err)
	assert.NotEqual(t, accessID, refreshID)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, accessID, claims.TokenID)
	assert.Equal(t, identity, claims.Identity())

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: -time.Minute})
	other := NewJWTService(config.JWTConfig{Secret: "other-secret", AccessExpiry: time.Minute})

	expired, _, err := svc.GenerateAccessToken(Identity{UserID: uuid.New()})
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)

	foreign, _, err := other.GenerateAccessToken(Identity{UserID: uuid.New()})
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
