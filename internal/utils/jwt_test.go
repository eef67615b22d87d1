package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-app-server/internal/config"
	"messaging-app-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "test-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()
	user := &models.User{
		BaseModel: models.BaseModel{ID: "user-id-1"},
		Username:  "alice",
		Email:     "alice@example.com",
	}

	accessToken, refreshToken, err := GenerateTokens(user, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	claims, err := ValidateToken(accessToken, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-id-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user-id-1", claims.Subject)

	refreshClaims, err := ValidateToken(refreshToken, cfg.JWTRefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-id-1", refreshClaims.UserID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testConfig()
	user := &models.User{BaseModel: models.BaseModel{ID: "user-id-2"}, Username: "bob"}

	accessToken, _, err := GenerateTokens(user, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(accessToken, "some-other-secret")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", "test-secret")
	assert.Error(t, err)
}
