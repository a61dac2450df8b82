package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_URL", "postgres://localhost:5432/auth")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/auth", cfg.DBURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "auth-service", cfg.JWTIssuer)
	assert.Equal(t, 15, cfg.AccessExpiryMin)
	assert.Equal(t, 10080, cfg.RefreshExpiryMin)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, 15, cfg.LoginLockMinutes)
	assert.Equal(t, 60, cfg.TokenPurgeIntervalM)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ISSUER", "identity")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "5")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("LOGIN_LOCK_MINUTES", "30")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "identity", cfg.JWTIssuer)
	assert.Equal(t, 5, cfg.AccessExpiryMin)
	assert.Equal(t, 3, cfg.LoginMaxAttempts)
	assert.Equal(t, 30, cfg.LoginLockMinutes)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_EXPIRY", "not-a-number")

	cfg := Load()

	assert.Equal(t, 15, cfg.AccessExpiryMin)
}
