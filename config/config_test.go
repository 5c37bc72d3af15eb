package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.True(t, cfg.DB.Seed)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, "123456", cfg.Auth.PhoneVerificationCode)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 250, cfg.Rewards.LevelStep)
	assert.Equal(t, []string{"*"}, cfg.App.CORSOrigins)
}

func TestLoadConfig_EnvFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	envFile := "APP_PORT=9090\nDB_DRIVER=postgres\nJWT_ACCESS_EXPIRY=not-a-duration\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envFile), 0o600))
	t.Setenv("AUTH_PHONE_VERIFICATION_CODE", "654321")
	t.Setenv("POINTS_LEVEL_STEP", "0")
	t.Setenv("AUTH_BCRYPT_COST", "99")
	t.Setenv("APP_CORS_ORIGINS", "https://portal.example.com, ,http://localhost:3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, "654321", cfg.Auth.PhoneVerificationCode)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 250, cfg.Rewards.LevelStep)
	assert.Equal(t, []string{"https://portal.example.com", "http://localhost:3000"}, cfg.App.CORSOrigins)
}
