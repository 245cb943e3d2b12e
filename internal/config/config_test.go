package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "order.exchange", cfg.RabbitMQ.Exchange)
	assert.Equal(t, "gemini-1.5-flash-latest", cfg.Gemini.Model)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 2000, cfg.Gemini.MaxOutputTokens)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("REDIS_ADDR", "cache:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "key", cfg.Gemini.APIKey)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestLoad_FileLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"7070\"\nmysql:\n  database: shop_test\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "shop_test", cfg.MySQL.Database)
}

func TestLoad_JWTExpiresInDays(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	tests := []struct {
		value string
		want  time.Duration
	}{
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"3600", time.Hour},
		{"90m", 90 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("JWT_EXPIRES_IN", tt.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Auth.TokenTTL)
		})
	}
}

func TestLoad_DaysInConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  token_ttl: 2d\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("JWT_EXPIRES_IN", "xd")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_TrustedProxiesAndTokens(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")
	t.Setenv("GEMINI_MAX_OUTPUT_TOKENS", "512")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.Server.TrustedProxies)
	assert.Equal(t, 512, cfg.Gemini.MaxOutputTokens)
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("30d")
	require.NoError(t, err)
	assert.Equal(t, 720*time.Hour, d)

	_, err = ParseDuration("1.5d")
	assert.Error(t, err)
	_, err = ParseDuration("soon")
	assert.Error(t, err)
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Environment = "production"
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "set"
	assert.NoError(t, cfg.Validate())
}
