package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret-key-for-signing")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Minute, cfg.RoleCacheTTL)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.UseRedis())
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("SECRET_KEY", "custom-secret-key-value")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ROLE_CACHE_TTL", "30s")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("BASE_URL", "https://blog.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "custom-secret-key-value", cfg.SecretKey)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.True(t, cfg.UseRedis())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.RoleCacheTTL)
	assert.Equal(t, "smtp.example.com", cfg.SMTP().Host)
	assert.Equal(t, "https://blog.example.com", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_SecretKey(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		set    bool
	}{
		{"missing", "", false},
		{"empty", "", true},
		{"too short", "short", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("SECRET_KEY", tt.secret)
			} else {
				// 先 Setenv 登记恢复，再删掉变量
				t.Setenv("SECRET_KEY", "")
				require.NoError(t, os.Unsetenv("SECRET_KEY"))
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
