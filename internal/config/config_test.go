package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_OWNER", "ryanflores")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "", cfg.RedisURL)
	assert.Equal(t, 6*time.Hour, cfg.Summary.TTL)
	assert.Equal(t, DefaultGreeting, cfg.Summary.Greeting)
	assert.Equal(t, "ryanflores", cfg.GitHub.Owner)
	assert.Equal(t, 3, cfg.GitHub.RateLimit.MaxRetries)
	assert.Equal(t, 2.0, cfg.GitHub.RateLimit.RetryMultiplier)
	assert.Equal(t, time.Hour, cfg.Sync.Interval)
	assert.Equal(t, 5*time.Minute, cfg.Sync.RetryCooldown)
	assert.Equal(t, 90, cfg.Sync.LookbackDays)
	assert.Equal(t, 2*time.Hour, cfg.Sync.TTL)
	assert.True(t, cfg.Sync.Enabled)
	assert.Equal(t, []string{
		"http://localhost:4200",
		"http://localhost:30082",
		"http://localhost:3000",
		"http://localhost:8080",
	}, cfg.AllowedOrigins())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GITHUB_OWNER", "ryanflores")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SYNC_INTERVAL", "30m")
	t.Setenv("SYNC_LOOKBACK_DAYS", "30")
	t.Setenv("SYNC_ENABLED", "false")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("NOTIFY_API_URL", "http://api:8080/")
	t.Setenv("GITHUB_RETRY_MULTIPLIER", "1.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://ryanflores.dev", "https://www.ryanflores.dev"}, cfg.AllowedOrigins())
	assert.Equal(t, 30*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 30*24*time.Hour, cfg.Sync.Lookback())
	assert.False(t, cfg.Sync.Enabled)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, "http://api:8080", cfg.NotifyAPIURL)
	assert.Equal(t, 1.5, cfg.GitHub.RateLimit.RetryMultiplier)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing owner", map[string]string{"GITHUB_OWNER": ""}},
		{"zero interval", map[string]string{"GITHUB_OWNER": "x", "SYNC_INTERVAL": "0s"}},
		{"negative lookback", map[string]string{"GITHUB_OWNER": "x", "SYNC_LOOKBACK_DAYS": "-1"}},
		{"shrinking backoff", map[string]string{"GITHUB_OWNER": "x", "GITHUB_RETRY_MULTIPLIER": "0.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidInput(err))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
