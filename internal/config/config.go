package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultGreeting = "Hi, I'm Ryan! I'm currently working on some exciting projects. Check back soon for updates!"
)

type Config struct {
	Port         string
	Env          string
	LogLevel     string
	LogFormat    string
	RedisURL     string
	NotifyAPIURL string
	OllamaURL    string
	Summary      SummaryConfig
	CORS         CORSConfig
	GitHub       *GitHubConfig
	Sync         *SyncConfig
}

// SummaryConfig holds derived summary settings
type SummaryConfig struct {
	TTL      time.Duration
	Greeting string
}

// CORSConfig holds the allowed origins per environment
type CORSConfig struct {
	DevOrigins  []string
	ProdOrigins []string
}

// AllowedOrigins returns the origin set for the configured environment.
func (c *Config) AllowedOrigins() []string {
	if c.IsProduction() {
		return c.CORS.ProdOrigins
	}
	return c.CORS.DevOrigins
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("NOTIFY_API_URL", "http://localhost:8080")
	v.SetDefault("OLLAMA_URL", "http://localhost:11434")
	v.SetDefault("SUMMARY_TTL", "6h")
	v.SetDefault("SUMMARY_GREETING", DefaultGreeting)
	v.SetDefault("CORS_DEV_ORIGINS", "http://localhost:4200,http://localhost:30082,http://localhost:3000,http://localhost:8080")
	v.SetDefault("CORS_PROD_ORIGINS", "https://ryanflores.dev,https://www.ryanflores.dev")

	github := DefaultGitHubConfig()
	v.SetDefault("GITHUB_API_URL", github.APIBaseURL)
	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("GITHUB_OWNER", "")
	v.SetDefault("GITHUB_MAX_RETRIES", github.RateLimit.MaxRetries)
	v.SetDefault("GITHUB_INITIAL_BACKOFF", github.RateLimit.InitialBackoff)
	v.SetDefault("GITHUB_MAX_BACKOFF", github.RateLimit.MaxBackoff)
	v.SetDefault("GITHUB_RETRY_MULTIPLIER", github.RateLimit.RetryMultiplier)

	sync := DefaultSyncConfig()
	v.SetDefault("SYNC_ENABLED", sync.Enabled)
	v.SetDefault("SYNC_INTERVAL", sync.Interval)
	v.SetDefault("SYNC_RETRY_COOLDOWN", sync.RetryCooldown)
	v.SetDefault("SYNC_LOOKBACK_DAYS", sync.LookbackDays)
	v.SetDefault("SYNC_TTL", sync.TTL)
	v.SetDefault("SYNC_TOP_REPOS", sync.TopRepos)
	v.SetDefault("SYNC_MESSAGES_PER_REPO", sync.MessagesPerRepo)
}

// Load resolves configuration from defaults and the environment.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	github := DefaultGitHubConfig()
	github.Token = v.GetString("GITHUB_TOKEN")
	github.Owner = v.GetString("GITHUB_OWNER")
	github.APIBaseURL = v.GetString("GITHUB_API_URL")
	github.RateLimit.MaxRetries = v.GetInt("GITHUB_MAX_RETRIES")
	github.RateLimit.InitialBackoff = v.GetDuration("GITHUB_INITIAL_BACKOFF")
	github.RateLimit.MaxBackoff = v.GetDuration("GITHUB_MAX_BACKOFF")
	github.RateLimit.RetryMultiplier = v.GetFloat64("GITHUB_RETRY_MULTIPLIER")

	sync := DefaultSyncConfig()
	sync.Enabled = v.GetBool("SYNC_ENABLED")
	sync.Interval = v.GetDuration("SYNC_INTERVAL")
	sync.RetryCooldown = v.GetDuration("SYNC_RETRY_COOLDOWN")
	sync.LookbackDays = v.GetInt("SYNC_LOOKBACK_DAYS")
	sync.TTL = v.GetDuration("SYNC_TTL")
	sync.TopRepos = v.GetInt("SYNC_TOP_REPOS")
	sync.MessagesPerRepo = v.GetInt("SYNC_MESSAGES_PER_REPO")

	cfg := &Config{
		Port:         v.GetString("PORT"),
		Env:          v.GetString("APP_ENV"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		LogFormat:    v.GetString("LOG_FORMAT"),
		RedisURL:     v.GetString("REDIS_URL"),
		NotifyAPIURL: strings.TrimRight(v.GetString("NOTIFY_API_URL"), "/"),
		OllamaURL:    strings.TrimRight(v.GetString("OLLAMA_URL"), "/"),
		Summary: SummaryConfig{
			TTL:      v.GetDuration("SUMMARY_TTL"),
			Greeting: v.GetString("SUMMARY_GREETING"),
		},
		CORS: CORSConfig{
			DevOrigins:  splitList(v.GetString("CORS_DEV_ORIGINS")),
			ProdOrigins: splitList(v.GetString("CORS_PROD_ORIGINS")),
		},
		GitHub: github,
		Sync:   sync,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings every binary depends on.
func (c *Config) Validate() error {
	if c.GitHub.Owner == "" {
		return apperrors.NewValidationError("GITHUB_OWNER is a required configuration field", nil)
	}
	durations := map[string]time.Duration{
		"SUMMARY_TTL":         c.Summary.TTL,
		"SYNC_INTERVAL":       c.Sync.Interval,
		"SYNC_RETRY_COOLDOWN": c.Sync.RetryCooldown,
		"SYNC_TTL":            c.Sync.TTL,
	}
	for key, d := range durations {
		if d <= 0 {
			return apperrors.NewValidationError(fmt.Sprintf("%s must be a positive duration", key), nil)
		}
	}
	if c.GitHub.RateLimit.RetryMultiplier < 1 {
		return apperrors.NewValidationError("GITHUB_RETRY_MULTIPLIER must be at least 1", nil)
	}
	if c.Sync.LookbackDays <= 0 {
		return apperrors.NewValidationError("SYNC_LOOKBACK_DAYS must be positive", nil)
	}
	if c.Sync.TopRepos <= 0 || c.Sync.MessagesPerRepo <= 0 {
		return apperrors.NewValidationError("SYNC_TOP_REPOS and SYNC_MESSAGES_PER_REPO must be positive", nil)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
