package github

import (
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/portfolio-sync/internal/config"
)

// NewClientFromConfig creates a client using the configured token, API URL
// and retry policy.
func NewClientFromConfig(cfg *config.GitHubConfig, logger *logrus.Logger, opts ...ClientOption) (*Client, error) {
	base := []ClientOption{
		WithRetryConfig(cfg.RateLimit.MaxRetries, cfg.RateLimit.InitialBackoff, cfg.RateLimit.MaxBackoff),
		WithRetryMultiplier(cfg.RateLimit.RetryMultiplier),
	}
	if cfg.APIBaseURL != "" {
		base = append(base, WithBaseURL(cfg.APIBaseURL))
	}
	return NewClient(cfg.Token, logger, append(base, opts...)...)
}
