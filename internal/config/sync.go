package config

import "time"

// SyncConfig holds synchronization configuration
type SyncConfig struct {
	Enabled         bool
	Interval        time.Duration
	RetryCooldown   time.Duration
	LookbackDays    int
	TTL             time.Duration
	TopRepos        int
	MessagesPerRepo int
}

// Lookback returns the sync window length.
func (s *SyncConfig) Lookback() time.Duration {
	return time.Duration(s.LookbackDays) * 24 * time.Hour
}

// DefaultSyncConfig returns the default sync configuration
func DefaultSyncConfig() *SyncConfig {
	return &SyncConfig{
		Enabled:         true,
		Interval:        time.Hour,
		RetryCooldown:   5 * time.Minute,
		LookbackDays:    90,
		TTL:             2 * time.Hour,
		TopRepos:        3,
		MessagesPerRepo: 10,
	}
}
