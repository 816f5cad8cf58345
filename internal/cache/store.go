package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// KeyRepos holds the []models.SyncedRepo snapshot from the last sync.
	KeyRepos = "synced:repos"
	// KeySummary holds the derived recent activity summary.
	KeySummary = "derived:summary"

	activityKeyPrefix = "synced:activity:"
)

// ActivityKey is the key for a repository's cached display messages.
func ActivityKey(repoName string) string {
	return activityKeyPrefix + repoName
}

// Store is a best-effort key/value store with per-key expiry. Values are
// JSON encoded. Implementations log backend failures and degrade to
// absent/no-op, so callers only ever deal with missing values.
type Store interface {
	// Get decodes the value at key into dest and reports whether it did.
	Get(ctx context.Context, key string, dest interface{}) bool
	// Set stores value under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	// Delete removes key. Missing keys are ignored.
	Delete(ctx context.Context, key string)
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Open returns a Redis-backed store for a non-empty connection string and an
// in-process store otherwise.
func Open(conn string, logger *logrus.Logger) (Store, error) {
	if conn == "" {
		logger.Warn("No cache connection configured, using in-memory store")
		return NewMemoryStore(logger), nil
	}
	return NewRedisStore(conn, logger)
}
