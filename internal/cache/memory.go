package cache

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store. Expired entries are dropped on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	logger  *logrus.Logger
}

// NewMemoryStore creates an empty in-process store. A nil logger discards
// failure logs.
func NewMemoryStore(logger *logrus.Logger) *MemoryStore {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		logger:  logger,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest interface{}) bool {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return false
	}

	return json.Unmarshal(entry.data, dest) == nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to encode cache value")
		return
	}
	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
