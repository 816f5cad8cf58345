package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
)

// RedisStore is a Store on top of a single Redis node.
type RedisStore struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRedisStore connects lazily to the Redis described by conn.
func NewRedisStore(conn string, logger *logrus.Logger) (*RedisStore, error) {
	opts, err := ParseConnectionString(conn)
	if err != nil {
		return nil, err
	}
	return &RedisStore{
		client: redis.NewClient(opts),
		logger: logger,
	}, nil
}

// ParseConnectionString accepts a redis:// or rediss:// URL, or the
// "host:port[,password=...][,ssl=true][,defaultDatabase=N]" form.
func ParseConnectionString(conn string) (*redis.Options, error) {
	conn = strings.TrimSpace(conn)
	if conn == "" {
		return nil, apperrors.NewValidationError("empty redis connection string", nil)
	}
	if strings.HasPrefix(conn, "redis://") || strings.HasPrefix(conn, "rediss://") {
		opts, err := redis.ParseURL(conn)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid redis URL", err)
		}
		return opts, nil
	}

	parts := strings.Split(conn, ",")
	opts := &redis.Options{Addr: strings.TrimSpace(parts[0])}
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "password":
			opts.Password = value
		case "user", "username":
			opts.Username = value
		case "defaultdatabase":
			db, err := strconv.Atoi(value)
			if err != nil {
				return nil, apperrors.NewValidationError("invalid defaultDatabase in redis connection string", err)
			}
			opts.DB = db
		case "ssl":
			if strings.EqualFold(value, "true") {
				opts.TLSConfig = tlsConfig(opts.Addr)
			}
		}
	}
	return opts, nil
}

func (s *RedisStore) Get(ctx context.Context, key string, dest interface{}) bool {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache get failed")
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache value could not be decoded")
		return false
	}
	return true
}

func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache value could not be encoded")
		return
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache set failed")
	}
}

func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache delete failed")
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return apperrors.NewCacheUnavailableError("redis ping failed", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
