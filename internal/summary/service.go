package summary

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/portfolio-sync/internal/cache"
	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
	"github.com/Kamar-Folarin/portfolio-sync/internal/models"
	"github.com/Kamar-Folarin/portfolio-sync/internal/notify"
)

// Service owns the cached summary. It recomputes on a miss and announces
// every fresh value.
type Service struct {
	store     cache.Store
	composer  Composer
	publisher notify.Publisher
	ttl       time.Duration
	greeting  string
	logger    *logrus.Logger
}

// NewService creates a summary service.
func NewService(store cache.Store, composer Composer, publisher notify.Publisher, ttl time.Duration, greeting string, logger *logrus.Logger) *Service {
	return &Service{
		store:     store,
		composer:  composer,
		publisher: publisher,
		ttl:       ttl,
		greeting:  greeting,
		logger:    logger,
	}
}

// Get returns the cached summary, computing it on a miss. A freshly cached
// summary is announced. It never fails: compute errors fall back to the greeting.
func (s *Service) Get(ctx context.Context) string {
	summary, fresh := s.resolve(ctx)
	if fresh {
		s.publisher.Publish(ctx, notify.EventPersonalSummaryUpdated, summary)
	}
	return summary
}

// Peek is Get without the announcement, for callers that broadcast the
// result themselves.
func (s *Service) Peek(ctx context.Context) string {
	summary, _ := s.resolve(ctx)
	return summary
}

// resolve returns the cached summary or computes and caches one. fresh
// reports whether a new value was written to the cache.
func (s *Service) resolve(ctx context.Context) (summary string, fresh bool) {
	if cached, ok := s.Current(ctx); ok {
		return cached, false
	}

	summary, hasData, err := s.compute(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to compute summary, using greeting")
		return s.greeting, false
	}
	if hasData {
		s.store.Set(ctx, cache.KeySummary, summary, s.ttl)
	}
	return summary, hasData
}

// Regenerate drops the cached summary, computes a new one and announces it.
func (s *Service) Regenerate(ctx context.Context) (string, error) {
	s.store.Delete(ctx, cache.KeySummary)

	summary, hasData, err := s.compute(ctx)
	if err != nil {
		return "", err
	}
	if hasData {
		s.store.Set(ctx, cache.KeySummary, summary, s.ttl)
	}
	s.publisher.Publish(ctx, notify.EventPersonalSummaryUpdated, summary)

	s.logger.WithField("from_cache_data", hasData).Info("Summary regenerated")
	return summary, nil
}

// Current returns the cached summary without computing one.
func (s *Service) Current(ctx context.Context) (string, bool) {
	var cached string
	ok := s.store.Get(ctx, cache.KeySummary, &cached)
	return cached, ok
}

// compute builds the summary from the cached repositories. hasData is false
// when there is no snapshot, in which case the greeting is returned and must
// not be cached so the first sync shows up straight away.
func (s *Service) compute(ctx context.Context) (summary string, hasData bool, err error) {
	var repos []models.SyncedRepo
	if !s.store.Get(ctx, cache.KeyRepos, &repos) || len(repos) == 0 {
		return s.greeting, false, nil
	}

	summary, err = s.composer.Compose(ctx, repos)
	if err != nil {
		return "", true, apperrors.NewDerivedComputeError("failed to compose summary", err)
	}
	return summary, true, nil
}
