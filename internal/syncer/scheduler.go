package syncer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
)

// Scheduler runs a Cycle once at start and then every interval. A failed or
// panicking cycle is logged and the next attempt waits the cooldown instead.
// Cycles never overlap.
type Scheduler struct {
	cycle    Cycle
	interval time.Duration
	cooldown time.Duration
	logger   *logrus.Logger

	trigger chan struct{}
	running atomic.Bool
}

// NewScheduler creates a scheduler for cycle
func NewScheduler(cycle Cycle, interval, cooldown time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cycle:    cycle,
		interval: interval,
		cooldown: cooldown,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
	}
}

// Run blocks until ctx is cancelled. It returns nil on cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return apperrors.NewInternalError("scheduler already running", nil)
	}
	defer s.running.Store(false)

	s.logger.WithFields(logrus.Fields{
		"interval": s.interval.String(),
		"cooldown": s.cooldown.String(),
	}).Info("Starting sync scheduler")

	for {
		if ctx.Err() != nil {
			break
		}

		delay := s.interval
		if err := s.runOnce(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			delay = s.cooldown
			s.logger.WithError(err).WithField("retry_in", delay.String()).Warn("Sync cycle failed, cooling down")
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-s.trigger:
			timer.Stop()
			s.logger.Info("Sync triggered on demand")
		case <-timer.C:
		}
	}

	s.logger.WithField("reason", ctx.Err()).Info("Sync scheduler stopped")
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewInternalError("sync cycle panicked", fmt.Errorf("%v", r))
		}
	}()
	return s.cycle.RunCycle(ctx)
}

// Trigger requests an immediate cycle. Requests made while a cycle is
// running are coalesced into one follow-up cycle.
func (s *Scheduler) Trigger() error {
	if !s.running.Load() {
		return apperrors.NewSyncNotRunningError("scheduler is not running")
	}
	select {
	case s.trigger <- struct{}{}:
	default:
	}
	return nil
}

// Running reports whether Run is active.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}
