package syncer

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
	"github.com/Kamar-Folarin/portfolio-sync/internal/models"
)

type scriptedCycle struct {
	calls  int32
	script func(call int32) error
}

func (c *scriptedCycle) RunCycle(ctx context.Context) error {
	n := atomic.AddInt32(&c.calls, 1)
	if c.script == nil {
		return nil
	}
	return c.script(n)
}

func (c *scriptedCycle) count() int32 {
	return atomic.LoadInt32(&c.calls)
}

func startScheduler(t *testing.T, s *Scheduler) (context.CancelFunc, <-chan error) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	require.Eventually(t, s.Running, time.Second, time.Millisecond)
	t.Cleanup(cancel)
	return cancel, done
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	return logger
}

func TestScheduler_RunsAtStartThenWaitsInterval(t *testing.T) {
	cycle := &scriptedCycle{}
	s := NewScheduler(cycle, time.Hour, time.Millisecond, quietLogger())
	cancel, done := startScheduler(t, s)

	require.Eventually(t, func() bool { return cycle.count() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), cycle.count())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.False(t, s.Running())
}

func TestScheduler_FailureWaitsCooldown(t *testing.T) {
	cycle := &scriptedCycle{script: func(n int32) error {
		if n == 1 {
			return errors.New("upstream down")
		}
		return nil
	}}
	s := NewScheduler(cycle, time.Hour, 10*time.Millisecond, quietLogger())
	startScheduler(t, s)

	require.Eventually(t, func() bool { return cycle.count() == 2 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), cycle.count())
}

func TestScheduler_SurvivesPanic(t *testing.T) {
	cycle := &scriptedCycle{script: func(n int32) error {
		if n == 1 {
			panic("nil map write")
		}
		return nil
	}}
	s := NewScheduler(cycle, time.Hour, 10*time.Millisecond, quietLogger())
	startScheduler(t, s)

	require.Eventually(t, func() bool { return cycle.count() == 2 }, time.Second, time.Millisecond)
	assert.True(t, s.Running())
}

func TestScheduler_Trigger(t *testing.T) {
	cycle := &scriptedCycle{}
	s := NewScheduler(cycle, time.Hour, time.Hour, quietLogger())

	err := s.Trigger()
	require.Error(t, err)
	assert.True(t, apperrors.IsSyncNotRunning(err))

	startScheduler(t, s)
	require.Eventually(t, func() bool { return cycle.count() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, s.Trigger())
	require.Eventually(t, func() bool { return cycle.count() == 2 }, time.Second, time.Millisecond)
}

func TestScheduler_RejectsSecondRun(t *testing.T) {
	s := NewScheduler(&scriptedCycle{}, time.Hour, time.Hour, quietLogger())
	startScheduler(t, s)

	err := s.Run(context.Background())
	require.Error(t, err)
}

func TestControl_TriggerWithoutScheduler(t *testing.T) {
	orch, _, _, _ := setupOrchestrator(t)
	control := NewControl(orch, nil)

	err := control.Trigger()
	require.Error(t, err)
	assert.True(t, apperrors.IsSyncNotRunning(err))
	assert.Equal(t, models.SyncStateIdle, control.Status().State)
}

func TestControl_TriggerBeforeSchedulerRuns(t *testing.T) {
	orch, _, _, _ := setupOrchestrator(t)
	control := NewControl(orch, NewScheduler(&scriptedCycle{}, time.Hour, time.Minute, quietLogger()))

	err := control.Trigger()
	require.Error(t, err)
	assert.True(t, apperrors.IsSyncNotRunning(err))
}
