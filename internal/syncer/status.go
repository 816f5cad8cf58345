package syncer

import (
	"sync"
	"time"

	"github.com/Kamar-Folarin/portfolio-sync/internal/models"
)

// StatusTracker holds the orchestrator's state for status reporting.
type StatusTracker struct {
	mu     sync.RWMutex
	status models.SyncStatus
}

// NewStatusTracker creates a tracker in the idle state
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{
		status: models.SyncStatus{State: models.SyncStateIdle},
	}
}

// Get returns a copy of the current status
func (t *StatusTracker) Get() models.SyncStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *StatusTracker) begin(at time.Time) {
	t.mu.Lock()
	t.status.State = models.SyncStateFetching
	t.status.LastStartedAt = at
	t.mu.Unlock()
}

func (t *StatusTracker) setState(state models.SyncState) {
	t.mu.Lock()
	t.status.State = state
	t.mu.Unlock()
}

func (t *StatusTracker) finish(at time.Time, repoCount int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.State = models.SyncStateIdle
	t.status.LastFinishedAt = at
	t.status.CycleCount++
	if err != nil {
		t.status.LastError = err.Error()
		return
	}
	t.status.LastError = ""
	t.status.LastSuccessAt = at
	t.status.RepositoryCount = repoCount
}
