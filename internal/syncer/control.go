package syncer

import (
	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
	"github.com/Kamar-Folarin/portfolio-sync/internal/models"
)

// Control exposes the orchestrator status and the scheduler trigger to the API.
// The scheduler may be nil when background sync is disabled.
type Control struct {
	orchestrator *Orchestrator
	scheduler    *Scheduler
}

// NewControl creates a Control over orchestrator and an optional scheduler
func NewControl(orchestrator *Orchestrator, scheduler *Scheduler) *Control {
	return &Control{orchestrator: orchestrator, scheduler: scheduler}
}

// Status reports the orchestrator's current state
func (c *Control) Status() models.SyncStatus {
	return c.orchestrator.Status()
}

// Trigger requests an immediate cycle. It fails with a SyncNotRunningError
// when there is no scheduler or it is not running.
func (c *Control) Trigger() error {
	if c.scheduler == nil {
		return apperrors.NewSyncNotRunningError("background sync is disabled")
	}
	return c.scheduler.Trigger()
}
