package syncer

import (
	"context"
	"time"

	"github.com/Kamar-Folarin/portfolio-sync/internal/models"
)

// Source is the upstream the orchestrator pulls from
type Source interface {
	// ListRepositories lists the owner's repositories in a single request
	ListRepositories(ctx context.Context, owner string) ([]models.SourceRepository, error)

	// ListCommitsSince returns the repository's commits authored since the given time
	ListCommitsSince(ctx context.Context, owner, repo string, since time.Time) ([]models.SourceCommit, error)
}

// SummaryRefresher recomputes the derived summary after new data lands
type SummaryRefresher interface {
	Regenerate(ctx context.Context) (string, error)
}

// Cycle is one unit of scheduled work
type Cycle interface {
	RunCycle(ctx context.Context) error
}
