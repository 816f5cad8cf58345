package syncer

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/portfolio-sync/internal/cache"
	"github.com/Kamar-Folarin/portfolio-sync/internal/config"
	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
	"github.com/Kamar-Folarin/portfolio-sync/internal/models"
	"github.com/Kamar-Folarin/portfolio-sync/internal/notify"
	"github.com/Kamar-Folarin/portfolio-sync/pkg/utils"
)

// Orchestrator runs sync cycles: it pulls the owner's repositories and recent
// commits from the source, replaces the cached snapshot, invalidates the
// derived summary and announces the change.
type Orchestrator struct {
	source    Source
	store     cache.Store
	publisher notify.Publisher
	refresher SummaryRefresher
	status    *StatusTracker
	logger    *logrus.Logger

	owner string
	cfg   *config.SyncConfig
	now   func() time.Time
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithSummaryRefresher regenerates the summary at the end of each cycle
// that produced data.
func WithSummaryRefresher(r SummaryRefresher) Option {
	return func(o *Orchestrator) {
		o.refresher = r
	}
}

// WithStatusTracker shares a status tracker with the caller.
func WithStatusTracker(t *StatusTracker) Option {
	return func(o *Orchestrator) {
		o.status = t
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// NewOrchestrator creates an orchestrator for owner's repositories.
func NewOrchestrator(source Source, store cache.Store, publisher notify.Publisher, owner string, cfg *config.SyncConfig, logger *logrus.Logger, opts ...Option) *Orchestrator {
	if cfg == nil {
		cfg = config.DefaultSyncConfig()
	}
	o := &Orchestrator{
		source:    source,
		store:     store,
		publisher: publisher,
		logger:    logger,
		owner:     owner,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.status == nil {
		o.status = NewStatusTracker()
	}
	return o
}

type fetchedRepo struct {
	repo    models.SourceRepository
	commits []models.SourceCommit
}

type syncedEntry struct {
	record   models.SyncedRepo
	messages []string
}

// RunCycle performs one full sync. Cancelling ctx stops the cycle between
// repositories and before anything is written; once writing starts it runs
// to completion.
func (o *Orchestrator) RunCycle(ctx context.Context) error {
	start := o.now()
	o.status.begin(start)

	count, err := o.runCycle(ctx, start)
	o.status.finish(o.now(), count, err)

	logger := o.logger.WithFields(logrus.Fields{
		"owner":    o.owner,
		"duration": o.now().Sub(start).String(),
	})
	if err != nil {
		logger.WithError(err).WithField("error_type", apperrors.TypeOf(err)).Error("Sync cycle failed")
		return err
	}
	logger.WithField("repositories", count).Info("Sync cycle completed")
	return nil
}

func (o *Orchestrator) runCycle(ctx context.Context, periodEnd time.Time) (int, error) {
	// I/O runs detached so an in-flight request or the final writes are
	// never cut off halfway; ctx is checked between steps instead.
	ioCtx := context.WithoutCancel(ctx)
	periodStart := periodEnd.Add(-o.cfg.Lookback())

	repos, err := o.source.ListRepositories(ioCtx, o.owner)
	if err != nil {
		return 0, apperrors.NewUpstreamFatalError("failed to list repositories", err)
	}

	fetched := make([]fetchedRepo, 0, len(repos))
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return 0, apperrors.NewInternalError("sync cycle cancelled", err)
		}

		logger := o.logger.WithField("repo", repo.Name)
		if repo.Name == "" {
			logger.Warn("Skipping repository without a name")
			continue
		}

		commits, err := o.source.ListCommitsSince(ioCtx, o.owner, repo.Name, periodStart)
		if err != nil {
			err = apperrors.NewUpstreamError("failed to fetch commits", err)
			logger.WithError(err).
				WithField("error_type", apperrors.TypeOf(err)).
				Warn("Failed to fetch commits, skipping repository")
			continue
		}
		if len(commits) == 0 {
			logger.Debug("No commits in window, skipping repository")
			continue
		}
		fetched = append(fetched, fetchedRepo{repo: repo, commits: commits})
	}

	if err := ctx.Err(); err != nil {
		return 0, apperrors.NewInternalError("sync cycle cancelled", err)
	}

	o.status.setState(models.SyncStateTransforming)
	entries := make([]syncedEntry, 0, len(fetched))
	for _, f := range fetched {
		entries = append(entries, syncedEntry{
			record: models.SyncedRepo{
				ID:             models.StableID(f.repo.Name),
				RepositoryName: f.repo.Name,
				RepositoryURL:  f.repo.URL,
				CommitCount:    len(f.commits),
				LastUpdated:    models.LatestAuthorDate(f.commits),
				PeriodStart:    periodStart,
				PeriodEnd:      periodEnd,
			},
			messages: displayMessages(f.commits, o.cfg.MessagesPerRepo),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].record.LastUpdated.After(entries[j].record.LastUpdated)
	})

	if len(entries) == 0 {
		o.logger.WithField("owner", o.owner).Info("No activity in sync window, cache left unchanged")
		return 0, nil
	}

	records := make([]models.SyncedRepo, len(entries))
	for i, e := range entries {
		records[i] = e.record
	}

	o.status.setState(models.SyncStateWriting)
	o.store.Set(ioCtx, cache.KeyRepos, records, o.cfg.TTL)
	for i := 0; i < len(entries) && i < o.cfg.TopRepos; i++ {
		o.store.Set(ioCtx, cache.ActivityKey(entries[i].record.RepositoryName), entries[i].messages, o.cfg.TTL)
	}
	o.store.Delete(ioCtx, cache.KeySummary)

	o.status.setState(models.SyncStateNotifying)
	o.publisher.Publish(ioCtx, notify.EventCommitDataUpdated, records)
	if o.refresher != nil {
		if _, err := o.refresher.Regenerate(ioCtx); err != nil {
			o.logger.WithError(err).Warn("Failed to regenerate summary after sync")
		}
	}

	return len(records), nil
}

// displayMessages returns up to limit first-line messages, newest first,
// with merge and pull request noise removed.
func displayMessages(commits []models.SourceCommit, limit int) []string {
	sorted := make([]models.SourceCommit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AuthorDate.After(sorted[j].AuthorDate)
	})

	lines := make([]string, 0, len(sorted))
	for _, c := range sorted {
		lines = append(lines, utils.FirstLine(c.Message))
	}
	return utils.FilterNoise(lines, limit)
}

// Repositories returns the cached snapshot, or an empty list when there is none.
func (o *Orchestrator) Repositories(ctx context.Context) []models.SyncedRepo {
	var repos []models.SyncedRepo
	if !o.store.Get(ctx, cache.KeyRepos, &repos) || repos == nil {
		return []models.SyncedRepo{}
	}
	return repos
}

// Status reports the orchestrator's current state.
func (o *Orchestrator) Status() models.SyncStatus {
	return o.status.Get()
}
