package summary

import (
	"context"
	"sort"
	"strings"

	"github.com/Kamar-Folarin/portfolio-sync/internal/cache"
	"github.com/Kamar-Folarin/portfolio-sync/internal/models"
	"github.com/Kamar-Folarin/portfolio-sync/pkg/utils"
)

const (
	header            = "Here's what I've been working on recently:"
	bullet            = "• "
	defaultTopRepos   = 3
	defaultPerRepoMax = 3
)

// Composer turns the synced repositories into summary text. Implementations
// may return the greeting when there is nothing worth saying.
type Composer interface {
	Compose(ctx context.Context, repos []models.SyncedRepo) (string, error)
}

// RecentActivityComposer lists the latest messages of the most recently
// active repositories, as cached by the sync.
type RecentActivityComposer struct {
	store    cache.Store
	greeting string

	topRepos   int
	perRepoMax int
}

// NewRecentActivityComposer creates a composer reading messages from store.
func NewRecentActivityComposer(store cache.Store, greeting string) *RecentActivityComposer {
	return &RecentActivityComposer{
		store:      store,
		greeting:   greeting,
		topRepos:   defaultTopRepos,
		perRepoMax: defaultPerRepoMax,
	}
}

func (c *RecentActivityComposer) Compose(ctx context.Context, repos []models.SyncedRepo) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(repos) == 0 {
		return c.greeting, nil
	}

	top := make([]models.SyncedRepo, len(repos))
	copy(top, repos)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].LastUpdated.After(top[j].LastUpdated)
	})
	if len(top) > c.topRepos {
		top = top[:c.topRepos]
	}

	var lines []string
	for _, repo := range top {
		var messages []string
		if !c.store.Get(ctx, cache.ActivityKey(repo.RepositoryName), &messages) {
			continue
		}
		messages = utils.FilterNoise(messages, c.perRepoMax)
		if len(messages) == 0 {
			continue
		}

		lines = append(lines, repo.RepositoryName+":")
		for _, m := range messages {
			lines = append(lines, bullet+m)
		}
		lines = append(lines, "")
	}

	if len(lines) == 0 {
		return c.greeting, nil
	}

	text := header + "\n\n" + strings.Join(lines, "\n")
	return strings.TrimRight(text, " \t\r\n"), nil
}
