package syncer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kamar-Folarin/portfolio-sync/internal/models"
)

func TestStatusTracker(t *testing.T) {
	tracker := NewStatusTracker()
	assert.Equal(t, models.SyncStateIdle, tracker.Get().State)

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker.begin(start)
	assert.Equal(t, models.SyncStateFetching, tracker.Get().State)
	tracker.setState(models.SyncStateWriting)
	assert.Equal(t, models.SyncStateWriting, tracker.Get().State)

	tracker.finish(start.Add(time.Second), 4, nil)
	status := tracker.Get()
	assert.Equal(t, models.SyncStateIdle, status.State)
	assert.Equal(t, 4, status.RepositoryCount)
	assert.Equal(t, start.Add(time.Second), status.LastSuccessAt)
	assert.Equal(t, 1, status.CycleCount)

	tracker.begin(start.Add(time.Hour))
	tracker.finish(start.Add(time.Hour+time.Second), 0, errors.New("boom"))
	status = tracker.Get()
	assert.Equal(t, "boom", status.LastError)
	assert.Equal(t, 4, status.RepositoryCount)
	assert.Equal(t, start.Add(time.Second), status.LastSuccessAt)
	assert.Equal(t, 2, status.CycleCount)
}
