package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SyncState is a step of the sync cycle state machine.
type SyncState string

const (
	SyncStateIdle         SyncState = "idle"
	SyncStateFetching     SyncState = "fetching"
	SyncStateTransforming SyncState = "transforming"
	SyncStateWriting      SyncState = "writing"
	SyncStateNotifying    SyncState = "notifying"
)

// SyncStatus tracks the orchestrator's progress across cycles
type SyncStatus struct {
	State           SyncState `json:"state"`
	LastStartedAt   time.Time `json:"last_started_at,omitempty"`
	LastFinishedAt  time.Time `json:"last_finished_at,omitempty"`
	LastSuccessAt   time.Time `json:"last_success_at,omitempty"`
	LastError       string    `json:"last_error,omitempty"`
	RepositoryCount int       `json:"repository_count"`
	CycleCount      int       `json:"cycle_count"`
}

// String returns the JSON string representation of the sync status
func (s *SyncStatus) String() string {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal sync status: %v"}`, err)
	}
	return string(data)
}
