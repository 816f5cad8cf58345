package notify

import (
	"context"
	"encoding/json"
)

// Event names broadcast to real-time subscribers.
const (
	EventCommitDataUpdated      = "CommitDataUpdated"
	EventPersonalSummaryUpdated = "PersonalSummaryUpdated"
)

// Publisher delivers a named event to whoever is listening. Delivery is
// best-effort: failures are logged by the implementation, never returned.
type Publisher interface {
	Publish(ctx context.Context, event string, payload interface{})
}

// Event is a single encoded notification.
type Event struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}
