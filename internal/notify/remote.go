package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
)

// RemoteNotifier publishes by calling the API's notify endpoints. It lets a
// sync running in a separate process reach the API's subscribers.
type RemoteNotifier struct {
	baseURL string
	client  *http.Client
	logger  *logrus.Logger
}

// NewRemoteNotifier creates a notifier for the API at baseURL.
func NewRemoteNotifier(baseURL string, client *http.Client, logger *logrus.Logger) *RemoteNotifier {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RemoteNotifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// SummaryBody is the payload of the personal summary notify endpoint.
type SummaryBody struct {
	Summary string `json:"summary"`
}

type regenerateBody struct {
	Message string `json:"message"`
	Summary string `json:"summary"`
}

func (n *RemoteNotifier) Publish(ctx context.Context, event string, payload interface{}) {
	var path string
	var body interface{}
	switch event {
	case EventCommitDataUpdated:
		path, body = "/notify/commit-data-updated", payload
	case EventPersonalSummaryUpdated:
		path = "/notify/personal-summary-updated"
		summary, _ := payload.(string)
		body = SummaryBody{Summary: summary}
	default:
		n.logger.WithField("event", event).Warn("Unknown event, not forwarded")
		return
	}

	if _, err := n.post(ctx, path, body); err != nil {
		n.logger.WithError(err).WithField("event", event).Warn("Failed to forward event to API")
		return
	}
	n.logger.WithField("event", event).Info("Forwarded event to API")
}

// Regenerate asks the API to recompute the derived summary and returns the
// new text when the API reports it.
func (n *RemoteNotifier) Regenerate(ctx context.Context) (string, error) {
	data, err := n.post(ctx, "/regenerate-summary", nil)
	if err != nil {
		return "", err
	}
	var out regenerateBody
	_ = json.Unmarshal(data, &out)
	return out.Summary, nil
}

func (n *RemoteNotifier) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.NewNotificationError("failed to encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, reader)
	if err != nil {
		return nil, apperrors.NewNotificationError("failed to create request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, apperrors.NewNotificationError("request failed", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewNotificationError(
			fmt.Sprintf("POST %s returned status %d", path, resp.StatusCode),
			fmt.Errorf("%s", strings.TrimSpace(string(data))),
		)
	}
	return data, nil
}
