package api

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/portfolio-sync/internal/notify"
)

// readUntil reads lines from the stream until one has the given prefix.
func readUntil(t *testing.T, lines <-chan string, prefix string) string {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatalf("stream closed before %q", prefix)
			}
			if strings.HasPrefix(line, prefix) {
				return line
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", prefix)
			return ""
		}
	}
}

func openStream(t *testing.T, server *httptest.Server) (<-chan string, *http.Response) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/portfolioHub", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines, resp
}

func TestStream_DeliversEvents(t *testing.T) {
	h, deps := setupTestHandler()
	server := httptest.NewServer(setupTestRouter(h))
	defer server.Close()

	lines, resp := openStream(t, server)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return deps.hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	deps.hub.Publish(context.Background(), notify.EventCommitDataUpdated, sampleRepos())
	readUntil(t, lines, "event:"+notify.EventCommitDataUpdated)
	data := readUntil(t, lines, "data:")
	assert.Contains(t, data, `"repositoryName":"RepoA"`)

	deps.hub.Publish(context.Background(), notify.EventPersonalSummaryUpdated, "hello")
	readUntil(t, lines, "event:"+notify.EventPersonalSummaryUpdated)
	assert.Equal(t, `data:"hello"`, readUntil(t, lines, "data:"))
}

func TestStream_Heartbeat(t *testing.T) {
	h, _ := setupTestHandler()
	h.SetStreamOptions(StreamOptions{Heartbeat: 20 * time.Millisecond})
	server := httptest.NewServer(setupTestRouter(h))
	defer server.Close()

	lines, _ := openStream(t, server)

	readUntil(t, lines, ": ping")
}

func TestStream_UnsubscribesOnDisconnect(t *testing.T) {
	h, deps := setupTestHandler()
	server := httptest.NewServer(setupTestRouter(h))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/portfolioHub", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return deps.hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	cancel()
	assert.Eventually(t, func() bool { return deps.hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStream_HubClosed(t *testing.T) {
	h, deps := setupTestHandler()
	server := httptest.NewServer(setupTestRouter(h))
	defer server.Close()

	lines, _ := openStream(t, server)
	require.Eventually(t, func() bool { return deps.hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	deps.hub.Close()

	select {
	case _, ok := <-lines:
		for ok {
			_, ok = <-lines
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed after hub shutdown")
	}
}
