package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

// StreamOptions tunes the real-time endpoint
type StreamOptions struct {
	Heartbeat time.Duration
}

// DefaultStreamOptions returns the default real-time endpoint settings
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{Heartbeat: 25 * time.Second}
}

// SetStreamOptions overrides the real-time endpoint settings
func (h *Handler) SetStreamOptions(opts StreamOptions) {
	h.streamOptions = opts
}

// Stream subscribes the client to hub events over server-sent events
// @Summary Real-time hub
// @Description Server-sent events stream of CommitDataUpdated and PersonalSummaryUpdated
// @Tags realtime
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /portfolioHub [get]
func (h *Handler) Stream(c *gin.Context) {
	events, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	h.logger.WithField("client", c.ClientIP()).Debug("Hub client connected")
	defer h.logger.WithField("client", c.ClientIP()).Debug("Hub client disconnected")

	heartbeat := time.NewTicker(h.streamOptions.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			c.Render(-1, sse.Event{
				Id:    evt.ID,
				Event: evt.Name,
				Data:  string(evt.Data),
			})
			c.Writer.Flush()
		case <-heartbeat.C:
			if _, err := c.Writer.WriteString(": ping\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}
