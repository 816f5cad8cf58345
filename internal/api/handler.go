package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
	"github.com/Kamar-Folarin/portfolio-sync/internal/models"
	"github.com/Kamar-Folarin/portfolio-sync/internal/notify"
)

// SummaryService reads and regenerates the derived summary
type SummaryService interface {
	Get(ctx context.Context) string
	// Peek resolves the summary like Get but never announces it
	Peek(ctx context.Context) string
	Regenerate(ctx context.Context) (string, error)
}

// RepoReader reads the synced repository snapshot
type RepoReader interface {
	Repositories(ctx context.Context) []models.SyncedRepo
}

// SyncController reports on and triggers sync cycles
type SyncController interface {
	Status() models.SyncStatus
	Trigger() error
}

// Broadcaster fans events out to real-time subscribers
type Broadcaster interface {
	notify.Publisher
	Subscribe() (<-chan notify.Event, func())
}

// Pinger checks a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober checks the optional AI backend
type Prober interface {
	Probe(ctx context.Context) ProbeResponse
}

type Handler struct {
	summary SummaryService
	repos   RepoReader
	sync    SyncController
	hub     Broadcaster
	store   Pinger
	prober  Prober
	logger  *logrus.Logger

	streamOptions StreamOptions
}

func NewHandler(
	summary SummaryService,
	repos RepoReader,
	sync SyncController,
	hub Broadcaster,
	store Pinger,
	prober Prober,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		summary:       summary,
		repos:         repos,
		sync:          sync,
		hub:           hub,
		store:         store,
		prober:        prober,
		logger:        logger,
		streamOptions: DefaultStreamOptions(),
	}
}

// ListRepositories returns the synced repositories
// @Summary List synced repositories
// @Description Returns the repositories from the latest successful sync, newest activity first. Empty when nothing is cached.
// @Tags portfolio
// @Produce json
// @Success 200 {array} models.SyncedRepo
// @Router / [get]
func (h *Handler) ListRepositories(c *gin.Context) {
	c.JSON(http.StatusOK, h.repos.Repositories(c.Request.Context()))
}

// GetPersonalSummary returns the derived summary
// @Summary Get recent activity summary
// @Description Returns the cached summary, computing it on a miss. Falls back to a greeting.
// @Tags portfolio
// @Produce json
// @Success 200 {object} SummaryResponse
// @Router /personal-summary [get]
func (h *Handler) GetPersonalSummary(c *gin.Context) {
	c.JSON(http.StatusOK, SummaryResponse{Summary: h.summary.Get(c.Request.Context())})
}

// RegenerateSummary forces a recompute of the summary
// @Summary Regenerate summary
// @Description Drops the cached summary, recomputes it and broadcasts PersonalSummaryUpdated
// @Tags portfolio
// @Produce json
// @Success 200 {object} RegenerateResponse
// @Failure 500 {object} ErrorResponse
// @Router /regenerate-summary [post]
func (h *Handler) RegenerateSummary(c *gin.Context) {
	summary, err := h.summary.Regenerate(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to regenerate summary")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error regenerating summary: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, RegenerateResponse{
		Message: "Summary regenerated successfully",
		Summary: summary,
	})
}

// NotifyCommitDataUpdated rebroadcasts a sync result
// @Summary Broadcast commit data
// @Description Broadcasts CommitDataUpdated to connected clients. Uses the posted list, or the cached one when the body is empty.
// @Tags notify
// @Accept json
// @Produce json
// @Param repos body []models.SyncedRepo false "Synced repositories"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /notify/commit-data-updated [post]
func (h *Handler) NotifyCommitDataUpdated(c *gin.Context) {
	ctx := c.Request.Context()

	var repos []models.SyncedRepo
	present, err := decodeOptionalBody(c, &repos)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if !present || repos == nil {
		repos = h.repos.Repositories(ctx)
	}

	h.hub.Publish(ctx, notify.EventCommitDataUpdated, repos)
	h.logger.WithField("repositories", len(repos)).Info("Broadcast commit data update")
	c.JSON(http.StatusOK, MessageResponse{Message: "Commit data update broadcast"})
}

// NotifyPersonalSummaryUpdated rebroadcasts a summary
// @Summary Broadcast summary
// @Description Broadcasts PersonalSummaryUpdated to connected clients. Uses the posted summary, or the current one when absent.
// @Tags notify
// @Accept json
// @Produce json
// @Param body body SummaryResponse false "Summary"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /notify/personal-summary-updated [post]
func (h *Handler) NotifyPersonalSummaryUpdated(c *gin.Context) {
	ctx := c.Request.Context()

	var body SummaryResponse
	present, err := decodeOptionalBody(c, &body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	summary := body.Summary
	if !present || strings.TrimSpace(summary) == "" {
		summary = h.summary.Peek(ctx)
	}

	h.hub.Publish(ctx, notify.EventPersonalSummaryUpdated, summary)
	h.logger.Info("Broadcast personal summary update")
	c.JSON(http.StatusOK, MessageResponse{Message: "Personal summary update broadcast"})
}

// OllamaHealth probes the optional AI backend
// @Summary Probe AI backend
// @Description Always 200; the body reports whether the backend answered
// @Tags health
// @Produce json
// @Success 200 {object} ProbeResponse
// @Router /health/ollama [get]
func (h *Handler) OllamaHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.prober.Probe(c.Request.Context()))
}

// Health reports process and cache health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// GetSyncStatus reports the sync orchestrator state
// @Summary Get sync status
// @Tags sync
// @Produce json
// @Success 200 {object} models.SyncStatus
// @Failure 503 {object} ErrorResponse
// @Router /sync [get]
func (h *Handler) GetSyncStatus(c *gin.Context) {
	if h.sync == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "sync is not enabled in this process"})
		return
	}
	c.JSON(http.StatusOK, h.sync.Status())
}

// TriggerSync asks the scheduler for an immediate cycle
// @Summary Trigger sync
// @Tags sync
// @Produce json
// @Success 202 {object} MessageResponse
// @Failure 503 {object} ErrorResponse
// @Router /sync [post]
func (h *Handler) TriggerSync(c *gin.Context) {
	if h.sync == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "sync is not enabled in this process"})
		return
	}
	if err := h.sync.Trigger(); err != nil {
		status := http.StatusInternalServerError
		if apperrors.IsSyncNotRunning(err) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, MessageResponse{Message: "Sync triggered"})
}

// decodeOptionalBody decodes a JSON body into dest and reports whether
// there was one.
func decodeOptionalBody(c *gin.Context, dest interface{}) (bool, error) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, 4<<20))
	if err != nil {
		return false, apperrors.NewValidationError("failed to read request body", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, apperrors.NewValidationError("invalid request body", err)
	}
	return true, nil
}
