package api

import (
	_ "github.com/Kamar-Folarin/portfolio-sync/docs"
)

// SummaryResponse carries the recent activity summary
// @Description Recent activity summary
// @swagger:model SummaryResponse
type SummaryResponse struct {
	// Summary text
	// @example Here's what I've been working on recently:
	Summary string `json:"summary" example:"Here's what I've been working on recently:"`
}

// RegenerateResponse is returned after a forced summary recompute
// @Description Result of a summary regeneration
// @swagger:model RegenerateResponse
type RegenerateResponse struct {
	Message string `json:"message" example:"Summary regenerated successfully"`
	Summary string `json:"summary"`
}

// MessageResponse is a plain acknowledgement
// @swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Sync triggered"`
}

// ErrorResponse represents an API error
// @Description Error response from the API
// @swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// @example Failed to process request
	Error string `json:"error" example:"Failed to process request"`
}

// ProbeResponse reports the AI backend reachability
// @Description Ollama probe result. StatusCode is set when the server answered, Error when it did not.
// @swagger:model ProbeResponse
type ProbeResponse struct {
	Status     string `json:"status" example:"healthy" enums:"healthy,unhealthy"`
	StatusCode int    `json:"statusCode,omitempty" example:"200"`
	Error      string `json:"error,omitempty"`
	OllamaURL  string `json:"ollamaUrl" example:"http://localhost:11434"`
}

// HealthResponse reports process health
// @swagger:model HealthResponse
type HealthResponse struct {
	Status string `json:"status" example:"ok" enums:"ok,degraded"`
	Error  string `json:"error,omitempty"`
}
