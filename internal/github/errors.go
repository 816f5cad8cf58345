package github

import (
	"errors"
	"fmt"
	"time"
)

// UpstreamError is returned when a GitHub call fails after retries.
type UpstreamError struct {
	Op          string
	StatusCode  int
	RateLimited bool
	ResetAt     time.Time
	Err         error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.RateLimited:
		return fmt.Sprintf("GitHub API rate limited during %s, resets at %v: %v", e.Op, e.ResetAt, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("GitHub API error during %s (status %d): %v", e.Op, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("GitHub API request failed during %s: %v", e.Op, e.Err)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ValidationError represents invalid input to GitHub client methods
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: invalid %s: %s", e.Field, e.Value)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, value string) error {
	return &ValidationError{
		Field: field,
		Value: value,
	}
}

// IsRateLimited reports whether err is an UpstreamError caused by a rate limit.
func IsRateLimited(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream) && upstream.RateLimited
}
