package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrUpstream           ErrorType = "UPSTREAM"
	ErrUpstreamFatal      ErrorType = "UPSTREAM_FATAL"
	ErrCacheUnavailable   ErrorType = "CACHE_UNAVAILABLE"
	ErrNotificationFailed ErrorType = "NOTIFICATION_FAILED"
	ErrDerivedCompute     ErrorType = "DERIVED_COMPUTE"
	ErrInvalidInput       ErrorType = "INVALID_INPUT"
	ErrInternal           ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Timestamp time.Time
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// TypeOf returns the type of the first AppError in err's chain, or ErrInternal.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrInternal
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsUpstream checks if the error is a transient upstream error
func IsUpstream(err error) bool {
	return isType(err, ErrUpstream)
}

// IsUpstreamFatal checks if the error aborted a whole sync cycle
func IsUpstreamFatal(err error) bool {
	return isType(err, ErrUpstreamFatal)
}

// IsCacheUnavailable checks if the error came from the cache backend
func IsCacheUnavailable(err error) bool {
	return isType(err, ErrCacheUnavailable)
}

// IsNotificationFailed checks if the error is a notification delivery error
func IsNotificationFailed(err error) bool {
	return isType(err, ErrNotificationFailed)
}

// IsDerivedCompute checks if the error happened computing a derived value
func IsDerivedCompute(err error) bool {
	return isType(err, ErrDerivedCompute)
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return isType(err, ErrInvalidInput)
}

// NewUpstreamError creates a new transient upstream error
func NewUpstreamError(message string, err error) *AppError {
	return New(ErrUpstream, message, err)
}

// NewUpstreamFatalError creates a new cycle-aborting upstream error
func NewUpstreamFatalError(message string, err error) *AppError {
	return New(ErrUpstreamFatal, message, err)
}

// NewCacheUnavailableError creates a new cache error
func NewCacheUnavailableError(message string, err error) *AppError {
	return New(ErrCacheUnavailable, message, err)
}

// NewNotificationError creates a new notification delivery error
func NewNotificationError(message string, err error) *AppError {
	return New(ErrNotificationFailed, message, err)
}

// NewDerivedComputeError creates a new derived value error
func NewDerivedComputeError(message string, err error) *AppError {
	return New(ErrDerivedCompute, message, err)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, err error) *AppError {
	return New(ErrInvalidInput, message, err)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return New(ErrInternal, message, err)
}

// SyncNotRunningError is returned when a sync is requested but no scheduler
// is running in this process.
type SyncNotRunningError struct {
	Reason string
}

func (e *SyncNotRunningError) Error() string {
	return fmt.Sprintf("sync scheduler not running: %s", e.Reason)
}

// NewSyncNotRunningError creates a new SyncNotRunningError
func NewSyncNotRunningError(reason string) error {
	return &SyncNotRunningError{Reason: reason}
}

// IsSyncNotRunning checks if the error is a SyncNotRunningError
func IsSyncNotRunning(err error) bool {
	var target *SyncNotRunningError
	return errors.As(err, &target)
}
