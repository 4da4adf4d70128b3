// Package errors defines the error taxonomy shared by all gorate components.
package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCapacityExceeded indicates that a capacity limit was exceeded
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRateLimited indicates that a request was rate limited
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError describes a configuration parameter that failed
// validation. It wraps ErrInvalidConfiguration so callers can match the
// whole class with errors.Is.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a usage hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap lets errors.Is(err, ErrInvalidConfiguration) match every ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// LimitExceededError is returned when a limiter cannot satisfy a request
// right now. It is a normal control-flow outcome, never a bug: it carries
// what was asked for, what was available, and how long to back off before
// retrying. A zero RetryAfter with Available < Requested means the request
// can never succeed regardless of waiting (it exceeds total capacity).
//
// LimitExceededError wraps ErrRateLimited.
type LimitExceededError struct {
	Requested  int
	Available  int
	RetryAfter time.Duration
}

// NewLimitExceededError creates a LimitExceededError.
func NewLimitExceededError(requested, available int, retryAfter time.Duration) *LimitExceededError {
	return &LimitExceededError{
		Requested:  requested,
		Available:  available,
		RetryAfter: retryAfter,
	}
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded: requested %d, available %d (retry after %dms)",
		e.Requested, e.Available, e.RetryAfter.Milliseconds())
}

// Unwrap lets errors.Is(err, ErrRateLimited) match every LimitExceededError.
func (e *LimitExceededError) Unwrap() error {
	return ErrRateLimited
}

// OperationError wraps a failure from a named operation with component context.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError for the given module and operation.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches extra context and returns the same error for chaining.
func (e *OperationError) WithContext(ctx string) *OperationError {
	e.Context = ctx
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited)
}

// IsTemporary returns true if the error indicates a temporary condition
func IsTemporary(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrCapacityExceeded)
}

// IsValidationError returns true if the error is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsRateLimited returns true if the error is (or wraps) a rate limit rejection.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// RetryAfter extracts the retry delay from a rate limit rejection.
// It returns false if err does not carry one.
func RetryAfter(err error) (time.Duration, bool) {
	var lerr *LimitExceededError
	if errors.As(err, &lerr) {
		return lerr.RetryAfter, true
	}
	return 0, false
}
