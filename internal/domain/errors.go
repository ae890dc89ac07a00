// Package domain contains the core domain models and types.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidInput indicates a notification failed boundary validation.
	ErrInvalidInput = errors.New("invalid notification input")

	// ErrEmptyBatch indicates a batch request contained no items.
	ErrEmptyBatch = errors.New("batch contains no notifications")

	// ErrInvalidAction indicates an unknown user action value.
	ErrInvalidAction = errors.New("invalid action type")

	// ErrInvalidSettings indicates a settings update failed validation.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrInvalidConfig indicates invalid application configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAuditDisabled indicates the audit store is not configured.
	ErrAuditDisabled = errors.New("audit store disabled")
)

// TriageError wraps an error with the operation that produced it.
type TriageError struct {
	// Op is the operation that failed.
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *TriageError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TriageError) Unwrap() error {
	return e.Err
}

// WrapError creates a new TriageError with context.
func WrapError(op string, err error) *TriageError {
	return &TriageError{Op: op, Err: err}
}
