package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the library

var (
	// ErrRejected indicates that a submission was turned away because the
	// queue stayed full past the bounded wait
	ErrRejected = errors.New("task rejected")

	// ErrNotRunning indicates that an operation requires a started pool
	ErrNotRunning = errors.New("pool is not running")

	// ErrAlreadyStarted indicates that Start was called on a started pool
	ErrAlreadyStarted = errors.New("pool already started")

	// ErrDoubleStop indicates that Stop was called on a stopped pool
	ErrDoubleStop = errors.New("pool already stopped")

	// ErrCanceled indicates that a queued task was dropped during shutdown
	ErrCanceled = errors.New("task canceled")

	// ErrTypeMismatch indicates that a box was read as the wrong type
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrEmptyBox indicates that a box holds no value
	ErrEmptyBox = errors.New("box is empty")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsRetryable returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRejected) || errors.Is(err, ErrTimeout)
}

// IsTemporary returns true if the error indicates a temporary condition
func IsTemporary(err error) bool {
	return errors.Is(err, ErrRejected) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrCanceled)
}

// IsLifecycle returns true if the error reports misuse of the pool
// lifecycle rather than a task-level condition
func IsLifecycle(err error) bool {
	return errors.Is(err, ErrAlreadyStarted) || errors.Is(err, ErrNotRunning) || errors.Is(err, ErrDoubleStop)
}

// ValidationError describes a configuration or argument value that failed
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

// WithHint attaches a remediation hint and returns the same error for chaining.
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

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError returns true if err is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// OperationError describes a failed operation on a component, keeping the
// component and operation names alongside the underlying cause.
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
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}
