package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound is returned when an operation references an unknown task id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrRemoteUnavailable marks a failed call to the motivational-message
	// upstream. Callers recover with a local fallback and never surface it.
	ErrRemoteUnavailable = errors.New("remote unavailable")
)

// ValidationError rejects bad input to a user-facing action. It is the
// only error class surfaced to API callers as their own fault.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a persistence read/write failure. Stores log it and
// keep serving from memory; it never aborts the process.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
