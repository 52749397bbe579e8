package todo

import (
	"errors"
	"fmt"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("task not found")
	ErrReadFailed       = errors.New("task file read failed")
	ErrWriteFailed      = errors.New("task file write failed")

	// ErrMalformed marks task file content that could not be decoded or
	// did not match the file schema.
	ErrMalformed = errors.New("malformed task file")
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NotFoundError reports an operation on an id that is not in the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AmbiguousIDError reports an id prefix that matches more than one task.
type AmbiguousIDError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("id prefix %q matches %d tasks", e.Prefix, len(e.Matches))
}

// PersistOp names the direction of a failed file operation.
type PersistOp string

const (
	OpRead  PersistOp = "read"
	OpWrite PersistOp = "write"
)

// PersistError reports a failed load or save of the task file.
type PersistError struct {
	Op   PersistOp
	Path string
	// Quarantined is where a malformed file was moved before the store
	// started fresh. Empty if nothing was moved.
	Quarantined string
	Err         error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// Is matches ErrReadFailed or ErrWriteFailed depending on Op.
func (e *PersistError) Is(target error) bool {
	switch e.Op {
	case OpRead:
		return target == ErrReadFailed
	case OpWrite:
		return target == ErrWriteFailed
	}
	return false
}
