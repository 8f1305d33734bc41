package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input. Field is empty when the
	// failure is not tied to a single input field.
	ValidationError struct {
		Field   string
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorage      = errors.New("storage failure")
)

// StorageError reports a failed read or write against one of the backing
// stores (index, snippet, artifact, upload). It is never recovered inside
// the service; callers detect partial saves through a later load or a
// reconciliation pass.
type StorageError struct {
	Store string // "index", "snippet", "artifact", "upload"
	Op    string // "get", "put", "delete", "list", ...
	ID    string // document id, empty for whole-store operations
	Err   error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s store %s: %v", e.Store, e.Op, e.Err)
	}
	return fmt.Sprintf("%s store %s %q: %v", e.Store, e.Op, e.ID, e.Err)
}

// Unwrap exposes the underlying cause
func (e *StorageError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match against ErrStorage
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// StatusCode implements the HTTPError interface
func (e *StorageError) StatusCode() int { return http.StatusInternalServerError }

// NewStorageError wraps err unless it is nil or already a StorageError.
func NewStorageError(store, op, id string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Store: store, Op: op, ID: id, Err: err}
}
