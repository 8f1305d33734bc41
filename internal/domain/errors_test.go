package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		status   int
	}{
		{"not found", &NotFoundError{Message: "x"}, ErrNotFound, http.StatusNotFound},
		{"validation", &ValidationError{Field: "title", Message: "blank"}, ErrValidation, http.StatusBadRequest},
		{"unauthorized", &UnauthorizedError{Message: "no"}, ErrUnauthorized, http.StatusUnauthorized},
		{"storage", &StorageError{Store: "index", Op: "put", Err: errors.New("io")}, ErrStorage, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("save: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", wrapped)
			}

			var httpErr HTTPError
			if !errors.As(wrapped, &httpErr) || httpErr.StatusCode() != tt.status {
				t.Errorf("status = %v, want %d", httpErr, tt.status)
			}
		})
	}
}

func TestNewStorageError(t *testing.T) {
	if NewStorageError("index", "put", "a", nil) != nil {
		t.Error("nil cause produced an error")
	}

	cause := errors.New("disk full")
	err := NewStorageError("artifact", "put", "post", cause)
	if !errors.Is(err, cause) {
		t.Error("cause not unwrappable")
	}
	if got := err.Error(); got != `artifact store put "post": disk full` {
		t.Errorf("Error() = %q", got)
	}

	// an existing StorageError keeps its original store
	again := NewStorageError("index", "put", "post", fmt.Errorf("retry: %w", err))
	var se *StorageError
	if !errors.As(again, &se) || se.Store != "artifact" {
		t.Errorf("rewrapped store = %+v", se)
	}

	whole := &StorageError{Store: "index", Op: "list", Err: cause}
	if got := whole.Error(); got != "index store list: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	if got := (&ValidationError{Message: "bad"}).Error(); got != "bad" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&ValidationError{Field: "id", Message: "bad"}).Error(); got != "id: bad" {
		t.Errorf("Error() = %q", got)
	}
}
