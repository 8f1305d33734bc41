package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/internal/auth"
	"folio/internal/domain"
	"folio/internal/httputil"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*auth.Claims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	c := &auth.Claims{}
	c.Subject = "editor-1"
	return c, nil
}

func (stubVerifier) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMiddleware(t *testing.T) {
	var gotUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = httputil.GetUserID(r)
		w.WriteHeader(http.StatusNoContent)
	})
	h := AuthMiddleware(stubVerifier{}, discardLogger())(next)

	tests := []struct {
		name       string
		method     string
		path       string
		authHeader string
		wantStatus int
		wantUser   string
	}{
		{"public read", http.MethodGet, "/api/posts", "", http.StatusNoContent, ""},
		{"write without token", http.MethodPost, "/api/posts", "", http.StatusUnauthorized, ""},
		{"write with bad token", http.MethodDelete, "/api/posts/a", "Bearer nope", http.StatusUnauthorized, ""},
		{"write with token", http.MethodPut, "/api/posts/a", "Bearer good", http.StatusNoContent, "editor-1"},
		{"admin read needs token", http.MethodGet, "/api/admin/reconcile", "", http.StatusUnauthorized, ""},
		{"wrong scheme", http.MethodPost, "/api/posts", "Basic good", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotUser != tt.wantUser {
				t.Errorf("user = %q, want %q", gotUser, tt.wantUser)
			}
		})
	}
}

func TestAuthMiddlewareDisabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := AuthMiddleware(nil, discardLogger())(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/posts", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(&domain.NotFoundError{Message: "boom"})
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRequestLoggerPropagatesID(t *testing.T) {
	var seen string
	h := RequestLogger(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httputil.GetRequestID(r)
	}))

	t.Run("reuses inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if seen != "abc" || rec.Header().Get(RequestIDHeader) != "abc" {
			t.Errorf("request id = %q / header %q, want abc", seen, rec.Header().Get(RequestIDHeader))
		}
	})

	t.Run("generates id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if seen == "" || seen != rec.Header().Get(RequestIDHeader) {
			t.Errorf("request id = %q, header %q", seen, rec.Header().Get(RequestIDHeader))
		}
	})
}
