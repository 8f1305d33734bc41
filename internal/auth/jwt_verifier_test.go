package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"folio/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestHMACVerifier(t *testing.T) {
	v, err := NewHMACVerifier("s3cret", discardLogger())
	if err != nil {
		t.Fatalf("NewHMACVerifier() error = %v", err)
	}

	valid := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "editor-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}

	tests := []struct {
		name    string
		token   string
		wantSub string
	}{
		{
			name:    "valid token",
			token:   sign(t, jwt.SigningMethodHS256, []byte("s3cret"), valid),
			wantSub: "editor-1",
		},
		{
			name:  "wrong secret",
			token: sign(t, jwt.SigningMethodHS256, []byte("other"), valid),
		},
		{
			name:  "wrong algorithm",
			token: sign(t, jwt.SigningMethodHS512, []byte("s3cret"), valid),
		},
		{
			name: "expired",
			token: sign(t, jwt.SigningMethodHS256, []byte("s3cret"), Claims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "editor-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			}}),
		},
		{
			name:  "missing subject",
			token: sign(t, jwt.SigningMethodHS256, []byte("s3cret"), Claims{}),
		},
		{
			name:  "garbage",
			token: "not-a-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(tt.token)
			if tt.wantSub == "" {
				if !errors.Is(err, domain.ErrUnauthorized) {
					t.Fatalf("VerifyToken() error = %v, want ErrUnauthorized", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyToken() error = %v", err)
			}
			if claims.Subject != tt.wantSub {
				t.Errorf("Subject = %q, want %q", claims.Subject, tt.wantSub)
			}
		})
	}
}

func TestNewHMACVerifierRequiresSecret(t *testing.T) {
	if _, err := NewHMACVerifier("", discardLogger()); err == nil {
		t.Fatal("NewHMACVerifier(\"\") error = nil, want error")
	}
}
