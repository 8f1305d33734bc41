package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the token claims the editor backend relies on. Only the
// subject is required; it identifies the author in request logs.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// JWTVerifier defines the interface for JWT token verification.
// The middleware stays agnostic of how keys are obtained.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*Claims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
