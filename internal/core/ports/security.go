package ports

import "github.com/healthqr/health-record-system/internal/core/domain"

// PasswordHasher produces and checks salted adaptive hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs claims into a time-limited bearer token.
type TokenIssuer interface {
	Issue(claims domain.Claims) (string, error)
}

// TokenVerifier checks a bearer token and returns the embedded claims, or
// domain.ErrTokenInvalid.
type TokenVerifier interface {
	Verify(token string) (domain.Claims, error)
}

// TokenManager is both halves of the token contract.
type TokenManager interface {
	TokenIssuer
	TokenVerifier
}
