package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/healthqr/health-record-system/internal/core/domain"
)

// DefaultBcryptCost matches the work factor the accounts were historically
// hashed with.
const DefaultBcryptCost = 10

// BcryptHasher hashes passwords with bcrypt. The salt and cost are embedded in
// every hash, so hashes produced at different costs still verify.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or DefaultBcryptCost when cost
// is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt digest of plaintext. Inputs longer than
// domain.MaxPasswordBytes are rejected with domain.ErrPasswordTooLong.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > domain.MaxPasswordBytes {
		return "", domain.ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. bcrypt compares digests in
// constant time.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
