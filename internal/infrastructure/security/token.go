package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/healthqr/health-record-system/internal/core/domain"
)

// DefaultTokenTTL is the validity window of an issued token.
const DefaultTokenTTL = 24 * time.Hour

var errEmptySecret = errors.New("token secret must not be empty")

type tokenClaims struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 tokens. Verification is local: the
// claims are returned as issued, without consulting the credential store.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type JWTOption func(*JWTManager)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) JWTOption {
	return func(m *JWTManager) { m.now = now }
}

func NewJWTManager(secret string, ttl time.Duration, opts ...JWTOption) (*JWTManager, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	m := &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *JWTManager) Issue(claims domain.Claims) (string, error) {
	now := m.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		ID:       claims.ID,
		Username: claims.Username,
		Role:     claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns domain.ErrTokenInvalid for a bad signature, a malformed or
// expired token, or a role outside the closed set.
func (m *JWTManager) Verify(token string) (domain.Claims, error) {
	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	if tc.ID == "" || tc.Username == "" || !tc.Role.Valid() {
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	return domain.Claims{ID: tc.ID, Username: tc.Username, Role: tc.Role}, nil
}
