package ports

import (
	"context"

	"github.com/healthqr/health-record-system/internal/core/domain"
)

// RegisterInput carries the fields accepted by registration. Role is the raw
// value from the caller and is checked against the closed role set.
type RegisterInput struct {
	Username string
	Password string
	Role     string
	Name     string
}

// AuthResult is what login and registration hand back to the caller.
type AuthResult struct {
	Token string
	User  domain.PublicUser
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
}

// UserService covers the read paths behind protected routes.
type UserService interface {
	Profile(ctx context.Context, claims domain.Claims) (*domain.PublicUser, error)
	LookupWorker(ctx context.Context, username string) (*domain.PublicUser, error)
	ListUsers(ctx context.Context) ([]domain.PublicUser, error)
}
