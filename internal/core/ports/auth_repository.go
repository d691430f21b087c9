package ports

import (
	"context"

	"github.com/healthqr/health-record-system/internal/core/domain"
)

// UserRepository defines the credential store.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no exact match exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create assigns the ID and returns domain.ErrUserExists on a username clash.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// List returns every user ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)
}

// ProfileCache holds short-lived copies of public user views keyed by user ID.
type ProfileCache interface {
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context, id string) (*domain.PublicUser, error)
	Set(ctx context.Context, user domain.PublicUser) error
}
