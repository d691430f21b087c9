package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/healthqr/health-record-system/internal/core/domain"
	"github.com/healthqr/health-record-system/internal/core/ports"
)

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.PublicUser, error) { return nil, nil }
func (noopCache) Set(context.Context, domain.PublicUser) error            { return nil }

// UserService serves the read paths behind authenticated routes.
type UserService struct {
	repo  ports.UserRepository
	cache ports.ProfileCache
	log   zerolog.Logger
}

var _ ports.UserService = (*UserService)(nil)

// NewUserService wires a UserService. A nil cache disables caching.
func NewUserService(repo ports.UserRepository, cache ports.ProfileCache, log zerolog.Logger) *UserService {
	if cache == nil {
		cache = noopCache{}
	}
	return &UserService{repo: repo, cache: cache, log: log}
}

// Profile returns the caller's own public view. Cache failures are logged and
// fall through to the store.
func (s *UserService) Profile(ctx context.Context, claims domain.Claims) (*domain.PublicUser, error) {
	cached, err := s.cache.Get(ctx, claims.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", claims.ID).Msg("profile cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	user, err := s.repo.FindByID(ctx, claims.ID)
	if err != nil {
		return nil, wrapStore("profile", err)
	}

	view := user.Public()
	if err := s.cache.Set(ctx, view); err != nil {
		s.log.Warn().Err(err).Str("user_id", claims.ID).Msg("profile cache write failed")
	}
	return &view, nil
}

// LookupWorker resolves the username carried by a worker's QR identity.
// Accounts that are not workers are reported as not found.
func (s *UserService) LookupWorker(ctx context.Context, username string) (*domain.PublicUser, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, wrapStore("lookup worker", err)
	}
	if user.Role != domain.RoleWorker {
		return nil, domain.ErrUserNotFound
	}
	view := user.Public()
	return &view, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrapStore("list users", err)
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func wrapStore(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
