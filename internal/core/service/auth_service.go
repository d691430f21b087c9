package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthqr/health-record-system/internal/core/domain"
	"github.com/healthqr/health-record-system/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
	now    func() time.Time

	// dummyHash is verified against when the username is unknown so that both
	// failure paths pay for one hash comparison.
	dummyHash string
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	dummy, err := hasher.Hash("timing-equaliser")
	if err != nil {
		log.Warn().Err(err).Msg("could not precompute dummy hash")
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		log:       log,
		now:       time.Now,
		dummyHash: dummy,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			s.log.Warn().Str("username", username).Msg("login rejected")
			s.log.Debug().Str("username", username).Msg("login rejected: unknown username")
			return nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Str("username", username).Msg("login: user lookup failed")
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn().Str("username", username).Msg("login rejected")
		s.log.Debug().Str("username", username).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return result, nil
}

// Register creates an account and signs the caller in. The role must belong
// to the closed role set; an empty role becomes domain.DefaultRole.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	user, err := s.createUser(ctx, in)
	if err != nil {
		return nil, err
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return result, nil
}

func (s *AuthService) createUser(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	_, err := s.repo.FindByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		s.log.Error().Err(err).Str("username", in.Username).Msg("register: user lookup failed")
		return nil, fmt.Errorf("register: %w", err)
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if len(in.Password) > domain.MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		Name:         in.Name,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		s.log.Error().Err(err).Str("username", in.Username).Msg("register: insert failed")
		return nil, fmt.Errorf("register: %w", err)
	}
	return created, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	token, err := s.tokens.Issue(user.Claims())
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.AuthResult{Token: token, User: user.Public()}, nil
}
