// Package memory holds an in-process credential store used for development
// and as a fallback when no document database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/healthqr/health-record-system/internal/core/domain"
	"github.com/healthqr/health-record-system/internal/core/ports"
)

type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*domain.User
	byUsername map[string]string
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[string]*domain.User),
		byUsername: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if !user.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return nil, domain.ErrUserExists
	}

	stored := *user
	stored.ID = uuid.NewString()
	r.byID[stored.ID] = &stored
	r.byUsername[stored.Username] = stored.ID

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	users := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		c := *u
		users = append(users, &c)
	}
	r.mu.RUnlock()

	sort.SliceStable(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].Username < users[j].Username
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}
