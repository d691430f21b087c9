package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/healthqr/health-record-system/internal/core/domain"
	"github.com/healthqr/health-record-system/internal/core/ports"
)

type mapCache struct {
	items  map[string]domain.PublicUser
	gets   int
	getErr error
}

func (c *mapCache) Get(_ context.Context, id string) (*domain.PublicUser, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	u, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (c *mapCache) Set(_ context.Context, u domain.PublicUser) error {
	c.items[u.ID] = u
	return nil
}

func seedRepo(t *testing.T) (*stubUserRepo, map[string]string) {
	t.Helper()
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)
	ids := make(map[string]string)
	for _, in := range []ports.RegisterInput{
		{Username: "worker1", Password: "pw", Role: "worker", Name: "John Doe"},
		{Username: "doctor1", Password: "pw", Role: "doctor", Name: "Dr. Smith"},
	} {
		res, err := svc.Register(context.Background(), in)
		if err != nil {
			t.Fatalf("register %s: %v", in.Username, err)
		}
		ids[in.Username] = res.User.ID
	}
	return repo, ids
}

func TestUserService_Profile_CacheAside(t *testing.T) {
	repo, ids := seedRepo(t)
	cache := &mapCache{items: map[string]domain.PublicUser{}}
	svc := NewUserService(repo, cache, zerolog.Nop())

	claims := domain.Claims{ID: ids["worker1"], Username: "worker1", Role: domain.RoleWorker}
	got, err := svc.Profile(context.Background(), claims)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got.Username != "worker1" || got.Name != "John Doe" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if _, ok := cache.items[ids["worker1"]]; !ok {
		t.Fatalf("profile should be cached after a miss")
	}

	repo.findErr = errors.New("store down")
	again, err := svc.Profile(context.Background(), claims)
	if err != nil {
		t.Fatalf("cached profile should not hit the store: %v", err)
	}
	if *again != *got {
		t.Fatalf("cached profile differs: %+v vs %+v", again, got)
	}
}

func TestUserService_Profile_CacheErrorFallsThrough(t *testing.T) {
	repo, ids := seedRepo(t)
	cache := &mapCache{items: map[string]domain.PublicUser{}, getErr: errors.New("redis down")}
	svc := NewUserService(repo, cache, zerolog.Nop())

	got, err := svc.Profile(context.Background(), domain.Claims{ID: ids["doctor1"]})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got.Role != domain.RoleDoctor {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestUserService_Profile_Missing(t *testing.T) {
	repo, _ := seedRepo(t)
	svc := NewUserService(repo, nil, zerolog.Nop())

	_, err := svc.Profile(context.Background(), domain.Claims{ID: "gone"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_LookupWorker(t *testing.T) {
	repo, _ := seedRepo(t)
	svc := NewUserService(repo, nil, zerolog.Nop())

	w, err := svc.LookupWorker(context.Background(), "worker1")
	if err != nil || w.Username != "worker1" {
		t.Fatalf("lookup worker1: %+v %v", w, err)
	}

	if _, err := svc.LookupWorker(context.Background(), "doctor1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("non-worker should be not found, got %v", err)
	}
	if _, err := svc.LookupWorker(context.Background(), "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown should be not found, got %v", err)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	repo, _ := seedRepo(t)
	svc := NewUserService(repo, nil, zerolog.Nop())

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	repo.listErr = errors.New("boom")
	if _, err := svc.ListUsers(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
