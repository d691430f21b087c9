package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/healthqr/health-record-system/internal/api/middleware"
	"github.com/healthqr/health-record-system/internal/core/domain"
)

type stubUserService struct {
	profileFn func(ctx context.Context, claims domain.Claims) (*domain.PublicUser, error)
	workerFn  func(ctx context.Context, username string) (*domain.PublicUser, error)
	listFn    func(ctx context.Context) ([]domain.PublicUser, error)
}

func (s *stubUserService) Profile(ctx context.Context, claims domain.Claims) (*domain.PublicUser, error) {
	return s.profileFn(ctx, claims)
}

func (s *stubUserService) LookupWorker(ctx context.Context, username string) (*domain.PublicUser, error) {
	return s.workerFn(ctx, username)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	return s.listFn(ctx)
}

func TestUserHandler_Me(t *testing.T) {
	claims := domain.Claims{ID: "u1", Username: "worker1", Role: domain.RoleWorker}
	stub := &stubUserService{
		profileFn: func(ctx context.Context, got domain.Claims) (*domain.PublicUser, error) {
			if got != claims {
				t.Fatalf("unexpected claims: %+v", got)
			}
			return &domain.PublicUser{ID: "u1", Username: "worker1", Role: domain.RoleWorker, Name: "John Doe"}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/api/auth/me", "")
	c.Set(middleware.ClaimsKey, claims)
	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.Name != "John Doe" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestUserHandler_Me_WithoutClaims(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	c, _ := newJSONContext(http.MethodGet, "/api/auth/me", "")
	if err := handler.Me(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_Worker(t *testing.T) {
	stub := &stubUserService{
		workerFn: func(ctx context.Context, username string) (*domain.PublicUser, error) {
			if username != "worker1" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.PublicUser{ID: "u1", Username: "worker1", Role: domain.RoleWorker, Name: "John Doe"}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/api/workers/worker1", "")
	c.SetParamNames("username")
	c.SetParamValues("worker1")
	if err := handler.Worker(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newJSONContext(http.MethodGet, "/api/workers/ghost", "")
	c.SetParamNames("username")
	c.SetParamValues("ghost")
	if err := handler.Worker(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.PublicUser, error) {
			return []domain.PublicUser{
				{ID: "1", Username: "admin1", Role: domain.RoleAdmin},
				{ID: "2", Username: "doctor1", Role: domain.RoleDoctor},
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/api/admin/users", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp listUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("unexpected list: %+v", resp)
	}
}
