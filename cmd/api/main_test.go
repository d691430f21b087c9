package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/healthqr/health-record-system/internal/pkg/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		BcryptCost:    4,
		SeedDemoUsers: true,
		CORSOrigins:   []string{"*"},
		Store:         config.StoreConfig{Driver: config.StoreMemory},
	}
}

func TestNewServer_MemoryStoreServesSeededUsers(t *testing.T) {
	srv, err := newServer(context.Background(), memoryConfig(), zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	defer srv.close()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"admin1","password":"password123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+resp.Token)
	rec = httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestNewServer_RedisProfileCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.Redis = config.RedisConfig{Addr: mr.Addr()}

	srv, err := newServer(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	defer srv.close()

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"redis"`) {
		t.Fatalf("readiness should report redis: %s", rec.Body.String())
	}
}

func TestNewServer_UnreachableRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	cfg := memoryConfig()
	cfg.Redis = config.RedisConfig{Addr: addr}

	if _, err = newServer(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Fatalf("expected an error for an unreachable redis")
	}
}

func TestShutdown(t *testing.T) {
	want := errors.New("boom")
	called := false
	err := shutdown(func(ctx context.Context) error {
		called = true
		if _, ok := ctx.Deadline(); !ok {
			t.Fatalf("shutdown context must carry a deadline")
		}
		return want
	}, zerolog.Nop())
	if !called || !errors.Is(err, want) {
		t.Fatalf("unexpected shutdown result: called=%v err=%v", called, err)
	}
}
