// @title                       Digital Health Record System API
// @version                     1.0
// @description                 Authentication and role-based access for workers, doctors and administrators.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer token issued by /api/auth/login
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/healthqr/health-record-system/internal/api"
	"github.com/healthqr/health-record-system/internal/api/handler"
	"github.com/healthqr/health-record-system/internal/core/ports"
	"github.com/healthqr/health-record-system/internal/core/service"
	"github.com/healthqr/health-record-system/internal/infrastructure/db/memory"
	mongodb "github.com/healthqr/health-record-system/internal/infrastructure/db/mongo"
	"github.com/healthqr/health-record-system/internal/infrastructure/db/redis"
	"github.com/healthqr/health-record-system/internal/infrastructure/security"
	"github.com/healthqr/health-record-system/internal/pkg/config"
	"github.com/healthqr/health-record-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet; initialise a default one to report.
		logger.Init(logger.Options{Service: "health-record-api"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "health-record-api",
	})
	for _, name := range cfg.Defaulted {
		log.Warn().Str("setting", name).Msg("using insecure built-in default; do not run like this in production")
	}

	srv, err := newServer(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer srv.close()

	e := srv.echo
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return shutdown(e.Shutdown, log)
}

// server is the wired HTTP application together with the resources it owns.
type server struct {
	echo    *echo.Echo
	closers []func(context.Context)
}

// newServer connects the configured stores and builds the router. Resources
// opened before a failure are released before returning. A nil reg uses the
// default Prometheus registry.
func newServer(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg *prometheus.Registry) (_ *server, err error) {
	srv := &server{}
	defer func() {
		if err != nil {
			srv.close()
		}
	}()

	checks := map[string]handler.DependencyCheck{}

	// --- Credential store ---
	var repo ports.UserRepository
	switch cfg.Store.Driver {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory credential store; accounts are lost on restart")
		repo = memory.NewUserRepository()
	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Store.MongoURI, Database: cfg.Store.Database})
		if err != nil {
			return nil, err
		}
		srv.closers = append(srv.closers, func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		})
		checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }

		users := mongodb.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		repo = users
		log.Info().Str("database", db.Name()).Msg("connected to mongo")
	}

	// --- Profile cache (optional) ---
	var cache ports.ProfileCache
	redisCfg := redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		srv.closers = append(srv.closers, func(context.Context) {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
		})
		checks["redis"] = redisCheck(rdb)
		cache = redis.NewProfileCache(rdb, cfg.Redis.ProfileTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("profile cache enabled")
	}

	// --- Security ---
	tokens, err := security.NewJWTManager(cfg.JWTSecret, security.DefaultTokenTTL)
	if err != nil {
		return nil, err
	}
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	// --- Services ---
	authService := service.NewAuthService(repo, hasher, tokens, log)
	userService := service.NewUserService(repo, cache, log)

	if cfg.SeedDemoUsers {
		created, err := authService.Seed(ctx, service.DemoUsers)
		if err != nil {
			return nil, err
		}
		log.Info().Int("created", created).Msg("demo users seeded")
	}

	srv.echo = api.NewRouter(api.Dependencies{
		Auth:        authService,
		Users:       userService,
		Tokens:      tokens,
		Health:      checks,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
		Registry:    reg,
	})
	return srv, nil
}

// close releases resources in reverse order of acquisition.
func (s *server) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i](ctx)
	}
	s.closers = nil
}

func shutdown(fn func(context.Context) error, log zerolog.Logger) error {
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return fn(ctx)
}

func redisCheck(rdb *goredis.Client) handler.DependencyCheck {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
