package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/healthqr/health-record-system/docs"
	"github.com/healthqr/health-record-system/internal/api/handler"
	"github.com/healthqr/health-record-system/internal/api/middleware"
	"github.com/healthqr/health-record-system/internal/core/domain"
	"github.com/healthqr/health-record-system/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Tokens ports.TokenVerifier
	Health map[string]handler.DependencyCheck

	CORSOrigins []string
	Logger      zerolog.Logger

	// Registry receives the HTTP request metrics and backs /metrics. Nil means
	// the default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(deps.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "health_records",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
		},
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	healthHandler := handler.NewHealthHandler(deps.Health)
	authenticate := middleware.Auth(deps.Tokens, deps.Logger)

	e.GET("/", handler.Root)

	// --- Auth routes ---
	api := e.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", userHandler.Me, authenticate)

	// --- Role-gated routes ---
	api.GET("/workers/:username", userHandler.Worker, authenticate, middleware.RBAC(domain.RoleDoctor, domain.RoleAdmin))

	admin := api.Group("/admin", authenticate, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)

	// --- Operational ---
	e.GET("/health", healthHandler.Liveness)        // liveness: is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
