package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checks map[string]DependencyCheck
}

// DependencyCheck reports whether a backing service is reachable.
type DependencyCheck func(ctx context.Context) error

// NewHealthHandler creates a handler probing the named dependencies. With no
// dependencies readiness is always ok (in-memory store).
func NewHealthHandler(checks map[string]DependencyCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness handles GET /health and confirms the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness handles GET /health/ready and pings every dependency.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]dependencyStatus, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

// Root answers GET / with the service banner.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "Digital Health Record System Backend")
}
