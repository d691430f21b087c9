package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthqr/health-record-system/internal/api/metrics"
	"github.com/healthqr/health-record-system/internal/core/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

// ForbiddenMessage is the body of a role-gate rejection.
const ForbiddenMessage = "Forbidden: Access denied"

// RBAC enforces a role allow-list. It must be mounted after Auth; a request
// without claims is rejected like one with the wrong role.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := append([]domain.Role(nil), allowedRoles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok || !domain.Allowed(claims.Role, allowed) {
				metrics.RoleDeniedTotal.WithLabelValues(string(claims.Role)).Inc()
				return c.JSON(http.StatusForbidden, messageResponse{Message: ForbiddenMessage})
			}
			return next(c)
		}
	}
}
