package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/healthqr/health-record-system/internal/api/middleware"
	"github.com/healthqr/health-record-system/internal/core/domain"
)

// ctxClaims returns the claims injected by the Auth middleware. Their absence
// means the route was mounted without Auth, which is reported as forbidden.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.Claims{}, domain.ErrForbidden
	}
	return claims, nil
}
