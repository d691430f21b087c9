package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthqr/health-record-system/internal/api/metrics"
	"github.com/healthqr/health-record-system/internal/core/domain"
	"github.com/healthqr/health-record-system/internal/core/ports"
)

// Context keys populated by Auth.
const (
	ClaimsKey   = "claims"
	UserIDKey   = "user_id"
	UsernameKey = "username"
	RoleKey     = "role"
)

// Auth verifies the bearer token and injects its claims into the context.
//
// A missing Authorization header is answered with 401. A header that does not
// carry a valid, unexpired token is answered with 403. Neither response has a
// body.
func Auth(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return c.NoContent(http.StatusUnauthorized)
			}

			claims, err := verifier.Verify(bearerToken(authHeader))
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("bearer token rejected")
				return c.NoContent(http.StatusForbidden)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.ID)
			c.Set(UsernameKey, claims.Username)
			c.Set(RoleKey, claims.Role)

			return next(c)
		}
	}
}

// ClaimsFrom returns the claims injected by Auth.
func ClaimsFrom(c echo.Context) (domain.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(domain.Claims)
	return claims, ok
}

// bearerToken extracts the credential from "Bearer <token>". Any other shape
// yields an empty token, which never verifies.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
