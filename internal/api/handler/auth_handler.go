package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthqr/health-record-system/internal/api/metrics"
	"github.com/healthqr/health-record-system/internal/core/domain"
	"github.com/healthqr/health-record-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns a token for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, authResponse{Token: res.Token, User: res.User})
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return "duplicate"
	case errors.Is(err, domain.ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, domain.ErrPasswordTooLong):
		return "invalid_input"
	default:
		return "error"
	}
}
