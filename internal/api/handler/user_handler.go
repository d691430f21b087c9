package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthqr/health-record-system/internal/core/ports"
)

// UserHandler serves the authenticated read endpoints.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the caller's own profile.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  "missing token"
// @Failure      403  "invalid or expired token"
// @Failure      404  {object}  messageResponse
// @Router       /api/auth/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.users.Profile(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: *user})
}

// Worker resolves a worker by the username carried in their QR identity.
//
// @Summary      Look up a worker
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Worker username"
// @Success      200       {object}  userResponse
// @Failure      403       {object}  messageResponse
// @Failure      404       {object}  messageResponse
// @Router       /api/workers/{username} [get]
func (h *UserHandler) Worker(c echo.Context) error {
	user, err := h.users.LookupWorker(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: *user})
}

// List returns every account.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: users, Total: len(users)})
}
