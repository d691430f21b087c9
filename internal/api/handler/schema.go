package handler

import "github.com/healthqr/health-record-system/internal/core/domain"

// messageResponse is the envelope for every error and informational reply.
type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"`
	Name     string `json:"name"     validate:"required,max=128"`
}

type authResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

type userResponse struct {
	User domain.PublicUser `json:"user"`
}

type listUsersResponse struct {
	Data  []domain.PublicUser `json:"data"`
	Total int                 `json:"total"`
}
