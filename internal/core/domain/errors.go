package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordTooLong    = errors.New("password too long")

	ErrUnauthenticated = errors.New("missing bearer token")
	ErrTokenInvalid    = errors.New("invalid or expired token")
	ErrForbidden       = errors.New("forbidden: access denied")
)
