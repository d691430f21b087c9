package domain

import "time"

// Role is the closed set of actors the system recognises.
type Role string

const (
	RoleWorker Role = "worker"
	RoleDoctor Role = "doctor"
	RoleAdmin  Role = "admin"
)

// DefaultRole is assigned when a registration omits the role.
const DefaultRole = RoleWorker

// MaxPasswordBytes is the longest password bcrypt accepts, counted in bytes.
const MaxPasswordBytes = 72

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleWorker, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// ParseRole maps raw input onto the closed role set. An empty string yields
// DefaultRole; anything else unknown is ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return DefaultRole, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Allowed reports whether role is a member of allowList.
func Allowed(role Role, allowList []Role) bool {
	for _, r := range allowList {
		if r == role {
			return true
		}
	}
	return false
}

// User models an account holder. Username and CreatedAt never change after
// creation.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the view of a User that may leave the process.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
	}
}

// Claims is the identity carried inside a bearer token.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (u *User) Claims() Claims {
	return Claims{ID: u.ID, Username: u.Username, Role: u.Role}
}
