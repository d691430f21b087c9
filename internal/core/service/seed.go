package service

import (
	"context"
	"errors"

	"github.com/healthqr/health-record-system/internal/core/domain"
	"github.com/healthqr/health-record-system/internal/core/ports"
)

// DemoUsers are the accounts the dashboards are demonstrated with.
var DemoUsers = []ports.RegisterInput{
	{Username: "worker1", Password: "password123", Role: string(domain.RoleWorker), Name: "John Doe"},
	{Username: "doctor1", Password: "password123", Role: string(domain.RoleDoctor), Name: "Dr. Smith"},
	{Username: "admin1", Password: "password123", Role: string(domain.RoleAdmin), Name: "System Admin"},
}

// Seed creates each account that does not exist yet. Existing usernames are
// left untouched. It returns how many accounts were created.
func (s *AuthService) Seed(ctx context.Context, users []ports.RegisterInput) (int, error) {
	created := 0
	for _, in := range users {
		if _, err := s.createUser(ctx, in); err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				continue
			}
			return created, err
		}
		created++
		s.log.Info().Str("username", in.Username).Str("role", in.Role).Msg("seeded user")
	}
	return created, nil
}
