package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthqr/health-record-system/internal/core/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h", Role: domain.RoleDoctor, Name: "Alice Doe"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created, byName)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	_, err = repo.FindByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "lookups are case-sensitive")
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Username: "bob", Role: domain.RoleWorker, Name: "Bob"})
	require.NoError(t, err)

	u, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	u.Name = "mutated"

	again, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "Bob", again.Name)
}

func TestUserRepository_Duplicate(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Username: "bob", Role: domain.RoleWorker, Name: "First"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Username: "bob", Role: domain.RoleAdmin, Name: "Second"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	u, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "First", u.Name)
	assert.Equal(t, domain.RoleWorker, u.Role)
}

func TestUserRepository_RejectsUnknownRole(t *testing.T) {
	repo := NewUserRepository()
	_, err := repo.Create(context.Background(), &domain.User{Username: "x", Role: "nurse"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUserRepository_ConcurrentCreateKeepsUsernamesUnique(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.User{Username: "same", Role: domain.RoleWorker, Name: fmt.Sprint(i)})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
}

func TestUserRepository_ListOrdersByCreation(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"c", "a", "b"} {
		_, err := repo.Create(ctx, &domain.User{Username: name, Role: domain.RoleWorker, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "c", users[0].Username)
	assert.Equal(t, "a", users[1].Username)
	assert.Equal(t, "b", users[2].Username)
}
