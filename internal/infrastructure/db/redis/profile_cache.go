package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/healthqr/health-record-system/internal/core/domain"
	"github.com/healthqr/health-record-system/internal/core/ports"
)

const defaultProfileTTL = time.Minute

// ProfileCache keeps public user views for a short TTL.
// Key format: profile:<user_id>
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.ProfileCache = (*ProfileCache)(nil)

func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

func (c *ProfileCache) Get(ctx context.Context, id string) (*domain.PublicUser, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var u domain.PublicUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}
	if !u.Role.Valid() {
		return nil, nil
	}
	return &u, nil
}

func (c *ProfileCache) Set(ctx context.Context, u domain.PublicUser) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(u.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("profile cache set: %w", err)
	}
	return nil
}

func (c *ProfileCache) key(id string) string {
	return "profile:" + id
}
