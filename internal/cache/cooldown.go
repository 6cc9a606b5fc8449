package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cooldownKeyPrefix = "otp_request:"

// Cooldowns gates OTP issuance per requester identifier (email or phone).
// An entry blocks re-issuance until its TTL runs out; entries are never deleted.
type Cooldowns struct {
	client redis.UniversalClient
}

func NewCooldowns(client redis.UniversalClient) *Cooldowns {
	return &Cooldowns{client: client}
}

// Allow reports whether identifier has no active cooldown. It never mutates state.
func (c *Cooldowns) Allow(ctx context.Context, identifier string) (bool, error) {
	n, err := c.client.Exists(ctx, cooldownKeyPrefix+identifier).Result()
	if err != nil {
		return false, fmt.Errorf("cache.cooldowns.Allow: %w", err)
	}

	return n == 0, nil
}

// Start opens a cooldown window of ttl for identifier.
func (c *Cooldowns) Start(ctx context.Context, identifier string, ttl time.Duration) error {
	if err := c.client.Set(ctx, cooldownKeyPrefix+identifier, 1, ttl).Err(); err != nil {
		return fmt.Errorf("cache.cooldowns.Start: %w", err)
	}

	return nil
}
