package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptsKeyPrefix = "otp_attempts:"

// Attempts counts failed OTP verifications per requester identifier.
type Attempts struct {
	client redis.UniversalClient
}

func NewAttempts(client redis.UniversalClient) *Attempts {
	return &Attempts{client: client}
}

// Remaining returns max minus the recorded failures; an absent counter counts as zero.
func (a *Attempts) Remaining(ctx context.Context, identifier string, max int) (int, error) {
	count, err := a.client.Get(ctx, attemptsKeyPrefix+identifier).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return 0, fmt.Errorf("cache.attempts.Remaining: %w", err)
		}
		count = 0
	}

	return max - count, nil
}

// RecordFailure increments the counter and (re)sets its expiry to ttl from now.
func (a *Attempts) RecordFailure(ctx context.Context, identifier string, ttl time.Duration) (int64, error) {
	key := attemptsKeyPrefix + identifier

	var incr *redis.IntCmd
	_, err := a.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("cache.attempts.RecordFailure: %w", err)
	}

	return incr.Val(), nil
}

func (a *Attempts) Reset(ctx context.Context, identifier string) error {
	if err := a.client.Del(ctx, attemptsKeyPrefix+identifier).Err(); err != nil {
		return fmt.Errorf("cache.attempts.Reset: %w", err)
	}

	return nil
}
