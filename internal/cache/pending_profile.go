package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/manara-transit/backend/internal/domain"
)

const pendingProfileKeyPrefix = "profile_update:"

// PendingProfileChanges keeps a profile edit awaiting OTP confirmation.
type PendingProfileChanges struct {
	client redis.UniversalClient
}

func NewPendingProfileChanges(client redis.UniversalClient) *PendingProfileChanges {
	return &PendingProfileChanges{client: client}
}

func pendingProfileKey(userID uuid.UUID) string {
	return pendingProfileKeyPrefix + userID.String()
}

func (p *PendingProfileChanges) Save(ctx context.Context, userID uuid.UUID, change domain.ProfileChange, ttl time.Duration) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("cache.pendingProfile.Save: marshal: %w", err)
	}

	if err := p.client.Set(ctx, pendingProfileKey(userID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache.pendingProfile.Save: %w", err)
	}

	return nil
}

// Get returns domain.ErrNotFound when no change is pending or it has expired.
func (p *PendingProfileChanges) Get(ctx context.Context, userID uuid.UUID) (*domain.ProfileChange, error) {
	payload, err := p.client.Get(ctx, pendingProfileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("cache.pendingProfile.Get: %w", err)
	}

	var change domain.ProfileChange
	if err := json.Unmarshal(payload, &change); err != nil {
		return nil, fmt.Errorf("cache.pendingProfile.Get: unmarshal: %w", err)
	}

	return &change, nil
}

func (p *PendingProfileChanges) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := p.client.Del(ctx, pendingProfileKey(userID)).Err(); err != nil {
		return fmt.Errorf("cache.pendingProfile.Delete: %w", err)
	}

	return nil
}
