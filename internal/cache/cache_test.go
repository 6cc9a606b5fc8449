package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/internal/domain"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCooldowns(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewCooldowns(client)
	ctx := context.Background()

	ok, err := c.Allow(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Start(ctx, "alice@example.com", 60*time.Second))

	ok, err = c.Allow(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "second request inside the window must be blocked")

	ok, err = c.Allow(ctx, "+15551234567")
	require.NoError(t, err)
	assert.True(t, ok, "cooldowns are per identifier")

	mr.FastForward(61 * time.Second)

	ok, err = c.Allow(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "cooldown must lapse after its ttl")
}

func TestAttempts(t *testing.T) {
	mr, client := newTestRedis(t)
	a := NewAttempts(client)
	ctx := context.Background()
	const id = "alice@example.com"

	left, err := a.Remaining(ctx, id, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, left)

	for i := 1; i <= 3; i++ {
		n, err := a.RecordFailure(ctx, id, 5*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}

	left, err = a.Remaining(ctx, id, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, left)
	assert.Equal(t, 5*time.Minute, mr.TTL(attemptsKeyPrefix+id))

	require.NoError(t, a.Reset(ctx, id))
	left, err = a.Remaining(ctx, id, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, left)
}

func TestAttempts_ExpireAfterTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	a := NewAttempts(client)
	ctx := context.Background()

	_, err := a.RecordFailure(ctx, "bob@example.com", 5*time.Minute)
	require.NoError(t, err)

	mr.FastForward(4 * time.Minute)
	_, err = a.RecordFailure(ctx, "bob@example.com", 5*time.Minute)
	require.NoError(t, err)

	mr.FastForward(4 * time.Minute)
	left, err := a.Remaining(ctx, "bob@example.com", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, left, "each failure refreshes the ttl")

	mr.FastForward(2 * time.Minute)
	left, err = a.Remaining(ctx, "bob@example.com", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, left)
}

func TestPendingProfileChanges(t *testing.T) {
	mr, client := newTestRedis(t)
	p := NewPendingProfileChanges(client)
	ctx := context.Background()
	userID := uuid.New()

	_, err := p.Get(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	phone := "254700000002"
	require.NoError(t, p.Save(ctx, userID, domain.ProfileChange{PhoneNumber: &phone}, 5*time.Minute))

	got, err := p.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got.PhoneNumber)
	assert.Equal(t, phone, *got.PhoneNumber)
	assert.Nil(t, got.FirstName)

	require.NoError(t, p.Delete(ctx, userID))
	_, err = p.Get(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, p.Save(ctx, userID, domain.ProfileChange{PhoneNumber: &phone}, 5*time.Minute))
	mr.FastForward(6 * time.Minute)
	_, err = p.Get(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewRedis(t *testing.T) {
	ctx := context.Background()

	t.Run("single node", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Cache{Type: RedisTypeSingle, Timeout: time.Second}
		cfg.Redis.Address = mr.Addr()
		cfg.Redis.DB = 2

		client, err := NewRedis(ctx, cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
		mr.Select(2)
		assert.True(t, mr.Exists("k"))
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cfg := config.Cache{Type: RedisTypeSingle, Timeout: 200 * time.Millisecond}
		cfg.Redis.Address = addr

		_, err := NewRedis(ctx, cfg)
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewRedis(ctx, config.Cache{Type: "memcached"})
		assert.EqualError(t, err, `unknown redis type "memcached"`)
	})
}
