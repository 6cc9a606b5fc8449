package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/manara-transit/backend/internal/cache"
	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/repository"
	mock_repository "github.com/manara-transit/backend/internal/repository/mock"
	"github.com/manara-transit/backend/pkg/auth"
	"github.com/manara-transit/backend/pkg/clock"
	"github.com/manara-transit/backend/pkg/hash"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// memOTPStore is an in-memory repository.OTPCodes with the same consume semantics
// as the SQL conditional update.
type memOTPStore struct {
	mu           sync.Mutex
	rows         map[uuid.UUID]*domain.OTPCode
	consumeCalls int
}

func newMemOTPStore() *memOTPStore {
	return &memOTPStore{rows: make(map[uuid.UUID]*domain.OTPCode)}
}

func (s *memOTPStore) InvalidateLive(_ context.Context, userID uuid.UUID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.UserID == userID && r.IsLive(now) {
			r.ExpiresAt = now
		}
	}
	return nil
}

func (s *memOTPStore) Create(_ context.Context, code *domain.OTPCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *code
	s.rows[code.ID] = &row
	return nil
}

func (s *memOTPStore) FindLive(_ context.Context, userID uuid.UUID, code string, now time.Time) (*domain.OTPCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.UserID == userID && r.Code == code && r.IsLive(now) {
			row := *r
			return &row, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memOTPStore) Consume(_ context.Context, userID uuid.UUID, code string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumeCalls++
	for _, r := range s.rows {
		if r.UserID == userID && r.Code == code && r.IsLive(now) {
			r.IsUsed = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *memOTPStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *memOTPStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, r := range s.rows {
		if r.ExpiresAt.Before(now) {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

func (s *memOTPStore) count(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rows {
		if r.UserID == userID {
			n++
		}
	}
	return n
}

func (s *memOTPStore) liveCount(userID uuid.UUID, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rows {
		if r.UserID == userID && r.IsLive(now) {
			n++
		}
	}
	return n
}

func (s *memOTPStore) consumes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consumeCalls
}

// sequenceGenerator returns codes in order and repeats the last one.
type sequenceGenerator struct {
	mu    sync.Mutex
	codes []string
}

func (g *sequenceGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	code := g.codes[0]
	if len(g.codes) > 1 {
		g.codes = g.codes[1:]
	}
	return code, nil
}

type fakeDeliverer struct {
	mu      sync.Mutex
	err     error
	channel domain.DeliveryChannel
	sent    []string
}

func (d *fakeDeliverer) Deliver(_ context.Context, _ *domain.User, code string) (domain.DeliveryChannel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return "", d.err
	}
	d.sent = append(d.sent, code)
	if d.channel == "" {
		return domain.DeliveryChannelSMS, nil
	}
	return d.channel, nil
}

type fakeTasks struct {
	mu      sync.Mutex
	welcome []string
}

func (f *fakeTasks) EnqueueWelcomeEmail(_ context.Context, email string, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcome = append(f.welcome, email)
	return nil
}

type testEnv struct {
	services  *Services
	redis     *miniredis.Miniredis
	clock     *clock.Fixed
	store     *memOTPStore
	delivery  *fakeDeliverer
	generator *sequenceGenerator
	tasks     *fakeTasks
	attempts  *cache.Attempts
	cooldowns *cache.Cooldowns
	pending   *cache.PendingProfileChanges
	users     *mock_repository.Users
	profiles  *mock_repository.Profiles
	sessions  *mock_repository.RefreshSession
	trips     *mock_repository.Trips
	routes    *mock_repository.Routes
	tokens    *auth.Manager
}

func testOTPConfig() config.OTPConfig {
	return config.OTPConfig{
		Generator:   "digits",
		TTL:         10 * time.Minute,
		Cooldown:    60 * time.Second,
		MaxAttempts: 3,
		AttemptsTTL: 5 * time.Minute,
		PendingTTL:  5 * time.Minute,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	tokens, err := auth.NewManager(config.JWTConfig{
		SigningKey:      "test-signing-key",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 240 * time.Hour,
	})
	require.NoError(t, err)

	env := &testEnv{
		redis:     mr,
		clock:     clock.NewFixed(testNow),
		store:     newMemOTPStore(),
		delivery:  &fakeDeliverer{},
		generator: &sequenceGenerator{codes: []string{"042917"}},
		tasks:     &fakeTasks{},
		attempts:  cache.NewAttempts(rdb),
		cooldowns: cache.NewCooldowns(rdb),
		pending:   cache.NewPendingProfileChanges(rdb),
		users:     new(mock_repository.Users),
		profiles:  new(mock_repository.Profiles),
		sessions:  new(mock_repository.RefreshSession),
		trips:     new(mock_repository.Trips),
		routes:    new(mock_repository.Routes),
		tokens:    tokens,
	}

	env.services = NewServices(Deps{
		Config:          &config.Config{OTP: testOTPConfig()},
		Clock:           env.clock,
		Hasher:          hash.NewBcryptHasher(4),
		TokenManager:    tokens,
		OtpGenerator:    env.generator,
		Delivery:        env.delivery,
		Cooldowns:       env.cooldowns,
		Attempts:        env.attempts,
		PendingProfiles: env.pending,
		Tasks:           env.tasks,
		Repos: &repository.Repositories{
			Users:          env.users,
			OTPCodes:       env.store,
			Profiles:       env.profiles,
			RefreshSession: env.sessions,
			Trips:          env.trips,
			Routes:         env.routes,
		},
	})

	return env
}

func aliceUser() *domain.User {
	return &domain.User{
		ID:          uuid.New(),
		Email:       "alice@example.com",
		PhoneNumber: "+15551234567",
		FullName:    "Alice Wanjiru",
		UserType:    domain.UserTypeCommuter,
		IsActive:    true,
		DateJoined:  testNow,
	}
}
