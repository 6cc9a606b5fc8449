package mock_repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/manara-transit/backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

func userResult(args mock.Arguments) (*domain.User, error) {
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

type Users struct {
	mock.Mock
}

func (m *Users) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *Users) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}

func (m *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return userResult(m.Called(ctx, email))
}

func (m *Users) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return userResult(m.Called(ctx, phone))
}

func (m *Users) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Users) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type OTPCodes struct {
	mock.Mock
}

func (m *OTPCodes) InvalidateLive(ctx context.Context, userID uuid.UUID, now time.Time) error {
	return m.Called(ctx, userID, now).Error(0)
}

func (m *OTPCodes) Create(ctx context.Context, code *domain.OTPCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *OTPCodes) FindLive(ctx context.Context, userID uuid.UUID, code string, now time.Time) (*domain.OTPCode, error) {
	args := m.Called(ctx, userID, code, now)
	otp, _ := args.Get(0).(*domain.OTPCode)
	return otp, args.Error(1)
}

func (m *OTPCodes) Consume(ctx context.Context, userID uuid.UUID, code string, now time.Time) error {
	return m.Called(ctx, userID, code, now).Error(0)
}

func (m *OTPCodes) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *OTPCodes) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type Profiles struct {
	mock.Mock
}

func (m *Profiles) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*domain.UserProfile)
	return p, args.Error(1)
}

func (m *Profiles) Create(ctx context.Context, profile *domain.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *Profiles) Update(ctx context.Context, profile *domain.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type RefreshSession struct {
	mock.Mock
}

func (m *RefreshSession) Create(ctx context.Context, session *domain.RefreshSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *RefreshSession) GetByToken(ctx context.Context, token uuid.UUID) (*domain.RefreshSession, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(*domain.RefreshSession)
	return s, args.Error(1)
}

func (m *RefreshSession) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type Trips struct {
	mock.Mock
}

func (m *Trips) Create(ctx context.Context, trip *domain.Trip) error {
	return m.Called(ctx, trip).Error(0)
}

func (m *Trips) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Trip, error) {
	args := m.Called(ctx, userID, id)
	t, _ := args.Get(0).(*domain.Trip)
	return t, args.Error(1)
}

func (m *Trips) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	args := m.Called(ctx, userID)
	trips, _ := args.Get(0).([]domain.Trip)
	return trips, args.Error(1)
}

func (m *Trips) ListUpcoming(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Trip, error) {
	args := m.Called(ctx, userID, now)
	trips, _ := args.Get(0).([]domain.Trip)
	return trips, args.Error(1)
}

func (m *Trips) ListPast(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	args := m.Called(ctx, userID)
	trips, _ := args.Get(0).([]domain.Trip)
	return trips, args.Error(1)
}

func (m *Trips) GetOngoing(ctx context.Context, userID uuid.UUID) (*domain.Trip, error) {
	args := m.Called(ctx, userID)
	t, _ := args.Get(0).(*domain.Trip)
	return t, args.Error(1)
}

func (m *Trips) Update(ctx context.Context, trip *domain.Trip) error {
	return m.Called(ctx, trip).Error(0)
}

type Routes struct {
	mock.Mock
}

func (m *Routes) Create(ctx context.Context, route *domain.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *Routes) GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Route)
	return r, args.Error(1)
}

func (m *Routes) ListByCreator(ctx context.Context, userID uuid.UUID) ([]domain.Route, error) {
	args := m.Called(ctx, userID)
	routes, _ := args.Get(0).([]domain.Route)
	return routes, args.Error(1)
}

func (m *Routes) ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.Route, error) {
	args := m.Called(ctx, userID)
	routes, _ := args.Get(0).([]domain.Route)
	return routes, args.Error(1)
}
