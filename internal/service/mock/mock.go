package mock_service

import (
	"context"

	"github.com/google/uuid"
	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/service"

	"github.com/stretchr/testify/mock"
)

func tokensResult(args mock.Arguments) (*service.Tokens, error) {
	t, _ := args.Get(0).(*service.Tokens)
	return t, args.Error(1)
}

type Users struct {
	mock.Mock
}

func (m *Users) Register(ctx context.Context, input service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *Users) Login(ctx context.Context, input service.LoginInput) (*service.Tokens, error) {
	return tokensResult(m.Called(ctx, input))
}

func (m *Users) RequestOTP(ctx context.Context, input service.RequestOTPInput) (*service.RequestOTPResult, error) {
	args := m.Called(ctx, input)
	r, _ := args.Get(0).(*service.RequestOTPResult)
	return r, args.Error(1)
}

func (m *Users) VerifyOTP(ctx context.Context, input service.VerifyOTPInput) (*service.Tokens, error) {
	return tokensResult(m.Called(ctx, input))
}

func (m *Users) RefreshTokens(ctx context.Context, refreshToken string, userAgent string, userIP string) (*service.Tokens, error) {
	return tokensResult(m.Called(ctx, refreshToken, userAgent, userIP))
}

func (m *Users) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *Users) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

type Profiles struct {
	mock.Mock
}

func (m *Profiles) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*domain.UserProfile)
	return p, args.Error(1)
}

func (m *Profiles) RequestUpdate(ctx context.Context, userID uuid.UUID, input service.UpdateProfileInput) (*service.UpdateProfileResult, error) {
	args := m.Called(ctx, userID, input)
	r, _ := args.Get(0).(*service.UpdateProfileResult)
	return r, args.Error(1)
}

func (m *Profiles) VerifyUpdate(ctx context.Context, userID uuid.UUID, code string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID, code)
	p, _ := args.Get(0).(*domain.UserProfile)
	return p, args.Error(1)
}

type Trips struct {
	mock.Mock
}

func tripsResult(args mock.Arguments) ([]domain.Trip, error) {
	t, _ := args.Get(0).([]domain.Trip)
	return t, args.Error(1)
}

func tripResult(args mock.Arguments) (*domain.Trip, error) {
	t, _ := args.Get(0).(*domain.Trip)
	return t, args.Error(1)
}

func (m *Trips) Create(ctx context.Context, userID uuid.UUID, input service.TripInput) (*domain.Trip, error) {
	return tripResult(m.Called(ctx, userID, input))
}

func (m *Trips) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return tripsResult(m.Called(ctx, userID))
}

func (m *Trips) Upcoming(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return tripsResult(m.Called(ctx, userID))
}

func (m *Trips) Past(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return tripsResult(m.Called(ctx, userID))
}

func (m *Trips) Ongoing(ctx context.Context, userID uuid.UUID) (*domain.Trip, error) {
	return tripResult(m.Called(ctx, userID))
}

func (m *Trips) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Trip, error) {
	return tripResult(m.Called(ctx, userID, id))
}

func (m *Trips) Update(ctx context.Context, userID, id uuid.UUID, input service.TripInput) (*domain.Trip, error) {
	return tripResult(m.Called(ctx, userID, id, input))
}

func (m *Trips) Cancel(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type Routes struct {
	mock.Mock
}

func routesResult(args mock.Arguments) ([]domain.Route, error) {
	r, _ := args.Get(0).([]domain.Route)
	return r, args.Error(1)
}

func (m *Routes) Create(ctx context.Context, userID uuid.UUID, input service.RouteInput) (*domain.Route, error) {
	args := m.Called(ctx, userID, input)
	r, _ := args.Get(0).(*domain.Route)
	return r, args.Error(1)
}

func (m *Routes) List(ctx context.Context, userID uuid.UUID) ([]domain.Route, error) {
	return routesResult(m.Called(ctx, userID))
}

func (m *Routes) Saved(ctx context.Context, userID uuid.UUID) ([]domain.Route, error) {
	return routesResult(m.Called(ctx, userID))
}

type OTPs struct {
	mock.Mock
}

func (m *OTPs) Create(ctx context.Context, user *domain.User) (*domain.OTPCode, domain.DeliveryChannel, error) {
	args := m.Called(ctx, user)
	code, _ := args.Get(0).(*domain.OTPCode)
	channel, _ := args.Get(1).(domain.DeliveryChannel)
	return code, channel, args.Error(2)
}

func (m *OTPs) Verify(ctx context.Context, user *domain.User, code string) error {
	return m.Called(ctx, user, code).Error(0)
}

func (m *OTPs) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}
