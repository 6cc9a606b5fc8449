package service

import (
	"context"
	"time"

	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/repository"
	"github.com/manara-transit/backend/pkg/auth"
	"github.com/manara-transit/backend/pkg/clock"
	"github.com/manara-transit/backend/pkg/hash"
	"github.com/manara-transit/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	OTPs     OTPs
	Users    Users
	Profiles Profiles
	Trips    Trips
	Routes   Routes
}

type Deps struct {
	Config          *config.Config
	Clock           clock.Clocker
	Hasher          hash.PasswordHasher
	TokenManager    auth.TokenManager
	OtpGenerator    otp.Generator
	Delivery        Deliverer
	Cooldowns       CooldownStore
	Attempts        AttemptStore
	PendingProfiles PendingProfileStore
	Tasks           TaskEnqueuer
	Repos           *repository.Repositories
}

func NewServices(deps Deps) *Services {
	clk := deps.Clock
	if clk == nil {
		clk = clock.New()
	}

	otps := newOTPService(deps.Repos.OTPCodes, deps.OtpGenerator, deps.Delivery, clk, deps.Config.OTP.TTL)
	sessions := newSessionIssuer(deps.Repos.RefreshSession, deps.TokenManager, clk)

	return &Services{
		OTPs: otps,
		Users: newUserService(deps.Repos.Users,
			deps.Repos.RefreshSession,
			otps,
			sessions,
			deps.Cooldowns,
			deps.Attempts,
			deps.Hasher,
			deps.TokenManager,
			deps.Tasks,
			clk,
			deps.Config.OTP,
		),
		Profiles: newProfileService(deps.Repos.Profiles,
			deps.Repos.Users,
			otps,
			deps.PendingProfiles,
			deps.Cooldowns,
			deps.Attempts,
			clk,
			deps.Config.OTP,
		),
		Trips:  newTripService(deps.Repos.Trips, deps.Repos.Routes, clk),
		Routes: newRouteService(deps.Repos.Routes, clk),
	}
}

// OTPs issues and verifies one-time passcodes.
type OTPs interface {
	Create(ctx context.Context, user *domain.User) (*domain.OTPCode, domain.DeliveryChannel, error)
	Verify(ctx context.Context, user *domain.User, code string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type Users interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (*Tokens, error)
	RequestOTP(ctx context.Context, input RequestOTPInput) (*RequestOTPResult, error)
	VerifyOTP(ctx context.Context, input VerifyOTPInput) (*Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken string, userAgent string, userIP string) (*Tokens, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type Profiles interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	RequestUpdate(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UpdateProfileResult, error)
	VerifyUpdate(ctx context.Context, userID uuid.UUID, code string) (*domain.UserProfile, error)
}

type Trips interface {
	Create(ctx context.Context, userID uuid.UUID, input TripInput) (*domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	Upcoming(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	Past(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	Ongoing(ctx context.Context, userID uuid.UUID) (*domain.Trip, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Trip, error)
	Update(ctx context.Context, userID, id uuid.UUID, input TripInput) (*domain.Trip, error)
	Cancel(ctx context.Context, userID, id uuid.UUID) error
}

type Routes interface {
	Create(ctx context.Context, userID uuid.UUID, input RouteInput) (*domain.Route, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Route, error)
	Saved(ctx context.Context, userID uuid.UUID) ([]domain.Route, error)
}

// CooldownStore gates OTP issuance per requester identifier.
type CooldownStore interface {
	Allow(ctx context.Context, identifier string) (bool, error)
	Start(ctx context.Context, identifier string, ttl time.Duration) error
}

// AttemptStore counts failed verifications per requester identifier.
type AttemptStore interface {
	Remaining(ctx context.Context, identifier string, max int) (int, error)
	RecordFailure(ctx context.Context, identifier string, ttl time.Duration) (int64, error)
	Reset(ctx context.Context, identifier string) error
}

type PendingProfileStore interface {
	Save(ctx context.Context, userID uuid.UUID, change domain.ProfileChange, ttl time.Duration) error
	Get(ctx context.Context, userID uuid.UUID) (*domain.ProfileChange, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type TaskEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, email string, fullName string) error
}
