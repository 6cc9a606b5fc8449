package repository

import (
	"context"
	"time"

	"github.com/manara-transit/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users          Users
	OTPCodes       OTPCodes
	Profiles       Profiles
	RefreshSession RefreshSession
	Trips          Trips
	Routes         Routes
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:          newUserRepository(db),
		OTPCodes:       newOTPCodeRepository(db),
		Profiles:       newProfileRepository(db),
		RefreshSession: newRefreshSessionRepository(db),
		Trips:          newTripRepository(db),
		Routes:         newRouteRepository(db),
	}
}

type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// OTPCodes stores issued one-time passcodes. Consume is the only operation
// that must be atomic: it finds a live code and marks it used in one statement.
type OTPCodes interface {
	InvalidateLive(ctx context.Context, userID uuid.UUID, now time.Time) error
	Create(ctx context.Context, code *domain.OTPCode) error
	FindLive(ctx context.Context, userID uuid.UUID, code string, now time.Time) (*domain.OTPCode, error)
	Consume(ctx context.Context, userID uuid.UUID, code string, now time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type Profiles interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	Create(ctx context.Context, profile *domain.UserProfile) error
	Update(ctx context.Context, profile *domain.UserProfile) error
}

type RefreshSession interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
	GetByToken(ctx context.Context, token uuid.UUID) (*domain.RefreshSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Trips interface {
	Create(ctx context.Context, trip *domain.Trip) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	ListUpcoming(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Trip, error)
	ListPast(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	GetOngoing(ctx context.Context, userID uuid.UUID) (*domain.Trip, error)
	Update(ctx context.Context, trip *domain.Trip) error
}

type Routes interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]domain.Route, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.Route, error)
}
