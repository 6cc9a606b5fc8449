package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/repository"
	"github.com/manara-transit/backend/pkg/clock"
)

type tripService struct {
	tripRepository  repository.Trips
	routeRepository repository.Routes
	clock           clock.Clocker
}

func newTripService(tripRepository repository.Trips, routeRepository repository.Routes, clk clock.Clocker) *tripService {
	return &tripService{
		tripRepository:  tripRepository,
		routeRepository: routeRepository,
		clock:           clk,
	}
}

// TripInput carries the writable trip fields. Nil fields are left unchanged on update.
type TripInput struct {
	RouteID              *uuid.UUID
	Status               *domain.TripStatus
	ScheduledTime        *time.Time
	EstimatedArrivalTime *time.Time
	ActualArrivalTime    *time.Time
}

func (in TripInput) apply(t *domain.Trip) {
	if in.RouteID != nil {
		t.RouteID = *in.RouteID
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.ScheduledTime != nil {
		t.ScheduledTime = *in.ScheduledTime
	}
	if in.EstimatedArrivalTime != nil {
		t.EstimatedArrivalTime = in.EstimatedArrivalTime
	}
	if in.ActualArrivalTime != nil {
		t.ActualArrivalTime = in.ActualArrivalTime
	}
}

func (s *tripService) Create(ctx context.Context, userID uuid.UUID, input TripInput) (*domain.Trip, error) {
	if input.RouteID == nil {
		return nil, &ValidationError{Field: "route", Message: "this field is required"}
	}
	if input.ScheduledTime == nil {
		return nil, &ValidationError{Field: "scheduled_time", Message: "this field is required"}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate trip id failed: %w", err)
	}

	now := s.clock.Now()
	trip := &domain.Trip{
		ID:        id,
		UserID:    userID,
		Status:    domain.TripStatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.apply(trip)

	if err := s.validate(ctx, trip, now); err != nil {
		return nil, err
	}

	if err := s.tripRepository.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip failed: %w", err)
	}

	return trip, nil
}

func (s *tripService) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return s.tripRepository.ListByUser(ctx, userID)
}

func (s *tripService) Upcoming(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return s.tripRepository.ListUpcoming(ctx, userID, s.clock.Now())
}

func (s *tripService) Past(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return s.tripRepository.ListPast(ctx, userID)
}

func (s *tripService) Ongoing(ctx context.Context, userID uuid.UUID) (*domain.Trip, error) {
	trip, err := s.tripRepository.GetOngoing(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("get ongoing trip failed: %w", err)
	}

	return trip, nil
}

func (s *tripService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Trip, error) {
	trip, err := s.tripRepository.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("get trip failed: %w", err)
	}

	return trip, nil
}

func (s *tripService) Update(ctx context.Context, userID, id uuid.UUID, input TripInput) (*domain.Trip, error) {
	trip, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	input.apply(trip)
	trip.UpdatedAt = now

	if err := s.validate(ctx, trip, now); err != nil {
		return nil, err
	}

	if err := s.tripRepository.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("update trip failed: %w", err)
	}

	return trip, nil
}

// Cancel marks the trip cancelled; trips are never deleted.
func (s *tripService) Cancel(ctx context.Context, userID, id uuid.UUID) error {
	trip, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	trip.Status = domain.TripStatusCancelled
	trip.UpdatedAt = s.clock.Now()

	if err := s.tripRepository.Update(ctx, trip); err != nil {
		return fmt.Errorf("cancel trip failed: %w", err)
	}

	return nil
}

func (s *tripService) validate(ctx context.Context, trip *domain.Trip, now time.Time) error {
	if err := validateTripTimes(trip, now); err != nil {
		return err
	}

	if _, err := s.routeRepository.GetByID(ctx, trip.RouteID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrRouteNotFound
		}
		return fmt.Errorf("get route failed: %w", err)
	}

	return nil
}

// validateTripTimes checks the status dependent constraints on trip times.
func validateTripTimes(trip *domain.Trip, now time.Time) error {
	actual := trip.ActualArrivalTime
	estimated := trip.EstimatedArrivalTime

	switch trip.Status {
	case domain.TripStatusScheduled:
		if trip.ScheduledTime.Before(now) {
			return &ValidationError{Field: "scheduled_time", Message: "scheduled time must be in the future"}
		}
		if actual != nil {
			return &ValidationError{Field: "actual_arrival_time", Message: "actual arrival time should not be set for scheduled trips"}
		}
	case domain.TripStatusOngoing:
		if trip.ScheduledTime.After(now) {
			return &ValidationError{Field: "scheduled_time", Message: "scheduled time must be in the past for ongoing trips"}
		}
		if estimated != nil && estimated.Before(now) {
			return &ValidationError{Field: "estimated_arrival_time", Message: "estimated arrival time must be in the future for ongoing trips"}
		}
		if actual != nil {
			return &ValidationError{Field: "actual_arrival_time", Message: "actual arrival time should not be set for ongoing trips"}
		}
	case domain.TripStatusCompleted:
		if actual == nil {
			return &ValidationError{Field: "actual_arrival_time", Message: "actual arrival time is required for completed trips"}
		}
		if actual.After(now) {
			return &ValidationError{Field: "actual_arrival_time", Message: "actual arrival time must be in the past for completed trips"}
		}
		if trip.ScheduledTime.After(*actual) {
			return &ValidationError{Field: "scheduled_time", Message: "scheduled time must be before actual arrival time"}
		}
	case domain.TripStatusCancelled:
		if actual != nil {
			return &ValidationError{Field: "actual_arrival_time", Message: "actual arrival time should not be set for cancelled trips"}
		}
	default:
		return &ValidationError{Field: "status", Message: fmt.Sprintf("%q is not a valid choice", trip.Status)}
	}

	return nil
}
