package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/repository"
	"github.com/manara-transit/backend/pkg/clock"
)

type routeService struct {
	routeRepository repository.Routes
	clock           clock.Clocker
}

func newRouteService(routeRepository repository.Routes, clk clock.Clocker) *routeService {
	return &routeService{
		routeRepository: routeRepository,
		clock:           clk,
	}
}

type LocationInput struct {
	Name      string
	Latitude  float64
	Longitude float64
	Address   string
}

type RouteStopInput struct {
	Location      LocationInput
	Sequence      int
	EstimatedTime int
}

type RouteInput struct {
	Name              string
	StartLocation     LocationInput
	EndLocation       LocationInput
	EstimatedDuration int
	IsSaved           bool
	Stops             []RouteStopInput
}

func (s *routeService) Create(ctx context.Context, userID uuid.UUID, input RouteInput) (*domain.Route, error) {
	routeID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate route id failed: %w", err)
	}

	start, err := newLocation(input.StartLocation)
	if err != nil {
		return nil, err
	}
	end, err := newLocation(input.EndLocation)
	if err != nil {
		return nil, err
	}

	route := &domain.Route{
		ID:                routeID,
		Name:              input.Name,
		StartLocation:     start,
		EndLocation:       end,
		EstimatedDuration: input.EstimatedDuration,
		IsSaved:           input.IsSaved,
		CreatedBy:         userID,
		CreatedAt:         s.clock.Now(),
		Stops:             make([]domain.RouteStop, 0, len(input.Stops)),
	}

	seen := make(map[int]struct{}, len(input.Stops))
	for _, in := range input.Stops {
		if _, ok := seen[in.Sequence]; ok {
			return nil, &ValidationError{Field: "stops", Message: fmt.Sprintf("duplicate stop sequence %d", in.Sequence)}
		}
		seen[in.Sequence] = struct{}{}

		stopID, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generate route stop id failed: %w", err)
		}
		loc, err := newLocation(in.Location)
		if err != nil {
			return nil, err
		}
		route.Stops = append(route.Stops, domain.RouteStop{
			ID:            stopID,
			RouteID:       routeID,
			Location:      loc,
			Sequence:      in.Sequence,
			EstimatedTime: in.EstimatedTime,
		})
	}

	if err := s.routeRepository.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("create route failed: %w", err)
	}

	return route, nil
}

func newLocation(in LocationInput) (domain.Location, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Location{}, fmt.Errorf("generate location id failed: %w", err)
	}

	return domain.Location{
		ID:        id,
		Name:      in.Name,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Address:   in.Address,
	}, nil
}

func (s *routeService) List(ctx context.Context, userID uuid.UUID) ([]domain.Route, error) {
	return s.routeRepository.ListByCreator(ctx, userID)
}

func (s *routeService) Saved(ctx context.Context, userID uuid.UUID) ([]domain.Route, error) {
	return s.routeRepository.ListSaved(ctx, userID)
}
