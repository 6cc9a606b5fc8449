package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/manara-transit/backend/internal/domain"
)

const routeSelect = `
	SELECT r.id, r.name, r.estimated_duration, r.is_saved, r.created_by, r.created_at,
		s.id "start.id", s.name "start.name", s.latitude "start.latitude", s.longitude "start.longitude", s.address "start.address",
		e.id "end.id", e.name "end.name", e.latitude "end.latitude", e.longitude "end.longitude", e.address "end.address"
	FROM route r
	JOIN location s ON s.id = r.start_location_id
	JOIN location e ON e.id = r.end_location_id
`

type routeRepository struct {
	db *sqlx.DB
}

func newRouteRepository(db *sqlx.DB) *routeRepository {
	return &routeRepository{
		db: db,
	}
}

// Create stores the route, its start and end locations and its stops in one transaction.
func (r *routeRepository) Create(ctx context.Context, route *domain.Route) error {
	const op = "repository.route.Create"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx failed: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertLocation(ctx, tx, &route.StartLocation); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := insertLocation(ctx, tx, &route.EndLocation); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	const routeQuery = `
	INSERT INTO route (id, name, start_location_id, end_location_id, estimated_duration, is_saved, created_by, created_at)
	VALUES (uuid_to_bin(?), ?, uuid_to_bin(?), uuid_to_bin(?), ?, ?, uuid_to_bin(?), ?)
	`
	if _, err := tx.ExecContext(ctx, routeQuery,
		route.ID, route.Name, route.StartLocation.ID, route.EndLocation.ID,
		route.EstimatedDuration, route.IsSaved, route.CreatedBy, route.CreatedAt,
	); err != nil {
		return fmt.Errorf("%s: insert route failed: %w", op, err)
	}

	const stopQuery = `
	INSERT INTO route_stop (id, route_id, location_id, sequence, estimated_time)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?), ?, ?)
	`
	for i := range route.Stops {
		stop := &route.Stops[i]
		if err := insertLocation(ctx, tx, &stop.Location); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if _, err := tx.ExecContext(ctx, stopQuery, stop.ID, route.ID, stop.Location.ID, stop.Sequence, stop.EstimatedTime); err != nil {
			return fmt.Errorf("%s: insert route_stop failed: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit failed: %w", op, err)
	}

	return nil
}

func insertLocation(ctx context.Context, tx *sqlx.Tx, loc *domain.Location) error {
	const query = `
	INSERT INTO location (id, name, latitude, longitude, address)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query, loc.ID, loc.Name, loc.Latitude, loc.Longitude, loc.Address); err != nil {
		return fmt.Errorf("insert location failed: %w", err)
	}

	return nil
}

func (r *routeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	const op = "repository.route.GetByID"

	var route domain.Route
	if err := r.db.GetContext(ctx, &route, routeSelect+` WHERE r.id = uuid_to_bin(?)`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select route failed: %w", op, err)
	}

	stops, err := r.stops(ctx, route.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	route.Stops = stops

	return &route, nil
}

func (r *routeRepository) ListByCreator(ctx context.Context, userID uuid.UUID) ([]domain.Route, error) {
	return r.list(ctx, "repository.route.ListByCreator",
		routeSelect+` WHERE r.created_by = uuid_to_bin(?) ORDER BY r.created_at DESC`, userID)
}

func (r *routeRepository) ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.Route, error) {
	return r.list(ctx, "repository.route.ListSaved",
		routeSelect+` WHERE r.created_by = uuid_to_bin(?) AND r.is_saved = TRUE ORDER BY r.created_at DESC`, userID)
}

func (r *routeRepository) list(ctx context.Context, op, query string, userID uuid.UUID) ([]domain.Route, error) {
	routes := make([]domain.Route, 0)
	if err := r.db.SelectContext(ctx, &routes, query, userID); err != nil {
		return nil, fmt.Errorf("%s: select routes failed: %w", op, err)
	}

	for i := range routes {
		stops, err := r.stops(ctx, routes[i].ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		routes[i].Stops = stops
	}

	return routes, nil
}

func (r *routeRepository) stops(ctx context.Context, routeID uuid.UUID) ([]domain.RouteStop, error) {
	const query = `
	SELECT rs.id, rs.route_id, rs.sequence, rs.estimated_time,
		l.id "location.id", l.name "location.name", l.latitude "location.latitude",
		l.longitude "location.longitude", l.address "location.address"
	FROM route_stop rs
	JOIN location l ON l.id = rs.location_id
	WHERE rs.route_id = uuid_to_bin(?)
	ORDER BY rs.sequence ASC
	`

	stops := make([]domain.RouteStop, 0)
	if err := r.db.SelectContext(ctx, &stops, query, routeID); err != nil {
		return nil, fmt.Errorf("select route stops failed: %w", err)
	}

	return stops, nil
}
