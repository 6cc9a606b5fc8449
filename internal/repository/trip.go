package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/manara-transit/backend/internal/domain"
)

const tripColumns = `id, user_id, route_id, status, scheduled_time, estimated_arrival_time, actual_arrival_time, created_at, updated_at`

type tripRepository struct {
	db *sqlx.DB
}

func newTripRepository(db *sqlx.DB) *tripRepository {
	return &tripRepository{
		db: db,
	}
}

func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	const op = "repository.trip.Create"

	const query = `
	INSERT INTO trip (id, user_id, route_id, status, scheduled_time, estimated_arrival_time, actual_arrival_time, created_at, updated_at)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), uuid_to_bin(:route_id), :status, :scheduled_time,
		:estimated_arrival_time, :actual_arrival_time, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, trip); err != nil {
		return fmt.Errorf("%s: insert trip failed: %w", op, err)
	}

	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Trip, error) {
	const op = "repository.trip.GetByID"

	const query = `SELECT ` + tripColumns + ` FROM trip WHERE id = uuid_to_bin(?) AND user_id = uuid_to_bin(?)`

	var trip domain.Trip
	if err := r.db.GetContext(ctx, &trip, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select trip failed: %w", op, err)
	}

	return &trip, nil
}

func (r *tripRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const query = `SELECT ` + tripColumns + ` FROM trip WHERE user_id = uuid_to_bin(?) ORDER BY scheduled_time DESC`
	return r.list(ctx, "repository.trip.ListByUser", query, userID)
}

func (r *tripRepository) ListUpcoming(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Trip, error) {
	const query = `SELECT ` + tripColumns + ` FROM trip
	WHERE user_id = uuid_to_bin(?) AND status = 'SCHEDULED' AND scheduled_time >= ?
	ORDER BY scheduled_time ASC`
	return r.list(ctx, "repository.trip.ListUpcoming", query, userID, now)
}

func (r *tripRepository) ListPast(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const query = `SELECT ` + tripColumns + ` FROM trip
	WHERE user_id = uuid_to_bin(?) AND status = 'COMPLETED'
	ORDER BY scheduled_time DESC`
	return r.list(ctx, "repository.trip.ListPast", query, userID)
}

func (r *tripRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]domain.Trip, error) {
	trips := make([]domain.Trip, 0)
	if err := r.db.SelectContext(ctx, &trips, query, args...); err != nil {
		return nil, fmt.Errorf("%s: select trips failed: %w", op, err)
	}

	return trips, nil
}

func (r *tripRepository) GetOngoing(ctx context.Context, userID uuid.UUID) (*domain.Trip, error) {
	const op = "repository.trip.GetOngoing"

	const query = `SELECT ` + tripColumns + ` FROM trip
	WHERE user_id = uuid_to_bin(?) AND status = 'ONGOING'
	ORDER BY scheduled_time ASC LIMIT 1`

	var trip domain.Trip
	if err := r.db.GetContext(ctx, &trip, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select trip failed: %w", op, err)
	}

	return &trip, nil
}

func (r *tripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	const op = "repository.trip.Update"

	const query = `
	UPDATE trip
	SET route_id = uuid_to_bin(:route_id), status = :status, scheduled_time = :scheduled_time,
		estimated_arrival_time = :estimated_arrival_time, actual_arrival_time = :actual_arrival_time,
		updated_at = :updated_at
	WHERE id = uuid_to_bin(:id) AND user_id = uuid_to_bin(:user_id)
	`

	if _, err := r.db.NamedExecContext(ctx, query, trip); err != nil {
		return fmt.Errorf("%s: update trip failed: %w", op, err)
	}

	return nil
}
