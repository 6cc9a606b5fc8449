package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manara-transit/backend/internal/domain"
)

var tripColumnNames = []string{"id", "user_id", "route_id", "status", "scheduled_time", "estimated_arrival_time", "actual_arrival_time", "created_at", "updated_at"}

func TestTripRepository_ListUpcoming(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newTripRepository(db)
	userID, routeID := uuid.New(), uuid.New()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(tripColumnNames).
		AddRow(uuid.New().String(), userID.String(), routeID.String(), "SCHEDULED", now.Add(time.Hour), nil, nil, now, now).
		AddRow(uuid.New().String(), userID.String(), routeID.String(), "SCHEDULED", now.Add(2*time.Hour), now.Add(3*time.Hour), nil, now, now)
	mock.ExpectQuery(`status = 'SCHEDULED' AND scheduled_time >= \?\s+ORDER BY scheduled_time ASC`).
		WithArgs(userID, now).
		WillReturnRows(rows)

	trips, err := repo.ListUpcoming(context.Background(), userID, now)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, domain.TripStatusScheduled, trips[0].Status)
	assert.Nil(t, trips[0].EstimatedArrivalTime)
	require.NotNil(t, trips[1].EstimatedArrivalTime)
	assert.Equal(t, now.Add(3*time.Hour), *trips[1].EstimatedArrivalTime)
}

func TestTripRepository_ListPast_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newTripRepository(db)

	mock.ExpectQuery(`status = 'COMPLETED'`).WillReturnRows(sqlmock.NewRows(tripColumnNames))

	trips, err := repo.ListPast(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Empty(t, trips)
}

func TestTripRepository_GetOngoing_None(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newTripRepository(db)

	mock.ExpectQuery(`status = 'ONGOING'`).WillReturnRows(sqlmock.NewRows(tripColumnNames))

	_, err := repo.GetOngoing(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newTripRepository(db)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	trip := &domain.Trip{ID: uuid.New(), UserID: uuid.New(), RouteID: uuid.New(), Status: domain.TripStatusCancelled, ScheduledTime: now, UpdatedAt: now}

	mock.ExpectExec(`UPDATE trip`).
		WithArgs(trip.RouteID, domain.TripStatusCancelled, now, nil, nil, now, trip.ID, trip.UserID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), trip))
}
