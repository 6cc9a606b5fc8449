package domain

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusScheduled TripStatus = "SCHEDULED"
	TripStatusOngoing   TripStatus = "ONGOING"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

type Trip struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	UserID               uuid.UUID  `db:"user_id" json:"-"`
	RouteID              uuid.UUID  `db:"route_id" json:"route"`
	Status               TripStatus `db:"status" json:"status"`
	ScheduledTime        time.Time  `db:"scheduled_time" json:"scheduled_time"`
	EstimatedArrivalTime *time.Time `db:"estimated_arrival_time" json:"estimated_arrival_time"`
	ActualArrivalTime    *time.Time `db:"actual_arrival_time" json:"actual_arrival_time"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusScheduled, TripStatusOngoing, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}
