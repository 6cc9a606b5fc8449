package domain

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	Address   string    `db:"address" json:"address"`
}

type RouteStop struct {
	ID            uuid.UUID `db:"id" json:"id"`
	RouteID       uuid.UUID `db:"route_id" json:"-"`
	Location      Location  `db:"location" json:"location"`
	Sequence      int       `db:"sequence" json:"sequence"`
	EstimatedTime int       `db:"estimated_time" json:"estimated_time"`
}

type Route struct {
	ID                uuid.UUID   `db:"id" json:"id"`
	Name              string      `db:"name" json:"name"`
	StartLocation     Location    `db:"start" json:"start_location"`
	EndLocation       Location    `db:"end" json:"end_location"`
	EstimatedDuration int         `db:"estimated_duration" json:"estimated_duration"`
	IsSaved           bool        `db:"is_saved" json:"is_saved"`
	CreatedBy         uuid.UUID   `db:"created_by" json:"-"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`
	Stops             []RouteStop `db:"-" json:"stops"`
}
