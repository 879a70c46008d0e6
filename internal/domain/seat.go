package domain

import "time"

// Seat IDs are composite human-readable strings, e.g. "12A-B77W-Y"
// (seat number, aircraft type, cabin code). A seat belongs to exactly
// one cabin class and, through it, to one aircraft configuration.
type Seat struct {
	ID                 string
	SeatNumber         string
	CabinClassID       int64
	AircraftConfigID   int64
	Window             bool
	Aisle              bool
	ExitRow            bool
	PriceOverrideCents *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

type CabinClass struct {
	ID               int64
	AircraftConfigID int64
	Code             string
	Name             string
	SeatCount        int
	DeletedAt        *time.Time
}

type AircraftConfig struct {
	ID        int64
	TypeCode  string
	Name      string
	DeletedAt *time.Time
}
