package domain

import "time"

// BookingPassenger links a passenger on a booking to a flight instance
// and, optionally, to a seat. Keyed by (BookingID, PassengerID). For any
// flight instance a seat ID may appear on at most one active row; that
// uniqueness is the central inventory invariant and is enforced by the
// storage layer.
type BookingPassenger struct {
	BookingID        int64
	PassengerID      int64
	FlightInstanceID int64
	SeatID           *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// FlightCrew links a crew member to a flight instance. Keyed by
// (FlightInstanceID, CrewMemberID).
type FlightCrew struct {
	FlightInstanceID int64
	CrewMemberID     int64
	Role             string
	CreatedAt        time.Time
	DeletedAt        *time.Time
}

// Certification records that a crew member holds a type rating for an
// aircraft type.
type Certification struct {
	ID           int64
	CrewMemberID int64
	TypeCode     string
	ExpiresAt    *time.Time
	DeletedAt    *time.Time
}

type AircraftStatus string

const (
	AircraftStatusOperational AircraftStatus = "OPERATIONAL"
	AircraftStatusMaintenance AircraftStatus = "MAINTENANCE"
	AircraftStatusGrounded    AircraftStatus = "GROUNDED"
	AircraftStatusRetired     AircraftStatus = "RETIRED"
)

func (s AircraftStatus) CanFly() bool {
	return s == AircraftStatusOperational
}

type Aircraft struct {
	TailNumber       string
	AircraftConfigID int64
	TypeCode         string
	Status           AircraftStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}
