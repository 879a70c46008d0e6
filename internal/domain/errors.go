package domain

// Sentinel error kinds shared by the seat-allocation and schedule
// services. Handlers classify failures with errors.Is; ConflictError
// adds the identifiers the caller needs for an actionable message.

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced booking, passenger,
	// seat, flight instance, crew member or aircraft does not exist
	// (or is soft-deleted).
	ErrNotFound = errors.New("not found")

	// ErrSeatAlreadyAssigned is returned when a seat is held by a
	// different active passenger on the same flight instance.
	ErrSeatAlreadyAssigned = errors.New("seat already assigned")

	// ErrSeatNotOnAircraft is returned when the seat belongs to a
	// different aircraft configuration than the flight's aircraft.
	ErrSeatNotOnAircraft = errors.New("seat not on aircraft")

	// ErrInvalidFlightState is returned for assignment attempts against
	// flights that are not Scheduled or Delayed.
	ErrInvalidFlightState = errors.New("invalid flight state")

	ErrAircraftConflict       = errors.New("aircraft schedule conflict")
	ErrCrewConflict           = errors.New("crew schedule conflict")
	ErrAircraftNotOperational = errors.New("aircraft not operational")
	ErrNotQualified           = errors.New("crew member not qualified")

	// ErrStorageConflict covers low-level constraint or serialization
	// failures not classified as one of the domain conflicts above.
	ErrStorageConflict = errors.New("storage conflict")
)

// ConflictError wraps one of the conflict sentinels with the identifiers
// involved. ConflictingFlightID is set for schedule conflicts.
type ConflictError struct {
	Kind                error
	FlightInstanceID    int64
	ConflictingFlightID int64
	SeatID              string
	TailNumber          string
	CrewMemberID        int64
}

func (e *ConflictError) Error() string {
	msg := e.Kind.Error()
	if e.SeatID != "" {
		msg = fmt.Sprintf("%s: seat %s on flight instance %d", msg, e.SeatID, e.FlightInstanceID)
	} else if e.FlightInstanceID != 0 {
		msg = fmt.Sprintf("%s: flight instance %d", msg, e.FlightInstanceID)
	}
	if e.TailNumber != "" {
		msg = fmt.Sprintf("%s, aircraft %s", msg, e.TailNumber)
	}
	if e.CrewMemberID != 0 {
		msg = fmt.Sprintf("%s, crew member %d", msg, e.CrewMemberID)
	}
	if e.ConflictingFlightID != 0 {
		msg = fmt.Sprintf("%s, conflicts with flight instance %d", msg, e.ConflictingFlightID)
	}
	return msg
}

func (e *ConflictError) Unwrap() error { return e.Kind }
