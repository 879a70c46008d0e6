package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "SCHEDULED"
	FlightStatusDelayed   FlightStatus = "DELAYED"
	FlightStatusDeparted  FlightStatus = "DEPARTED"
	FlightStatusArrived   FlightStatus = "ARRIVED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
)

// AllowsAssignment reports whether seat/aircraft/crew assignments may be
// made against a flight in this status.
func (s FlightStatus) AllowsAssignment() bool {
	return s == FlightStatusScheduled || s == FlightStatusDelayed
}

// CanTransitionTo reports whether next is a legal status transition.
func (s FlightStatus) CanTransitionTo(next FlightStatus) bool {
	switch s {
	case FlightStatusScheduled:
		return next == FlightStatusDelayed || next == FlightStatusDeparted || next == FlightStatusCancelled
	case FlightStatusDelayed:
		return next == FlightStatusDeparted || next == FlightStatusCancelled
	case FlightStatusDeparted:
		return next == FlightStatusArrived
	default:
		return false
	}
}

// FlightInstance is one concrete, dated occurrence of a flight.
// TailNumber is nil until an aircraft is assigned; AircraftConfigID is
// resolved through the assigned aircraft and is zero while unassigned.
type FlightInstance struct {
	ID                 int64
	FlightNumber       string
	TailNumber         *string
	AircraftConfigID   int64
	ScheduledDeparture time.Time
	ScheduledArrival   time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	Status             FlightStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// Window returns the flight's effective [departure, arrival) interval,
// preferring actual times over scheduled ones.
func (f *FlightInstance) Window() (time.Time, time.Time) {
	dep := f.ScheduledDeparture
	arr := f.ScheduledArrival
	if f.ActualDeparture != nil {
		dep = *f.ActualDeparture
	}
	if f.ActualArrival != nil {
		arr = *f.ActualArrival
	}
	return dep, arr
}
