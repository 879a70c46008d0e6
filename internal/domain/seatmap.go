package domain

// SeatMap is the per-flight occupancy view: every seat of the assigned
// aircraft configuration with its current hold state.
type SeatMap struct {
	FlightInstanceID int64          `json:"flight_instance_id"`
	AircraftConfigID int64          `json:"aircraft_config_id"`
	Seats            []SeatMapEntry `json:"seats"`
}

type SeatMapEntry struct {
	Seat     Seat `json:"seat"`
	Occupied bool `json:"occupied"`
}

// SeatCounts is the capacity read model consumed by load-factor and
// overbooking checks upstream.
type SeatCounts struct {
	FlightInstanceID int64 `json:"flight_instance_id"`
	TotalCapacity    int   `json:"total_capacity"`
	BookedSeats      int   `json:"booked_seats"`
}
