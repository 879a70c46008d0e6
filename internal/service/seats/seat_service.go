package seats

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/domain"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/kafka"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/repository"
	"github.com/google/uuid"
)

type SeatAllocationUseCase interface {
	GetSeatMap(ctx context.Context, flightInstanceID int64) (*domain.SeatMap, error)
	GetAvailableSeats(ctx context.Context, flightInstanceID int64, cabinClassID *int64) ([]domain.Seat, error)
	AssignSeat(ctx context.Context, input AssignSeatInput) (*domain.BookingPassenger, error)
	ReleaseSeat(ctx context.Context, bookingID, passengerID int64) error
	GetSeatCounts(ctx context.Context, flightInstanceID int64) (*domain.SeatCounts, error)
}

// Cache is the optional redis layer: a short-lived seat-map cache plus
// SetNX seat holds used as a fast pre-check before the transactional
// write. The database constraint stays the source of truth; a nil Cache
// only loses the optimization.
type Cache interface {
	GetSeatMap(ctx context.Context, flightInstanceID int64) (*domain.SeatMap, error)
	SetSeatMap(ctx context.Context, seatMap *domain.SeatMap) error
	InvalidateSeatMap(ctx context.Context, flightInstanceID int64) error
	AcquireSeatHold(ctx context.Context, flightInstanceID int64, seatID, owner string, ttl time.Duration) (bool, error)
	ReleaseSeatHold(ctx context.Context, flightInstanceID int64, seatID string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SeatService struct {
	flights        repository.FlightInstanceRepository
	seats          repository.SeatRepository
	bookings       repository.BookingPassengerRepository
	cache          Cache
	producer       Producer
	inventoryTopic string
	holdTTL        time.Duration
}

type AssignSeatInput struct {
	FlightInstanceID int64  `json:"flight_instance_id"`
	BookingID        int64  `json:"booking_id"`
	PassengerID      int64  `json:"passenger_id"`
	SeatID           string `json:"seat_id"`
}

type SeatServiceOption func(*SeatService)

func WithCache(cache Cache) SeatServiceOption {
	return func(s *SeatService) { s.cache = cache }
}

func WithProducer(producer Producer, topic string) SeatServiceOption {
	return func(s *SeatService) {
		s.producer = producer
		s.inventoryTopic = topic
	}
}

func NewSeatService(
	flights repository.FlightInstanceRepository,
	seats repository.SeatRepository,
	bookings repository.BookingPassengerRepository,
	holdTTL time.Duration,
	opts ...SeatServiceOption,
) *SeatService {
	service := &SeatService{
		flights:  flights,
		seats:    seats,
		bookings: bookings,
		holdTTL:  holdTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// resolveConfig loads the flight instance and its aircraft configuration.
// A flight with no assigned aircraft has no seat inventory yet.
func (s *SeatService) resolveConfig(ctx context.Context, flightInstanceID int64) (*domain.FlightInstance, error) {
	instance, err := s.flights.GetByID(ctx, flightInstanceID)
	if err != nil {
		return nil, err
	}
	if instance.AircraftConfigID == 0 {
		return nil, fmt.Errorf("aircraft configuration for flight instance %d: %w", flightInstanceID, domain.ErrNotFound)
	}
	return instance, nil
}

func (s *SeatService) GetSeatMap(ctx context.Context, flightInstanceID int64) (*domain.SeatMap, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSeatMap(ctx, flightInstanceID); err == nil && cached != nil {
			return cached, nil
		}
	}

	instance, err := s.resolveConfig(ctx, flightInstanceID)
	if err != nil {
		return nil, err
	}

	allSeats, err := s.seats.ListByConfig(ctx, instance.AircraftConfigID, nil)
	if err != nil {
		return nil, err
	}
	occupied, err := s.occupiedSet(ctx, flightInstanceID)
	if err != nil {
		return nil, err
	}

	seatMap := &domain.SeatMap{
		FlightInstanceID: flightInstanceID,
		AircraftConfigID: instance.AircraftConfigID,
		Seats:            make([]domain.SeatMapEntry, 0, len(allSeats)),
	}
	for _, seat := range allSeats {
		seatMap.Seats = append(seatMap.Seats, domain.SeatMapEntry{
			Seat:     seat,
			Occupied: occupied[seat.ID],
		})
	}

	if s.cache != nil {
		_ = s.cache.SetSeatMap(ctx, seatMap)
	}
	return seatMap, nil
}

func (s *SeatService) GetAvailableSeats(ctx context.Context, flightInstanceID int64, cabinClassID *int64) ([]domain.Seat, error) {
	instance, err := s.resolveConfig(ctx, flightInstanceID)
	if err != nil {
		return nil, err
	}

	allSeats, err := s.seats.ListByConfig(ctx, instance.AircraftConfigID, cabinClassID)
	if err != nil {
		return nil, err
	}
	// Seats held by any active booking are excluded, confirmed or not;
	// filtering only confirmed ones would reopen the race window.
	occupied, err := s.occupiedSet(ctx, flightInstanceID)
	if err != nil {
		return nil, err
	}

	available := make([]domain.Seat, 0, len(allSeats))
	for _, seat := range allSeats {
		if !occupied[seat.ID] {
			available = append(available, seat)
		}
	}
	return available, nil
}

func (s *SeatService) AssignSeat(ctx context.Context, input AssignSeatInput) (*domain.BookingPassenger, error) {
	instance, err := s.resolveConfig(ctx, input.FlightInstanceID)
	if err != nil {
		return nil, err
	}
	if !instance.Status.AllowsAssignment() {
		return nil, fmt.Errorf("flight instance %d is %s: %w", instance.ID, instance.Status, domain.ErrInvalidFlightState)
	}

	seat, err := s.seats.GetByID(ctx, input.SeatID)
	if err != nil {
		return nil, err
	}
	if seat.AircraftConfigID != instance.AircraftConfigID {
		return nil, &domain.ConflictError{
			Kind:             domain.ErrSeatNotOnAircraft,
			FlightInstanceID: instance.ID,
			SeatID:           seat.ID,
		}
	}

	bp, err := s.bookings.Get(ctx, input.BookingID, input.PassengerID)
	if err != nil {
		return nil, err
	}
	if bp.FlightInstanceID != input.FlightInstanceID {
		return nil, fmt.Errorf("booking passenger is not on flight instance %d: %w", input.FlightInstanceID, domain.ErrNotFound)
	}

	locked := false
	if s.cache != nil {
		// Owned holds let the same passenger repeat their own assignment
		// inside the TTL without a false conflict.
		owner := holdOwner(input.BookingID, input.PassengerID)
		ok, err := s.cache.AcquireSeatHold(ctx, input.FlightInstanceID, input.SeatID, owner, s.holdTTL)
		if err != nil {
			// Cache trouble must not block bookings; the DB still guards.
			log.Printf("acquire seat hold: %v", err)
		} else if !ok {
			return nil, &domain.ConflictError{
				Kind:             domain.ErrSeatAlreadyAssigned,
				FlightInstanceID: input.FlightInstanceID,
				SeatID:           input.SeatID,
			}
		} else {
			locked = true
		}
	}

	if err := s.bookings.AssignSeat(ctx, input.FlightInstanceID, input.BookingID, input.PassengerID, input.SeatID); err != nil {
		if locked {
			_ = s.cache.ReleaseSeatHold(ctx, input.FlightInstanceID, input.SeatID)
		}
		return nil, err
	}

	bp.SeatID = &input.SeatID
	if s.cache != nil {
		_ = s.cache.InvalidateSeatMap(ctx, input.FlightInstanceID)
	}
	s.publish(ctx, kafka.EventSeatAssigned, kafka.InventoryEvent{
		FlightInstanceID: input.FlightInstanceID,
		BookingID:        input.BookingID,
		PassengerID:      input.PassengerID,
		SeatID:           input.SeatID,
	})
	return bp, nil
}

// ReleaseSeat clears the passenger's seat reference. Releasing a
// passenger with no seat assigned is a successful no-op.
func (s *SeatService) ReleaseSeat(ctx context.Context, bookingID, passengerID int64) error {
	bp, err := s.bookings.Get(ctx, bookingID, passengerID)
	if err != nil {
		return err
	}
	if bp.SeatID == nil {
		return nil
	}
	released := *bp.SeatID

	if err := s.bookings.ReleaseSeat(ctx, bookingID, passengerID); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateSeatMap(ctx, bp.FlightInstanceID)
		_ = s.cache.ReleaseSeatHold(ctx, bp.FlightInstanceID, released)
	}
	s.publish(ctx, kafka.EventSeatReleased, kafka.InventoryEvent{
		FlightInstanceID: bp.FlightInstanceID,
		BookingID:        bookingID,
		PassengerID:      passengerID,
		SeatID:           released,
	})
	return nil
}

func (s *SeatService) GetSeatCounts(ctx context.Context, flightInstanceID int64) (*domain.SeatCounts, error) {
	instance, err := s.resolveConfig(ctx, flightInstanceID)
	if err != nil {
		return nil, err
	}

	total, err := s.seats.CountByConfig(ctx, instance.AircraftConfigID)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookings.CountDistinctSeats(ctx, flightInstanceID)
	if err != nil {
		return nil, err
	}
	return &domain.SeatCounts{
		FlightInstanceID: flightInstanceID,
		TotalCapacity:    total,
		BookedSeats:      booked,
	}, nil
}

func (s *SeatService) occupiedSet(ctx context.Context, flightInstanceID int64) (map[string]bool, error) {
	seatIDs, err := s.bookings.ListSeatIDs(ctx, flightInstanceID)
	if err != nil {
		return nil, err
	}
	occupied := make(map[string]bool, len(seatIDs))
	for _, id := range seatIDs {
		occupied[id] = true
	}
	return occupied, nil
}

func holdOwner(bookingID, passengerID int64) string {
	return fmt.Sprintf("%d:%d", bookingID, passengerID)
}

func (s *SeatService) publish(ctx context.Context, eventType string, event kafka.InventoryEvent) {
	if s.producer == nil || s.inventoryTopic == "" {
		return
	}
	event.Type = eventType
	event.OccurredAt = time.Now().UTC()
	if err := s.producer.Publish(ctx, s.inventoryTopic, uuid.NewString(), event); err != nil {
		log.Printf("publish %s event: %v", eventType, err)
	}
}

var _ SeatAllocationUseCase = (*SeatService)(nil)
