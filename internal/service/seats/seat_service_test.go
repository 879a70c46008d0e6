package seats

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightInstanceRepository struct {
	mock.Mock
}

func (m *MockFlightInstanceRepository) GetByID(ctx context.Context, id int64) (*domain.FlightInstance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightInstance), args.Error(1)
}

func (m *MockFlightInstanceRepository) FindConflictingByTail(ctx context.Context, tailNumber string, departure, arrival time.Time, excludeID int64) (*domain.FlightInstance, error) {
	args := m.Called(ctx, tailNumber, departure, arrival, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightInstance), args.Error(1)
}

func (m *MockFlightInstanceRepository) SetTailNumber(ctx context.Context, id int64, tailNumber string) error {
	args := m.Called(ctx, id, tailNumber)
	return args.Error(0)
}

func (m *MockFlightInstanceRepository) ListDepartingBetween(ctx context.Context, from, to time.Time) ([]domain.FlightInstance, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.FlightInstance), args.Error(1)
}

type MockSeatRepository struct {
	mock.Mock
}

func (m *MockSeatRepository) GetByID(ctx context.Context, seatID string) (*domain.Seat, error) {
	args := m.Called(ctx, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seat), args.Error(1)
}

func (m *MockSeatRepository) ListByConfig(ctx context.Context, configID int64, cabinClassID *int64) ([]domain.Seat, error) {
	args := m.Called(ctx, configID, cabinClassID)
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepository) CountByConfig(ctx context.Context, configID int64) (int, error) {
	args := m.Called(ctx, configID)
	return args.Int(0), args.Error(1)
}

type MockBookingPassengerRepository struct {
	mock.Mock
}

func (m *MockBookingPassengerRepository) Get(ctx context.Context, bookingID, passengerID int64) (*domain.BookingPassenger, error) {
	args := m.Called(ctx, bookingID, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingPassenger), args.Error(1)
}

func (m *MockBookingPassengerRepository) AssignSeat(ctx context.Context, flightInstanceID, bookingID, passengerID int64, seatID string) error {
	args := m.Called(ctx, flightInstanceID, bookingID, passengerID, seatID)
	return args.Error(0)
}

func (m *MockBookingPassengerRepository) ReleaseSeat(ctx context.Context, bookingID, passengerID int64) error {
	args := m.Called(ctx, bookingID, passengerID)
	return args.Error(0)
}

func (m *MockBookingPassengerRepository) ListSeatIDs(ctx context.Context, flightInstanceID int64) ([]string, error) {
	args := m.Called(ctx, flightInstanceID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingPassengerRepository) CountDistinctSeats(ctx context.Context, flightInstanceID int64) (int, error) {
	args := m.Called(ctx, flightInstanceID)
	return args.Int(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetSeatMap(ctx context.Context, flightInstanceID int64) (*domain.SeatMap, error) {
	args := m.Called(ctx, flightInstanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatMap), args.Error(1)
}

func (m *MockCache) SetSeatMap(ctx context.Context, seatMap *domain.SeatMap) error {
	args := m.Called(ctx, seatMap)
	return args.Error(0)
}

func (m *MockCache) InvalidateSeatMap(ctx context.Context, flightInstanceID int64) error {
	args := m.Called(ctx, flightInstanceID)
	return args.Error(0)
}

func (m *MockCache) AcquireSeatHold(ctx context.Context, flightInstanceID int64, seatID, owner string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, flightInstanceID, seatID, owner, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) ReleaseSeatHold(ctx context.Context, flightInstanceID int64, seatID string) error {
	args := m.Called(ctx, flightInstanceID, seatID)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func scheduledInstance(id, configID int64) *domain.FlightInstance {
	tail := "9V-ABC"
	return &domain.FlightInstance{
		ID:                 id,
		FlightNumber:       "SQ101",
		TailNumber:         &tail,
		AircraftConfigID:   configID,
		ScheduledDeparture: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		ScheduledArrival:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Status:             domain.FlightStatusScheduled,
	}
}

func configSeats(configID int64) []domain.Seat {
	return []domain.Seat{
		{ID: "12A-B77W-Y", SeatNumber: "12A", CabinClassID: 1, AircraftConfigID: configID, Window: true},
		{ID: "12B-B77W-Y", SeatNumber: "12B", CabinClassID: 1, AircraftConfigID: configID},
		{ID: "1A-B77W-J", SeatNumber: "1A", CabinClassID: 2, AircraftConfigID: configID, Window: true},
	}
}

func TestSeatService_GetSeatMap_CacheMiss(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}
	mockCache := &MockCache{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute, WithCache(mockCache))

	ctx := context.Background()

	mockCache.On("GetSeatMap", ctx, int64(200)).Return(nil, nil).Once()
	mockFlights.On("GetByID", ctx, int64(200)).Return(scheduledInstance(200, 7), nil).Once()
	mockSeats.On("ListByConfig", ctx, int64(7), (*int64)(nil)).Return(configSeats(7), nil).Once()
	mockBookings.On("ListSeatIDs", ctx, int64(200)).Return([]string{"12A-B77W-Y"}, nil).Once()
	mockCache.On("SetSeatMap", ctx, mock.AnythingOfType("*domain.SeatMap")).Return(nil).Once()

	seatMap, err := service.GetSeatMap(ctx, 200)

	assert.NoError(t, err)
	assert.Equal(t, int64(200), seatMap.FlightInstanceID)
	assert.Equal(t, int64(7), seatMap.AircraftConfigID)
	assert.Len(t, seatMap.Seats, 3)
	assert.True(t, seatMap.Seats[0].Occupied)
	assert.False(t, seatMap.Seats[1].Occupied)
	assert.False(t, seatMap.Seats[2].Occupied)

	mockCache.AssertExpectations(t)
	mockFlights.AssertExpectations(t)
	mockSeats.AssertExpectations(t)
	mockBookings.AssertExpectations(t)
}

func TestSeatService_GetSeatMap_CacheHit(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}
	mockCache := &MockCache{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute, WithCache(mockCache))

	ctx := context.Background()
	cached := &domain.SeatMap{FlightInstanceID: 200, AircraftConfigID: 7}

	mockCache.On("GetSeatMap", ctx, int64(200)).Return(cached, nil).Once()

	seatMap, err := service.GetSeatMap(ctx, 200)

	assert.NoError(t, err)
	assert.Equal(t, cached, seatMap)

	mockCache.AssertExpectations(t)
	mockFlights.AssertNotCalled(t, "GetByID")
}

func TestSeatService_GetSeatMap_FlightNotFound(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute)

	ctx := context.Background()
	mockFlights.On("GetByID", ctx, int64(999)).Return(nil, fmt.Errorf("flight instance: %w", domain.ErrNotFound)).Once()

	seatMap, err := service.GetSeatMap(ctx, 999)

	assert.Nil(t, seatMap)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSeatService_GetSeatMap_NoAircraftAssigned(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute)

	ctx := context.Background()
	instance := scheduledInstance(200, 0)
	instance.TailNumber = nil
	mockFlights.On("GetByID", ctx, int64(200)).Return(instance, nil).Once()

	seatMap, err := service.GetSeatMap(ctx, 200)

	assert.Nil(t, seatMap)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	mockSeats.AssertNotCalled(t, "ListByConfig")
}

func TestSeatService_GetAvailableSeats_ExcludesOccupied(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute)

	ctx := context.Background()
	mockFlights.On("GetByID", ctx, int64(200)).Return(scheduledInstance(200, 7), nil).Once()
	mockSeats.On("ListByConfig", ctx, int64(7), (*int64)(nil)).Return(configSeats(7), nil).Once()
	mockBookings.On("ListSeatIDs", ctx, int64(200)).Return([]string{"12B-B77W-Y"}, nil).Once()

	available, err := service.GetAvailableSeats(ctx, 200, nil)

	assert.NoError(t, err)
	assert.Len(t, available, 2)
	for _, seat := range available {
		assert.NotEqual(t, "12B-B77W-Y", seat.ID)
	}
}

func TestSeatService_GetAvailableSeats_CabinFilter(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute)

	ctx := context.Background()
	cabinID := int64(2)
	business := []domain.Seat{{ID: "1A-B77W-J", CabinClassID: 2, AircraftConfigID: 7}}

	mockFlights.On("GetByID", ctx, int64(200)).Return(scheduledInstance(200, 7), nil).Once()
	mockSeats.On("ListByConfig", ctx, int64(7), &cabinID).Return(business, nil).Once()
	mockBookings.On("ListSeatIDs", ctx, int64(200)).Return([]string{}, nil).Once()

	available, err := service.GetAvailableSeats(ctx, 200, &cabinID)

	assert.NoError(t, err)
	assert.Equal(t, business, available)
	mockSeats.AssertExpectations(t)
}

func TestSeatService_AssignSeat_Success(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}
	mockProducer := &MockProducer{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute,
		WithProducer(mockProducer, "inventory_events"))

	ctx := context.Background()
	seat := &domain.Seat{ID: "12A-B77W-Y", CabinClassID: 1, AircraftConfigID: 7}
	bp := &domain.BookingPassenger{BookingID: 1000, PassengerID: 5, FlightInstanceID: 200}

	mockFlights.On("GetByID", ctx, int64(200)).Return(scheduledInstance(200, 7), nil).Once()
	mockSeats.On("GetByID", ctx, "12A-B77W-Y").Return(seat, nil).Once()
	mockBookings.On("Get", ctx, int64(1000), int64(5)).Return(bp, nil).Once()
	mockBookings.On("AssignSeat", ctx, int64(200), int64(1000), int64(5), "12A-B77W-Y").Return(nil).Once()
	mockProducer.On("Publish", ctx, "inventory_events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.AssignSeat(ctx, AssignSeatInput{
		FlightInstanceID: 200,
		BookingID:        1000,
		PassengerID:      5,
		SeatID:           "12A-B77W-Y",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result.SeatID)
	assert.Equal(t, "12A-B77W-Y", *result.SeatID)

	mockBookings.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestSeatService_AssignSeat_InvalidFlightState(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute)

	ctx := context.Background()
	for _, status := range []domain.FlightStatus{domain.FlightStatusDeparted, domain.FlightStatusArrived, domain.FlightStatusCancelled} {
		instance := scheduledInstance(200, 7)
		instance.Status = status
		mockFlights.On("GetByID", ctx, int64(200)).Return(instance, nil).Once()

		_, err := service.AssignSeat(ctx, AssignSeatInput{FlightInstanceID: 200, BookingID: 1000, PassengerID: 5, SeatID: "12A-B77W-Y"})
		assert.True(t, errors.Is(err, domain.ErrInvalidFlightState), "status %s", status)
	}
	mockBookings.AssertNotCalled(t, "AssignSeat")
}

func TestSeatService_AssignSeat_SeatNotOnAircraft(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute)

	ctx := context.Background()
	otherConfigSeat := &domain.Seat{ID: "12A-A359-Y", CabinClassID: 9, AircraftConfigID: 8}

	mockFlights.On("GetByID", ctx, int64(200)).Return(scheduledInstance(200, 7), nil).Once()
	mockSeats.On("GetByID", ctx, "12A-A359-Y").Return(otherConfigSeat, nil).Once()

	_, err := service.AssignSeat(ctx, AssignSeatInput{FlightInstanceID: 200, BookingID: 1000, PassengerID: 5, SeatID: "12A-A359-Y"})

	assert.True(t, errors.Is(err, domain.ErrSeatNotOnAircraft))
	mockBookings.AssertNotCalled(t, "AssignSeat")
}

func TestSeatService_AssignSeat_PassengerOnDifferentFlight(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute)

	ctx := context.Background()
	seat := &domain.Seat{ID: "12A-B77W-Y", AircraftConfigID: 7}
	bp := &domain.BookingPassenger{BookingID: 1000, PassengerID: 5, FlightInstanceID: 201}

	mockFlights.On("GetByID", ctx, int64(200)).Return(scheduledInstance(200, 7), nil).Once()
	mockSeats.On("GetByID", ctx, "12A-B77W-Y").Return(seat, nil).Once()
	mockBookings.On("Get", ctx, int64(1000), int64(5)).Return(bp, nil).Once()

	_, err := service.AssignSeat(ctx, AssignSeatInput{FlightInstanceID: 200, BookingID: 1000, PassengerID: 5, SeatID: "12A-B77W-Y"})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	mockBookings.AssertNotCalled(t, "AssignSeat")
}

func TestSeatService_AssignSeat_SeatAlreadyAssigned(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}
	mockCache := &MockCache{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute, WithCache(mockCache))

	ctx := context.Background()
	seat := &domain.Seat{ID: "12A-B77W-Y", AircraftConfigID: 7}
	bp := &domain.BookingPassenger{BookingID: 1001, PassengerID: 6, FlightInstanceID: 200}
	conflict := &domain.ConflictError{Kind: domain.ErrSeatAlreadyAssigned, FlightInstanceID: 200, SeatID: "12A-B77W-Y"}

	mockFlights.On("GetByID", ctx, int64(200)).Return(scheduledInstance(200, 7), nil).Once()
	mockSeats.On("GetByID", ctx, "12A-B77W-Y").Return(seat, nil).Once()
	mockBookings.On("Get", ctx, int64(1001), int64(6)).Return(bp, nil).Once()
	mockCache.On("AcquireSeatHold", ctx, int64(200), "12A-B77W-Y", "1001:6", time.Minute).Return(true, nil).Once()
	mockBookings.On("AssignSeat", ctx, int64(200), int64(1001), int64(6), "12A-B77W-Y").Return(conflict).Once()
	mockCache.On("ReleaseSeatHold", ctx, int64(200), "12A-B77W-Y").Return(nil).Once()

	_, err := service.AssignSeat(ctx, AssignSeatInput{FlightInstanceID: 200, BookingID: 1001, PassengerID: 6, SeatID: "12A-B77W-Y"})

	assert.True(t, errors.Is(err, domain.ErrSeatAlreadyAssigned))
	mockCache.AssertExpectations(t)
}

func TestSeatService_AssignSeat_HoldContended(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}
	mockCache := &MockCache{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute, WithCache(mockCache))

	ctx := context.Background()
	seat := &domain.Seat{ID: "12A-B77W-Y", AircraftConfigID: 7}
	bp := &domain.BookingPassenger{BookingID: 1001, PassengerID: 6, FlightInstanceID: 200}

	mockFlights.On("GetByID", ctx, int64(200)).Return(scheduledInstance(200, 7), nil).Once()
	mockSeats.On("GetByID", ctx, "12A-B77W-Y").Return(seat, nil).Once()
	mockBookings.On("Get", ctx, int64(1001), int64(6)).Return(bp, nil).Once()
	mockCache.On("AcquireSeatHold", ctx, int64(200), "12A-B77W-Y", "1001:6", time.Minute).Return(false, nil).Once()

	_, err := service.AssignSeat(ctx, AssignSeatInput{FlightInstanceID: 200, BookingID: 1001, PassengerID: 6, SeatID: "12A-B77W-Y"})

	assert.True(t, errors.Is(err, domain.ErrSeatAlreadyAssigned))
	mockBookings.AssertNotCalled(t, "AssignSeat")
}

// A passenger repeating their own assignment inside the hold TTL owns
// the hold, so the pre-check passes and the write is a no-op success —
// never SeatAlreadyAssigned.
func TestSeatService_AssignSeat_OwnSeatRepeatSucceeds(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}
	mockCache := &MockCache{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute, WithCache(mockCache))

	ctx := context.Background()
	seatID := "12A-B77W-Y"
	seat := &domain.Seat{ID: seatID, AircraftConfigID: 7}
	bp := &domain.BookingPassenger{BookingID: 1001, PassengerID: 6, FlightInstanceID: 200, SeatID: &seatID}

	mockFlights.On("GetByID", ctx, int64(200)).Return(scheduledInstance(200, 7), nil).Once()
	mockSeats.On("GetByID", ctx, seatID).Return(seat, nil).Once()
	mockBookings.On("Get", ctx, int64(1001), int64(6)).Return(bp, nil).Once()
	mockCache.On("AcquireSeatHold", ctx, int64(200), seatID, "1001:6", time.Minute).Return(true, nil).Once()
	mockBookings.On("AssignSeat", ctx, int64(200), int64(1001), int64(6), seatID).Return(nil).Once()
	mockCache.On("InvalidateSeatMap", ctx, int64(200)).Return(nil).Once()

	got, err := service.AssignSeat(ctx, AssignSeatInput{FlightInstanceID: 200, BookingID: 1001, PassengerID: 6, SeatID: seatID})

	assert.NoError(t, err)
	assert.Equal(t, seatID, *got.SeatID)
	mockCache.AssertNotCalled(t, "ReleaseSeatHold")
	mockCache.AssertExpectations(t)
}

func TestSeatService_ReleaseSeat_Idempotent(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute)

	ctx := context.Background()
	bp := &domain.BookingPassenger{BookingID: 1000, PassengerID: 5, FlightInstanceID: 200}

	mockBookings.On("Get", ctx, int64(1000), int64(5)).Return(bp, nil).Once()

	err := service.ReleaseSeat(ctx, 1000, 5)

	assert.NoError(t, err)
	mockBookings.AssertNotCalled(t, "ReleaseSeat")
}

func TestSeatService_ReleaseSeat_Success(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute,
		WithCache(mockCache), WithProducer(mockProducer, "inventory_events"))

	ctx := context.Background()
	seatID := "12A-B77W-Y"
	bp := &domain.BookingPassenger{BookingID: 1000, PassengerID: 5, FlightInstanceID: 200, SeatID: &seatID}

	mockBookings.On("Get", ctx, int64(1000), int64(5)).Return(bp, nil).Once()
	mockBookings.On("ReleaseSeat", ctx, int64(1000), int64(5)).Return(nil).Once()
	mockCache.On("InvalidateSeatMap", ctx, int64(200)).Return(nil).Once()
	mockCache.On("ReleaseSeatHold", ctx, int64(200), seatID).Return(nil).Once()
	mockProducer.On("Publish", ctx, "inventory_events", mock.Anything, mock.Anything).Return(nil).Once()

	err := service.ReleaseSeat(ctx, 1000, 5)

	assert.NoError(t, err)
	mockBookings.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestSeatService_GetSeatCounts_ZeroBookings(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	mockBookings := &MockBookingPassengerRepository{}

	service := NewSeatService(mockFlights, mockSeats, mockBookings, time.Minute)

	ctx := context.Background()
	mockFlights.On("GetByID", ctx, int64(200)).Return(scheduledInstance(200, 7), nil).Once()
	mockSeats.On("CountByConfig", ctx, int64(7)).Return(180, nil).Once()
	mockBookings.On("CountDistinctSeats", ctx, int64(200)).Return(0, nil).Once()

	counts, err := service.GetSeatCounts(ctx, 200)

	assert.NoError(t, err)
	assert.Equal(t, 180, counts.TotalCapacity)
	assert.Equal(t, 0, counts.BookedSeats)
}

// fakeBookingStore enforces the one-passenger-per-seat invariant the way
// the partial unique index does, so concurrent assignment behavior can
// be exercised without a database.
type fakeBookingStore struct {
	mu         sync.Mutex
	passengers map[[2]int64]*domain.BookingPassenger
	seatOwner  map[string][2]int64
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		passengers: make(map[[2]int64]*domain.BookingPassenger),
		seatOwner:  make(map[string][2]int64),
	}
}

func (f *fakeBookingStore) addPassenger(bookingID, passengerID, flightInstanceID int64) {
	f.passengers[[2]int64{bookingID, passengerID}] = &domain.BookingPassenger{
		BookingID:        bookingID,
		PassengerID:      passengerID,
		FlightInstanceID: flightInstanceID,
	}
}

func (f *fakeBookingStore) Get(ctx context.Context, bookingID, passengerID int64) (*domain.BookingPassenger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bp, ok := f.passengers[[2]int64{bookingID, passengerID}]
	if !ok {
		return nil, fmt.Errorf("booking passenger: %w", domain.ErrNotFound)
	}
	copied := *bp
	return &copied, nil
}

func (f *fakeBookingStore) AssignSeat(ctx context.Context, flightInstanceID, bookingID, passengerID int64, seatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{bookingID, passengerID}
	if owner, taken := f.seatOwner[seatID]; taken && owner != key {
		return &domain.ConflictError{Kind: domain.ErrSeatAlreadyAssigned, FlightInstanceID: flightInstanceID, SeatID: seatID}
	}
	f.seatOwner[seatID] = key
	f.passengers[key].SeatID = &seatID
	return nil
}

func (f *fakeBookingStore) ReleaseSeat(ctx context.Context, bookingID, passengerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{bookingID, passengerID}
	bp, ok := f.passengers[key]
	if !ok {
		return fmt.Errorf("booking passenger: %w", domain.ErrNotFound)
	}
	if bp.SeatID != nil {
		delete(f.seatOwner, *bp.SeatID)
		bp.SeatID = nil
	}
	return nil
}

func (f *fakeBookingStore) ListSeatIDs(ctx context.Context, flightInstanceID int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.seatOwner))
	for id := range f.seatOwner {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeBookingStore) CountDistinctSeats(ctx context.Context, flightInstanceID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seatOwner), nil
}

func TestSeatService_AssignSeat_ConcurrentOneWinner(t *testing.T) {
	const contenders = 16

	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	store := newFakeBookingStore()

	seat := &domain.Seat{ID: "12A-B77W-Y", CabinClassID: 1, AircraftConfigID: 7}
	mockFlights.On("GetByID", mock.Anything, int64(200)).Return(scheduledInstance(200, 7), nil)
	mockSeats.On("GetByID", mock.Anything, "12A-B77W-Y").Return(seat, nil)

	for i := 0; i < contenders; i++ {
		store.addPassenger(int64(1000+i), int64(i+1), 200)
	}

	service := NewSeatService(mockFlights, mockSeats, store, time.Minute)

	ctx := context.Background()
	var wg sync.WaitGroup
	results := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := service.AssignSeat(ctx, AssignSeatInput{
				FlightInstanceID: 200,
				BookingID:        int64(1000 + i),
				PassengerID:      int64(i + 1),
				SeatID:           "12A-B77W-Y",
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.True(t, errors.Is(err, domain.ErrSeatAlreadyAssigned))
		}
	}
	assert.Equal(t, 1, winners)

	booked, err := store.CountDistinctSeats(ctx, 200)
	assert.NoError(t, err)
	assert.Equal(t, 1, booked)
}

func TestSeatService_AssignReleaseRoundTrip(t *testing.T) {
	mockFlights := &MockFlightInstanceRepository{}
	mockSeats := &MockSeatRepository{}
	store := newFakeBookingStore()
	store.addPassenger(1000, 5, 200)

	mockFlights.On("GetByID", mock.Anything, int64(200)).Return(scheduledInstance(200, 7), nil)
	mockSeats.On("GetByID", mock.Anything, "12A-B77W-Y").Return(&domain.Seat{ID: "12A-B77W-Y", AircraftConfigID: 7}, nil)
	mockSeats.On("ListByConfig", mock.Anything, int64(7), (*int64)(nil)).Return(configSeats(7), nil)

	service := NewSeatService(mockFlights, mockSeats, store, time.Minute)
	ctx := context.Background()

	_, err := service.AssignSeat(ctx, AssignSeatInput{FlightInstanceID: 200, BookingID: 1000, PassengerID: 5, SeatID: "12A-B77W-Y"})
	assert.NoError(t, err)

	available, err := service.GetAvailableSeats(ctx, 200, nil)
	assert.NoError(t, err)
	assert.Len(t, available, 2)

	assert.NoError(t, service.ReleaseSeat(ctx, 1000, 5))

	available, err = service.GetAvailableSeats(ctx, 200, nil)
	assert.NoError(t, err)
	assert.Len(t, available, 3)
}
