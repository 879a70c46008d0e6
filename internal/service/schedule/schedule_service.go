package schedule

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

type ScheduleUseCase interface {
	FindConflictingFlight(ctx context.Context, tailNumber string, departure, arrival time.Time, excludeInstanceID int64) (*domain.FlightInstance, error)
	AssignAircraft(ctx context.Context, flightInstanceID int64, tailNumber string) (*domain.FlightInstance, error)
	AssignCrew(ctx context.Context, flightInstanceID, crewMemberID int64, role string) error
	AssignCrewBatch(ctx context.Context, flightInstanceID int64, assignments []CrewAssignment) error
	RemoveCrewAssignment(ctx context.Context, flightInstanceID, crewMemberID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ScheduleService struct {
	flights        repository.FlightInstanceRepository
	aircraft       repository.AircraftRepository
	crew           repository.FlightCrewRepository
	certifications repository.CertificationRepository
	tx             repository.Transactor
	producer       Producer
	inventoryTopic string
}

type CrewAssignment struct {
	CrewMemberID int64  `json:"crew_member_id"`
	Role         string `json:"role"`
}

type ScheduleServiceOption func(*ScheduleService)

func WithProducer(producer Producer, topic string) ScheduleServiceOption {
	return func(s *ScheduleService) {
		s.producer = producer
		s.inventoryTopic = topic
	}
}

func NewScheduleService(
	flights repository.FlightInstanceRepository,
	aircraft repository.AircraftRepository,
	crew repository.FlightCrewRepository,
	certifications repository.CertificationRepository,
	tx repository.Transactor,
	opts ...ScheduleServiceOption,
) *ScheduleService {
	service := &ScheduleService{
		flights:        flights,
		aircraft:       aircraft,
		crew:           crew,
		certifications: certifications,
		tx:             tx,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// FindConflictingFlight returns any other active flight assigned to the
// tail number whose window intersects [departure, arrival), or nil.
func (s *ScheduleService) FindConflictingFlight(ctx context.Context, tailNumber string, departure, arrival time.Time, excludeInstanceID int64) (*domain.FlightInstance, error) {
	if !departure.Before(arrival) {
		return nil, fmt.Errorf("departure must be before arrival")
	}
	return s.flights.FindConflictingByTail(ctx, tailNumber, departure, arrival, excludeInstanceID)
}

func (s *ScheduleService) AssignAircraft(ctx context.Context, flightInstanceID int64, tailNumber string) (*domain.FlightInstance, error) {
	var instance *domain.FlightInstance

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		instance, err = s.flights.GetByID(ctx, flightInstanceID)
		if err != nil {
			return err
		}
		if !instance.Status.AllowsAssignment() {
			return fmt.Errorf("flight instance %d is %s: %w", instance.ID, instance.Status, domain.ErrInvalidFlightState)
		}

		aircraft, err := s.aircraft.GetByTail(ctx, tailNumber)
		if err != nil {
			return err
		}
		if !aircraft.Status.CanFly() {
			return &domain.ConflictError{
				Kind:             domain.ErrAircraftNotOperational,
				FlightInstanceID: flightInstanceID,
				TailNumber:       tailNumber,
			}
		}

		dep, arr := instance.Window()
		conflicting, err := s.flights.FindConflictingByTail(ctx, tailNumber, dep, arr, flightInstanceID)
		if err != nil {
			return err
		}
		if conflicting != nil {
			return &domain.ConflictError{
				Kind:                domain.ErrAircraftConflict,
				FlightInstanceID:    flightInstanceID,
				ConflictingFlightID: conflicting.ID,
				TailNumber:          tailNumber,
			}
		}

		if err := s.flights.SetTailNumber(ctx, flightInstanceID, tailNumber); err != nil {
			return err
		}
		instance.TailNumber = &tailNumber
		instance.AircraftConfigID = aircraft.AircraftConfigID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventAircraftAssigned, kafka.InventoryEvent{
		FlightInstanceID: flightInstanceID,
		TailNumber:       tailNumber,
	})
	return instance, nil
}

func (s *ScheduleService) AssignCrew(ctx context.Context, flightInstanceID, crewMemberID int64, role string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.assignCrewOne(ctx, flightInstanceID, CrewAssignment{CrewMemberID: crewMemberID, Role: role})
	})
	if err != nil {
		return err
	}

	s.publish(ctx, kafka.EventCrewAssigned, kafka.InventoryEvent{
		FlightInstanceID: flightInstanceID,
		CrewMemberID:     crewMemberID,
	})
	return nil
}

// AssignCrewBatch assigns the whole roster or nothing: one conflicting
// member rolls back every assignment in the batch.
func (s *ScheduleService) AssignCrewBatch(ctx context.Context, flightInstanceID int64, assignments []CrewAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, a := range assignments {
			if err := s.assignCrewOne(ctx, flightInstanceID, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, a := range assignments {
		s.publish(ctx, kafka.EventCrewAssigned, kafka.InventoryEvent{
			FlightInstanceID: flightInstanceID,
			CrewMemberID:     a.CrewMemberID,
		})
	}
	return nil
}

func (s *ScheduleService) assignCrewOne(ctx context.Context, flightInstanceID int64, a CrewAssignment) error {
	instance, err := s.flights.GetByID(ctx, flightInstanceID)
	if err != nil {
		return err
	}
	if !instance.Status.AllowsAssignment() {
		return fmt.Errorf("flight instance %d is %s: %w", instance.ID, instance.Status, domain.ErrInvalidFlightState)
	}

	// The type rating is checked against the assigned aircraft. A flight
	// with no tail yet has no type to rate against, so the check waits
	// until aircraft assignment.
	if instance.TailNumber != nil {
		aircraft, err := s.aircraft.GetByTail(ctx, *instance.TailNumber)
		if err != nil {
			return err
		}
		qualified, err := s.certifications.HasCertification(ctx, a.CrewMemberID, aircraft.TypeCode)
		if err != nil {
			return err
		}
		if !qualified {
			return fmt.Errorf("crew member %d has no %s rating: %w", a.CrewMemberID, aircraft.TypeCode, domain.ErrNotQualified)
		}
	}

	// Serialize per crew member before the overlap check. Two first
	// assignments see no rows to lock, so only the advisory lock keeps
	// the check-then-insert span from racing its twin.
	if err := s.crew.LockCrewMember(ctx, a.CrewMemberID); err != nil {
		return err
	}

	dep, arr := instance.Window()
	conflicting, err := s.crew.FindOverlapping(ctx, a.CrewMemberID, dep, arr, flightInstanceID)
	if err != nil {
		return err
	}
	if conflicting != nil {
		return &domain.ConflictError{
			Kind:                domain.ErrCrewConflict,
			FlightInstanceID:    flightInstanceID,
			ConflictingFlightID: conflicting.ID,
			CrewMemberID:        a.CrewMemberID,
		}
	}

	return s.crew.Insert(ctx, &domain.FlightCrew{
		FlightInstanceID: flightInstanceID,
		CrewMemberID:     a.CrewMemberID,
		Role:             a.Role,
	})
}

// RemoveCrewAssignment soft-deletes the assignment. Removing an absent
// assignment returns NotFound, like every other deletion path here.
func (s *ScheduleService) RemoveCrewAssignment(ctx context.Context, flightInstanceID, crewMemberID int64) error {
	if err := s.crew.SoftDelete(ctx, flightInstanceID, crewMemberID); err != nil {
		return err
	}

	s.publish(ctx, kafka.EventCrewRemoved, kafka.InventoryEvent{
		FlightInstanceID: flightInstanceID,
		CrewMemberID:     crewMemberID,
	})
	return nil
}

func (s *ScheduleService) publish(ctx context.Context, eventType string, event kafka.InventoryEvent) {
	if s.producer == nil || s.inventoryTopic == "" {
		return
	}
	event.Type = eventType
	event.OccurredAt = time.Now().UTC()
	if err := s.producer.Publish(ctx, s.inventoryTopic, uuid.NewString(), event); err != nil {
		log.Printf("publish %s event: %v", eventType, err)
	}
}

var _ ScheduleUseCase = (*ScheduleService)(nil)
