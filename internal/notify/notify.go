package notify

import (
	"context"
	"log"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/kafka"
)

// Notifier forwards inventory events to the operations desk. The real
// delivery channel is out of scope; this writes a one-line summary.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(ctx context.Context, event kafka.InventoryEvent) error {
	switch event.Type {
	case kafka.EventSeatAssigned, kafka.EventSeatReleased:
		log.Printf("ops: %s seat %s on flight instance %d (booking %d, passenger %d)",
			event.Type, event.SeatID, event.FlightInstanceID, event.BookingID, event.PassengerID)
	case kafka.EventAircraftAssigned:
		log.Printf("ops: aircraft %s assigned to flight instance %d", event.TailNumber, event.FlightInstanceID)
	case kafka.EventCrewAssigned, kafka.EventCrewRemoved:
		log.Printf("ops: %s crew member %d on flight instance %d", event.Type, event.CrewMemberID, event.FlightInstanceID)
	case kafka.EventLoadFactor:
		log.Printf("ops: flight instance %d load factor %d/%d", event.FlightInstanceID, event.BookedSeats, event.TotalCapacity)
	default:
		log.Printf("ops: %s on flight instance %d", event.Type, event.FlightInstanceID)
	}
	return nil
}
