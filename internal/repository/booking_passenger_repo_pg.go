package repository

import (
	"context"
	"errors"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingPassengerRepository interface {
	Get(ctx context.Context, bookingID, passengerID int64) (*domain.BookingPassenger, error)
	// AssignSeat writes seatID onto the booking-passenger row after
	// verifying no other active passenger holds it on the same flight.
	// The check and the write run in one repeatable-read transaction; a
	// partial unique index over (flight_instance_id, seat_id) on active
	// rows backstops the check under concurrency.
	AssignSeat(ctx context.Context, flightInstanceID, bookingID, passengerID int64, seatID string) error
	ReleaseSeat(ctx context.Context, bookingID, passengerID int64) error
	ListSeatIDs(ctx context.Context, flightInstanceID int64) ([]string, error)
	CountDistinctSeats(ctx context.Context, flightInstanceID int64) (int, error)
}

type PGBookingPassengerRepository struct {
	db *pgxpool.Pool
}

func NewBookingPassengerRepository(db *pgxpool.Pool) BookingPassengerRepository {
	return &PGBookingPassengerRepository{db: db}
}

const bookingPassengerColumns = `booking_id, passenger_id, flight_instance_id, seat_id, created_at, updated_at`

func (r *PGBookingPassengerRepository) Get(ctx context.Context, bookingID, passengerID int64) (*domain.BookingPassenger, error) {
	row := conn(ctx, r.db).QueryRow(ctx, `SELECT `+bookingPassengerColumns+` FROM booking_passengers WHERE booking_id=$1 AND passenger_id=$2 AND deleted_at IS NULL`, bookingID, passengerID)
	var bp domain.BookingPassenger
	if err := row.Scan(&bp.BookingID, &bp.PassengerID, &bp.FlightInstanceID, &bp.SeatID, &bp.CreatedAt, &bp.UpdatedAt); err != nil {
		return nil, notFound(err, "booking passenger")
	}
	return &bp, nil
}

func (r *PGBookingPassengerRepository) AssignSeat(ctx context.Context, flightInstanceID, bookingID, passengerID int64, seatID string) error {
	conflict := &domain.ConflictError{
		Kind:             domain.ErrSeatAlreadyAssigned,
		FlightInstanceID: flightInstanceID,
		SeatID:           seatID,
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var holderBooking, holderPassenger int64
	err = tx.QueryRow(ctx, `SELECT booking_id, passenger_id FROM booking_passengers
		WHERE flight_instance_id=$1 AND seat_id=$2 AND deleted_at IS NULL FOR UPDATE`,
		flightInstanceID, seatID).Scan(&holderBooking, &holderPassenger)
	switch {
	case err == nil:
		if holderBooking != bookingID || holderPassenger != passengerID {
			return conflict
		}
		// Re-assigning the passenger's own seat is a no-op.
		return tx.Commit(ctx)
	case errors.Is(err, pgx.ErrNoRows):
		// Seat is free, fall through to the write.
	default:
		return err
	}

	res, err := tx.Exec(ctx, `UPDATE booking_passengers SET seat_id=$1, updated_at=now()
		WHERE booking_id=$2 AND passenger_id=$3 AND flight_instance_id=$4 AND deleted_at IS NULL`,
		seatID, bookingID, passengerID, flightInstanceID)
	if err != nil {
		return translateConstraint(err, conflict)
	}
	if res.RowsAffected() == 0 {
		return notFound(pgx.ErrNoRows, "booking passenger")
	}

	// Two writers that both saw the seat free race here; the unique index
	// rejects the loser at commit.
	return translateConstraint(tx.Commit(ctx), conflict)
}

func (r *PGBookingPassengerRepository) ReleaseSeat(ctx context.Context, bookingID, passengerID int64) error {
	res, err := conn(ctx, r.db).Exec(ctx, `UPDATE booking_passengers SET seat_id=NULL, updated_at=now()
		WHERE booking_id=$1 AND passenger_id=$2 AND deleted_at IS NULL`, bookingID, passengerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return notFound(pgx.ErrNoRows, "booking passenger")
	}
	return nil
}

func (r *PGBookingPassengerRepository) ListSeatIDs(ctx context.Context, flightInstanceID int64) ([]string, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT DISTINCT seat_id FROM booking_passengers
		WHERE flight_instance_id=$1 AND seat_id IS NOT NULL AND deleted_at IS NULL`, flightInstanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatIDs := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		seatIDs = append(seatIDs, id)
	}
	return seatIDs, rows.Err()
}

func (r *PGBookingPassengerRepository) CountDistinctSeats(ctx context.Context, flightInstanceID int64) (int, error) {
	var count int
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT count(DISTINCT seat_id) FROM booking_passengers
		WHERE flight_instance_id=$1 AND seat_id IS NOT NULL AND deleted_at IS NULL`, flightInstanceID).Scan(&count)
	return count, err
}

var _ BookingPassengerRepository = (*PGBookingPassengerRepository)(nil)
