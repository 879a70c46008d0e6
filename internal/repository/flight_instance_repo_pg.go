package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightInstanceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.FlightInstance, error)
	// FindConflictingByTail returns any other active flight instance
	// assigned to tailNumber whose window intersects [departure, arrival).
	// Returns (nil, nil) when there is no conflict.
	FindConflictingByTail(ctx context.Context, tailNumber string, departure, arrival time.Time, excludeID int64) (*domain.FlightInstance, error)
	SetTailNumber(ctx context.Context, id int64, tailNumber string) error
	ListDepartingBetween(ctx context.Context, from, to time.Time) ([]domain.FlightInstance, error)
}

type PGFlightInstanceRepository struct {
	db *pgxpool.Pool
}

func NewFlightInstanceRepository(db *pgxpool.Pool) FlightInstanceRepository {
	return &PGFlightInstanceRepository{db: db}
}

// The aircraft config is resolved through the assigned aircraft; the
// COALESCE keeps AircraftConfigID at zero while no tail is assigned.
const flightInstanceQuery = `
SELECT f.id, f.flight_number, f.tail_number, COALESCE(a.aircraft_config_id, 0),
       f.scheduled_departure, f.scheduled_arrival, f.actual_departure, f.actual_arrival,
       f.status, f.created_at, f.updated_at
FROM flight_instances f
LEFT JOIN aircraft a ON a.tail_number = f.tail_number AND a.deleted_at IS NULL`

func scanFlightInstance(row pgx.Row) (*domain.FlightInstance, error) {
	var f domain.FlightInstance
	err := row.Scan(&f.ID, &f.FlightNumber, &f.TailNumber, &f.AircraftConfigID,
		&f.ScheduledDeparture, &f.ScheduledArrival, &f.ActualDeparture, &f.ActualArrival,
		&f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightInstanceRepository) GetByID(ctx context.Context, id int64) (*domain.FlightInstance, error) {
	row := conn(ctx, r.db).QueryRow(ctx, flightInstanceQuery+` WHERE f.id=$1 AND f.deleted_at IS NULL`, id)
	f, err := scanFlightInstance(row)
	if err != nil {
		return nil, notFound(err, "flight instance")
	}
	return f, nil
}

// overlapsWindow is the SQL form of domain.Overlaps against the live
// window of a flight instance f: strict inequality on both bounds, so
// touching endpoints are a legal back-to-back turnaround, not a
// conflict. Placeholders $3/$4 are the candidate departure/arrival.
const overlapsWindow = `
	  AND COALESCE(f.actual_departure, f.scheduled_departure) < $4
	  AND COALESCE(f.actual_arrival, f.scheduled_arrival) > $3`

func (r *PGFlightInstanceRepository) FindConflictingByTail(ctx context.Context, tailNumber string, departure, arrival time.Time, excludeID int64) (*domain.FlightInstance, error) {
	row := conn(ctx, r.db).QueryRow(ctx, flightInstanceQuery+`
		WHERE f.tail_number=$1
		  AND f.id<>$2
		  AND f.deleted_at IS NULL
		  AND f.status<>'CANCELLED'`+overlapsWindow+`
		ORDER BY f.scheduled_departure
		LIMIT 1`, tailNumber, excludeID, departure, arrival)
	f, err := scanFlightInstance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *PGFlightInstanceRepository) SetTailNumber(ctx context.Context, id int64, tailNumber string) error {
	res, err := conn(ctx, r.db).Exec(ctx, `UPDATE flight_instances SET tail_number=$1, updated_at=now() WHERE id=$2 AND deleted_at IS NULL`, tailNumber, id)
	if err != nil {
		return translateConstraint(err, &domain.ConflictError{
			Kind:             domain.ErrAircraftConflict,
			FlightInstanceID: id,
			TailNumber:       tailNumber,
		})
	}
	if res.RowsAffected() == 0 {
		return notFound(pgx.ErrNoRows, "flight instance")
	}
	return nil
}

func (r *PGFlightInstanceRepository) ListDepartingBetween(ctx context.Context, from, to time.Time) ([]domain.FlightInstance, error) {
	rows, err := conn(ctx, r.db).Query(ctx, flightInstanceQuery+`
		WHERE f.deleted_at IS NULL
		  AND f.status IN ('SCHEDULED', 'DELAYED')
		  AND f.scheduled_departure >= $1 AND f.scheduled_departure < $2
		ORDER BY f.scheduled_departure`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instances := make([]domain.FlightInstance, 0)
	for rows.Next() {
		f, err := scanFlightInstance(rows)
		if err != nil {
			return nil, err
		}
		instances = append(instances, *f)
	}
	return instances, rows.Err()
}

var _ FlightInstanceRepository = (*PGFlightInstanceRepository)(nil)
