package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightCrewRepository interface {
	// LockCrewMember takes a transaction-scoped advisory lock on the
	// crew member. Callers must hold it across FindOverlapping and
	// Insert: with no existing assignments there are no rows to lock,
	// and repeatable read does not detect the resulting write skew, so
	// row locks alone cannot serialize two first assignments.
	LockCrewMember(ctx context.Context, crewMemberID int64) error
	// FindOverlapping returns any active flight instance, other than
	// excludeID, that the crew member is assigned to and whose window
	// intersects [departure, arrival). Returns (nil, nil) if none.
	FindOverlapping(ctx context.Context, crewMemberID int64, departure, arrival time.Time, excludeID int64) (*domain.FlightInstance, error)
	Insert(ctx context.Context, fc *domain.FlightCrew) error
	SoftDelete(ctx context.Context, flightInstanceID, crewMemberID int64) error
	ListByFlight(ctx context.Context, flightInstanceID int64) ([]domain.FlightCrew, error)
}

type PGFlightCrewRepository struct {
	db *pgxpool.Pool
}

func NewFlightCrewRepository(db *pgxpool.Pool) FlightCrewRepository {
	return &PGFlightCrewRepository{db: db}
}

func (r *PGFlightCrewRepository) LockCrewMember(ctx context.Context, crewMemberID int64) error {
	_, err := conn(ctx, r.db).Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, crewMemberID)
	return err
}

func (r *PGFlightCrewRepository) FindOverlapping(ctx context.Context, crewMemberID int64, departure, arrival time.Time, excludeID int64) (*domain.FlightInstance, error) {
	row := conn(ctx, r.db).QueryRow(ctx, `
		SELECT f.id, f.flight_number, f.tail_number, 0,
		       f.scheduled_departure, f.scheduled_arrival, f.actual_departure, f.actual_arrival,
		       f.status, f.created_at, f.updated_at
		FROM flight_crew fc
		JOIN flight_instances f ON f.id = fc.flight_instance_id
		WHERE fc.crew_member_id=$1
		  AND fc.deleted_at IS NULL
		  AND f.deleted_at IS NULL
		  AND f.status<>'CANCELLED'
		  AND f.id<>$2`+overlapsWindow+`
		ORDER BY f.scheduled_departure
		LIMIT 1`, crewMemberID, excludeID, departure, arrival)
	f, err := scanFlightInstance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *PGFlightCrewRepository) Insert(ctx context.Context, fc *domain.FlightCrew) error {
	// Re-inserting an existing assignment for the same flight is a
	// no-op; only a genuinely new row gets created_at set.
	err := conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO flight_crew (flight_instance_id, crew_member_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (flight_instance_id, crew_member_id) WHERE deleted_at IS NULL DO UPDATE SET role=EXCLUDED.role
		RETURNING created_at`, fc.FlightInstanceID, fc.CrewMemberID, fc.Role).Scan(&fc.CreatedAt)
	if err != nil {
		return translateConstraint(err, &domain.ConflictError{
			Kind:             domain.ErrCrewConflict,
			FlightInstanceID: fc.FlightInstanceID,
			CrewMemberID:     fc.CrewMemberID,
		})
	}
	return nil
}

func (r *PGFlightCrewRepository) SoftDelete(ctx context.Context, flightInstanceID, crewMemberID int64) error {
	res, err := conn(ctx, r.db).Exec(ctx, `UPDATE flight_crew SET deleted_at=now()
		WHERE flight_instance_id=$1 AND crew_member_id=$2 AND deleted_at IS NULL`, flightInstanceID, crewMemberID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return notFound(pgx.ErrNoRows, "crew assignment")
	}
	return nil
}

func (r *PGFlightCrewRepository) ListByFlight(ctx context.Context, flightInstanceID int64) ([]domain.FlightCrew, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT flight_instance_id, crew_member_id, role, created_at
		FROM flight_crew WHERE flight_instance_id=$1 AND deleted_at IS NULL ORDER BY crew_member_id`, flightInstanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crew := make([]domain.FlightCrew, 0)
	for rows.Next() {
		var fc domain.FlightCrew
		if err := rows.Scan(&fc.FlightInstanceID, &fc.CrewMemberID, &fc.Role, &fc.CreatedAt); err != nil {
			return nil, err
		}
		crew = append(crew, fc)
	}
	return crew, rows.Err()
}

var _ FlightCrewRepository = (*PGFlightCrewRepository)(nil)
