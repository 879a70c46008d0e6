package repository

import (
	"context"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SeatRepository interface {
	GetByID(ctx context.Context, seatID string) (*domain.Seat, error)
	ListByConfig(ctx context.Context, configID int64, cabinClassID *int64) ([]domain.Seat, error)
	CountByConfig(ctx context.Context, configID int64) (int, error)
}

type PGSeatRepository struct {
	db *pgxpool.Pool
}

func NewSeatRepository(db *pgxpool.Pool) SeatRepository {
	return &PGSeatRepository{db: db}
}

const seatColumns = `id, seat_number, cabin_class_id, aircraft_config_id, is_window, is_aisle, is_exit_row, price_override_cents, created_at, updated_at`

func (r *PGSeatRepository) GetByID(ctx context.Context, seatID string) (*domain.Seat, error) {
	row := conn(ctx, r.db).QueryRow(ctx, `SELECT `+seatColumns+` FROM seats WHERE id=$1 AND deleted_at IS NULL`, seatID)
	var s domain.Seat
	if err := row.Scan(&s.ID, &s.SeatNumber, &s.CabinClassID, &s.AircraftConfigID, &s.Window, &s.Aisle, &s.ExitRow, &s.PriceOverrideCents, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, notFound(err, "seat")
	}
	return &s, nil
}

func (r *PGSeatRepository) ListByConfig(ctx context.Context, configID int64, cabinClassID *int64) ([]domain.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE aircraft_config_id=$1 AND deleted_at IS NULL`
	args := []any{configID}
	if cabinClassID != nil {
		query += ` AND cabin_class_id=$2`
		args = append(args, *cabinClassID)
	}
	query += ` ORDER BY cabin_class_id, seat_number`

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.SeatNumber, &s.CabinClassID, &s.AircraftConfigID, &s.Window, &s.Aisle, &s.ExitRow, &s.PriceOverrideCents, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *PGSeatRepository) CountByConfig(ctx context.Context, configID int64) (int, error) {
	var count int
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT count(*) FROM seats WHERE aircraft_config_id=$1 AND deleted_at IS NULL`, configID).Scan(&count)
	return count, err
}

var _ SeatRepository = (*PGSeatRepository)(nil)
