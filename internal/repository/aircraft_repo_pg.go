package repository

import (
	"context"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AircraftRepository interface {
	GetByTail(ctx context.Context, tailNumber string) (*domain.Aircraft, error)
}

type PGAircraftRepository struct {
	db *pgxpool.Pool
}

func NewAircraftRepository(db *pgxpool.Pool) AircraftRepository {
	return &PGAircraftRepository{db: db}
}

func (r *PGAircraftRepository) GetByTail(ctx context.Context, tailNumber string) (*domain.Aircraft, error) {
	row := conn(ctx, r.db).QueryRow(ctx, `SELECT tail_number, aircraft_config_id, type_code, status, created_at, updated_at
		FROM aircraft WHERE tail_number=$1 AND deleted_at IS NULL`, tailNumber)
	var a domain.Aircraft
	if err := row.Scan(&a.TailNumber, &a.AircraftConfigID, &a.TypeCode, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, notFound(err, "aircraft")
	}
	return &a, nil
}

var _ AircraftRepository = (*PGAircraftRepository)(nil)
