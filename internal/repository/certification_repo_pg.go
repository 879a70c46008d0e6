package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CertificationRepository interface {
	// HasCertification reports whether the crew member holds an unexpired
	// type rating for the aircraft type.
	HasCertification(ctx context.Context, crewMemberID int64, typeCode string) (bool, error)
}

type PGCertificationRepository struct {
	db *pgxpool.Pool
}

func NewCertificationRepository(db *pgxpool.Pool) CertificationRepository {
	return &PGCertificationRepository{db: db}
}

func (r *PGCertificationRepository) HasCertification(ctx context.Context, crewMemberID int64, typeCode string) (bool, error) {
	var ok bool
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM certifications
		WHERE crew_member_id=$1 AND type_code=$2 AND deleted_at IS NULL
		  AND (expires_at IS NULL OR expires_at > now())
	)`, crewMemberID, typeCode).Scan(&ok)
	return ok, err
}

var _ CertificationRepository = (*PGCertificationRepository)(nil)
