package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// DoctorRepository reads the seeded doctor roster.
type DoctorRepository struct {
	pool *pgxpool.Pool
}

func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

func (r *DoctorRepository) ListActive(ctx context.Context) ([]domain.Doctor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, specialty,
			COALESCE(bio, ''), COALESCE(credentials, ''), COALESCE(image_url, ''),
			is_active, created_at
		 FROM doctors
		 WHERE is_active
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	var out []domain.Doctor
	for rows.Next() {
		var d domain.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Specialty,
			&d.Bio, &d.Credentials, &d.ImageURL, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
