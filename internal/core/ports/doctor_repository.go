package ports

import (
	"context"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// DoctorRepository reads the fixed doctor roster.
type DoctorRepository interface {
	ListActive(ctx context.Context) ([]domain.Doctor, error)
}
