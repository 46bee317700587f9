package ports

import (
	"context"
	"time"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// AccountRepository defines persistence operations for patient accounts.
// Email lookups are case-insensitive; uniqueness of email is enforced by the
// store and surfaces as domain.ErrEmailTaken.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
