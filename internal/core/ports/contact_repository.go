package ports

import (
	"context"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// ContactRepository defines persistence operations for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	// List returns all messages, newest first.
	List(ctx context.Context) ([]domain.ContactMessage, error)
}
