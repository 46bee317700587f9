package ports

import (
	"context"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// ContactInput carries the fields of a contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService handles contact form submissions and the message inbox.
type ContactService interface {
	Submit(ctx context.Context, input ContactInput) (*domain.ContactMessage, error)
	Messages(ctx context.Context) ([]domain.ContactMessage, error)
}
