package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/telemedpro/booking-api/internal/core/domain"
	"github.com/telemedpro/booking-api/internal/core/ports"
)

// ContactService accepts contact form submissions and exposes the inbox.
type ContactService struct {
	messages ports.ContactRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewContactService(messages ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{
		messages: messages,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ContactService) Submit(ctx context.Context, input ports.ContactInput) (*domain.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	body := strings.TrimSpace(input.Message)

	if name == "" || email == "" || input.Subject == "" || body == "" {
		return nil, domain.NewValidationError("all fields are required")
	}
	if !domain.ValidEmail(email) {
		return nil, domain.NewValidationError("please provide a valid email address")
	}
	subject := domain.ContactSubject(input.Subject)
	if !subject.IsValid() {
		return nil, domain.NewValidationError("please select a valid subject")
	}

	msg := &domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   body,
		Status:    domain.MessageNew,
		CreatedAt: s.now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error().Err(err).Msg("failed to store contact message")
		return nil, err
	}

	s.logger.Info().Str("message_id", msg.ID).Str("subject", string(msg.Subject)).Msg("contact message received")
	return msg, nil
}

func (s *ContactService) Messages(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.messages.List(ctx)
}
