package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/telemedpro/booking-api/internal/core/domain"
	"github.com/telemedpro/booking-api/internal/core/ports"
)

// cancellationWindow is the minimum lead time before an appointment at which
// it may still be cancelled.
const cancellationWindow = 2 * time.Hour

const dateLayout = "2006-01-02"

// SchedulerService turns raw booking requests into conflict-free appointments
// on the clinic's single shared calendar and enforces the cancellation
// policy. Correctness under concurrent booking rests on the ledger's
// uniqueness constraint; the in-service existence check only produces a
// friendlier error in the common sequential case.
type SchedulerService struct {
	appointments ports.AppointmentRepository
	logger       zerolog.Logger
	now          func() time.Time
}

func NewSchedulerService(appointments ports.AppointmentRepository, logger zerolog.Logger) *SchedulerService {
	return &SchedulerService{
		appointments: appointments,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *SchedulerService) Book(ctx context.Context, input ports.BookingInput, caller *domain.Identity) (*domain.Appointment, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Reason = strings.TrimSpace(input.Reason)

	if input.Name == "" || input.Email == "" || input.Phone == "" ||
		input.Date.IsZero() || input.TimeOfDay == "" || input.ServiceType == "" || input.Reason == "" {
		return nil, domain.NewValidationError("all required fields must be filled")
	}
	if !domain.ValidEmail(input.Email) {
		return nil, domain.NewValidationError("please provide a valid email address")
	}
	serviceType := domain.ServiceType(input.ServiceType)
	if !serviceType.IsValid() {
		return nil, domain.NewValidationError("please select a valid service type")
	}
	if _, err := domain.ParseTimeOfDay(input.TimeOfDay); err != nil {
		return nil, domain.NewValidationError("please provide a valid appointment time")
	}
	// Date-only comparison on the clinic's wall clock: booking for today is
	// allowed, any earlier calendar date is not.
	if input.Date.Format(dateLayout) < s.now().Format(dateLayout) {
		return nil, domain.NewValidationError("appointment date must be in the future")
	}

	taken, err := s.appointments.ExistsActiveSlot(ctx, input.Date, input.TimeOfDay)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrSlotTaken
	}

	now := s.now().UTC()
	appt := &domain.Appointment{
		ID:                uuid.NewString(),
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		DateOfBirth:       input.DateOfBirth,
		Date:              dateOnly(input.Date),
		TimeOfDay:         input.TimeOfDay,
		ServiceType:       serviceType,
		Reason:            input.Reason,
		InsuranceProvider: input.InsuranceProvider,
		Status:            domain.StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if caller != nil {
		appt.AccountID = caller.AccountID
	}

	// The ledger's partial unique index decides races the pre-check missed.
	if err := s.appointments.Create(ctx, appt); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, domain.ErrSlotTaken
		}
		s.logger.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	s.logger.Info().
		Str("appointment_id", appt.ID).
		Str("date", appt.Date.Format("2006-01-02")).
		Str("time", appt.TimeOfDay).
		Str("service_type", string(appt.ServiceType)).
		Msg("appointment booked")

	return appt, nil
}

func (s *SchedulerService) ListMine(ctx context.Context, caller *domain.Identity) ([]domain.Appointment, error) {
	if caller == nil {
		return nil, domain.ErrAuthRequired
	}
	return s.appointments.ListByAccount(ctx, caller.AccountID)
}

func (s *SchedulerService) Cancel(ctx context.Context, appointmentID string, caller *domain.Identity) error {
	if caller == nil {
		return domain.ErrAuthRequired
	}

	// The lookup is scoped by owner: an appointment that exists but belongs
	// to someone else is reported exactly like one that does not exist.
	appt, err := s.appointments.FindByIDForAccount(ctx, appointmentID, caller.AccountID)
	if err != nil {
		return err
	}

	if appt.Status == domain.StatusCancelled {
		return domain.ErrAlreadyCancelled
	}

	startsAt, err := appt.StartsAt()
	if err != nil {
		return err
	}
	// Appointments already in the past have a negative lead time and fall
	// under the same policy rejection.
	if startsAt.Sub(s.now()) < cancellationWindow {
		return domain.ErrCancellationWindow
	}

	if err := s.appointments.MarkCancelled(ctx, appt.ID, s.now().UTC()); err != nil {
		return err
	}

	s.logger.Info().
		Str("appointment_id", appt.ID).
		Str("account_id", caller.AccountID).
		Msg("appointment cancelled")
	return nil
}

func (s *SchedulerService) AvailableSlots(ctx context.Context, date time.Time) (*ports.SlotReport, error) {
	booked, err := s.appointments.BookedTimes(ctx, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	available := make([]string, 0, 16)
	for _, slot := range domain.DailySlots() {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}

	return &ports.SlotReport{Available: available, Booked: booked}, nil
}

// dateOnly strips the time of day, keeping the calendar date in the value's
// own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
