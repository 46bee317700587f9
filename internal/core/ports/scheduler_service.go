package ports

import (
	"context"
	"time"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// BookingInput is the DTO passed from the transport layer to the scheduler.
// Date carries the calendar date only; TimeOfDay is "HH:MM:SS". DateOfBirth
// and InsuranceProvider are optional.
type BookingInput struct {
	Name              string
	Email             string
	Phone             string
	DateOfBirth       string
	Date              time.Time
	TimeOfDay         string
	ServiceType       string
	Reason            string
	InsuranceProvider string
}

// SlotReport is the free/busy view of one clinic day. Available preserves the
// chronological order of the slot grid.
type SlotReport struct {
	Available []string
	Booked    []string
}

// SchedulerService implements the appointment slot-allocation and lifecycle
// subsystem. The caller identity is always passed explicitly; nil means an
// anonymous visitor.
type SchedulerService interface {
	// Book validates the request, rejects collisions on the shared calendar,
	// and persists a pending appointment. Anonymous callers may book.
	Book(ctx context.Context, input BookingInput, caller *domain.Identity) (*domain.Appointment, error)
	// ListMine returns the caller's appointments, most recent first.
	ListMine(ctx context.Context, caller *domain.Identity) ([]domain.Appointment, error)
	// Cancel sets the appointment to cancelled, subject to ownership and the
	// two-hour cancellation window.
	Cancel(ctx context.Context, appointmentID string, caller *domain.Identity) error
	// AvailableSlots reports the free/busy grid for a date. No authentication
	// required.
	AvailableSlots(ctx context.Context, date time.Time) (*SlotReport, error)
}
