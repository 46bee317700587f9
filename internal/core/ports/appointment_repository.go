package ports

import (
	"context"
	"time"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// AppointmentRepository defines persistence operations for the appointment
// ledger.
//
// The store enforces at most one non-cancelled appointment per
// (appointment_date, appointment_time) pair; Create returns
// domain.ErrSlotTaken when a concurrent insert loses that race. This
// constraint is the system's double-booking guard and must survive any port
// to a different store.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	// ExistsActiveSlot reports whether a non-cancelled appointment already
	// occupies the given date and "HH:MM:SS" time of day.
	ExistsActiveSlot(ctx context.Context, date time.Time, timeOfDay string) (bool, error)
	// ListByAccount returns the account's appointments ordered by date
	// descending, then time descending.
	ListByAccount(ctx context.Context, accountID string) ([]domain.Appointment, error)
	// FindByIDForAccount retrieves an appointment only when it is owned by
	// the given account. An absent row and a row owned by someone else both
	// surface as domain.ErrAppointmentNotFound.
	FindByIDForAccount(ctx context.Context, id, accountID string) (*domain.Appointment, error)
	MarkCancelled(ctx context.Context, id string, at time.Time) error
	// BookedTimes returns the distinct non-cancelled "HH:MM:SS" times on the
	// given date in chronological order.
	BookedTimes(ctx context.Context, date time.Time) ([]string, error)
}
