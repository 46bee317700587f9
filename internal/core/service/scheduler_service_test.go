package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/telemedpro/booking-api/internal/core/domain"
	"github.com/telemedpro/booking-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubAppointmentRepo struct {
	byID      map[string]*domain.Appointment
	createErr error // if set, Create returns this error
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{byID: make(map[string]*domain.Appointment)}
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (r *stubAppointmentRepo) activeAt(date time.Time, timeOfDay string) bool {
	for _, a := range r.byID {
		if sameDay(a.Date, date) && a.TimeOfDay == timeOfDay && a.Status != domain.StatusCancelled {
			return true
		}
	}
	return false
}

func (r *stubAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	// Mirrors the partial unique index on (date, time) over non-cancelled rows.
	if r.activeAt(appt.Date, appt.TimeOfDay) {
		return domain.ErrSlotTaken
	}
	clone := *appt
	r.byID[appt.ID] = &clone
	return nil
}

func (r *stubAppointmentRepo) ExistsActiveSlot(_ context.Context, date time.Time, timeOfDay string) (bool, error) {
	return r.activeAt(date, timeOfDay), nil
}

func (r *stubAppointmentRepo) ListByAccount(_ context.Context, accountID string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, a := range r.byID {
		if a.AccountID == accountID && a.AccountID != "" {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Date.Format("2006-01-02"), out[j].Date.Format("2006-01-02")
		if di != dj {
			return di > dj
		}
		return out[i].TimeOfDay > out[j].TimeOfDay
	})
	return out, nil
}

func (r *stubAppointmentRepo) FindByIDForAccount(_ context.Context, id, accountID string) (*domain.Appointment, error) {
	a, ok := r.byID[id]
	if !ok || a.AccountID == "" || a.AccountID != accountID {
		return nil, domain.ErrAppointmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAppointmentRepo) MarkCancelled(_ context.Context, id string, at time.Time) error {
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	a.Status = domain.StatusCancelled
	a.UpdatedAt = at
	return nil
}

func (r *stubAppointmentRepo) BookedTimes(_ context.Context, date time.Time) ([]string, error) {
	seen := make(map[string]struct{})
	var times []string
	for _, a := range r.byID {
		if sameDay(a.Date, date) && a.Status != domain.StatusCancelled {
			if _, dup := seen[a.TimeOfDay]; !dup {
				seen[a.TimeOfDay] = struct{}{}
				times = append(times, a.TimeOfDay)
			}
		}
	}
	sort.Strings(times)
	return times, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var testClock = time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)

func newTestScheduler(repo *stubAppointmentRepo) *SchedulerService {
	svc := NewSchedulerService(repo, zerolog.Nop())
	svc.now = func() time.Time { return testClock }
	return svc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func validBooking() ports.BookingInput {
	return ports.BookingInput{
		Name:        "Ann Example",
		Email:       "ann@x.com",
		Phone:       "555-0100",
		Date:        day(2025, 6, 10),
		TimeOfDay:   "09:00:00",
		ServiceType: "primary-care",
		Reason:      "annual checkup",
	}
}

func mustBook(t *testing.T, svc *SchedulerService, input ports.BookingInput, caller *domain.Identity) *domain.Appointment {
	t.Helper()
	appt, err := svc.Book(context.Background(), input, caller)
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	return appt
}

// ---------------------------------------------------------------------------
// Book
// ---------------------------------------------------------------------------

func TestSchedulerService_Book_Anonymous(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)

	appt := mustBook(t, svc, validBooking(), nil)
	if appt.ID == "" {
		t.Fatalf("expected generated id")
	}
	if appt.AccountID != "" {
		t.Fatalf("anonymous booking should have no account, got %q", appt.AccountID)
	}
	if appt.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %q", appt.Status)
	}
}

func TestSchedulerService_Book_BindsCallerAccount(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)

	caller := &domain.Identity{AccountID: "acct-1", Email: "ann@x.com", Name: "Ann"}
	appt := mustBook(t, svc, validBooking(), caller)
	if appt.AccountID != "acct-1" {
		t.Fatalf("expected booking bound to caller account, got %q", appt.AccountID)
	}
}

func TestSchedulerService_Book_Validation(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)

	cases := []struct {
		name   string
		mutate func(*ports.BookingInput)
	}{
		{"missing name", func(in *ports.BookingInput) { in.Name = "" }},
		{"missing phone", func(in *ports.BookingInput) { in.Phone = "  " }},
		{"missing reason", func(in *ports.BookingInput) { in.Reason = "" }},
		{"bad email", func(in *ports.BookingInput) { in.Email = "not-an-email" }},
		{"bad service type", func(in *ports.BookingInput) { in.ServiceType = "tarot-reading" }},
		{"bad time of day", func(in *ports.BookingInput) { in.TimeOfDay = "quarter past nine" }},
		{"zero date", func(in *ports.BookingInput) { in.Date = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validBooking()
			tc.mutate(&input)
			_, err := svc.Book(context.Background(), input, nil)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSchedulerService_Book_FutureDateOnly(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)

	past := validBooking()
	past.Date = day(2025, 5, 31)
	if _, err := svc.Book(context.Background(), past, nil); err == nil {
		t.Fatalf("expected rejection for past date")
	} else {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	}

	// Booking for today (the clock's own date) is allowed.
	today := validBooking()
	today.Date = day(2025, 6, 1)
	mustBook(t, svc, today, nil)
}

func TestSchedulerService_Book_Conflict(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)

	mustBook(t, svc, validBooking(), nil)

	if _, err := svc.Book(context.Background(), validBooking(), nil); !errors.Is(err, domain.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	// A different time on the same day is free.
	other := validBooking()
	other.TimeOfDay = "09:30:00"
	mustBook(t, svc, other, nil)
}

func TestSchedulerService_Book_RaceSurfacesAsConflict(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)

	// Simulate losing the insert race after the pre-check passed.
	repo.createErr = domain.ErrSlotTaken
	if _, err := svc.Book(context.Background(), validBooking(), nil); !errors.Is(err, domain.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken from constraint violation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListMine
// ---------------------------------------------------------------------------

func TestSchedulerService_ListMine(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)

	if _, err := svc.ListMine(context.Background(), nil); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired for anonymous caller, got %v", err)
	}

	caller := &domain.Identity{AccountID: "acct-1"}
	early := validBooking()
	early.Date = day(2025, 6, 10)
	early.TimeOfDay = "09:00:00"
	late := validBooking()
	late.Date = day(2025, 6, 12)
	late.TimeOfDay = "10:30:00"
	mustBook(t, svc, early, caller)
	mustBook(t, svc, late, caller)
	mustBook(t, svc, ports.BookingInput{
		Name: "Someone Else", Email: "e@y.com", Phone: "555-0111",
		Date: day(2025, 6, 10), TimeOfDay: "11:00:00",
		ServiceType: "pediatrics", Reason: "visit",
	}, &domain.Identity{AccountID: "acct-2"})

	mine, err := svc.ListMine(context.Background(), caller)
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(mine))
	}
	if !sameDay(mine[0].Date, day(2025, 6, 12)) {
		t.Fatalf("expected most recent appointment first, got %s", mine[0].Date.Format("2006-01-02"))
	}
}

// ---------------------------------------------------------------------------
// Cancel
// ---------------------------------------------------------------------------

func TestSchedulerService_Cancel_Success(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)

	caller := &domain.Identity{AccountID: "acct-1"}
	appt := mustBook(t, svc, validBooking(), caller)

	if err := svc.Cancel(context.Background(), appt.ID, caller); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if got := repo.byID[appt.ID].Status; got != domain.StatusCancelled {
		t.Fatalf("expected cancelled status, got %q", got)
	}
}

func TestSchedulerService_Cancel_RequiresAuth(t *testing.T) {
	svc := newTestScheduler(newStubAppointmentRepo())
	if err := svc.Cancel(context.Background(), "whatever", nil); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestSchedulerService_Cancel_OwnershipOpacity(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)

	owner := &domain.Identity{AccountID: "acct-1"}
	appt := mustBook(t, svc, validBooking(), owner)

	intruder := &domain.Identity{AccountID: "acct-2"}
	errOther := svc.Cancel(context.Background(), appt.ID, intruder)
	errMissing := svc.Cancel(context.Background(), "no-such-id", intruder)

	// Someone else's appointment and a nonexistent one must be
	// indistinguishable to the caller.
	if !errors.Is(errOther, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound for foreign appointment, got %v", errOther)
	}
	if !errors.Is(errMissing, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound for missing appointment, got %v", errMissing)
	}
	if errOther.Error() != errMissing.Error() {
		t.Fatalf("error payloads differ: %q vs %q", errOther, errMissing)
	}
}

func TestSchedulerService_Cancel_AlreadyCancelled(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)

	caller := &domain.Identity{AccountID: "acct-1"}
	appt := mustBook(t, svc, validBooking(), caller)
	if err := svc.Cancel(context.Background(), appt.ID, caller); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if err := svc.Cancel(context.Background(), appt.ID, caller); !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestSchedulerService_Cancel_Window(t *testing.T) {
	cases := []struct {
		name      string
		date      time.Time
		timeOfDay string
		wantErr   bool
	}{
		// Clock is fixed at 2025-06-01 10:00 local.
		{"more than 2h ahead", day(2025, 6, 1), "13:00:00", false},
		{"exactly 2h ahead", day(2025, 6, 1), "12:00:00", false},
		{"within 2h", day(2025, 6, 1), "11:00:00", true},
		{"already past", day(2025, 6, 1), "09:00:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubAppointmentRepo()
			svc := newTestScheduler(repo)
			caller := &domain.Identity{AccountID: "acct-1"}

			// Seed directly: some cases are in the past and could not be
			// booked through Book's own validation.
			repo.byID["appt-1"] = &domain.Appointment{
				ID: "appt-1", AccountID: "acct-1",
				Date: tc.date, TimeOfDay: tc.timeOfDay,
				Status: domain.StatusPending,
			}

			err := svc.Cancel(context.Background(), "appt-1", caller)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrCancellationWindow) {
					t.Fatalf("expected ErrCancellationWindow, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("expected cancellation to succeed, got %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// AvailableSlots
// ---------------------------------------------------------------------------

func TestSchedulerService_AvailableSlots_Accounting(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := newTestScheduler(repo)
	target := day(2025, 6, 10)

	caller := &domain.Identity{AccountID: "acct-1"}
	appt := mustBook(t, svc, validBooking(), caller)

	report, err := svc.AvailableSlots(context.Background(), target)
	if err != nil {
		t.Fatalf("AvailableSlots returned error: %v", err)
	}
	if len(report.Available)+len(report.Booked) != 16 {
		t.Fatalf("expected 16 slots total, got %d available + %d booked",
			len(report.Available), len(report.Booked))
	}
	if contains(report.Available, "09:00:00") {
		t.Fatalf("booked slot still listed as available")
	}
	if !contains(report.Booked, "09:00:00") {
		t.Fatalf("booked slot missing from booked list")
	}

	// Cancelling frees the slot again.
	if err := svc.Cancel(context.Background(), appt.ID, caller); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	report, err = svc.AvailableSlots(context.Background(), target)
	if err != nil {
		t.Fatalf("AvailableSlots returned error: %v", err)
	}
	if !contains(report.Available, "09:00:00") {
		t.Fatalf("cancelled slot did not reappear as available")
	}
	if len(report.Booked) != 0 {
		t.Fatalf("expected no booked slots after cancellation, got %v", report.Booked)
	}
}

func TestSchedulerService_AvailableSlots_EmptyDay(t *testing.T) {
	svc := newTestScheduler(newStubAppointmentRepo())

	report, err := svc.AvailableSlots(context.Background(), day(2025, 6, 10))
	if err != nil {
		t.Fatalf("AvailableSlots returned error: %v", err)
	}
	if len(report.Available) != 16 {
		t.Fatalf("expected the full 16-slot grid, got %d", len(report.Available))
	}
	if report.Available[0] != "09:00:00" || report.Available[15] != "16:30:00" {
		t.Fatalf("unexpected grid bounds: first=%s last=%s", report.Available[0], report.Available[15])
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
