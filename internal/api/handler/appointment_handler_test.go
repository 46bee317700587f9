package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/telemedpro/booking-api/internal/core/domain"
	"github.com/telemedpro/booking-api/internal/core/ports"
)

type stubSchedulerService struct {
	bookFn   func(ctx context.Context, input ports.BookingInput, caller *domain.Identity) (*domain.Appointment, error)
	listFn   func(ctx context.Context, caller *domain.Identity) ([]domain.Appointment, error)
	cancelFn func(ctx context.Context, appointmentID string, caller *domain.Identity) error
	slotsFn  func(ctx context.Context, date time.Time) (*ports.SlotReport, error)
}

func (s *stubSchedulerService) Book(ctx context.Context, input ports.BookingInput, caller *domain.Identity) (*domain.Appointment, error) {
	return s.bookFn(ctx, input, caller)
}

func (s *stubSchedulerService) ListMine(ctx context.Context, caller *domain.Identity) ([]domain.Appointment, error) {
	return s.listFn(ctx, caller)
}

func (s *stubSchedulerService) Cancel(ctx context.Context, appointmentID string, caller *domain.Identity) error {
	return s.cancelFn(ctx, appointmentID, caller)
}

func (s *stubSchedulerService) AvailableSlots(ctx context.Context, date time.Time) (*ports.SlotReport, error) {
	return s.slotsFn(ctx, date)
}

const validBookingBody = `{
	"name": "Ann Lee",
	"email": "ann@example.com",
	"phone": "555-0100",
	"appointment_date": "2025-06-10",
	"appointment_time": "09:00:00",
	"service_type": "primary-care",
	"reason": "annual checkup"
}`

func newBookingContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPost, "/api/appointments/book", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAppointmentHandler_Book_Anonymous(t *testing.T) {
	stub := &stubSchedulerService{
		bookFn: func(ctx context.Context, input ports.BookingInput, caller *domain.Identity) (*domain.Appointment, error) {
			if caller != nil {
				t.Fatalf("expected anonymous caller")
			}
			if input.Date.Format("2006-01-02") != "2025-06-10" {
				t.Fatalf("date not parsed: %v", input.Date)
			}
			if input.TimeOfDay != "09:00:00" {
				t.Fatalf("unexpected time: %s", input.TimeOfDay)
			}
			return &domain.Appointment{
				ID:          "apt-1",
				Name:        input.Name,
				Email:       input.Email,
				Phone:       input.Phone,
				Date:        input.Date,
				TimeOfDay:   input.TimeOfDay,
				ServiceType: domain.ServiceType(input.ServiceType),
				Reason:      input.Reason,
				Status:      domain.StatusPending,
			}, nil
		},
	}
	h := NewAppointmentHandler(stub)

	c, rec := newBookingContext(t, validBookingBody)

	if err := h.Book(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	appt, ok := resp["appointment"].(map[string]any)
	if !ok {
		t.Fatalf("expected appointment in response: %+v", resp)
	}
	if appt["appointment_date"] != "2025-06-10" || appt["status"] != "pending" {
		t.Fatalf("unexpected appointment payload: %+v", appt)
	}
}

func TestAppointmentHandler_Book_BindsCallerIdentity(t *testing.T) {
	stub := &stubSchedulerService{
		bookFn: func(ctx context.Context, input ports.BookingInput, caller *domain.Identity) (*domain.Appointment, error) {
			if caller == nil || caller.AccountID != "acc-1" {
				t.Fatalf("expected caller acc-1, got %+v", caller)
			}
			return &domain.Appointment{ID: "apt-1", Status: domain.StatusPending}, nil
		},
	}
	h := NewAppointmentHandler(stub)

	c, rec := newBookingContext(t, validBookingBody)
	c.Set("identity", &domain.Identity{AccountID: "acc-1"})

	if err := h.Book(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAppointmentHandler_Book_ValidationFailure(t *testing.T) {
	stub := &stubSchedulerService{
		bookFn: func(ctx context.Context, input ports.BookingInput, caller *domain.Identity) (*domain.Appointment, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAppointmentHandler(stub)

	cases := map[string]string{
		"missing name": `{"email":"a@b.com","phone":"1","appointment_date":"2025-06-10","appointment_time":"09:00:00","service_type":"primary-care","reason":"x"}`,
		"bad date":     `{"name":"A","email":"a@b.com","phone":"1","appointment_date":"10-06-2025","appointment_time":"09:00:00","service_type":"primary-care","reason":"x"}`,
		"bad email":    `{"name":"A","email":"nope","phone":"1","appointment_date":"2025-06-10","appointment_time":"09:00:00","service_type":"primary-care","reason":"x"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newBookingContext(t, body)
			err := h.Book(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestAppointmentHandler_Book_SlotTaken(t *testing.T) {
	stub := &stubSchedulerService{
		bookFn: func(ctx context.Context, input ports.BookingInput, caller *domain.Identity) (*domain.Appointment, error) {
			return nil, domain.ErrSlotTaken
		},
	}
	h := NewAppointmentHandler(stub)

	c, _ := newBookingContext(t, validBookingBody)

	err := h.Book(c)
	if !errors.Is(err, domain.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestAppointmentHandler_MyAppointments(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	stub := &stubSchedulerService{
		listFn: func(ctx context.Context, caller *domain.Identity) ([]domain.Appointment, error) {
			if caller == nil || caller.AccountID != "acc-1" {
				t.Fatalf("expected caller acc-1, got %+v", caller)
			}
			return []domain.Appointment{
				{ID: "apt-2", Date: date, TimeOfDay: "10:00:00", Status: domain.StatusPending},
				{ID: "apt-1", Date: date, TimeOfDay: "09:00:00", Status: domain.StatusCancelled},
			}, nil
		},
	}
	h := NewAppointmentHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/my-appointments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", &domain.Identity{AccountID: "acc-1"})

	if err := h.MyAppointments(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Appointments []map[string]any `json:"appointments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Appointments) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(resp.Appointments))
	}
	if resp.Appointments[0]["id"] != "apt-2" {
		t.Fatalf("order not preserved: %+v", resp.Appointments)
	}
}

func TestAppointmentHandler_MyAppointments_EmptyIsArray(t *testing.T) {
	stub := &stubSchedulerService{
		listFn: func(ctx context.Context, caller *domain.Identity) ([]domain.Appointment, error) {
			return nil, nil
		},
	}
	h := NewAppointmentHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/my-appointments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", &domain.Identity{AccountID: "acc-1"})

	if err := h.MyAppointments(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"appointments":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestAppointmentHandler_Cancel(t *testing.T) {
	stub := &stubSchedulerService{
		cancelFn: func(ctx context.Context, appointmentID string, caller *domain.Identity) error {
			if appointmentID != "apt-1" {
				t.Fatalf("unexpected id: %s", appointmentID)
			}
			return nil
		},
	}
	h := NewAppointmentHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/cancel/apt-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("apt-1")
	c.Set("identity", &domain.Identity{AccountID: "acc-1"})

	if err := h.Cancel(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAppointmentHandler_Cancel_NotFound(t *testing.T) {
	stub := &stubSchedulerService{
		cancelFn: func(ctx context.Context, appointmentID string, caller *domain.Identity) error {
			return domain.ErrAppointmentNotFound
		},
	}
	h := NewAppointmentHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/cancel/ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	c.Set("identity", &domain.Identity{AccountID: "acc-1"})

	err := h.Cancel(c)
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestAppointmentHandler_AvailableSlots(t *testing.T) {
	stub := &stubSchedulerService{
		slotsFn: func(ctx context.Context, date time.Time) (*ports.SlotReport, error) {
			if date.Format("2006-01-02") != "2025-06-10" {
				t.Fatalf("unexpected date: %v", date)
			}
			return &ports.SlotReport{
				Available: []string{"09:30:00", "10:00:00"},
				Booked:    []string{"09:00:00"},
			}, nil
		},
	}
	h := NewAppointmentHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/available-slots/2025-06-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues("2025-06-10")

	if err := h.AvailableSlots(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Date           string   `json:"date"`
		AvailableSlots []string `json:"available_slots"`
		BookedSlots    []string `json:"booked_slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Date != "2025-06-10" || len(resp.AvailableSlots) != 2 || len(resp.BookedSlots) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAppointmentHandler_AvailableSlots_BadDate(t *testing.T) {
	stub := &stubSchedulerService{
		slotsFn: func(ctx context.Context, date time.Time) (*ports.SlotReport, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAppointmentHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/available-slots/june-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues("june-10")

	err := h.AvailableSlots(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
