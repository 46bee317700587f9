package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/telemedpro/booking-api/internal/api/metrics"
	"github.com/telemedpro/booking-api/internal/api/middleware"
	"github.com/telemedpro/booking-api/internal/core/domain"
	"github.com/telemedpro/booking-api/internal/core/ports"
)

const dateParamLayout = "2006-01-02"

// AppointmentHandler handles booking, listing, cancellation and the slot
// calendar.
type AppointmentHandler struct {
	service ports.SchedulerService
}

func NewAppointmentHandler(service ports.SchedulerService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Book creates a new appointment. Works for anonymous visitors; when a
// session is present the appointment is bound to the caller's account.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body      bookingRequest  true  "Appointment details"
// @Success      201   {object}  bookingResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /appointments/book [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := time.Parse(dateParamLayout, req.AppointmentDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "appointment_date must match the format YYYY-MM-DD")
	}

	appointment, err := h.service.Book(c.Request().Context(), ports.BookingInput{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		DateOfBirth:       req.DateOfBirth,
		Date:              date,
		TimeOfDay:         req.AppointmentTime,
		ServiceType:       req.ServiceType,
		Reason:            req.Reason,
		InsuranceProvider: req.InsuranceProvider,
	}, middleware.Identity(c))
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			metrics.BookingConflictsTotal.Inc()
		}
		return err
	}

	metrics.AppointmentsBookedTotal.WithLabelValues(string(appointment.ServiceType)).Inc()

	return c.JSON(http.StatusCreated, bookingResponse{
		Message:     "appointment booked successfully",
		Appointment: toAppointmentResponse(appointment),
	})
}

// MyAppointments lists the caller's appointments, most recent first.
//
// @Summary      List my appointments
// @Tags         appointments
// @Produce      json
// @Success      200  {object}  listAppointmentsResponse
// @Failure      401  {object}  errorResponse
// @Router       /appointments/my-appointments [get]
func (h *AppointmentHandler) MyAppointments(c echo.Context) error {
	appointments, err := h.service.ListMine(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return err
	}

	out := make([]appointmentResponse, 0, len(appointments))
	for i := range appointments {
		out = append(out, toAppointmentResponse(&appointments[i]))
	}

	return c.JSON(http.StatusOK, listAppointmentsResponse{Appointments: out})
}

// Cancel cancels one of the caller's appointments, subject to the cancellation
// window.
//
// @Summary      Cancel an appointment
// @Tags         appointments
// @Produce      json
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /appointments/cancel/{id} [put]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	if err := h.service.Cancel(c.Request().Context(), c.Param("id"), middleware.Identity(c)); err != nil {
		return err
	}

	metrics.AppointmentsCancelledTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "appointment cancelled successfully"})
}

// AvailableSlots reports the free/busy slot grid for a date.
//
// @Summary      Available slots for a date
// @Tags         appointments
// @Produce      json
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  slotsResponse
// @Failure      400   {object}  errorResponse
// @Router       /appointments/available-slots/{date} [get]
func (h *AppointmentHandler) AvailableSlots(c echo.Context) error {
	date, err := time.Parse(dateParamLayout, c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must match the format YYYY-MM-DD")
	}

	report, err := h.service.AvailableSlots(c.Request().Context(), date)
	if err != nil {
		return err
	}

	resp := slotsResponse{
		Date:           date.Format(dateParamLayout),
		AvailableSlots: report.Available,
		BookedSlots:    report.Booked,
	}
	if resp.AvailableSlots == nil {
		resp.AvailableSlots = []string{}
	}
	if resp.BookedSlots == nil {
		resp.BookedSlots = []string{}
	}

	return c.JSON(http.StatusOK, resp)
}
