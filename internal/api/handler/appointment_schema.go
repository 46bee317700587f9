package handler

import (
	"time"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// --- Request / Response types ---

type bookingRequest struct {
	Name              string `json:"name"               validate:"required"`
	Email             string `json:"email"              validate:"required,email"`
	Phone             string `json:"phone"              validate:"required"`
	DateOfBirth       string `json:"date_of_birth"      validate:"omitempty,datetime=2006-01-02"`
	AppointmentDate   string `json:"appointment_date"   validate:"required,datetime=2006-01-02"`
	AppointmentTime   string `json:"appointment_time"   validate:"required"`
	ServiceType       string `json:"service_type"       validate:"required"`
	Reason            string `json:"reason"             validate:"required"`
	InsuranceProvider string `json:"insurance_provider"`
}

type appointmentResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	DateOfBirth       string    `json:"date_of_birth,omitempty"`
	AppointmentDate   string    `json:"appointment_date"`
	AppointmentTime   string    `json:"appointment_time"`
	ServiceType       string    `json:"service_type"`
	Reason            string    `json:"reason"`
	InsuranceProvider string    `json:"insurance_provider,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

type bookingResponse struct {
	Message     string              `json:"message"`
	Appointment appointmentResponse `json:"appointment"`
}

type listAppointmentsResponse struct {
	Appointments []appointmentResponse `json:"appointments"`
}

// slotsResponse is the free/busy calendar view for one clinic day.
type slotsResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
	BookedSlots    []string `json:"booked_slots"`
}

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:                a.ID,
		Name:              a.Name,
		Email:             a.Email,
		Phone:             a.Phone,
		DateOfBirth:       a.DateOfBirth,
		AppointmentDate:   a.Date.Format("2006-01-02"),
		AppointmentTime:   a.TimeOfDay,
		ServiceType:       string(a.ServiceType),
		Reason:            a.Reason,
		InsuranceProvider: a.InsuranceProvider,
		Status:            string(a.Status),
		CreatedAt:         a.CreatedAt,
	}
}
