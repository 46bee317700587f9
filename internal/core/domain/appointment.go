package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions. Only the
// cancellation transition is driven by this API; confirmation and completion
// belong to the clinic's back office.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

var ErrSlotTaken = errors.New("this time slot is already booked")
var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrAlreadyCancelled = errors.New("appointment is already cancelled")
var ErrCancellationWindow = errors.New("appointments cannot be cancelled less than 2 hours before the scheduled time")

// CanTransitionTo reports whether a transition from the current status to next
// is valid. Cancelled and completed are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceType enumerates the clinic's consultation categories.
type ServiceType string

const (
	ServicePrimaryCare    ServiceType = "primary-care"
	ServiceUrgentCare     ServiceType = "urgent-care"
	ServiceChronicDisease ServiceType = "chronic-disease"
	ServiceMentalHealth   ServiceType = "mental-health"
	ServicePediatrics     ServiceType = "pediatrics"
	ServiceSpecialist     ServiceType = "specialist"
)

// ServiceTypes lists all valid service types in presentation order.
func ServiceTypes() []ServiceType {
	return []ServiceType{
		ServicePrimaryCare,
		ServiceUrgentCare,
		ServiceChronicDisease,
		ServiceMentalHealth,
		ServicePediatrics,
		ServiceSpecialist,
	}
}

// IsValid reports whether t is a known service type.
func (t ServiceType) IsValid() bool {
	for _, known := range ServiceTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Appointment is the core aggregate of the booking subsystem. AccountID is
// empty for bookings made by unauthenticated visitors. Date carries the
// calendar date only; TimeOfDay is an "HH:MM:SS" string on the clinic's
// half-hour grid.
type Appointment struct {
	ID                string            `json:"id"`
	AccountID         string            `json:"account_id,omitempty"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	DateOfBirth       string            `json:"date_of_birth,omitempty"`
	Date              time.Time         `json:"appointment_date"`
	TimeOfDay         string            `json:"appointment_time"`
	ServiceType       ServiceType       `json:"service_type"`
	Reason            string            `json:"reason"`
	InsuranceProvider string            `json:"insurance_provider,omitempty"`
	Status            AppointmentStatus `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// StartsAt combines the appointment's calendar date and time of day into a
// single instant in the clinic's local time.
func (a *Appointment) StartsAt() (time.Time, error) {
	return CombineDateTime(a.Date, a.TimeOfDay)
}
