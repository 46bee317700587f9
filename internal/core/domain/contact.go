package domain

import "time"

// ContactSubject enumerates the contact form's subject categories.
type ContactSubject string

const (
	SubjectGeneral     ContactSubject = "general"
	SubjectTechnical   ContactSubject = "technical"
	SubjectBilling     ContactSubject = "billing"
	SubjectAppointment ContactSubject = "appointment"
	SubjectFeedback    ContactSubject = "feedback"
)

// IsValid reports whether s is a known contact subject.
func (s ContactSubject) IsValid() bool {
	switch s {
	case SubjectGeneral, SubjectTechnical, SubjectBilling, SubjectAppointment, SubjectFeedback:
		return true
	}
	return false
}

// ContactMessageStatus tracks triage of an inbound message.
type ContactMessageStatus string

const (
	MessageNew        ContactMessageStatus = "new"
	MessageInProgress ContactMessageStatus = "in_progress"
	MessageResolved   ContactMessageStatus = "resolved"
)

// ContactMessage is an inbound message from the website contact form.
type ContactMessage struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Subject   ContactSubject       `json:"subject"`
	Message   string               `json:"message"`
	Status    ContactMessageStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}
