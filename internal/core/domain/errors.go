package domain

// ValidationError reports malformed or missing caller input. The message is
// safe to return to the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given caller-facing
// message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
