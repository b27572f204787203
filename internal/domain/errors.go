package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// ValidationError is a client-caused input error. Its message is safe to
// return over the wire verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
