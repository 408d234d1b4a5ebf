package editor

import "fmt"

// ValidationError is an error detected locally before any network call is
// made, such as a missing deploy channel.
type ValidationError struct {
	// Msg is the human readable message for the user.
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a new ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// TransportError is a failed request: either the request never completed,
// or the server answered with a non-success status. The message is
// extracted best effort from the response body.
type TransportError struct {
	// Status is the HTTP status code, or 0 if the request never completed.
	Status int

	// Msg is the human readable message for the user.
	Msg string
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Msg)
}
