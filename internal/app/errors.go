package app

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("resource not found")
	ErrNotOwner          = errors.New("acting user does not own the resource")
	ErrInvalidCredential = errors.New("invalid username / password")
)

// ValidationError accumulates every failed constraint of a form submission
// so the page can re-render the full list, not just the first failure.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func validationFailed(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

// ValidationMessages unwraps the accumulated list, or nil when err is not a
// validation failure.
func ValidationMessages(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Messages
	}
	return nil
}
