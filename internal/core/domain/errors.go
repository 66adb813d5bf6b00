package domain

import (
	"errors"
	"fmt"
)

// ValidationError is a missing or out-of-range operator input. It is raised
// before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// SelectionError means no category can be resolved for a submission.
type SelectionError struct {
	Message string
}

func (e *SelectionError) Error() string {
	return e.Message
}

// RequestRejected is a non-2xx backend response.
type RequestRejected struct {
	Status  int
	Message string
	// Payload is the decoded error body, or the raw text when it is not JSON.
	Payload any
}

func (e *RequestRejected) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request (status %d)", e.Status)
	}
	return fmt.Sprintf("server rejected request (status %d): %s", e.Status, e.Message)
}

// TransportFailure is a network or decoding failure.
type TransportFailure struct {
	Op  string
	Err error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *TransportFailure) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err blocks a call before any network I/O.
func IsValidation(err error) bool {
	var v *ValidationError
	var s *SelectionError
	return errors.As(err, &v) || errors.As(err, &s)
}
