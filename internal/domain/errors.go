package domain

import (
	"errors"
	"fmt"
)

// Validation messages returned verbatim to HTTP callers.
const (
	MsgDaysRequired   = "The 'days' parameter is required."
	MsgDaysOutOfRange = "The 'days' parameter must be between 1 and 7."
	MsgDaysNotInteger = "The 'days' parameter must be an integer."
)

// Bounds of the feed date window in days.
const (
	MinDays = 1
	MaxDays = 7
)

// ErrRemoteService is matched by every RemoteServiceError via errors.Is.
var ErrRemoteService = errors.New("request to external feed failed")

// RemoteServiceError reports a transport failure or non-success status from the feed.
// StatusCode is 0 when no response was received.
type RemoteServiceError struct {
	StatusCode int
	Err        error
}

func (e *RemoteServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d", ErrRemoteService, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", ErrRemoteService, e.Err)
	}
	return ErrRemoteService.Error()
}

func (e *RemoteServiceError) Unwrap() error { return e.Err }

func (e *RemoteServiceError) Is(target error) bool { return target == ErrRemoteService }

// ParseError reports a feed body that does not match the expected shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse feed response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports unusable caller input. Message is safe to show to callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ValidateDays checks that days lies in [MinDays, MaxDays].
func ValidateDays(days int) error {
	if days < MinDays || days > MaxDays {
		return &ValidationError{Message: MsgDaysOutOfRange}
	}
	return nil
}
