package promptclient

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed prompt request for the user.
type ErrorKind string

const (
	InvalidInput ErrorKind = "invalid_input"
	ServerError  ErrorKind = "server_error"
	NetworkError ErrorKind = "network_error"
	Timeout      ErrorKind = "timeout"
	Unknown      ErrorKind = "unknown"
)

// TimeoutMessage is the detail reported when the deadline fires first.
const TimeoutMessage = "Request timed out. Please try again later."

// Error is the only error type returned by Client. Detail is safe to show to
// the user; Err, when set, is the underlying cause.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err. Errors that did not come from Client are Unknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// MessageOf returns the user-facing detail of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return err.Error()
}

// kindForStatus maps a non-2xx status code to an ErrorKind.
func kindForStatus(code int) ErrorKind {
	switch {
	case code == 400:
		return InvalidInput
	case code >= 500:
		return ServerError
	default:
		return Unknown
	}
}
