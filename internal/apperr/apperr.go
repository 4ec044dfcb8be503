// Package apperr defines the error taxonomy shared by the service
// layer and the transport boundary. Every failure a service returns
// carries a Kind; the HTTP layer maps kinds to status codes.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Validation: malformed or missing input.
	Validation Kind = iota + 1
	// NotFound: the resource does not exist.
	NotFound
	// Auth: identity missing or invalid.
	Auth
	// Authorization: identity present but rights insufficient.
	Authorization
	// Conflict: uniqueness violation.
	Conflict
	// Internal: unexpected failure; user-visible message stays generic.
	Internal
)

// Error is a kinded error with a short human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause; the cause is for logs, Message is for users.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to Internal for
// anything that did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the user-facing message for err. Non-taxonomy
// errors degrade to a generic message so internals never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Internal server error"
}
