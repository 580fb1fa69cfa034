package shared

import "errors"

var (
	// ErrConflict indicates a duplicate resource, e.g. an already registered email.
	ErrConflict = errors.New("conflict")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller lacks a required permission.
	ErrForbidden = errors.New("forbidden")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NewError builds an error of the given kind carrying a caller-facing
// message. errors.Is against the kind still matches.
func NewError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// IsBusinessError reports whether err is a known error kind that propagates
// verbatim to the caller. Anything else is logged and collapsed to a generic
// internal fault message.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden)
}
