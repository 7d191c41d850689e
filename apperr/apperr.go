package apperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifies every failure the workflows can report. Services convert
// collaborator errors (gorm, Cloudinary, Firebase) into one of these at
// their own boundary; nothing below a handler ever sees a raw SDK error.
type Kind int

const (
	KindValidation Kind = iota // missing/malformed input, never reached the backend
	KindForbidden              // authorization check failed
	KindNotFound               // referenced record absent
	KindUnavailable            // network/service failure, no automatic retry
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error // underlying cause, not exposed to clients
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Unavailable wraps a collaborator failure with a user-facing message.
func Unavailable(msg string, err error) error {
	return &Error{Kind: KindUnavailable, Msg: msg, Err: err}
}

// FromDB maps a repository error: record-not-found becomes NotFound,
// anything else is treated as a transient backend failure.
func FromDB(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMsg)
	}
	return Unavailable("service temporarily unavailable", err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Status maps an error to the HTTP status handlers respond with.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindValidation:
			return http.StatusBadRequest
		case KindForbidden:
			return http.StatusForbidden
		case KindNotFound:
			return http.StatusNotFound
		case KindUnavailable:
			return http.StatusServiceUnavailable
		}
	}
	return http.StatusInternalServerError
}
