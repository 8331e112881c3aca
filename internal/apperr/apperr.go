// Package apperr defines the typed errors shared by the store adapters, the
// REST server and the editor session.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an error for callers that need to react to it.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindForbidden  Kind = "FORBIDDEN"
	KindValidation Kind = "VALIDATION"
	KindConflict   Kind = "CONFLICT"
	KindNetwork    Kind = "NETWORK"
	KindInternal   Kind = "INTERNAL"
)

// Status returns the HTTP status the kind is reported with.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: err}
}

func NotFound(resource string) *Error {
	return New(KindNotFound, resource+" not found")
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "forbidden"
	}
	return New(KindForbidden, message)
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func Network(err error) *Error {
	return Wrap(KindNetwork, err, "request failed")
}

func Internal(err error, message string) *Error {
	return Wrap(KindInternal, err, message)
}

// As extracts the typed error from a wrapped chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal for untyped errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

func StatusOf(err error) int {
	return KindOf(err).Status()
}

// MessageOf returns the human message of a typed error, or err.Error().
func MessageOf(err error) string {
	if e, ok := As(err); ok {
		return e.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool   { return err != nil && KindOf(err) == KindNotFound }
func IsForbidden(err error) bool  { return err != nil && KindOf(err) == KindForbidden }
func IsValidation(err error) bool { return err != nil && KindOf(err) == KindValidation }
func IsNetwork(err error) bool    { return err != nil && KindOf(err) == KindNetwork }

// FromStatus maps a non-2xx HTTP response onto a typed error.
func FromStatus(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	switch {
	case status == http.StatusNotFound:
		return New(KindNotFound, message)
	case status == http.StatusForbidden || status == http.StatusUnauthorized:
		return New(KindForbidden, message)
	case status == http.StatusConflict:
		return New(KindConflict, message)
	case status >= 400 && status < 500:
		return New(KindValidation, message)
	default:
		return New(KindInternal, message)
	}
}
