// Package apperr defines the error kinds shared by the canvas services.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error category.
type Kind string

const (
	KindValidationFailed  Kind = "VALIDATION_FAILED"
	KindUnsupportedFormat Kind = "UNSUPPORTED_FORMAT"
	KindNotFound          Kind = "NOT_FOUND"
	KindParseFailed       Kind = "PARSE_FAILED"
	KindConflict          Kind = "CONFLICT"
	KindAlreadyExists     Kind = "ALREADY_EXISTS"
	KindInternal          Kind = "INTERNAL"
)

// Sentinels for errors.Is matching against a kind.
var (
	ErrValidationFailed  = &Error{Kind: KindValidationFailed, Message: "validation failed"}
	ErrUnsupportedFormat = &Error{Kind: KindUnsupportedFormat, Message: "unsupported format"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrParseFailed       = &Error{Kind: KindParseFailed, Message: "parse failed"}
	ErrConflict          = &Error{Kind: KindConflict, Message: "conflict"}
	ErrAlreadyExists     = &Error{Kind: KindAlreadyExists, Message: "already exists"}
)

// Error carries a Kind plus a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface. Only the message is returned so it can be
// shown to users as-is.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind with an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Validation creates a ValidationFailed error.
func Validation(format string, args ...any) *Error {
	return New(KindValidationFailed, format, args...)
}

// Unsupported creates an UnsupportedFormat error.
func Unsupported(format string, args ...any) *Error {
	return New(KindUnsupportedFormat, format, args...)
}

// NotFound creates a NotFound error for the named resource.
func NotFound(resource, id string) *Error {
	return New(KindNotFound, "%s %q not found", resource, id)
}

// KindOf returns the kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error onto a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidationFailed, KindParseFailed:
		return http.StatusBadRequest
	case KindUnsupportedFormat:
		return http.StatusNotImplemented
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
