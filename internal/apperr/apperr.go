// Package apperr defines the closed error taxonomy shared by the managers
// and the HTTP layer. Every error that crosses a manager boundary is one of
// these kinds; anything else is wrapped as Internal before it reaches a
// client.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
	KindConflict
)

// Error is the only error type handlers translate into responses. Message is
// safe to show to clients for BadRequest and Conflict; Internal and NotFound
// always surface a fixed message regardless of the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func BadRequest(reason string) *Error {
	return &Error{Kind: KindBadRequest, Message: reason}
}

func Conflict(reason string) *Error {
	return &Error{Kind: KindConflict, Message: reason}
}

// Internal wraps a storage or infrastructure failure. The cause is kept for
// logging but never serialized to a client.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// From extracts an *Error from err, wrapping unknown errors as Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Status maps an error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage is the string serialized into the {"error": ...} body.
func (e *Error) ClientMessage() string {
	switch e.Kind {
	case KindNotFound:
		return "Resource Not Found"
	case KindInternal:
		return "Internal Server Error"
	default:
		return e.Message
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
