// Package apperr defines the error taxonomy shared by the HTTP layer and the
// client: validation, auth, not-found and store failures, each carrying the
// status code it renders as.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuth
	KindNotFound
	KindStore
)

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Store wraps a persistence failure. The cause is kept for logging; the
// client-facing message never includes it.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: "server error", cause: err}
}

// HTTPStatus maps an error to the status code it should render as.
// Unrecognized errors are treated as store failures.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsAuth reports whether err is an auth error, for callers that react to
// invalidation (the client session manager clears its session on these).
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAuth
}
