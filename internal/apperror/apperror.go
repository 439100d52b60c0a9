// Package apperror defines the domain error taxonomy shared by the service
// and handler layers.
//
// Services return these instead of HTTP status codes; handlers decide whether
// a given class becomes a flash notice + redirect (the usual case here) or a
// bare status. errors.Is against the sentinel values works through any number
// of fmt.Errorf("%w") wrappers.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError pairs a sentinel class with a human-readable message suitable for
// showing to the user (as a flash notice, for example).
type AppError struct {
	Err     error  // sentinel class, matched with errors.Is
	Message string // human-readable, safe to surface
	Field   string // optional: the form field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, key),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthorized returns an AppError for failed authentication. Callers must
// pass the same message for "unknown user" and "wrong password" so the two
// cases are indistinguishable to the client.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Message extracts the user-facing message from an error chain, falling back
// to a generic string when the error carries no AppError.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong."
}
