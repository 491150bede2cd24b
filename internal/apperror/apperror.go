// Package apperror defines the application's error taxonomy.
//
// Every failure a request can hit falls into one of five buckets, each
// represented by a sentinel error: validation (bad input), unauthorized
// (no usable session or no connected account), forbidden (authenticated but
// the policy denies the action), not found (target entity absent), and
// provider (a call to an external service failed). Services wrap a sentinel
// in an *AppError carrying the human-readable message; the HTTP layer maps
// the sentinel to a status code with errors.Is.
//
// Unauthorized and Provider are deliberately distinct even though both can
// originate from the same external dependency: a missing stored credential
// means "connect your account" (401), while a failed call against
// valid-looking credentials is an operational provider failure (502).
// No error in this taxonomy is ever retried internally.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrProvider     = errors.New("provider failure")
)

type AppError struct {
	Err     error  // sentinel identifying the category
	Message string // human-readable error message
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed reports a malformed or missing request field.
// HTTP handlers map this to 400 Bad Request.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Unauthorized reports a missing, invalid, or expired session — or an
// external account that has never been connected.
// HTTP handlers map this to 401 Unauthorized.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Forbidden reports that the caller is authenticated but the role/ownership
// policy denies the action. HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// NotFound reports that a referenced entity does not exist.
// HTTP handlers map this to 404 Not Found.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ProviderFailure reports a failed call to an external collaborator (the
// identity assertion service or the Google APIs). The underlying cause is
// kept in the chain for logging; HTTP handlers map this to 502 Bad Gateway.
func ProviderFailure(operation string, cause error) *AppError {
	return &AppError{
		Err:     errors.Join(ErrProvider, cause),
		Message: fmt.Sprintf("%s failed", operation),
	}
}
