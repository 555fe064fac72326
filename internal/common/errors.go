// Package common defines shared constants and sentinel errors used across
// the KnotHost API server and its CLI client. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound   = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Account errors.
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("user not found")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors. An expired token is also an invalid token.
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError carries a client-facing message describing which input
// was missing or malformed. It matches ErrorValidation with errors.Is.
type ValidationError struct {
	Message string
}

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return ErrorValidation.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrorValidation
}
