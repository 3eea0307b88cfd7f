package application

import (
	"errors"
	"fmt"
)

// Validation reasons. Wrapped in *ValidationError so callers can match either
// the type (any validation failure) or the specific reason.
var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email is invalid")
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = errors.New("password is too long")
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnavailable wraps store or transport failures; callers may retry.
	ErrUnavailable = errors.New("credential store unavailable")
)

// ValidationError reports malformed, missing or policy-violating input.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, reason error) error {
	return &ValidationError{Field: field, Err: reason}
}

func unavailable(cause error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, cause)
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
