// Package errs defines the error kinds surfaced by the marketplace core.
// Callers classify failures with errors.Is against the sentinels or with
// the predicate helpers; messages carry the detail.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation covers missing or out-of-range required fields.
	ErrValidation = errors.New("invalid input")

	// ErrCapacity covers stock and registration ceilings.
	ErrCapacity = errors.New("capacity exceeded")

	// ErrDuplicateEmail is returned when a registration reuses an email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNotFound is returned when a referenced entity is missing or not
	// owned by the acting account.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is deliberately generic so a failed login does
	// not leak which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden covers self-reviews and unauthenticated review attempts.
	ErrForbidden = errors.New("forbidden")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

func Capacityf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrCapacity)
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsCapacity(err error) bool { return errors.Is(err, ErrCapacity) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }
