package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingTitle  = errors.New("title is required")
	ErrMissingName   = errors.New("name is required")
	ErrInvalidStatus = errors.New("status must be one of: planning, in_progress, completed")
	ErrInvalidDates  = errors.New("end date must not be before start date")
)

// Sentinel errors for entity lookups.
var (
	ErrTripNotFound      = errors.New("trip not found")
	ErrTagNotFound       = errors.New("tag not found")
	ErrCompanionNotFound = errors.New("companion not found")
	ErrUserNotFound      = errors.New("user not found")
)

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")

// ErrIncompatibleVersion is returned when a backup document's version is not
// in the supported set. The check runs before any database work.
var ErrIncompatibleVersion = errors.New("incompatible backup version")

// FieldTooLongError indicates a field exceeds its maximum length.
type FieldTooLongError struct {
	Field string
	Max   int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("%s exceeds maximum length of %d", e.Field, e.Max)
}

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return &FieldTooLongError{Field: field, Max: maxLen}
}

// IsFieldTooLong reports whether err is a FieldTooLongError.
func IsFieldTooLong(err error) bool {
	var f *FieldTooLongError
	return errors.As(err, &f)
}
