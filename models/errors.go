package models

import (
	"errors"
	"fmt"
)

// Service error taxonomy. NotFound doubles as the access-denial answer on
// private resources, so callers cannot probe for existence.

// NotFoundError signals a missing object or denied access.
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError signals a business-rule violation: duplicate request,
// exhausted capacity, wrong state.
type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

// ValidationError signals malformed input.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// NotFoundf builds a NotFoundError.
func NotFoundf(format string, a ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, a...)}
}

// Conflictf builds a ConflictError.
func Conflictf(format string, a ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, a...)}
}

// Validationf builds a ValidationError.
func Validationf(format string, a ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, a...)}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
