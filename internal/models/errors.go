package models

import (
	"errors"
	"fmt"
)

// ErrAddressNotFound is returned when no address has the requested id.
var ErrAddressNotFound = errors.New("address not found")

// ValidationError reports an input field that violates a domain constraint.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, constraint string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint}
}
