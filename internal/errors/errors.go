// Package errors defines error types shared across the search core.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrGazetteerUnavailable is returned when the gazetteer lookup fails
	ErrGazetteerUnavailable = errors.New("gazetteer unavailable")

	// ErrFacilityCountsUnavailable is returned when the facility-count lookup fails
	ErrFacilityCountsUnavailable = errors.New("facility counts unavailable")
)

// CollaboratorError wraps a failure from one of the external lookups
// (gazetteer or facility counts). A failed lookup fails the whole
// request; counts are never silently coerced to zero because that would
// misrepresent real facility availability.
type CollaboratorError struct {
	Collaborator string // "gazetteer" or "facility counts"
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s lookup failed: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func (e *CollaboratorError) Is(target error) bool {
	switch e.Collaborator {
	case "gazetteer":
		return target == ErrGazetteerUnavailable
	case "facility counts":
		return target == ErrFacilityCountsUnavailable
	}
	return false
}

// NewGazetteerError wraps err as a gazetteer collaborator failure.
func NewGazetteerError(err error) *CollaboratorError {
	return &CollaboratorError{Collaborator: "gazetteer", Err: err}
}

// NewFacilityCountsError wraps err as a facility-count collaborator failure.
func NewFacilityCountsError(err error) *CollaboratorError {
	return &CollaboratorError{Collaborator: "facility counts", Err: err}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
