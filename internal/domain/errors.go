package domain

import (
	"errors"
	"fmt"
)

// Common domain errors for competition operations.
var (
	// ErrRiderNotFound indicates that a lookup referenced a rider id
	// that does not exist. Mutators treat unknown ids as a no-op by
	// policy; only explicit queries surface this error.
	ErrRiderNotFound = errors.New("rider not found")

	// ErrInvalidRun indicates a run number outside {1, 2}.
	ErrInvalidRun = errors.New("run number must be 1 or 2")
)

// ValidationError represents a failed validation of user-supplied
// fields, such as rider registration input or configuration values.
// It can carry multiple failures so the caller can report them all.
type ValidationError struct {
	// Entity names the entity that failed validation, e.g. "rider".
	Entity string

	// Errors contains the individual validation failure messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError appends a failure message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors reports whether any failures were recorded.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates an empty ValidationError for the entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{Entity: entity, Errors: make([]string, 0)}
}
