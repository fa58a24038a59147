package state

import "fmt"

// ValidationError reports which field of a mutation was invalid. It is an
// internal signal only: the public SDK surface converts it to a boolean
// failure after logging the field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
