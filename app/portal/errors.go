package portal

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the target record doesn't exist in its collection
var ErrNotFound = errors.New("record not found")

// ErrUnauthorized indicates the session lacks the capability for the operation
var ErrUnauthorized = errors.New("operation not allowed")

// ValidationError reports a rejected input field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// requireField makes a ValidationError for an empty required field
func requireField(field, val string) error {
	if val == "" {
		return &ValidationError{Field: field, Reason: "required field is empty"}
	}
	return nil
}
