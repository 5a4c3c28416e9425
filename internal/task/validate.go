package task

import (
	"errors"
	"fmt"
)

// ErrInvalidTask is the sentinel wrapped by every FieldError.
var ErrInvalidTask = errors.New("invalid task")

// FieldError reports a single field failing validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidTask }

func fieldErr(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// Validate is the shared boundary check for a task record. It uses explicit
// range checks rather than truthiness, so a zero value is rejected for being
// out of range, not for looking missing.
func Validate(t Task) error {
	if t.Title == "" {
		return fieldErr("title", "must not be empty")
	}
	if t.DueDate == "" {
		return fieldErr("due_date", "is required")
	}
	if _, err := ParseDue(t.DueDate); err != nil {
		return fieldErr("due_date", "is not a recognized date/time")
	}
	if t.EstimatedHours <= 0 {
		return fieldErr("estimated_hours", "must be greater than zero")
	}
	if t.Importance < 1 || t.Importance > 10 {
		return fieldErr("importance", "must be between 1 and 10")
	}
	return nil
}
