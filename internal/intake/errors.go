package intake

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means the bulk buffer was blank, nothing was attempted.
	ErrEmptyInput = errors.New("paste a JSON array of tasks first")
	// ErrNotArray means the bulk payload parsed but is not a JSON array.
	ErrNotArray = errors.New("bulk input must be a JSON array")
)

// ValidationError rejects a single-entry form before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseError wraps the decoder failure for a bulk payload, keeping the
// underlying message visible to the user.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "invalid JSON: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
