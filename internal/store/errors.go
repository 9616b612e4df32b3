package store

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID indicates an insert with an id that already exists.
	ErrDuplicateID = errors.New("log id already exists")
	// ErrNotFound indicates an update or delete of a missing id.
	ErrNotFound = errors.New("log not found")
)

// DecodeError reports a stored row that could not be decoded into its
// domain type. Malformed rows fail loudly rather than being coerced.
type DecodeError struct {
	ID    string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding row %q field %s: %v", e.ID, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
