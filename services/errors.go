package services

import (
	"errors"
	"fmt"
)

// ValidationError flags bad user input. It is handled locally: the offending
// operation is blocked and no state mutation happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	ErrInvalidAmount = &ValidationError{Reason: "amount must be a positive number of grams"}
	ErrQueryTooShort = &ValidationError{Reason: "search query must be at least 2 characters"}
)

// LookupError wraps a failure talking to the food catalog service. The caller
// reports it to the user and keeps whatever results it already had.
type LookupError struct {
	Err error
}

func (e *LookupError) Error() string { return fmt.Sprintf("food lookup failed: %v", e.Err) }
func (e *LookupError) Unwrap() error { return e.Err }

// PersistenceError wraps a read or write failure against the log store. A
// failed write does not roll back the optimistic in-memory mutation.
type PersistenceError struct {
	Op  string // "load" | "save" | "range"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("nutrition log %s failed: %v", e.Op, e.Err)
}
func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is user-input rejection rather than an
// infrastructure failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
