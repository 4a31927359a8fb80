// Package errs defines the error taxonomy shared by the engine packages.
//
// Every typed error matches one of the sentinels through errors.Is, so callers
// at an API boundary can branch on the class without knowing the concrete type.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed arguments rejected before any computation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOrderingViolation marks an event that arrived earlier than state
	// already recorded for the same entity.
	ErrOrderingViolation = errors.New("ordering violation")

	// ErrUnknownReference marks an id that is absent from its catalog.
	// It is recoverable: producers report it next to a result, never instead of one.
	ErrUnknownReference = errors.New("unknown reference")
)

// InvalidInputError describes which argument was rejected and why.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid is shorthand for &InvalidInputError{...} with a formatted reason.
func Invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// OrderingError reports an out-of-order event. Last is the value already
// recorded, Got the rejected one.
type OrderingError struct {
	Entity string
	Last   string
	Got    string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("ordering violation: %s: got %s, already recorded %s", e.Entity, e.Got, e.Last)
}

func (e *OrderingError) Is(target error) bool { return target == ErrOrderingViolation }

// UnknownReferenceError names a dangling id and the catalog it was looked up in.
type UnknownReferenceError struct {
	Kind string
	ID   string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

func (e *UnknownReferenceError) Is(target error) bool { return target == ErrUnknownReference }
