package behave

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a solve is rejected during validation.
	ErrInvalidInput = errors.New("behave: invalid input")

	// ErrUnknownInput is returned by ParseInput for a key that names no input.
	ErrUnknownInput = errors.New("behave: unknown input")
)

// InputError describes which input failed validation.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("behave: invalid input %s=%g: %s", e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field string, value float64, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}
