package booking

import (
	"errors"
	"fmt"
)

var ErrInvalidIdentity = errors.New("booking identity must be positive")

// ValidationError names the first request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CapacityError is the expected rejection when a requested service is full
// for the slot.
type CapacityError struct {
	ServiceID string
	Label     string
	Capacity  int
	Slot      Slot
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s is fully booked for this time slot. Please choose another time.", e.Label)
}

// StorageError wraps any failure of the store while admitting or writing a
// booking.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func IsCapacity(err error) (*CapacityError, bool) {
	var ce *CapacityError
	ok := errors.As(err, &ce)
	return ce, ok
}
