package domain

import (
	"errors"
	"fmt"
)

// Every error here is recoverable: it surfaces as a message to the
// operator and leaves the store untouched.
var (
	ErrValidation             = errors.New("validation failed")
	ErrOrderNotFound          = errors.New("order not found")
	ErrDuplicateOrder         = errors.New("order already exists")
	ErrTransitionRejected     = errors.New("transition rejected")
	ErrMalformedDate          = errors.New("malformed date")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)

// OrderNotFoundError is returned when a scan references an unknown key.
// It carries the scanned fields so the caller can pre-fill an explicit
// create-order flow; scans never create orders implicitly.
type OrderNotFoundError struct {
	SOP    string
	Rating string
	User   string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order %s-%s not in system", e.SOP, e.Rating)
}

func (e *OrderNotFoundError) Unwrap() error {
	return ErrOrderNotFound
}
