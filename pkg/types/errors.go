package types

import "errors"

// Store error kinds. Store operations wrap the underlying engine error with
// one of these so callers can branch with errors.Is.
var (
	// ErrStorage means the store could not be opened, read or written.
	// It is not retried.
	ErrStorage = errors.New("storage error")

	// ErrConstraint means a write violated a uniqueness or referential
	// constraint, or carried a non-positive quantity. The caller may fix the
	// input and retry the single operation.
	ErrConstraint = errors.New("constraint violation")

	// ErrNoData means an aggregate was asked for over an empty orders table.
	ErrNoData = errors.New("no data")

	// ErrInvalidFactor means a price factor was not a finite positive number.
	ErrInvalidFactor = errors.New("price factor must be a finite positive number")

	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)
