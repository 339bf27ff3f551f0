package domain

import "errors"

var (
	// ErrItemNotFound is returned when a policy targets an item the
	// catalog does not know about.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidArgument covers negative limits, unknown modes and
	// non-positive quantities.
	ErrInvalidArgument = errors.New("invalid argument")
)
