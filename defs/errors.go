package defs

import (
	"errors"
)

// Sentinel errors, to be wrapped with details and tested by errors.Is
var (
	// ErrInvalidArgument is returned for invalid construction input, e.g. an empty parameter key
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedOperation is returned by mutating methods of read-only views
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrConcurrentModification is returned by iterators whose source has been modified since creation
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrNotFound is returned by lookups of message ids which have no text
	ErrNotFound = errors.New("not found")
)
