package sheetstore

import "errors"

var (
	// ErrRowNotFound is returned when no row matches a lookup, or when an
	// ordinal index points past the end of the table.
	ErrRowNotFound = errors.New("row not found")

	// ErrNilBackend is returned when a Store is constructed without a backend.
	ErrNilBackend = errors.New("backend is nil")
)
