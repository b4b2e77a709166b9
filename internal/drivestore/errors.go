package drivestore

import "errors"

var (
	// ErrNotFound is returned when no object or folder matches an id or name.
	ErrNotFound = errors.New("object not found")

	// ErrNilBackend is returned when a Store is constructed without a backend.
	ErrNilBackend = errors.New("backend is nil")
)
