package schema

import "errors"

var (
	// ErrInvalidValue is returned when a cell value does not parse as the
	// declared column kind.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownTable is returned when a table name has no declaration.
	ErrUnknownTable = errors.New("unknown table")
)
