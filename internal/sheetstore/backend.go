// Package sheetstore implements the tabular store adapter: header-driven
// CRUD over named tables backed by a remote spreadsheet. Every operation
// re-reads the full table; nothing is cached across requests. Mutations are
// serialized per table through an in-process lock, so two concurrent writers
// against the same table can not act on stale row offsets (the reference
// behavior this replaces raced between read and write).
package sheetstore

import (
	"context"
)

// Backend is the raw range-level access to one spreadsheet. It deals in
// positional rows only; all header/column-name logic lives in Store.
type Backend interface {
	// EnsureTab creates the named sheet tab if it does not exist.
	EnsureTab(ctx context.Context, table string) error

	// Read returns all rows of the tab, header included. A tab with no
	// content returns an empty slice.
	Read(ctx context.Context, table string) ([][]string, error)

	// Append adds one row after the last non-empty row.
	Append(ctx context.Context, table string, values []string) error

	// Update overwrites the row at the given 1-based absolute row number.
	Update(ctx context.Context, table string, rowNumber int, values []string) error

	// Clear removes all values from the tab, header included.
	Clear(ctx context.Context, table string) error

	// Write replaces the tab content with the given rows starting at row 1.
	Write(ctx context.Context, table string, rows [][]string) error
}
