package sheetstore

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBackend is an in-process Backend with spreadsheet-like semantics.
// It backs the store in tests and when running without Google credentials;
// nothing survives a restart.
type MemoryBackend struct {
	mu   sync.Mutex
	tabs map[string][][]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{tabs: make(map[string][][]string)}
}

// EnsureTab creates the named tab if it does not exist.
func (m *MemoryBackend) EnsureTab(_ context.Context, table string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tabs[table]; !ok {
		m.tabs[table] = nil
	}

	return nil
}

// Read returns a copy of all rows of the tab.
func (m *MemoryBackend) Read(_ context.Context, table string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tabs[table]
	out := make([][]string, len(rows))

	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}

	return out, nil
}

// Append adds one row at the end of the tab.
func (m *MemoryBackend) Append(_ context.Context, table string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tabs[table] = append(m.tabs[table], append([]string(nil), values...))

	return nil
}

// Update overwrites the row at the given 1-based absolute row number.
func (m *MemoryBackend) Update(_ context.Context, table string, rowNumber int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tabs[table]
	if rowNumber < 1 || rowNumber > len(rows) {
		return fmt.Errorf("memory: row %d out of range in table %s", rowNumber, table)
	}

	rows[rowNumber-1] = append([]string(nil), values...)

	return nil
}

// Clear removes all values from the tab.
func (m *MemoryBackend) Clear(_ context.Context, table string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tabs[table] = nil

	return nil
}

// Write replaces the tab content with the given rows.
func (m *MemoryBackend) Write(_ context.Context, table string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}

	m.tabs[table] = out

	return nil
}
