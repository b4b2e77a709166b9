package sheetstore

import (
	"context"
	"sync"

	"github.com/takapay/takapay/internal/schema"
)

// Store is the tabular store adapter. It owns all remote row state; callers
// address rows by column name and never see sheet coordinates except as the
// ordinal index returned by FindFirst.
//
// Ordinal indexes are only stable while the caller holds the table's
// mutation lock; UpdateWhere/DeleteWhere do their own scan under the lock
// and are the safe way to mutate by key. UpdateAt/DeleteAt trust the
// caller's ordinal and exist for callers that have just scanned themselves.
type Store struct {
	backend Backend

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store on top of a backend.
func New(backend Backend) (*Store, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}

	return &Store{
		backend: backend,
		locks:   make(map[string]*sync.Mutex),
	}, nil
}

// tableLock returns the mutation lock of one table, creating it on first use.
func (s *Store) tableLock(table string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[table]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[table] = lock
	}

	return lock
}

// EnsureSchema creates the sheet tab if needed and writes the header row if
// the tab is empty. Idempotent; an existing header is never rewritten, even
// if it differs from the declared one (schema drift is not repaired).
func (s *Store) EnsureSchema(ctx context.Context, t schema.Table) error {
	lock := s.tableLock(t.Name)
	lock.Lock()
	defer lock.Unlock()

	if err := s.backend.EnsureTab(ctx, t.Name); err != nil {
		return err
	}

	rows, err := s.backend.Read(ctx, t.Name)
	if err != nil {
		return err
	}

	if len(rows) > 0 {
		return nil
	}

	return s.backend.Append(ctx, t.Name, t.Header())
}

// ReadAll returns every data row of the table, zipped against the stored
// header. An empty or header-only tab yields an empty slice.
func (s *Store) ReadAll(ctx context.Context, t schema.Table) ([]schema.Row, error) {
	_, rows, err := s.readAll(ctx, t)
	return rows, err
}

// readAll reads the raw tab and zips data rows against the stored header.
// The stored header wins over the declared one so that a drifted tab reads
// back consistently with what is actually in the sheet.
func (s *Store) readAll(ctx context.Context, t schema.Table) ([]string, []schema.Row, error) {
	raw, err := s.backend.Read(ctx, t.Name)
	if err != nil {
		return nil, nil, err
	}

	if len(raw) == 0 {
		return t.Header(), nil, nil
	}

	header := raw[0]
	rows := make([]schema.Row, 0, len(raw)-1)

	for _, values := range raw[1:] {
		row := make(schema.Row, len(header))

		for i, col := range header {
			if i < len(values) {
				row[col] = values[i]
			} else {
				row[col] = ""
			}
		}

		rows = append(rows, row)
	}

	return header, rows, nil
}

// Append validates row against the declared schema and adds it at the end
// of the table, laid out in header order.
func (s *Store) Append(ctx context.Context, t schema.Table, row schema.Row) error {
	if err := t.Validate(row); err != nil {
		return err
	}

	lock := s.tableLock(t.Name)
	lock.Lock()
	defer lock.Unlock()

	return s.backend.Append(ctx, t.Name, t.Marshal(row))
}

// FindFirst scans for the first row whose column equals value and returns it
// together with its ordinal index (0-based data offset, header excluded).
// Duplicate key values are possible; the first match wins.
func (s *Store) FindFirst(ctx context.Context, t schema.Table, column, value string) (schema.Row, int, error) {
	_, rows, err := s.readAll(ctx, t)
	if err != nil {
		return nil, 0, err
	}

	for i, row := range rows {
		if row[column] == value {
			return row, i, nil
		}
	}

	return nil, 0, ErrRowNotFound
}

// FindAll scans for every row whose column equals value, in table order.
func (s *Store) FindAll(ctx context.Context, t schema.Table, column, value string) ([]schema.Row, error) {
	_, rows, err := s.readAll(ctx, t)
	if err != nil {
		return nil, err
	}

	var matches []schema.Row

	for _, row := range rows {
		if row[column] == value {
			matches = append(matches, row)
		}
	}

	return matches, nil
}

// UpdateAt overwrites the data row at the given ordinal index. The ordinal
// must come from a scan performed by the caller; prefer UpdateWhere, which
// scans under the table lock itself.
func (s *Store) UpdateAt(ctx context.Context, t schema.Table, ordinal int, row schema.Row) error {
	if err := t.Validate(row); err != nil {
		return err
	}

	lock := s.tableLock(t.Name)
	lock.Lock()
	defer lock.Unlock()

	return s.updateAt(ctx, t, ordinal, row)
}

// updateAt writes without taking the lock; callers hold it.
// Ordinal 0 is the first data row, absolute sheet row 2.
func (s *Store) updateAt(ctx context.Context, t schema.Table, ordinal int, row schema.Row) error {
	if ordinal < 0 {
		return ErrRowNotFound
	}

	return s.backend.Update(ctx, t.Name, ordinal+2, t.Marshal(row)) //nolint: mnd
}

// DeleteAt removes the data row at the given ordinal index by rebuilding
// the table: read, filter, clear, rewrite. A reader between clear and
// rewrite can observe a partially rebuilt table; writers are excluded by
// the table lock.
func (s *Store) DeleteAt(ctx context.Context, t schema.Table, ordinal int) error {
	lock := s.tableLock(t.Name)
	lock.Lock()
	defer lock.Unlock()

	return s.deleteAt(ctx, t, ordinal)
}

// deleteAt rebuilds without taking the lock; callers hold it.
func (s *Store) deleteAt(ctx context.Context, t schema.Table, ordinal int) error {
	raw, err := s.backend.Read(ctx, t.Name)
	if err != nil {
		return err
	}

	// raw[0] is the header; data row i lives at raw[i+1]
	if ordinal < 0 || ordinal+1 >= len(raw) {
		return ErrRowNotFound
	}

	rebuilt := make([][]string, 0, len(raw)-1)
	rebuilt = append(rebuilt, raw[0])

	for i, row := range raw[1:] {
		if i == ordinal {
			continue
		}

		rebuilt = append(rebuilt, row)
	}

	if err := s.backend.Clear(ctx, t.Name); err != nil {
		return err
	}

	return s.backend.Write(ctx, t.Name, rebuilt)
}

// UpdateWhere finds the first row whose column equals value, passes it to
// mutate and writes the result back, all under the table's mutation lock so
// the row offset can not go stale in between.
func (s *Store) UpdateWhere(
	ctx context.Context,
	t schema.Table,
	column, value string,
	mutate func(schema.Row) (schema.Row, error),
) (schema.Row, error) {
	lock := s.tableLock(t.Name)
	lock.Lock()
	defer lock.Unlock()

	_, rows, err := s.readAll(ctx, t)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if row[column] != value {
			continue
		}

		updated, err := mutate(row)
		if err != nil {
			return nil, err
		}

		if err := t.Validate(updated); err != nil {
			return nil, err
		}

		if err := s.updateAt(ctx, t, i, updated); err != nil {
			return nil, err
		}

		return updated, nil
	}

	return nil, ErrRowNotFound
}

// DeleteWhere removes the first row whose column equals value, under the
// table's mutation lock.
func (s *Store) DeleteWhere(ctx context.Context, t schema.Table, column, value string) error {
	lock := s.tableLock(t.Name)
	lock.Lock()
	defer lock.Unlock()

	_, rows, err := s.readAll(ctx, t)
	if err != nil {
		return err
	}

	for i, row := range rows {
		if row[column] == value {
			return s.deleteAt(ctx, t, i)
		}
	}

	return ErrRowNotFound
}
