package sheetstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takapay/takapay/internal/schema"
)

var testTable = schema.Table{
	Name: "TestRecords",
	Key:  "id",
	Columns: []schema.Column{
		{Name: "id", Kind: schema.String},
		{Name: "owner", Kind: schema.String},
		{Name: "amount", Kind: schema.Number},
	},
}

func newTestStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()

	backend := NewMemoryBackend()

	store, err := New(backend)
	require.NoError(t, err)

	require.NoError(t, store.EnsureSchema(context.Background(), testTable))

	return store, backend
}

func seedRows(t *testing.T, store *Store, rows ...schema.Row) {
	t.Helper()

	for _, row := range rows {
		require.NoError(t, store.Append(context.Background(), testTable, row))
	}
}

func TestNewNilBackend(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilBackend)
}

func TestEnsureSchema(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()

	// idempotent: a second call must not duplicate the header
	require.NoError(t, store.EnsureSchema(ctx, testTable))

	raw, err := backend.Read(ctx, testTable.Name)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, testTable.Header(), raw[0])

	// an existing header is never rewritten, even when it drifted
	drifted := [][]string{{"id", "legacyColumn"}}
	require.NoError(t, backend.Write(ctx, testTable.Name, drifted))

	require.NoError(t, store.EnsureSchema(ctx, testTable))

	raw, err = backend.Read(ctx, testTable.Name)
	require.NoError(t, err)
	assert.Equal(t, drifted, raw)
}

func TestAppendReadAllRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	row := schema.Row{"id": "r1", "owner": "alice", "amount": "100"}
	seedRows(t, store, row)

	rows, err := store.ReadAll(ctx, testTable)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, row, rows[0])
}

func TestReadAllEmptyTable(t *testing.T) {
	store, _ := newTestStore(t)

	rows, err := store.ReadAll(context.Background(), testTable)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadAllPadsShortRows(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()

	// a raw row shorter than the header, as sheets returns them
	require.NoError(t, backend.Append(ctx, testTable.Name, []string{"r1"}))

	rows, err := store.ReadAll(ctx, testTable)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "r1", rows[0].Get("id"))
	assert.Equal(t, "", rows[0].Get("owner"))
	assert.Equal(t, "", rows[0].Get("amount"))
}

func TestAppendValidates(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Append(context.Background(), testTable, schema.Row{"id": "r1", "amount": "not-a-number"})
	assert.ErrorIs(t, err, schema.ErrInvalidValue)
}

func TestFindFirstAndFindAll(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seedRows(t, store,
		schema.Row{"id": "r1", "owner": "alice", "amount": "1"},
		schema.Row{"id": "r2", "owner": "bob", "amount": "2"},
		schema.Row{"id": "r3", "owner": "alice", "amount": "3"},
	)

	row, ordinal, err := store.FindFirst(ctx, testTable, "owner", "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, ordinal)
	assert.Equal(t, "r1", row.Get("id"))

	rows, err := store.FindAll(ctx, testTable, "owner", "alice")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "r1", rows[0].Get("id"))
	assert.Equal(t, "r3", rows[1].Get("id"))

	_, _, err = store.FindFirst(ctx, testTable, "owner", "nobody")
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestUpdateAtChangesOnlyTargetRow(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seedRows(t, store,
		schema.Row{"id": "r1", "owner": "alice", "amount": "1"},
		schema.Row{"id": "r2", "owner": "bob", "amount": "2"},
		schema.Row{"id": "r3", "owner": "carol", "amount": "3"},
	)

	require.NoError(t, store.UpdateAt(ctx, testTable, 1,
		schema.Row{"id": "r2", "owner": "bob", "amount": "20"}))

	rows, err := store.ReadAll(ctx, testTable)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "1", rows[0].Get("amount"))
	assert.Equal(t, "20", rows[1].Get("amount"))
	assert.Equal(t, "3", rows[2].Get("amount"))
}

func TestDeleteAtPreservesOrder(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seedRows(t, store,
		schema.Row{"id": "r1", "owner": "a", "amount": "1"},
		schema.Row{"id": "r2", "owner": "b", "amount": "2"},
		schema.Row{"id": "r3", "owner": "c", "amount": "3"},
		schema.Row{"id": "r4", "owner": "d", "amount": "4"},
	)

	require.NoError(t, store.DeleteAt(ctx, testTable, 1))

	rows, err := store.ReadAll(ctx, testTable)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "r1", rows[0].Get("id"))
	assert.Equal(t, "r3", rows[1].Get("id"))
	assert.Equal(t, "r4", rows[2].Get("id"))

	// out-of-range ordinals are rejected
	assert.ErrorIs(t, store.DeleteAt(ctx, testTable, 10), ErrRowNotFound)
	assert.ErrorIs(t, store.DeleteAt(ctx, testTable, -1), ErrRowNotFound)
}

func TestUpdateWhere(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seedRows(t, store,
		schema.Row{"id": "r1", "owner": "alice", "amount": "10"},
		schema.Row{"id": "r2", "owner": "alice", "amount": "20"},
	)

	updated, err := store.UpdateWhere(ctx, testTable, "id", "r2",
		func(row schema.Row) (schema.Row, error) {
			row["amount"] = "25"
			return row, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "25", updated.Get("amount"))

	rows, err := store.ReadAll(ctx, testTable)
	require.NoError(t, err)
	assert.Equal(t, "10", rows[0].Get("amount"))
	assert.Equal(t, "25", rows[1].Get("amount"))

	_, err = store.UpdateWhere(ctx, testTable, "id", "missing",
		func(row schema.Row) (schema.Row, error) { return row, nil })
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestDeleteWhere(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seedRows(t, store,
		schema.Row{"id": "r1", "owner": "alice", "amount": "1"},
		schema.Row{"id": "r2", "owner": "bob", "amount": "2"},
	)

	require.NoError(t, store.DeleteWhere(ctx, testTable, "id", "r1"))

	rows, err := store.ReadAll(ctx, testTable)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "r2", rows[0].Get("id"))

	assert.ErrorIs(t, store.DeleteWhere(ctx, testTable, "id", "r1"), ErrRowNotFound)
}

func TestConcurrentBalanceAdjustments(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seedRows(t, store, schema.Row{"id": "r1", "owner": "alice", "amount": "0"})

	const workers = 16

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := store.UpdateWhere(ctx, testTable, "id", "r1",
				func(row schema.Row) (schema.Row, error) {
					amount, err := row.Number("amount")
					if err != nil {
						return nil, err
					}

					row.SetNumber("amount", amount+1)

					return row, nil
				})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	row, _, err := store.FindFirst(ctx, testTable, "id", "r1")
	require.NoError(t, err)

	amount, err := row.Number("amount")
	require.NoError(t, err)
	assert.InDelta(t, float64(workers), amount, 0.0001)
}
