package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = Table{
	Name: "Test",
	Key:  "id",
	Columns: []Column{
		{Name: "id", Kind: String},
		{Name: "amount", Kind: Number},
		{Name: "active", Kind: Bool},
		{Name: "createdAt", Kind: Time},
	},
}

func TestHeader(t *testing.T) {
	assert.Equal(t, []string{"id", "amount", "active", "createdAt"}, testTable.Header())
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	row := Row{"id": "r1", "amount": "12.5", "active": "true"}
	row.SetTime("createdAt", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	values := testTable.Marshal(row)
	require.Len(t, values, 4)
	assert.Equal(t, []string{"r1", "12.5", "true", "2025-06-01T12:00:00Z"}, values)

	back := testTable.Unmarshal(values)
	assert.Equal(t, row, back)
}

func TestMarshalDropsUnknownColumns(t *testing.T) {
	row := Row{"id": "r1", "bogus": "x"}

	values := testTable.Marshal(row)
	assert.Equal(t, []string{"r1", "", "", ""}, values)
}

func TestUnmarshalShortRow(t *testing.T) {
	row := testTable.Unmarshal([]string{"r1", "3"})

	assert.Equal(t, "r1", row.Get("id"))
	assert.Equal(t, "3", row.Get("amount"))
	assert.Equal(t, "", row.Get("active"))
	assert.Equal(t, "", row.Get("createdAt"))
}

func TestUnmarshalDropsTrailingCells(t *testing.T) {
	row := testTable.Unmarshal([]string{"r1", "3", "false", "2025-06-01T12:00:00Z", "extra"})

	assert.Len(t, row, 4)
	assert.Equal(t, "", row.Get("extra"))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		row     Row
		wantErr bool
	}{
		{
			name: "valid row",
			row:  Row{"id": "r1", "amount": "12.5", "active": "false", "createdAt": "2025-06-01T12:00:00Z"},
		},
		{
			name: "empty cells are always valid",
			row:  Row{"id": "", "amount": "", "active": "", "createdAt": ""},
		},
		{
			name: "unknown columns ignored",
			row:  Row{"bogus": "not-a-number"},
		},
		{
			name:    "bad number",
			row:     Row{"amount": "twelve"},
			wantErr: true,
		},
		{
			name:    "bad bool",
			row:     Row{"active": "yep"},
			wantErr: true,
		},
		{
			name:    "bad time",
			row:     Row{"createdAt": "yesterday"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := testTable.Validate(tc.row)

			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidValue)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTypedGetters(t *testing.T) {
	row := Row{"amount": "42.25", "active": "true", "createdAt": "2025-06-01T12:00:00Z"}

	amount, err := row.Number("amount")
	require.NoError(t, err)
	assert.InDelta(t, 42.25, amount, 0.0001)

	active, err := row.Bool("active")
	require.NoError(t, err)
	assert.True(t, active)

	createdAt, err := row.Time("createdAt")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), createdAt)

	// empty cells have typed zero values
	missing, err := row.Number("missing")
	require.NoError(t, err)
	assert.Zero(t, missing)
}

func TestAllTablesHaveKeyColumn(t *testing.T) {
	for _, table := range All() {
		t.Run(table.Name, func(t *testing.T) {
			found := false

			for _, col := range table.Columns {
				if col.Name == table.Key {
					found = true
					break
				}
			}

			assert.True(t, found, "key column %q must be declared", table.Key)
		})
	}
}
