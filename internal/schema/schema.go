// Package schema declares the typed layout of every table in the backing
// spreadsheet. A table is a named sheet tab whose first row is an immutable
// header; every data row is addressed by column name. Values are stored as
// strings in the sheet and validated against the declared column kind at the
// store boundary.
package schema

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the declared type of a column's values.
type Kind int

const (
	// String accepts any value.
	String Kind = iota
	// Number is a decimal number, stored via strconv.FormatFloat.
	Number
	// Bool is "true" or "false".
	Bool
	// Time is an RFC 3339 timestamp.
	Time
)

// Column describes one header column of a table.
type Column struct {
	Name string
	Kind Kind
}

// Table describes a named table: its sheet tab name, the column that acts as
// row identity for lookups, and the typed column set. Row identity is a
// value in the key column, not a stored row number; duplicates are possible
// and the first match wins on lookup.
type Table struct {
	Name    string
	Key     string
	Columns []Column
}

// Header returns the column names in declared order.
func (t Table) Header() []string {
	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Name
	}

	return header
}

// kindOf returns the declared kind of a column.
func (t Table) kindOf(name string) (Kind, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col.Kind, true
		}
	}

	return String, false
}

// Row is one record of a table, keyed by column name.
// Missing columns read back as the empty string.
type Row map[string]string

// Get returns the raw string value of a column, "" if absent.
func (r Row) Get(col string) string {
	return r[col]
}

// Number parses a numeric column. An empty cell reads as 0.
func (r Row) Number(col string) (float64, error) {
	raw := r[col]
	if raw == "" {
		return 0, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q value %q is not a number", ErrInvalidValue, col, raw)
	}

	return f, nil
}

// Bool parses a boolean column. An empty cell reads as false.
func (r Row) Bool(col string) (bool, error) {
	raw := r[col]
	if raw == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: column %q value %q is not a bool", ErrInvalidValue, col, raw)
	}

	return b, nil
}

// Time parses a timestamp column. An empty cell reads as the zero time.
func (r Row) Time(col string) (time.Time, error) {
	raw := r[col]
	if raw == "" {
		return time.Time{}, nil
	}

	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: column %q value %q is not an RFC 3339 time", ErrInvalidValue, col, raw)
	}

	return ts, nil
}

// SetNumber stores a numeric value in its canonical string form.
func (r Row) SetNumber(col string, f float64) {
	r[col] = strconv.FormatFloat(f, 'f', -1, 64)
}

// SetBool stores a boolean value in its canonical string form.
func (r Row) SetBool(col string, b bool) {
	r[col] = strconv.FormatBool(b)
}

// SetTime stores a timestamp in its canonical string form.
func (r Row) SetTime(col string, ts time.Time) {
	r[col] = ts.UTC().Format(time.RFC3339)
}

// Validate checks every known column of r against its declared kind.
// Columns not declared in the table are ignored; they are dropped on
// marshal anyway.
func (t Table) Validate(r Row) error {
	for col, raw := range r {
		kind, ok := t.kindOf(col)
		if !ok || raw == "" {
			continue
		}

		var err error

		switch kind {
		case Number:
			_, err = r.Number(col)
		case Bool:
			_, err = r.Bool(col)
		case Time:
			_, err = r.Time(col)
		case String:
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Marshal lays r out positionally in header order. Unknown columns are
// silently dropped, missing columns become the empty string.
func (t Table) Marshal(r Row) []string {
	values := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		values[i] = r[col.Name]
	}

	return values
}

// Unmarshal zips a positional data row against the header. Trailing cells
// beyond the header are dropped, missing trailing cells read as "".
func (t Table) Unmarshal(values []string) Row {
	row := make(Row, len(t.Columns))

	for i, col := range t.Columns {
		if i < len(values) {
			row[col.Name] = values[i]
		} else {
			row[col.Name] = ""
		}
	}

	return row
}
