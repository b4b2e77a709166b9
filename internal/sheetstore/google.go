package sheetstore

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleBackend talks to one Google Sheets spreadsheet.
type GoogleBackend struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewGoogleBackend builds a sheets client from service-account credentials.
// The client handle is constructed once here and injected into the Store;
// there is no hidden package-level singleton.
func NewGoogleBackend(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*GoogleBackend, error) {
	jwtCfg, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, errors.Wrap(err, "sheets: parse service-account credentials")
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	if err != nil {
		return nil, errors.Wrap(err, "sheets: create service")
	}

	return &GoogleBackend{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

// EnsureTab creates the named sheet tab if the spreadsheet does not have it.
func (b *GoogleBackend) EnsureTab(ctx context.Context, table string) error {
	meta, err := b.svc.Spreadsheets.Get(b.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(err, "sheets: get spreadsheet for table %s", table)
	}

	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == table {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: table},
				},
			},
		},
	}

	if _, err := b.svc.Spreadsheets.BatchUpdate(b.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return errors.Wrapf(err, "sheets: add tab %s", table)
	}

	return nil
}

// Read returns all rows of the tab, header included.
func (b *GoogleBackend) Read(ctx context.Context, table string) ([][]string, error) {
	resp, err := b.svc.Spreadsheets.Values.Get(b.spreadsheetID, table).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrapf(err, "sheets: read table %s", table)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		rows = append(rows, toStrings(raw))
	}

	return rows, nil
}

// Append adds one row after the last non-empty row of the tab.
func (b *GoogleBackend) Append(ctx context.Context, table string, values []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(values)}}

	_, err := b.svc.Spreadsheets.Values.Append(b.spreadsheetID, table+"!A1", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(err, "sheets: append to table %s", table)
	}

	return nil
}

// Update overwrites the row at the given 1-based absolute row number.
func (b *GoogleBackend) Update(ctx context.Context, table string, rowNumber int, values []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(values)}}

	_, err := b.svc.Spreadsheets.Values.Update(
		b.spreadsheetID,
		fmt.Sprintf("%s!A%d", table, rowNumber),
		vr,
	).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(err, "sheets: update row %d of table %s", rowNumber, table)
	}

	return nil
}

// Clear removes all values from the tab.
func (b *GoogleBackend) Clear(ctx context.Context, table string) error {
	_, err := b.svc.Spreadsheets.Values.Clear(b.spreadsheetID, table, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(err, "sheets: clear table %s", table)
	}

	return nil
}

// Write replaces the tab content with the given rows starting at A1.
func (b *GoogleBackend) Write(ctx context.Context, table string, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, toInterfaces(row))
	}

	vr := &sheets.ValueRange{Values: values}

	_, err := b.svc.Spreadsheets.Values.Update(b.spreadsheetID, table+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(err, "sheets: write table %s", table)
	}

	return nil
}

func toStrings(raw []interface{}) []string {
	out := make([]string, len(raw))

	for i, v := range raw {
		if s, ok := v.(string); ok {
			out[i] = s
			continue
		}

		out[i] = fmt.Sprintf("%v", v)
	}

	return out
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
