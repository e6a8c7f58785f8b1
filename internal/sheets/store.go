// Package sheets provides the append-only row store backing appointments
// and lab reports. The production implementation talks to the Google
// Sheets API; Memory backs development mode and tests.
package sheets

import "context"

// RowStore is the append-only spreadsheet contract. Every read returns the
// full row set; there is no caching or indexing in front of the store.
type RowStore interface {
	// Rows returns every row in the sheet, header included if present.
	Rows(ctx context.Context) ([][]string, error)
	// Append adds a row after the last non-empty row.
	Append(ctx context.Context, row []string) error
	// InsertHeader inserts a header row at the top, shifting data down.
	InsertHeader(ctx context.Context, header []string) error
}

// Records maps data rows onto the header row, one map per row, mirroring
// how the sheet is consumed by the booking and lookup operations. Rows
// shorter than the header are padded with empty strings; extra cells are
// dropped. A sheet without a header row yields no records.
func Records(ctx context.Context, store RowStore) ([]map[string]string, error) {
	rows, err := store.Rows(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(row) {
				record[key] = row[i]
			} else {
				record[key] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}
