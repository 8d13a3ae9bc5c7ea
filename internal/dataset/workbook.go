package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/paylens/paylens/internal/domain"
)

// Workbook streams rows out of a disclosure xlsx file. The first row is
// the header; subsequent rows are exposed with named-column lookup.
type Workbook struct {
	path  string
	sheet string
}

// OpenWorkbook prepares a workbook source. sheet may be empty to use the
// first sheet in the file.
func OpenWorkbook(path, sheet string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &Workbook{path: path, sheet: sheet}, nil
}

// RowFunc is called once per data row. Returning false stops the scan.
type RowFunc func(row Row) bool

// Each reads the workbook in a single streaming pass, calling fn for every
// data row. The scan is restartable only by calling Each again from the
// beginning. A malformed row never aborts the scan.
func (w *Workbook) Each(ctx context.Context, fn RowFunc) error {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := w.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return fmt.Errorf("open sheet %q: %w", sheet, err)
	}
	defer func() { _ = rows.Close() }()

	var header []string
	for rows.Next() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		cols, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}

		if header == nil {
			header = cols
			continue
		}

		if !fn(buildRow(header, cols)) {
			return nil
		}
	}
	return nil
}

// buildRow zips header names with cell values. Short rows leave trailing
// columns absent; extra cells without a header are dropped.
func buildRow(header, cols []string) Row {
	cells := make(map[string]Cell, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		if i < len(cols) {
			cells[name] = Classify(cols[i])
		}
	}
	return NewRow(cells)
}
