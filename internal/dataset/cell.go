// Package dataset reads raw disclosure rows from the published workbook.
// It exposes each row as an ordered column-to-cell mapping; interpretation
// of the cells belongs to the normalization layer.
package dataset

import "strconv"

// CellKind discriminates the raw cell variants.
type CellKind int

const (
	// CellAbsent marks a blank or missing cell.
	CellAbsent CellKind = iota
	// CellText marks a textual cell.
	CellText
	// CellNumber marks a numeric cell.
	CellNumber
)

// Cell is a tagged union over the raw scalar values a worksheet cell can
// hold. Absence is a first-class variant, not a sentinel string.
type Cell struct {
	kind CellKind
	text string
	num  float64
}

// Absent returns the absent cell.
func Absent() Cell { return Cell{} }

// Text creates a textual cell. Empty text collapses to absent.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{kind: CellText, text: s}
}

// Number creates a numeric cell.
func Number(f float64) Cell {
	return Cell{kind: CellNumber, num: f}
}

// Classify builds a cell from a raw worksheet value: blank is absent,
// values that parse as a number are numeric, everything else is text.
func Classify(raw string) Cell {
	if raw == "" {
		return Cell{}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Cell{kind: CellNumber, num: f, text: raw}
	}
	return Cell{kind: CellText, text: raw}
}

// Kind returns the cell variant.
func (c Cell) Kind() CellKind { return c.kind }

// IsAbsent reports whether the cell is blank or missing.
func (c Cell) IsAbsent() bool { return c.kind == CellAbsent }

// AsText returns the textual value. Numeric cells keep their raw
// rendering so callers can still treat digits as text where relevant.
func (c Cell) AsText() (string, bool) {
	if c.kind == CellAbsent {
		return "", false
	}
	return c.text, true
}

// AsNumber returns the numeric value for numeric cells.
func (c Cell) AsNumber() (float64, bool) {
	if c.kind != CellNumber {
		return 0, false
	}
	return c.num, true
}

// Row is one untransformed dataset record with named-column lookup.
type Row struct {
	cells map[string]Cell
}

// NewRow builds a row from a column-to-cell mapping.
func NewRow(cells map[string]Cell) Row {
	return Row{cells: cells}
}

// Get returns the cell for a column, or the absent cell when the column
// does not exist in this row.
func (r Row) Get(column string) Cell {
	return r.cells[column]
}
