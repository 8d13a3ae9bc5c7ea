// Package normalize extracts the semantic fields out of raw disclosure
// rows and canonicalizes text for indexing and matching. Malformed input
// never produces an error here: it maps to an absent field, which the
// validator then turns into a tallied rejection.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/paylens/paylens/internal/dataset"
	"github.com/paylens/paylens/internal/domain"
)

// Column names of the disclosure workbook. Only the first of the numbered
// wage and worksite columns is read: the later alternates are sparsely
// populated and do not materially improve coverage on this dataset. That
// is a documented assumption, not a general rule for datasets of this
// shape.
const (
	ColTitle = "JOB_TITLE"
	ColCity  = "WORKSITE_CITY_1"
	ColState = "WORKSITE_STATE_1"
	ColWage  = "WAGE_RATE_OF_PAY_FROM_1"
	ColUnit  = "WAGE_UNIT_OF_PAY_1"
)

// Candidate is the partially-populated field tuple produced from one raw
// row. Any field may be absent; admissibility is the validator's call.
type Candidate struct {
	Title     string
	Salary    float64
	HasSalary bool
	Unit      domain.PayUnit
	HasUnit   bool
	City      string
	State     string
}

// Extract pulls the four semantic fields from a raw row.
func Extract(row dataset.Row) Candidate {
	var c Candidate

	c.Title = textField(row.Get(ColTitle))

	if amount, ok := row.Get(ColWage).AsNumber(); ok && amount > 0 {
		c.Salary = amount
		c.HasSalary = true
	}
	if raw, ok := row.Get(ColUnit).AsText(); ok {
		if unit, ok := domain.ParsePayUnit(raw); ok {
			c.Unit = unit
			c.HasUnit = true
		}
	}

	c.City = textField(row.Get(ColCity))
	c.State = ExpandState(textField(row.Get(ColState)))

	return c
}

// textField reads a cell as trimmed text. Blank and purely numeric values
// count as absent: a digits-only title or worksite is never real data.
func textField(cell dataset.Cell) string {
	s, ok := cell.AsText()
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" || isDigits(s) {
		return ""
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Simplify canonicalizes text for indexing and querying: punctuation
// removed, accents folded to ASCII, whitespace collapsed, lowercased.
// Applying the same function on both sides makes matching insensitive to
// all four.
func Simplify(s string) string {
	s = foldAccents(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}

// accentFolder strips combining marks after canonical decomposition.
var accentFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func foldAccents(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}
