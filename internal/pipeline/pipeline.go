// Package pipeline drives raw disclosure rows through normalization and
// validation, emitting canonical records and a rejection tally.
package pipeline

import (
	"context"
	"fmt"

	"github.com/paylens/paylens/internal/dataset"
	"github.com/paylens/paylens/internal/domain"
	"github.com/paylens/paylens/internal/normalize"
	"github.com/paylens/paylens/internal/validate"
)

// Source yields raw rows in a single ordered pass. Restart means calling
// Each again from the beginning.
type Source interface {
	Each(ctx context.Context, fn dataset.RowFunc) error
}

// EmitFunc receives each valid record as it is produced. Returning false
// stops the run early.
type EmitFunc func(rec domain.Record) bool

// Tally accumulates per-run acceptance and rejection counts. It is a
// plain value returned to the caller: the pipeline holds no global state.
type Tally struct {
	Accepted int
	Rejected map[domain.RejectReason]int
}

// NewTally returns an empty tally.
func NewTally() Tally {
	return Tally{Rejected: make(map[domain.RejectReason]int)}
}

// RejectedTotal sums rejections across all reasons.
func (t Tally) RejectedTotal() int {
	n := 0
	for _, c := range t.Rejected {
		n += c
	}
	return n
}

// Total is the number of rows seen.
func (t Tally) Total() int {
	return t.Accepted + t.RejectedTotal()
}

// Run performs one normalization pass: source row -> field extraction ->
// validation -> emit. A row that fails validation is tallied and skipped,
// never fatal; only source errors abort the run.
func Run(ctx context.Context, src Source, v *validate.Validator, emit EmitFunc) (Tally, error) {
	tally := NewTally()

	err := src.Each(ctx, func(row dataset.Row) bool {
		rec, reason, ok := v.Validate(normalize.Extract(row))
		if !ok {
			tally.Rejected[reason]++
			return true
		}
		tally.Accepted++
		return emit(rec)
	})
	if err != nil {
		return tally, fmt.Errorf("read source: %w", err)
	}
	return tally, nil
}
