// Package validate decides whether a normalized candidate row becomes a
// canonical compensation record.
package validate

import (
	"github.com/paylens/paylens/internal/domain"
	"github.com/paylens/paylens/internal/normalize"
)

// Validator applies the admissibility rules and the unit-correction
// heuristic. Stateless; safe for concurrent use.
type Validator struct {
	policy domain.AnnualizePolicy
}

// New creates a validator with the given annualization policy.
func New(policy domain.AnnualizePolicy) *Validator {
	return &Validator{policy: policy}
}

// Validate checks a candidate in order, short-circuiting on the first
// failure. A rejection is an expected outcome, not an error: the caller
// tallies the reason and moves on. On success the returned record is
// complete and never mutated afterwards.
func (v *Validator) Validate(c normalize.Candidate) (domain.Record, domain.RejectReason, bool) {
	if c.Title == "" {
		return domain.Record{}, domain.ReasonMissingTitle, false
	}
	// Amount and unit are a joint requirement: a wage figure without a
	// trustworthy unit is unusable, and vice versa.
	if !c.HasSalary || !c.HasUnit {
		return domain.Record{}, domain.ReasonMissingSalary, false
	}
	if c.City == "" && c.State == "" {
		return domain.Record{}, domain.ReasonMissingLocation, false
	}

	rec := domain.Record{
		Title:  c.Title,
		Salary: c.Salary,
		Unit:   v.policy.Correct(c.Salary, c.Unit),
		City:   c.City,
		State:  c.State,
	}
	return rec, 0, true
}
