package stats

import "github.com/paylens/paylens/internal/domain"

// Aggregate computes the salary summary of an in-memory record set.
// Salaries are annualized per the policy before reduction, so mixed
// pay units aggregate on a common footing; the records themselves are
// untouched. An empty set yields a zero summary.
func Aggregate(recs []domain.Record, policy domain.AnnualizePolicy) domain.SalarySummary {
	if len(recs) == 0 {
		return domain.SalarySummary{}
	}

	var sum float64
	out := domain.SalarySummary{DataPoints: int64(len(recs))}
	for i, rec := range recs {
		yearly := policy.Annualize(rec.Salary, rec.Unit)
		if i == 0 || yearly < out.Min {
			out.Min = yearly
		}
		if i == 0 || yearly > out.Max {
			out.Max = yearly
		}
		sum += yearly
	}
	out.Mean = sum / float64(len(recs))
	return out
}
