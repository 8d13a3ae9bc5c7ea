package domain

// AnnualizePolicy converts wage figures between reporting periods and
// carries the plausibility ceiling for the unit-correction heuristic.
type AnnualizePolicy struct {
	// Factors maps each pay unit to its yearly multiplier.
	Factors map[PayUnit]float64
	// Ceiling is the highest believable annual wage. A non-yearly
	// figure that annualizes above it is treated as a mis-keyed annual
	// amount.
	Ceiling float64
}

// DefaultAnnualizePolicy returns the standard full-time conversion
// factors and a ten million ceiling.
func DefaultAnnualizePolicy() AnnualizePolicy {
	return AnnualizePolicy{
		Factors: map[PayUnit]float64{
			UnitHourly:   2080,
			UnitWeekly:   52,
			UnitBiWeekly: 26,
			UnitMonthly:  12,
			UnitYearly:   1,
		},
		Ceiling: 10_000_000,
	}
}

// Annualize converts an amount in the given unit to its yearly
// equivalent. Unknown units pass through unchanged.
func (p AnnualizePolicy) Annualize(amount float64, unit PayUnit) float64 {
	f, ok := p.Factors[unit]
	if !ok {
		return amount
	}
	return amount * f
}

// Correct returns the unit the amount was most plausibly reported in.
// When a non-yearly figure annualizes above the ceiling the unit flips
// to yearly; the amount itself is never changed.
func (p AnnualizePolicy) Correct(amount float64, unit PayUnit) PayUnit {
	if unit == UnitYearly {
		return unit
	}
	if p.Annualize(amount, unit) > p.Ceiling {
		return UnitYearly
	}
	return unit
}
