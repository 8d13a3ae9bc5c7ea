package domain

// SalarySummary holds the aggregate statistics for one query, computed
// over the yearly-normalized view of the matching records. Min, Max and
// Mean are meaningful only when DataPoints > 0.
type SalarySummary struct {
	DataPoints int64
	Min        float64
	Max        float64
	Mean       float64
}
