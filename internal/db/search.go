package db

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}

// AggregateQuery asks for summary statistics over one numeric field of
// all documents matching Query.
type AggregateQuery struct {
	IndexName string
	Query     string
	Field     string
}

// AggregateSummary holds the reduced statistics. Min, Max and Mean are
// meaningful only when Count > 0.
type AggregateSummary struct {
	Count int64
	Min   float64
	Max   float64
	Mean  float64
}
