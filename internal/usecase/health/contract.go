package health

import "context"

// DBPinger checks search store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// RecordCounter reports how many records the store holds.
type RecordCounter interface {
	Count(ctx context.Context) (int, error)
}
