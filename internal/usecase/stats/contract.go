package stats

import (
	"context"

	"github.com/paylens/paylens/internal/domain"
)

// Repository defines the storage contract for salary statistics.
type Repository interface {
	Summary(ctx context.Context, query string) (domain.SalarySummary, error)
	Matches(ctx context.Context, query string, limit int) ([]domain.Record, error)
	Count(ctx context.Context) (int, error)
}
