// Package stats answers salary questions: translate a free-text
// title/location pair into a store query and aggregate the matches.
package stats

import (
	"context"
	"fmt"

	"github.com/paylens/paylens/internal/domain"
	"github.com/paylens/paylens/internal/query"
)

// Service handles salary summary and match listing.
type Service struct {
	repo       Repository
	matchLimit int
}

// New creates a stats service. matchLimit caps how many matching
// records a listing returns.
func New(repo Repository, matchLimit int) *Service {
	if matchLimit <= 0 {
		matchLimit = 100
	}
	return &Service{repo: repo, matchLimit: matchLimit}
}

// Summary returns the aggregate salary statistics for the records
// matching title and location. Either input may be blank; both blank
// summarizes the whole dataset.
func (s *Service) Summary(ctx context.Context, title, location string) (domain.SalarySummary, error) {
	sum, err := s.repo.Summary(ctx, query.Translate(title, location))
	if err != nil {
		return domain.SalarySummary{}, fmt.Errorf("salary summary: %w", err)
	}
	return sum, nil
}

// Matches returns up to limit records matching title and location.
// A non-positive limit falls back to the service cap.
func (s *Service) Matches(ctx context.Context, title, location string, limit int) ([]domain.Record, error) {
	if limit <= 0 || limit > s.matchLimit {
		limit = s.matchLimit
	}
	recs, err := s.repo.Matches(ctx, query.Translate(title, location), limit)
	if err != nil {
		return nil, fmt.Errorf("salary matches: %w", err)
	}
	return recs, nil
}

// Count reports how many records the dataset holds.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("record count: %w", err)
	}
	return n, nil
}
