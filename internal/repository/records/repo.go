// Package records persists canonical compensation records in the search
// store and reads matches and aggregates back out.
package records

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/paylens/paylens/internal/db"
	"github.com/paylens/paylens/internal/domain"
	"github.com/paylens/paylens/internal/normalize"
)

// store is the consumer interface for record operations (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	Aggregate(ctx context.Context, q *db.AggregateQuery) (*db.AggregateSummary, error)
}

// Hash field names. The simplified job_title/city_state pair carries the
// full-text match; title/city/state keep the display form; salary and
// pay_unit are the record as reported; salary_yearly is the
// aggregation-only annualized view and never replaces the reported unit.
const (
	fieldTitle     = "title"
	fieldCity      = "city"
	fieldState     = "state"
	fieldJobTitle  = "job_title"
	fieldCityState = "city_state"
	fieldSalary    = "salary"
	fieldPayUnit   = "pay_unit"
	fieldYearly    = "salary_yearly"
)

// Repo implements the usecase-facing record storage contract.
type Repo struct {
	store     store
	keyPrefix string
	indexName string
	policy    domain.AnnualizePolicy
}

// New creates a record repository. keyPrefix namespaces every key the
// repository touches, e.g. "paylens:".
func New(s store, keyPrefix string, policy domain.AnnualizePolicy) *Repo {
	return &Repo{
		store:     s,
		keyPrefix: keyPrefix,
		indexName: keyPrefix + "records:idx",
		policy:    policy,
	}
}

// IndexName returns the FT index name the repository operates on.
func (r *Repo) IndexName() string { return r.indexName }

// EnsureIndex creates the record index when it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName)
	if err != nil {
		return fmt.Errorf("probe index: %w", err)
	}
	if exists {
		return nil
	}

	def := db.NewIndex(r.indexName).
		Prefix(r.keyPrefix + "record:").
		Text(fieldJobTitle).
		Text(fieldCityState).
		Numeric(fieldSalary).
		Tag(fieldPayUnit).
		Numeric(fieldYearly).
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// LoadBatch bulk-inserts records as write-once hashes. Records carry no
// natural primary key, so each gets a fresh UUID.
func (r *Repo) LoadBatch(ctx context.Context, recs []domain.Record) error {
	if len(recs) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(recs))
	for i, rec := range recs {
		items[i] = db.HashSetItem{
			Key:    r.keyPrefix + "record:" + uuid.NewString(),
			Fields: r.fields(rec),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("load batch: %w", err)
	}
	return nil
}

func (r *Repo) fields(rec domain.Record) map[string]string {
	return map[string]string{
		fieldTitle:     rec.Title,
		fieldCity:      rec.City,
		fieldState:     rec.State,
		fieldJobTitle:  normalize.Simplify(rec.Title),
		fieldCityState: normalize.Simplify(rec.CityState()),
		fieldSalary:    formatFloat(rec.Salary),
		fieldPayUnit:   string(rec.Unit),
		fieldYearly:    formatFloat(r.policy.Annualize(rec.Salary, rec.Unit)),
	}
}

// Count returns the number of records in the index.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName, "*")
	if err != nil {
		return 0, fmt.Errorf("count records: %w", readErr(err))
	}
	return n, nil
}

// readErr maps a missing index onto the domain sentinel: reads against
// an index nobody created yet mean the dataset is not loaded.
func readErr(err error) error {
	if errors.Is(err, db.ErrIndexNotFound) {
		return domain.ErrIndexNotReady
	}
	return err
}

// Summary computes the aggregate salary statistics for a translated
// query, store-side in a single pass.
func (r *Repo) Summary(ctx context.Context, query string) (domain.SalarySummary, error) {
	agg, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: r.indexName,
		Query:     query,
		Field:     fieldYearly,
	})
	if err != nil {
		return domain.SalarySummary{}, fmt.Errorf("aggregate: %w", readErr(err))
	}
	return domain.SalarySummary{
		DataPoints: agg.Count,
		Min:        agg.Min,
		Max:        agg.Max,
		Mean:       agg.Mean,
	}, nil
}

// Matches returns up to limit matching records for a translated query.
func (r *Repo) Matches(ctx context.Context, query string, limit int) ([]domain.Record, error) {
	returnFields := []string{fieldTitle, fieldCity, fieldState, fieldSalary, fieldPayUnit}

	res, err := r.store.SearchList(ctx, r.indexName, query, 0, limit, returnFields)
	if err != nil {
		return nil, fmt.Errorf("search records: %w", readErr(err))
	}

	out := make([]domain.Record, 0, len(res.Entries))
	for _, entry := range res.Entries {
		rec, ok := parseRecord(entry.Fields)
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRecord(fields map[string]string) (domain.Record, bool) {
	salary, err := strconv.ParseFloat(fields[fieldSalary], 64)
	if err != nil {
		return domain.Record{}, false
	}
	unit, ok := domain.ParsePayUnit(fields[fieldPayUnit])
	if !ok {
		return domain.Record{}, false
	}
	return domain.Record{
		Title:  fields[fieldTitle],
		Salary: salary,
		Unit:   unit,
		City:   fields[fieldCity],
		State:  fields[fieldState],
	}, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
