package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/paylens/paylens/internal/db"
)

// SearchList performs paginated search via FT.SEARCH.
func (s *Store) SearchList(
	ctx context.Context, index, query string, offset, limit int, fields []string,
) (*db.SearchResult, error) {
	args := []string{index, query, "LIMIT", strconv.Itoa(offset), strconv.Itoa(limit)}

	if len(fields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(fields)))
		args = append(args, fields...)
	}

	args = append(args, "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: searchErr(err)}
	}

	return parseListResult(raw)
}

// SearchCount returns document count via FT.SEARCH with LIMIT 0 0.
func (s *Store) SearchCount(ctx context.Context, index, query string) (int, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").Args(index, query, "LIMIT", "0", "0", "DIALECT", "2").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: searchErr(err)}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// Aggregate reduces one numeric field over all matches via FT.AGGREGATE:
// count, min, max and mean in a single store-side pass.
func (s *Store) Aggregate(ctx context.Context, q *db.AggregateQuery) (*db.AggregateSummary, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Field == "" {
		return nil, fmt.Errorf("aggregate field is required")
	}
	query := q.Query
	if query == "" {
		query = "*"
	}

	field := "@" + q.Field
	args := []string{
		q.IndexName, query,
		"GROUPBY", "0",
		"REDUCE", "COUNT", "0", "AS", "count",
		"REDUCE", "MIN", "1", field, "AS", "min",
		"REDUCE", "MAX", "1", field, "AS", "max",
		"REDUCE", "AVG", "1", field, "AS", "mean",
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: searchErr(err)}
	}

	return parseAggregateResult(raw)
}

// searchErr swaps the server's missing-index reply for the sentinel so
// callers can distinguish "not created yet" from transport failures.
func searchErr(err error) error {
	if isRedisErr(err, "no such index") {
		return db.ErrIndexNotFound
	}
	return err
}

// --- Result parsing ---

func parseListResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{Total: 0}, nil
	}

	entries := make([]db.SearchEntry, 0, len(raw)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseAggregateResult(raw []rueidis.RedisMessage) (*db.AggregateSummary, error) {
	// RESP2 shape: [groupCount, [name1, val1, name2, val2, ...]]
	if len(raw) < 2 {
		return &db.AggregateSummary{}, nil
	}

	row, err := raw[1].ToArray()
	if err != nil {
		return nil, fmt.Errorf("parse aggregate row: %w", err)
	}
	pairs := parseFieldPairs(row)

	var out db.AggregateSummary
	if v, ok := pairs["count"]; ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse count %q: %w", v, err)
		}
		out.Count = n
	}
	if out.Count == 0 {
		return &out, nil
	}

	for name, dst := range map[string]*float64{"min": &out.Min, "max": &out.Max, "mean": &out.Mean} {
		v, ok := pairs[name]
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", name, v, err)
		}
		*dst = f
	}

	return &out, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	out := make(map[string]string, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		k, err := fields[i].ToString()
		if err != nil {
			continue
		}
		v, err := fields[i+1].ToString()
		if err != nil {
			continue
		}
		out[k] = v
	}
	return out
}
