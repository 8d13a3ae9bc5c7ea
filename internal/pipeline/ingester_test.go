package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/paylens/paylens/internal/dataset"
	"github.com/paylens/paylens/internal/domain"
)

type mockSink struct {
	mu      sync.Mutex
	batches [][]domain.Record
	err     error
}

func (m *mockSink) LoadBatch(_ context.Context, recs []domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	batch := make([]domain.Record, len(recs))
	copy(batch, recs)
	m.batches = append(m.batches, batch)
	return nil
}

func (m *mockSink) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.batches {
		n += len(b)
	}
	return n
}

func manyRows(n int) []dataset.Row {
	rows := make([]dataset.Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, row("Engineer", "Dallas", "TX", "95000", "Year"))
	}
	return rows
}

func TestIngesterLoadsAll(t *testing.T) {
	sink := &mockSink{}
	src := &sliceSource{rows: manyRows(25)}

	ing := NewIngester(sink, 4, 10, nil, zap.NewNop())
	result, err := ing.Run(context.Background(), src, testValidator())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Loaded != 25 {
		t.Errorf("Loaded = %d, want 25", result.Loaded)
	}
	if sink.total() != 25 {
		t.Errorf("sink received %d records, want 25", sink.total())
	}
	if result.Tally.Accepted != 25 {
		t.Errorf("Accepted = %d, want 25", result.Tally.Accepted)
	}
}

func TestIngesterSinkFailureFatal(t *testing.T) {
	sink := &mockSink{err: errors.New("store down")}
	src := &sliceSource{rows: manyRows(50)}

	ing := NewIngester(sink, 2, 10, nil, zap.NewNop())
	_, err := ing.Run(context.Background(), src, testValidator())
	if err == nil {
		t.Fatal("expected sink failure to be fatal")
	}
	if !errors.Is(err, domain.ErrLoadFailed) {
		t.Errorf("error = %v, want ErrLoadFailed", err)
	}
}

func TestIngesterFlushesPartialBatch(t *testing.T) {
	sink := &mockSink{}
	src := &sliceSource{rows: manyRows(7)}

	ing := NewIngester(sink, 1, 10, nil, zap.NewNop())
	result, err := ing.Run(context.Background(), src, testValidator())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Loaded != 7 {
		t.Errorf("Loaded = %d, want 7 (partial batch flushed)", result.Loaded)
	}
}
