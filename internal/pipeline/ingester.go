package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/paylens/paylens/internal/domain"
	"github.com/paylens/paylens/internal/metrics"
	"github.com/paylens/paylens/internal/validate"
)

// Sink accepts batches of canonical records for bulk insertion. A sink
// error is fatal to the run: retry policy belongs to the store layer, not
// here.
type Sink interface {
	LoadBatch(ctx context.Context, recs []domain.Record) error
}

// Ingester fans validated records out to a worker pool that bulk-loads
// them into the sink. Rows are independent, so batches can load in any
// order; the producer applies backpressure through the bounded channel.
type Ingester struct {
	sink      Sink
	workers   int
	batchSize int
	metrics   *metrics.Loader // optional
	logger    *zap.Logger
}

// NewIngester creates an ingester. m may be nil to disable metrics.
func NewIngester(sink Sink, workers, batchSize int, m *metrics.Loader, logger *zap.Logger) *Ingester {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Ingester{sink: sink, workers: workers, batchSize: batchSize, metrics: m, logger: logger}
}

// Result summarizes one ingestion run.
type Result struct {
	Loaded   int64
	Tally    Tally
	Duration time.Duration
}

// Run drives the normalization pipeline and loads every valid record into
// the sink. The first sink failure cancels the run and is returned.
func (ing *Ingester) Run(ctx context.Context, src Source, v *validate.Validator) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	batches := make(chan []domain.Record, ing.workers*2)

	var wg sync.WaitGroup
	var loaded atomic.Int64
	var sinkErr atomic.Value

	for i := 0; i < ing.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for batch := range batches {
				if err := ing.loadBatch(ctx, batch, &loaded); err != nil {
					ing.logger.Error("batch load failed",
						zap.Int("worker", id), zap.Error(err))
					sinkErr.CompareAndSwap(nil, err)
					cancel()
					return
				}
			}
		}(i)
	}

	tally, runErr := ing.produce(ctx, src, v, batches)
	close(batches)
	wg.Wait()

	result := Result{Loaded: loaded.Load(), Tally: tally, Duration: time.Since(start)}
	if err, ok := sinkErr.Load().(error); ok && err != nil {
		return result, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}
	if runErr != nil {
		return result, runErr
	}
	return result, nil
}

func (ing *Ingester) produce(
	ctx context.Context, src Source, v *validate.Validator, out chan<- []domain.Record,
) (Tally, error) {
	batch := make([]domain.Record, 0, ing.batchSize)

	tally, err := Run(ctx, src, v, func(rec domain.Record) bool {
		if ing.metrics != nil {
			ing.metrics.RowsRead.Inc()
		}
		batch = append(batch, rec)
		if len(batch) >= ing.batchSize {
			select {
			case out <- batch:
			case <-ctx.Done():
				return false
			}
			batch = make([]domain.Record, 0, ing.batchSize)
		}
		return true
	})

	if ing.metrics != nil {
		for reason, n := range tally.Rejected {
			ing.metrics.RowsRead.Add(float64(n))
			ing.metrics.RowsRejected.WithLabelValues(reason.String()).Add(float64(n))
		}
	}

	if len(batch) > 0 && ctx.Err() == nil {
		select {
		case out <- batch:
		case <-ctx.Done():
		}
	}
	return tally, err
}

func (ing *Ingester) loadBatch(ctx context.Context, batch []domain.Record, loaded *atomic.Int64) error {
	start := time.Now()
	err := ing.sink.LoadBatch(ctx, batch)

	if ing.metrics != nil {
		ing.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if ing.metrics != nil {
			ing.metrics.LoadFailures.Inc()
		}
		return err
	}

	n := loaded.Add(int64(len(batch)))
	if ing.metrics != nil {
		ing.metrics.RecordsLoaded.Add(float64(len(batch)))
	}
	if n%100000 < int64(ing.batchSize) {
		ing.logger.Info("ingest progress", zap.Int64("loaded", n))
	}
	return nil
}
