// Command paylens-loader downloads the wage disclosure workbook and
// bulk-loads it into the search store.
package main

import (
	"context"
	"flag"
	"net/url"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/paylens/paylens/internal/config"
	"github.com/paylens/paylens/internal/dataset"
	dbRedis "github.com/paylens/paylens/internal/db/redis"
	"github.com/paylens/paylens/internal/domain"
	logpkg "github.com/paylens/paylens/internal/logger"
	"github.com/paylens/paylens/internal/metrics"
	"github.com/paylens/paylens/internal/pipeline"
	recordsrepo "github.com/paylens/paylens/internal/repository/records"
	"github.com/paylens/paylens/internal/validate"
	"github.com/paylens/paylens/internal/version"
)

func main() {
	var (
		filePath = flag.String("file", "", "load from a local workbook instead of downloading")
		force    = flag.Bool("force", false, "load even when the index already holds records")
	)
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting paylens loader",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	policy := domain.DefaultAnnualizePolicy()
	if cfg.Normalize.SalaryCeiling > 0 {
		policy.Ceiling = cfg.Normalize.SalaryCeiling
	}

	repo := recordsrepo.New(store, cfg.Storage.KeyPrefix, policy)
	if err := repo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure index", zap.Error(err))
	}

	count, err := repo.Count(ctx)
	if err != nil {
		logger.Fatal("Failed to count records", zap.Error(err))
	}
	if count > 0 && !*force {
		logger.Info("Index already populated, nothing to do",
			zap.Int("records", count))
		return
	}

	path := *filePath
	if path == "" {
		if cfg.Ingest.DatasetURL == "" {
			logger.Fatal("No dataset: set ingest.dataset_url or pass -file")
		}
		path = filepath.Join(cfg.Ingest.DataDir, datasetFilename(cfg.Ingest.DatasetURL))
		dl := dataset.NewDownloader(logger)
		if err := dl.Fetch(ctx, cfg.Ingest.DatasetURL, path); err != nil {
			logger.Fatal("Failed to fetch dataset", zap.Error(err))
		}
	}

	wb, err := dataset.OpenWorkbook(path, cfg.Ingest.Sheet)
	if err != nil {
		logger.Fatal("Failed to open workbook", zap.Error(err))
	}

	// Per-run registry: loader metrics describe this run only.
	reg := prometheus.NewRegistry()
	ing := pipeline.NewIngester(
		repo, cfg.Ingest.Workers, cfg.Ingest.BatchSize,
		metrics.NewLoader(reg), logger,
	)

	res, err := ing.Run(ctx, wb, validate.New(policy))
	if err != nil {
		logger.Fatal("Ingestion failed",
			zap.Int64("loaded", res.Loaded),
			zap.Error(err))
	}

	fields := []zap.Field{
		zap.Int64("loaded", res.Loaded),
		zap.Int("accepted", res.Tally.Accepted),
		zap.Int("rejected", res.Tally.RejectedTotal()),
		zap.Duration("duration", res.Duration),
	}
	for reason, n := range res.Tally.Rejected {
		fields = append(fields, zap.Int(reason.String(), n))
	}
	logger.Info("Ingestion complete", fields...)
}

// datasetFilename derives a local filename from the dataset URL.
func datasetFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || filepath.Base(u.Path) == "." || filepath.Base(u.Path) == "/" {
		return "disclosures.xlsx"
	}
	return filepath.Base(u.Path)
}
