package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcmexdev/pizza-sales/internal/battery"
	"github.com/jcmexdev/pizza-sales/internal/config"
	"github.com/jcmexdev/pizza-sales/internal/importer"
	"github.com/jcmexdev/pizza-sales/internal/pkg/cache"
	"github.com/jcmexdev/pizza-sales/internal/pkg/telemetry"
	"github.com/jcmexdev/pizza-sales/internal/render"
	"github.com/jcmexdev/pizza-sales/internal/reporting"
	"github.com/jcmexdev/pizza-sales/internal/reporting/memory"
	reportsqlite "github.com/jcmexdev/pizza-sales/internal/reporting/sqlite"
	runlogsqlite "github.com/jcmexdev/pizza-sales/internal/runlog/sqlite"
	"github.com/jcmexdev/pizza-sales/internal/sales/domain"
	"github.com/jcmexdev/pizza-sales/internal/sales/sample"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("pizza-report failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	shutdown, err := telemetry.SetupTracer(ctx, "pizza-report", cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	store, err := reportsqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runLog, err := runlogsqlite.New(store.DB())
	if err != nil {
		return err
	}

	if cfg.LastRun {
		return printLastRun(ctx, cfg, runLog)
	}

	if ds, err := source(cfg); err != nil {
		return err
	} else if ds != nil {
		if err := store.Load(ctx, ds); err != nil {
			return err
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "dataset ready",
		"db", cfg.DBPath,
		"orders", stats.Orders,
		"line_items", stats.LineItems,
		"pizzas", stats.Pizzas,
		"pizza_types", stats.PizzaTypes,
	)

	reporter, err := newReporter(ctx, cfg, store)
	if err != nil {
		return err
	}

	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr, "pizza-report")
		defer rc.Close()
		if reporter, err = withCache(ctx, cfg, rc, store, reporter); err != nil {
			return err
		}
	}

	res, err := battery.NewRunner(battery.Standard(reporter), runLog).Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Format == config.FormatJSON {
		return render.JSON(os.Stdout, res)
	}
	return render.Text(os.Stdout, res)
}

// source returns the dataset to import, or nil to report on what the
// database already holds.
func source(cfg *config.Config) (*domain.Dataset, error) {
	switch {
	case cfg.Sample:
		return sample.Dataset(), nil
	case cfg.DataDir != "":
		return importer.LoadDir(cfg.DataDir)
	default:
		return nil, nil
	}
}

// withCache wraps reporter with the Redis cache, keyed by a fingerprint of
// the loaded data. An unreachable server leaves reporter uncached.
func withCache(ctx context.Context, cfg *config.Config, rc *cache.RedisCache, store *reportsqlite.Store, reporter reporting.Reporter) (reporting.Reporter, error) {
	if err := rc.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "report cache unavailable, running uncached", "addr", cfg.RedisAddr, "error", err)
		return reporter, nil
	}
	ds, err := store.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	fingerprint := reporting.Fingerprint(ds)
	slog.DebugContext(ctx, "report cache enabled", "addr", cfg.RedisAddr, "fingerprint", fingerprint)
	return reporting.NewCachedReporter(reporter, rc, fingerprint, cfg.CacheTTL), nil
}

// printLastRun writes the run log of the most recent battery run.
func printLastRun(ctx context.Context, cfg *config.Config, runLog *runlogsqlite.Repository) error {
	runID, err := runLog.LatestRunID(ctx)
	if err != nil {
		return err
	}
	entries, err := runLog.List(ctx, runID)
	if err != nil {
		return err
	}
	if cfg.Format == config.FormatJSON {
		return render.RunLogJSON(os.Stdout, entries)
	}
	return render.RunLog(os.Stdout, entries)
}

func newReporter(ctx context.Context, cfg *config.Config, store *reportsqlite.Store) (reporting.Reporter, error) {
	if cfg.Engine != config.EngineMemory {
		return store, nil
	}
	ds, err := store.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return memory.NewEngine(ds), nil
}
