// Command cleanup deletes lookup history and persisted fault events older
// than telemetry.retention_days. It is intended to be invoked by an external
// cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres"
	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres/applog"
	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres/lookuplog"
	"github.com/heartmarshall/alice-reader-backend/internal/app"
	"github.com/heartmarshall/alice-reader-backend/internal/config"
)

type retentionTarget struct {
	table string
	repo  interface {
		DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	threshold := time.Now().AddDate(0, 0, -cfg.Telemetry.RetentionDays)

	targets := []retentionTarget{
		{table: "dictionary_lookups", repo: lookuplog.New(pool)},
		{table: "app_logs", repo: applog.New(pool)},
	}

	failed := false
	for _, t := range targets {
		deleted, err := t.repo.DeleteOlderThan(ctx, threshold)
		if err != nil {
			logger.Error("retention delete failed",
				slog.String("table", t.table),
				slog.String("error", err.Error()),
				slog.Time("threshold", threshold),
			)
			failed = true
			continue
		}
		logger.Info("retention delete completed",
			slog.String("table", t.table),
			slog.Int64("deleted", deleted),
			slog.Time("threshold", threshold),
		)
	}

	if failed {
		os.Exit(1)
	}
}
