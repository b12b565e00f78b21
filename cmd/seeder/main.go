// Command seeder loads authored book definitions from a YAML seed file into
// the book_definitions table. All rows are written in one transaction.
// It is intended to be run offline, not as part of the main server.
//
// Flags:
//
//	--file           seed file path (overrides seeder config)
//	--dry-run        parse and validate without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres"
	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres/definition"
	"github.com/heartmarshall/alice-reader-backend/internal/app"
	"github.com/heartmarshall/alice-reader-backend/internal/app/seeder"
	"github.com/heartmarshall/alice-reader-backend/internal/config"
)

var _ seeder.DefinitionRepo = (*definition.Repo)(nil)

func main() {
	fileFlag := flag.String("file", "", "seed file path")
	dryRunFlag := flag.Bool("dry-run", false, "parse and validate without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *fileFlag != "" {
		seederCfg.File = *fileFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if seederCfg.File == "" {
		logger.Error("no seed file given (use --file or SEEDER_FILE)")
		os.Exit(1)
	}

	sf, err := seeder.ReadSeedFile(seederCfg.File)
	if err != nil {
		logger.Error("read seed file", slog.String("file", seederCfg.File), slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	pipeline := seeder.NewPipeline(logger, postgres.NewTxManager(pool), definition.New(pool), *seederCfg)
	res, err := pipeline.Run(ctx, sf)
	if err != nil {
		logger.Error("seeding failed", slog.String("book_id", sf.BookID), slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding completed",
		slog.String("book_id", res.BookID),
		slog.Int("upserted", res.Upserted),
		slog.Int64("total", res.Total),
		slog.Bool("dry_run", res.DryRun),
		slog.Duration("duration", res.Duration),
	)
}
