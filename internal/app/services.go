package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/alice-reader-backend/internal/adapter/filestore"
	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres"
	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres/applog"
	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres/definition"
	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres/lookuplog"
	"github.com/heartmarshall/alice-reader-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/alice-reader-backend/internal/cache"
	"github.com/heartmarshall/alice-reader-backend/internal/config"
	"github.com/heartmarshall/alice-reader-backend/internal/domain"
	"github.com/heartmarshall/alice-reader-backend/internal/glossary"
	"github.com/heartmarshall/alice-reader-backend/internal/metrics"
	"github.com/heartmarshall/alice-reader-backend/internal/service/lookup"
	"github.com/heartmarshall/alice-reader-backend/internal/service/vocabulary"
	"github.com/heartmarshall/alice-reader-backend/internal/telemetry"
)

// BuildOptions tune how much of the stack Build brings up.
type BuildOptions struct {
	// Offline skips the database: the backend tier and all persistence of
	// lookups and fault events are disabled.
	Offline bool
}

// Services is the fully wired application core, shared by the HTTP server
// and the command-line tools.
type Services struct {
	Config     *config.Config
	Logger     *slog.Logger
	Pool       *pgxpool.Pool
	Registry   *prometheus.Registry
	Metrics    *metrics.Metrics
	Dispatcher *telemetry.Dispatcher
	Reporter   *telemetry.Reporter
	Lookup     *lookup.Service
	Vocabulary *vocabulary.Service
}

// Build connects to the database (unless offline), applies migrations
// unless disabled, and wires every service. Call Close when done.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts BuildOptions) (*Services, error) {
	s := &Services{Config: cfg, Logger: logger}

	s.Registry = prometheus.NewRegistry()
	s.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	s.Metrics = metrics.New(s.Registry)

	gl, err := glossary.Load()
	if err != nil {
		return nil, fmt.Errorf("load glossary: %w", err)
	}
	pv, err := glossary.LoadPhrasalVerbs()
	if err != nil {
		return nil, fmt.Errorf("load phrasal verbs: %w", err)
	}

	deps := lookup.Deps{
		Glossary: gl,
		Phrasal:  pv,
		External: freedict.NewProvider(cfg.Dictionary, logger),
		Local:    glossary.NewLocalDictionary(nil),
		Cache:    cache.NewTTL[domain.DefinitionQuery, domain.DictionaryEntry](time.Now),
		Metrics:  s.Metrics,
	}

	s.Dispatcher = telemetry.NewDispatcher(logger, cfg.Telemetry.QueueSize, s.Metrics)

	var sink telemetry.Sink
	if !opts.Offline {
		s.Pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if !cfg.Database.SkipMigrations {
			if err := postgres.Migrate(ctx, s.Pool, logger); err != nil {
				s.Pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}

		deps.Backend = definition.New(s.Pool)
		deps.Lookups = lookuplog.New(s.Pool)
		deps.Jobs = s.Dispatcher
		if !cfg.Telemetry.DisableLogPersistence {
			sink = applog.New(s.Pool)
		}
	}

	s.Reporter = telemetry.NewReporter(logger, s.Dispatcher, sink)
	deps.Events = s.Reporter

	s.Lookup = lookup.NewService(logger, deps, lookup.Options{
		CacheTTL:    cfg.Dictionary.CacheTTL,
		NotFoundTTL: cfg.Dictionary.NotFoundTTL,
	})
	s.Vocabulary = vocabulary.NewService(logger, filestore.NewVocabularyStore(cfg.Vocabulary.Path, logger))

	logger.Info("services ready",
		slog.Bool("offline", opts.Offline),
		slog.Int("glossary_terms", gl.Len()),
		slog.Bool("log_persistence", sink != nil),
	)

	return s, nil
}

// Close releases the database pool.
func (s *Services) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
