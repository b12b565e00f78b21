package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/alice-reader-backend/internal/auth"
	"github.com/heartmarshall/alice-reader-backend/internal/config"
	"github.com/heartmarshall/alice-reader-backend/internal/transport/middleware"
	"github.com/heartmarshall/alice-reader-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, wires services,
// and serves HTTP until ctx is canceled, then shuts the server down and
// drains queued telemetry.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	svc, err := Build(ctx, cfg, logger, BuildOptions{})
	if err != nil {
		return err
	}
	defer svc.Close()

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.RouterDeps{
		Logger:          logger,
		CORS:            cfg.CORS,
		Validator:       auth.NewVerifier(cfg.Auth),
		Metrics:         svc.Metrics,
		Gatherer:        svc.Registry,
		RateLimiter:     limiter,
		LookupRateLimit: cfg.Dictionary.LookupRateLimit,
		Health:          rest.NewHealthHandler(svc.Pool, svc.Dispatcher, BuildVersion()),
		Definitions:     rest.NewDefinitionHandler(svc.Lookup, logger),
		Lookups:         rest.NewLookupHandler(svc.Lookup, logger),
		Vocabulary:      rest.NewVocabularyHandler(svc.Vocabulary, logger),
		Admin:           rest.NewAdminHandler(svc.Lookup, logger),
		Auth:            rest.NewAuthHandler(logger),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	// The dispatcher outlives the server so jobs queued by in-flight
	// requests are still drained.
	dispatchCtx, stopDispatcher := context.WithCancel(context.WithoutCancel(ctx))
	defer stopDispatcher()

	g.Go(func() error {
		return svc.Dispatcher.Run(dispatchCtx)
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		defer stopDispatcher()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
