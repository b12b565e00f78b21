// Command alicectl is the operator CLI for Alice Reader: it resolves terms
// through the same pipeline as the server, edits reader vocabularies and
// applies database migrations.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/alice-reader-backend/internal/app"
	"github.com/heartmarshall/alice-reader-backend/internal/config"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "alicectl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "alicectl",
		Short:         "Alice Reader operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       app.BuildVersion(),
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	root.AddCommand(
		newLookupCommand(),
		newVocabCommand(),
		newMigrateCommand(),
	)
	return root
}

// loadConfig reads the config named by --config, falling back to
// $CONFIG_PATH, and builds the process logger from it.
func loadConfig() (*config.Config, *slog.Logger, error) {
	path := configFile
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, nil, err
	}
	if debugMode {
		cfg.Log.Level = "debug"
	}
	cfg.Log.Format = "text"
	return cfg, app.NewLogger(cfg.Log), nil
}
