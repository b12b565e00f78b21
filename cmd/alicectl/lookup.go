package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/alice-reader-backend/internal/app"
	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// outputFormat selects how resolved entries are printed.
type outputFormat string

const (
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

var (
	_          pflag.Value = (*outputFormat)(nil)
	allFormats             = []outputFormat{formatJSON, formatYAML}
)

func (f *outputFormat) Set(val string) error {
	for _, v := range allFormats {
		if val == string(v) {
			*f = v
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s", val)
}

func (f outputFormat) String() string { return string(f) }

func (f *outputFormat) Type() string { return "format" }

func newLookupCommand() *cobra.Command {
	var (
		q       domain.DefinitionQuery
		offline bool
		output  = formatJSON
	)

	cmd := &cobra.Command{
		Use:   "lookup <term>",
		Short: "Resolve a term through the definition pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc, err := app.Build(ctx, cfg, logger, app.BuildOptions{Offline: offline})
			if err != nil {
				return err
			}
			defer svc.Close()

			dispatchCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
			done := make(chan struct{})
			go func() {
				defer close(done)
				_ = svc.Dispatcher.Run(dispatchCtx)
			}()
			defer func() {
				stop()
				<-done
			}()

			q.Term = args[0]
			entry := svc.Lookup.Resolve(ctx, q)
			return writeEntry(cmd.OutOrStdout(), entry, output)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&q.BookID, "book", "", "book ID; the book definitions tier is skipped when empty")
	flags.StringVar(&q.SectionID, "section", "", "section ID")
	flags.StringVar(&q.ChapterID, "chapter", "", "chapter ID")
	flags.BoolVar(&offline, "offline", false, "do not connect to the database")
	flags.Var(&output, "output", fmt.Sprintf("output format, one of %v", allFormats))

	return cmd
}

func writeEntry(w io.Writer, entry domain.DictionaryEntry, format outputFormat) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("encode entry: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("encode entry: %w", err)
		}
		return nil
	}
}
