package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/alice-reader-backend/internal/adapter/filestore"
	"github.com/heartmarshall/alice-reader-backend/internal/service/vocabulary"
)

func newVocabCommand() *cobra.Command {
	var userFlag string

	root := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect and edit reader vocabularies",
	}
	root.PersistentFlags().StringVar(&userFlag, "user", "", "reader user ID (UUID)")
	_ = root.MarkPersistentFlagRequired("user")

	open := func() (*vocabulary.Service, uuid.UUID, error) {
		userID, err := uuid.Parse(userFlag)
		if err != nil {
			return nil, uuid.Nil, fmt.Errorf("invalid --user: %w", err)
		}
		cfg, logger, err := loadConfig()
		if err != nil {
			return nil, uuid.Nil, err
		}
		store := filestore.NewVocabularyStore(cfg.Vocabulary.Path, logger)
		return vocabulary.NewService(logger, store), userID, nil
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved words",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, userID, err := open()
				if err != nil {
					return err
				}
				items, err := svc.List(cmd.Context(), userID)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TERM\tSAVED\tDEFINITION")
				for _, it := range items {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Term, it.SavedAt.Format("2006-01-02"), it.Definition)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "save <term> <definition>",
			Short: "Save or update a word",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, userID, err := open()
				if err != nil {
					return err
				}
				item, err := svc.Save(cmd.Context(), vocabulary.SaveInput{
					UserID:     userID,
					Term:       args[0],
					Definition: args[1],
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %q\n", item.Term)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <term>",
			Short: "Remove a word",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, userID, err := open()
				if err != nil {
					return err
				}
				if err := svc.Remove(cmd.Context(), vocabulary.RemoveInput{UserID: userID, Term: args[0]}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %q\n", args[0])
				return nil
			},
		},
	)

	return root
}
