package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := opts.client().ListNotes(cmd.Context())
			if err != nil {
				return err
			}
			return printNotes(cmd.OutOrStdout(), opts.json, notes)
		},
	}
}

func newGetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			note, err := opts.client().GetNote(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printNote(cmd.OutOrStdout(), opts.json, note)
		},
	}
}

func newSearchCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find notes whose title or text contains the query (case-insensitive)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := opts.client().SearchNotes(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printNotes(cmd.OutOrStdout(), opts.json, notes)
		},
	}
}
