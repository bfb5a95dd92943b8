package main

import (
	"fmt"

	"github.com/damoang/angple-notes/pkg/notesclient"
	"github.com/spf13/cobra"
)

func newCreateCmd(opts *cliOptions) *cobra.Command {
	var in notesclient.NoteInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := opts.client().CreateNote(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printNote(cmd.OutOrStdout(), opts.json, note)
		},
	}
	cmd.Flags().StringVar(&in.NoteTitle, "title", "", "Note title")
	cmd.Flags().StringVar(&in.NoteText, "text", "", "Note text")
	return cmd
}

func newUpdateCmd(opts *cliOptions) *cobra.Command {
	var in notesclient.NoteInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the title and text of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			note, err := opts.client().UpdateNote(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return printNote(cmd.OutOrStdout(), opts.json, note)
		},
	}
	cmd.Flags().StringVar(&in.NoteTitle, "title", "", "Note title")
	cmd.Flags().StringVar(&in.NoteText, "text", "", "Note text")
	return cmd
}

func newDeleteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := opts.client().DeleteNote(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %d\n", id)
			return nil
		},
	}
}
