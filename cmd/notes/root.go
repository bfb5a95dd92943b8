package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/damoang/angple-notes/pkg/notesclient"
	"github.com/spf13/cobra"
)

type cliOptions struct {
	server  string
	json    bool
	timeout time.Duration
}

func (o *cliOptions) client() *notesclient.Client {
	return notesclient.New(o.server, notesclient.WithTimeout(o.timeout))
}

// newRootCmd builds the notes command tree
func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "notes",
		Short: "Command-line client for the notes API",
		Long: `notes lists, searches, creates, updates and deletes notes
through the notes HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultServer := os.Getenv("NOTES_SERVER")
	if defaultServer == "" {
		defaultServer = notesclient.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&opts.server, "server", defaultServer, "API base URL (env NOTES_SERVER)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Output in JSON format")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	root.AddCommand(
		newListCmd(opts),
		newGetCmd(opts),
		newSearchCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
	)
	return root
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}

func printNotes(w io.Writer, asJSON bool, notes []notesclient.Note) error {
	if asJSON {
		return writeJSON(w, notes)
	}
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return nil
	}
	for _, n := range notes {
		fmt.Fprintf(w, "%d\t%s\t%s\n", n.ID, n.CreatedAt.Format(time.RFC3339), n.NoteTitle)
	}
	return nil
}

func printNote(w io.Writer, asJSON bool, n *notesclient.Note) error {
	if asJSON {
		return writeJSON(w, n)
	}
	fmt.Fprintf(w, "# %s\n", n.NoteTitle)
	fmt.Fprintf(w, "id: %d  created: %s\n\n", n.ID, n.CreatedAt.Format(time.RFC3339))
	fmt.Fprintln(w, strings.TrimRight(n.NoteText, "\n"))
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
