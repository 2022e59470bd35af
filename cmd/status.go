package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/samzong/gitwrap/internal/formatter"
	"github.com/samzong/gitwrap/internal/git"
	"github.com/samzong/gitwrap/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show staged, unstaged and untracked paths",
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return handleErrors(runStatus())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus() error {
	client, err := openRepo()
	if err != nil {
		return err
	}

	var entries []git.StatusEntry
	sp := ui.NewSpinner(errWriter(), "Reading status...")
	if err := sp.Run(func() error {
		var statusErr error
		entries, statusErr = client.Status()
		return statusErr
	}); err != nil {
		return err
	}

	if entries == nil {
		entries = []git.StatusEntry{}
	}
	return render(entries, func(w io.Writer) error {
		return formatter.WriteStatusTable(w, entries)
	})
}
