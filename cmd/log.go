package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samzong/gitwrap/internal/formatter"
)

var (
	logMax    int
	logFormat string

	logCmd = &cobra.Command{
		Use:   "log",
		Short: "Show commit history of the current branch",
		Long: `Show commits reachable from HEAD, newest first.

--format takes a builtin name (` + strings.Join(formatter.LogFormatNames(), ", ") + `) or a Go
template over the commit fields: .Hash .ShortHash .Author .Email .Date .Summary .Message

Examples:
  gitwrap log -n 5
  gitwrap log --format oneline
  gitwrap log --format '{{.ShortHash}} {{upper .Author}}'`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handleErrors(runLog())
		},
	}

	showTree bool

	showCmd = &cobra.Command{
		Use:   "show [revision]",
		Short: "List the paths a commit changed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runShow(args))
		},
	}
)

func init() {
	logCmd.Flags().IntVarP(&logMax, "max-count", "n", 0, "Limit the number of commits (0 shows all)")
	logCmd.Flags().StringVar(&logFormat, "format", "", "Builtin format name or Go template")

	showCmd.Flags().BoolVar(&showTree, "tree", false, "List every path in the commit's tree instead")

	rootCmd.AddCommand(logCmd, showCmd)
}

func runLog() error {
	client, err := openRepo()
	if err != nil {
		return err
	}

	commits, err := client.Log(logMax)
	if err != nil {
		return err
	}

	if logFormat != "" {
		tmpl, err := formatter.ParseLogFormat(logFormat)
		if err != nil {
			return err
		}
		return formatter.WriteLogTemplate(outWriter(), tmpl, commits)
	}
	return render(commits, func(w io.Writer) error {
		return formatter.WriteLogTable(w, commits)
	})
}

func runShow(args []string) error {
	client, err := openRepo()
	if err != nil {
		return err
	}

	rev := "HEAD"
	if len(args) == 1 {
		rev = args[0]
	}

	var files []string
	if showTree {
		files, err = client.TreeFiles(rev)
	} else {
		files, err = client.CommitFiles(rev)
	}
	if err != nil {
		return err
	}

	return render(files, func(w io.Writer) error {
		for _, f := range files {
			if _, err := fmt.Fprintln(w, f); err != nil {
				return err
			}
		}
		return nil
	})
}
