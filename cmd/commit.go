package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samzong/gitwrap/internal/formatter"
	"github.com/samzong/gitwrap/internal/git"
	"github.com/samzong/gitwrap/internal/workflow"
)

var (
	commitMessage string
	commitAll     workflow.Tristate
	commitForce   bool
	commitEdit    bool

	commitCmd = &cobra.Command{
		Use:     "commit [paths...]",
		Aliases: []string{"ci"},
		Short:   "Record staged changes, staging paths first if asked",
		Long: `Commit the index. Paths given on the command line are staged first.

When nothing is staged and no paths are given, --all stages every pending
change. Leaving --all out asks in a terminal and stages nothing in a script.
Without -m a terminal session is asked for a message; a script fails.

Examples:
  gitwrap commit -m "fix login redirect"
  gitwrap commit -a -m "update docs"
  gitwrap commit src/auth.go
  gitwrap commit --all=false -m "only what is staged"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleErrors(runCommit(cmd, args))
		},
	}

	uncommitCmd = &cobra.Command{
		Use:   "uncommit",
		Short: "Undo the last commit, keeping its changes staged",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handleErrors(runUncommit())
		},
	}
)

func init() {
	flags := commitCmd.Flags()
	flags.StringVarP(&commitMessage, "message", "m", "", "Commit message")
	allFlag := flags.VarPF(&commitAll, "all", "a", "Stage every pending change first (true, false or unset)")
	allFlag.NoOptDefVal = "true"
	flags.BoolVarP(&commitForce, "force", "f", false, "Allow staging ignored paths")
	flags.BoolVarP(&commitEdit, "edit", "e", false, "Write the message in $EDITOR when prompted")

	rootCmd.AddCommand(commitCmd, uncommitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	client, err := openRepo()
	if err != nil {
		return err
	}

	paths, err := repoPaths(args)
	if err != nil {
		return err
	}

	flow := workflow.NewCommitFlow(client, workflow.CommitOptions{
		Logger:    logger,
		ErrWriter: errWriter(),
		Prompter:  newPrompter(cmd, commitEdit),
	})
	result, err := flow.Run(paths, commitAll, commitForce, commitMessage)
	if err != nil {
		return err
	}

	return render(result, func(w io.Writer) error {
		if result.Outcome == workflow.OutcomeAborted {
			_, err := fmt.Fprintln(w, "Commit aborted")
			return err
		}
		return nil
	})
}

func runUncommit() error {
	client, err := openRepo()
	if err != nil {
		return err
	}

	info, err := client.Uncommit()
	if err != nil {
		return err
	}

	return render(info, func(w io.Writer) error {
		fmt.Fprintln(w, "Uncommitted:")
		_, err := fmt.Fprintln(w, formatter.Bullet(uncommitHint(info)))
		return err
	})
}

func uncommitHint(info git.CommitInfo) string {
	return formatter.CommitHint(info.ShortHash, info.When, info.Message)
}
