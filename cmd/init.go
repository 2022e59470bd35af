package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samzong/gitwrap/internal/git"
	"github.com/samzong/gitwrap/internal/gitutil"
)

var (
	initialBranch string

	initCmd = &cobra.Command{
		Use:   "init [directory]",
		Short: "Create an empty repository",
		Long: `Create an empty Git repository in the given directory, or in the current one.

The initial branch comes from --initial-branch, then the default_branch setting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runInit(args))
		},
	}
)

func init() {
	initCmd.Flags().StringVarP(&initialBranch, "initial-branch", "b", "", "Name of the initial branch")
	rootCmd.AddCommand(initCmd)
}

func runInit(args []string) error {
	dir := repoPath
	if len(args) == 1 {
		dir = args[0]
	}

	opts := clientOptions()
	if initialBranch != "" {
		opts.DefaultBranch = initialBranch
	}
	if opts.DefaultBranch != "" {
		if err := gitutil.ValidateBranchName(opts.DefaultBranch); err != nil {
			return err
		}
	}

	client, err := git.Init(dir, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(outWriter(), "Initialized empty Git repository in %s\n", client.Root())
	return nil
}
