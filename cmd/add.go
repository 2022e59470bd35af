package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samzong/gitwrap/internal/formatter"
	"github.com/samzong/gitwrap/internal/workflow"
)

var (
	addAll   workflow.Tristate
	addForce bool

	addCmd = &cobra.Command{
		Use:   "add [paths...]",
		Short: "Stage paths for the next commit",
		Long: `Stage the given paths. Directories stage every pending change beneath them.

Without paths, --all stages every pending change. When --all is not given at
all, an interactive session is asked first and a scripted run stages nothing.
Pass --all=false to never expand the path set.

Examples:
  gitwrap add README.md src/
  gitwrap add --all
  gitwrap add --force build/generated.go`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleErrors(runAdd(cmd, args))
		},
	}

	unstageCmd = &cobra.Command{
		Use:   "unstage [paths...]",
		Short: "Remove paths from the index, keeping working tree changes",
		Long: `Reset the index entries of the given paths to HEAD, or every staged path
when none are given. Working tree files are not touched.`,
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runUnstage(args))
		},
	}

	rmCached bool

	rmCmd = &cobra.Command{
		Use:   "rm <paths...>",
		Short: "Remove tracked paths and stage the removal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runRemove(args))
		},
	}
)

func init() {
	addFlag := addCmd.Flags().VarPF(&addAll, "all", "a", "Stage every pending change (true, false or unset)")
	addFlag.NoOptDefVal = "true"
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false, "Allow staging ignored paths")

	rmCmd.Flags().BoolVar(&rmCached, "cached", false, "Only remove from the index, keep the file on disk")

	rootCmd.AddCommand(addCmd, unstageCmd, rmCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	client, err := openRepo()
	if err != nil {
		return err
	}

	paths, err := repoPaths(args)
	if err != nil {
		return err
	}

	flow := workflow.NewStageFlow(client, newPrompter(cmd, false), logger, errWriter())
	staged, err := flow.Stage(paths, addAll, addForce)
	printPaths("Staged these paths:", staged)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		fmt.Fprintln(errWriter(), "Nothing staged")
	}
	return nil
}

func runUnstage(args []string) error {
	client, err := openRepo()
	if err != nil {
		return err
	}

	paths, err := repoPaths(args)
	if err != nil {
		return err
	}
	unstaged, err := client.Unstage(paths)
	if err != nil {
		return err
	}
	if len(unstaged) == 0 {
		fmt.Fprintln(errWriter(), "Nothing to unstage")
		return nil
	}
	printPaths("Unstaged these paths:", unstaged)
	return nil
}

func runRemove(args []string) error {
	client, err := openRepo()
	if err != nil {
		return err
	}

	paths, err := repoPaths(args)
	if err != nil {
		return err
	}
	removed, err := client.Remove(paths, rmCached)
	if err != nil {
		return err
	}
	printPaths("Removed these paths:", removed)
	return nil
}

func printPaths(header string, paths []string) {
	if len(paths) == 0 {
		return
	}
	w := outWriter()
	fmt.Fprintln(w, header)
	for _, p := range paths {
		fmt.Fprintln(w, formatter.Bullet(p))
	}
}
