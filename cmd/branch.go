package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samzong/gitwrap/internal/branch"
	"github.com/samzong/gitwrap/internal/formatter"
	"github.com/samzong/gitwrap/internal/git"
)

var (
	branchRemote   bool
	branchFrom     string
	branchCheckout bool
	branchDescribe string
	switchForce    bool

	branchCmd = &cobra.Command{
		Use:   "branch",
		Short: "List, create, switch, rename and delete branches",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handleErrors(runBranchList())
		},
	}

	branchListCmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List branches",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handleErrors(runBranchList())
		},
	}

	branchCreateCmd = &cobra.Command{
		Use:   "create [name]",
		Short: "Create a branch",
		Long: `Create a branch at HEAD or at --from.

With --describe the name is derived from a short description:
  gitwrap branch create --describe "fix login redirect"   # fix/fix-login-redirect`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runBranchCreate(args))
		},
	}

	branchSwitchCmd = &cobra.Command{
		Use:     "switch <name>",
		Aliases: []string{"checkout"},
		Short:   "Switch to a branch",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runBranchSwitch(args[0]))
		},
	}

	branchRenameCmd = &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runBranchRename(args[0], args[1]))
		},
	}

	branchDeleteCmd = &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a branch other than the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runBranchDelete(args[0]))
		},
	}
)

func init() {
	branchCmd.PersistentFlags().BoolVarP(&branchRemote, "remote", "r", false, "Include remote-tracking branches")

	branchCreateCmd.Flags().StringVar(&branchFrom, "from", "", "Start point (default HEAD)")
	branchCreateCmd.Flags().BoolVarP(&branchCheckout, "checkout", "c", false, "Switch to the new branch")
	branchCreateCmd.Flags().StringVarP(&branchDescribe, "describe", "d", "", "Derive the name from a description")

	branchSwitchCmd.Flags().BoolVarP(&switchForce, "force", "f", false, "Discard local changes")

	branchCmd.AddCommand(branchListCmd, branchCreateCmd, branchSwitchCmd, branchRenameCmd, branchDeleteCmd)
	rootCmd.AddCommand(branchCmd)
}

func runBranchList() error {
	client, err := openRepo()
	if err != nil {
		return err
	}
	branches, err := client.Branches(branchRemote)
	if err != nil {
		return err
	}
	if branches == nil {
		branches = []git.Branch{}
	}
	return render(branches, func(w io.Writer) error {
		return formatter.WriteBranchTable(w, branches)
	})
}

func runBranchCreate(args []string) error {
	name, err := resolveBranchName(args)
	if err != nil {
		return err
	}

	client, err := openRepo()
	if err != nil {
		return err
	}
	created, err := client.CreateBranch(name, branchFrom, branchCheckout)
	if err != nil {
		return err
	}

	if branchCheckout {
		fmt.Fprintf(outWriter(), "Created and switched to branch %s at %s\n", created.Name, created.Hash)
	} else {
		fmt.Fprintf(outWriter(), "Created branch %s at %s\n", created.Name, created.Hash)
	}
	return nil
}

func resolveBranchName(args []string) (string, error) {
	switch {
	case len(args) == 1 && branchDescribe != "":
		return "", errors.New("give either a branch name or --describe, not both")
	case len(args) == 1:
		return args[0], nil
	case branchDescribe != "":
		name := branch.NameFromDescription(branchDescribe)
		if name == "" {
			return "", fmt.Errorf("cannot derive a branch name from %q", branchDescribe)
		}
		return name, nil
	default:
		return "", errors.New("branch name required")
	}
}

func runBranchSwitch(name string) error {
	client, err := openRepo()
	if err != nil {
		return err
	}
	if err := client.SwitchBranch(name, switchForce); err != nil {
		return err
	}
	fmt.Fprintf(outWriter(), "Switched to branch %s\n", name)
	return nil
}

func runBranchRename(oldName, newName string) error {
	client, err := openRepo()
	if err != nil {
		return err
	}
	if err := client.RenameBranch(oldName, newName); err != nil {
		return err
	}
	fmt.Fprintf(outWriter(), "Renamed branch %s to %s\n", oldName, newName)
	return nil
}

func runBranchDelete(name string) error {
	client, err := openRepo()
	if err != nil {
		return err
	}
	if err := client.DeleteBranch(name); err != nil {
		return err
	}
	fmt.Fprintf(outWriter(), "Deleted branch %s\n", name)
	return nil
}
