package git

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/samzong/gitwrap/internal/gitutil"
	"github.com/samzong/gitwrap/internal/stringsutil"
)

// Branch is a local or remote-tracking branch.
type Branch struct {
	Name    string `yaml:"name"`
	Hash    string `yaml:"hash"`
	Current bool   `yaml:"current"`
	Remote  bool   `yaml:"remote"`
}

// CurrentBranch returns the branch HEAD points at, including an unborn one.
func (c *Client) CurrentBranch() (string, error) {
	head, err := c.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference {
		return "", ErrDetachedHead
	}
	return head.Target().Short(), nil
}

// Branches lists local branches, plus remote-tracking branches when remote is set.
func (c *Client) Branches(remote bool) ([]Branch, error) {
	current, err := c.CurrentBranch()
	if err != nil && !errors.Is(err, ErrDetachedHead) {
		return nil, err
	}

	refs, err := c.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	defer refs.Close()

	var branches []Branch
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		switch {
		case name.IsBranch():
			branches = append(branches, Branch{
				Name:    name.Short(),
				Hash:    stringsutil.ShortHash(ref.Hash().String(), shortHashLen, ""),
				Current: name.Short() == current,
			})
		case remote && name.IsRemote():
			branches = append(branches, Branch{
				Name:   name.Short(),
				Hash:   stringsutil.ShortHash(ref.Hash().String(), shortHashLen, ""),
				Remote: true,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	sort.SliceStable(branches, func(i, j int) bool {
		if branches[i].Remote != branches[j].Remote {
			return !branches[i].Remote
		}
		return branches[i].Name < branches[j].Name
	})
	return branches, nil
}

func (c *Client) branchExists(name string) bool {
	_, err := c.repo.Storer.Reference(plumbing.NewBranchReferenceName(name))
	return err == nil
}

// CreateBranch points a new branch at startPoint (HEAD when empty) and
// optionally checks it out.
func (c *Client) CreateBranch(name, startPoint string, checkout bool) (Branch, error) {
	if err := gitutil.ValidateBranchName(name); err != nil {
		return Branch{}, err
	}
	if c.branchExists(name) {
		return Branch{}, fmt.Errorf("%w: %s", ErrBranchExists, name)
	}

	start, err := c.commitObject(startPoint)
	if err != nil {
		return Branch{}, err
	}

	refName := plumbing.NewBranchReferenceName(name)
	if err := c.repo.Storer.SetReference(plumbing.NewHashReference(refName, start.Hash)); err != nil {
		return Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}
	c.logger.Debug().Str("branch", name).Str("at", start.Hash.String()).Msg("created branch")

	if checkout {
		if err := c.SwitchBranch(name, false); err != nil {
			return Branch{}, err
		}
	}

	return Branch{
		Name:    name,
		Hash:    stringsutil.ShortHash(start.Hash.String(), shortHashLen, ""),
		Current: checkout,
	}, nil
}

// SwitchBranch checks out an existing branch. Without force the working tree
// must have no staged or unstaged changes, and no untracked file may sit at
// a path the target branch tracks. Other untracked files are left alone.
// With force, pending changes and colliding untracked files are overwritten.
func (c *Client) SwitchBranch(name string, force bool) error {
	if !c.branchExists(name) {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}

	if !force {
		entries, err := c.Status()
		if err != nil {
			return err
		}
		if n := CountStatus(entries, StatusStaged) + CountStatus(entries, StatusUnstaged); n > 0 {
			return fmt.Errorf("%w: %d pending change(s)", ErrDirtyWorktree, n)
		}
		clobbered, err := c.trackedOn(name, PathsWithStatus(entries, StatusUntracked))
		if err != nil {
			return err
		}
		if len(clobbered) > 0 {
			return fmt.Errorf("%w: %s", ErrUntrackedOverwrite, strings.Join(clobbered, ", "))
		}
	}

	wt, err := c.worktree()
	if err != nil {
		return err
	}
	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Force:  force,
	})
	if err != nil {
		return gitutil.WrapGitError("failed to switch to "+name, err)
	}
	c.logger.Debug().Str("branch", name).Msg("switched branch")
	return nil
}

// trackedOn returns the paths that branch name tracks. go-git's checkout
// overwrites untracked files at those paths without asking.
func (c *Client) trackedOn(name string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	ref, err := c.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return nil, gitutil.WrapGitError("failed to resolve "+name, err)
	}
	obj, err := c.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", name, err)
	}
	tree, err := obj.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree: %w", err)
	}

	var tracked []string
	for _, p := range paths {
		if _, err := tree.FindEntry(p); err == nil {
			tracked = append(tracked, p)
		}
	}
	return tracked, nil
}

// RenameBranch renames a branch, moving HEAD and branch config with it.
func (c *Client) RenameBranch(oldName, newName string) error {
	if err := gitutil.ValidateBranchName(newName); err != nil {
		return err
	}
	oldRef, err := c.repo.Storer.Reference(plumbing.NewBranchReferenceName(oldName))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, oldName)
	}
	if c.branchExists(newName) {
		return fmt.Errorf("%w: %s", ErrBranchExists, newName)
	}

	newRefName := plumbing.NewBranchReferenceName(newName)
	if err := c.repo.Storer.SetReference(plumbing.NewHashReference(newRefName, oldRef.Hash())); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", newName, err)
	}

	current, err := c.CurrentBranch()
	if err == nil && current == oldName {
		if err := c.repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, newRefName)); err != nil {
			return fmt.Errorf("failed to move HEAD: %w", err)
		}
	}

	if err := c.repo.Storer.RemoveReference(oldRef.Name()); err != nil {
		return fmt.Errorf("failed to remove branch %s: %w", oldName, err)
	}

	if err := c.moveBranchConfig(oldName, newName); err != nil {
		return err
	}

	c.logger.Debug().Str("from", oldName).Str("to", newName).Msg("renamed branch")
	return nil
}

func (c *Client) moveBranchConfig(oldName, newName string) error {
	cfg, err := c.repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	b, ok := cfg.Branches[oldName]
	if !ok {
		return nil
	}
	delete(cfg.Branches, oldName)
	b.Name = newName
	cfg.Branches[newName] = b
	if err := c.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DeleteBranch removes a branch. The current branch cannot be deleted.
func (c *Client) DeleteBranch(name string) error {
	refName := plumbing.NewBranchReferenceName(name)
	if _, err := c.repo.Storer.Reference(refName); err != nil {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}

	current, err := c.CurrentBranch()
	if err == nil && current == name {
		return fmt.Errorf("%w: %s", ErrCurrentBranch, name)
	}

	if err := c.repo.Storer.RemoveReference(refName); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	if err := c.repo.DeleteBranch(name); err != nil && !errors.Is(err, gogit.ErrBranchNotFound) {
		return fmt.Errorf("failed to delete branch config %s: %w", name, err)
	}

	c.logger.Debug().Str("branch", name).Msg("deleted branch")
	return nil
}
