package git

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/samzong/gitwrap/internal/gitutil"
	"github.com/samzong/gitwrap/internal/stringsutil"
)

const shortHashLen = 7

// CommitInfo describes one commit.
type CommitInfo struct {
	Hash      string    `yaml:"hash"`
	ShortHash string    `yaml:"short"`
	Author    string    `yaml:"author"`
	Email     string    `yaml:"email"`
	When      time.Time `yaml:"date"`
	Message   string    `yaml:"message"`
	Parents   int       `yaml:"parents"`
}

// Summary returns the first line of the commit message.
func (ci CommitInfo) Summary() string {
	summary, _, _ := strings.Cut(strings.TrimSpace(ci.Message), "\n")
	return summary
}

func commitInfo(c *object.Commit) CommitInfo {
	hash := c.Hash.String()
	return CommitInfo{
		Hash:      hash,
		ShortHash: stringsutil.ShortHash(hash, shortHashLen, ""),
		Author:    c.Author.Name,
		Email:     c.Author.Email,
		When:      c.Author.When,
		Message:   c.Message,
		Parents:   c.NumParents(),
	}
}

// Commit records the current index as a new commit on HEAD.
func (c *Client) Commit(message string) (CommitInfo, error) {
	wt, err := c.worktree()
	if err != nil {
		return CommitInfo{}, err
	}

	sig, err := c.signature()
	if err != nil {
		return CommitInfo{}, err
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return CommitInfo{}, gitutil.WrapGitError("failed to create commit", err)
	}

	obj, err := c.repo.CommitObject(hash)
	if err != nil {
		return CommitInfo{}, fmt.Errorf("failed to read new commit: %w", err)
	}

	info := commitInfo(obj)
	c.logger.Debug().Str("hash", info.Hash).Msg("created commit")
	return info, nil
}

// signature resolves the author from local+global git config, then Options.Identity.
func (c *Client) signature() (*object.Signature, error) {
	name, email := c.opts.Identity.Name, c.opts.Identity.Email

	cfg, err := c.repo.ConfigScoped(config.GlobalScope)
	if err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	} else {
		c.logger.Debug().Err(err).Msg("failed to read git config for identity")
	}

	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: set user.name and user.email in git config or author_name and author_email in gitwrap config",
			ErrMissingIdentity)
	}

	return &object.Signature{Name: name, Email: email, When: c.opts.Now()}, nil
}

// Head returns the commit HEAD points at.
func (c *Client) Head() (CommitInfo, error) {
	ref, err := c.headRef()
	if err != nil {
		return CommitInfo{}, err
	}
	obj, err := c.repo.CommitObject(ref.Hash())
	if err != nil {
		return CommitInfo{}, fmt.Errorf("failed to read HEAD commit: %w", err)
	}
	return commitInfo(obj), nil
}

// Log returns up to max commits reachable from HEAD, newest first. max <= 0
// means no limit. An unborn branch has an empty log.
func (c *Client) Log(max int) ([]CommitInfo, error) {
	ref, err := c.headRef()
	if err != nil {
		if errors.Is(err, ErrNoCommits) {
			return nil, nil
		}
		return nil, err
	}

	iter, err := c.repo.Log(&gogit.LogOptions{From: ref.Hash(), Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	var commits []CommitInfo
	err = iter.ForEach(func(obj *object.Commit) error {
		if max > 0 && len(commits) >= max {
			return storer.ErrStop
		}
		commits = append(commits, commitInfo(obj))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk log: %w", err)
	}
	return commits, nil
}

// TreeFiles lists every path in the tree of the given commit.
func (c *Client) TreeFiles(hash string) ([]string, error) {
	obj, err := c.commitObject(hash)
	if err != nil {
		return nil, err
	}
	tree, err := obj.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree: %w", err)
	}

	var files []string
	err = tree.Files().ForEach(func(f *object.File) error {
		files = append(files, f.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk tree: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// CommitFiles lists the paths a commit changed relative to its first parent.
func (c *Client) CommitFiles(hash string) ([]string, error) {
	obj, err := c.commitObject(hash)
	if err != nil {
		return nil, err
	}
	tree, err := obj.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree: %w", err)
	}

	var parentTree *object.Tree
	if obj.NumParents() > 0 {
		parent, err := obj.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("failed to read parent: %w", err)
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, fmt.Errorf("failed to read parent tree: %w", err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}

	files := make([]string, 0, len(changes))
	for _, ch := range changes {
		name := ch.To.Name
		if name == "" {
			name = ch.From.Name
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return stringsutil.UniqueStrings(files), nil
}

func (c *Client) commitObject(rev string) (*object.Commit, error) {
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := c.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) && rev == "HEAD" {
			return nil, ErrNoCommits
		}
		return nil, gitutil.WrapGitError("failed to resolve "+rev, err)
	}
	obj, err := c.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", rev, err)
	}
	return obj, nil
}

// Uncommit moves the current branch back to HEAD's first parent, keeping the
// index and working tree, so the undone changes stay staged. Uncommitting a
// root commit leaves the branch unborn. Returns the commit that was removed.
func (c *Client) Uncommit() (CommitInfo, error) {
	ref, err := c.headRef()
	if err != nil {
		return CommitInfo{}, err
	}
	obj, err := c.repo.CommitObject(ref.Hash())
	if err != nil {
		return CommitInfo{}, fmt.Errorf("failed to read HEAD commit: %w", err)
	}
	undone := commitInfo(obj)

	if obj.NumParents() == 0 {
		if !ref.Name().IsBranch() {
			return CommitInfo{}, fmt.Errorf("%w: cannot uncommit a root commit", ErrDetachedHead)
		}
		if err := c.repo.Storer.RemoveReference(ref.Name()); err != nil {
			return CommitInfo{}, fmt.Errorf("failed to reset branch: %w", err)
		}
		c.logger.Debug().Str("hash", undone.Hash).Msg("uncommitted root commit")
		return undone, nil
	}

	wt, err := c.worktree()
	if err != nil {
		return CommitInfo{}, err
	}
	if err := wt.Reset(&gogit.ResetOptions{Commit: obj.ParentHashes[0], Mode: gogit.SoftReset}); err != nil {
		return CommitInfo{}, gitutil.WrapGitError("failed to reset to parent", err)
	}

	c.logger.Debug().Str("hash", undone.Hash).Msg("uncommitted")
	return undone, nil
}
