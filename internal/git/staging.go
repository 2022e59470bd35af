package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/samzong/gitwrap/internal/stringsutil"
)

// Add stages the pending changes at or under each path and returns the paths
// whose changes were staged. A path that matches no pending change is staged
// only when it exists on disk, is untracked and force is set: go-git's status
// omits ignored files, so that is the ignored case.
func (c *Client) Add(paths []string, force bool) ([]string, error) {
	wt, err := c.worktree()
	if err != nil {
		return nil, err
	}
	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read status: %w", err)
	}
	idx, err := c.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var staged []string
	for _, raw := range paths {
		p, err := c.RelPath(raw)
		if err != nil {
			return staged, err
		}

		matched := pendingUnder(st, p)
		if len(matched) == 0 {
			if indexHas(idx, p) {
				continue
			}
			if _, err := wt.Filesystem.Lstat(p); err != nil {
				return staged, fmt.Errorf("%w: %s", ErrPathNotFound, raw)
			}
			if !force {
				return staged, fmt.Errorf("%w: %s (use force to add it anyway)", ErrPathIgnored, raw)
			}
			if _, err := wt.Add(p); err != nil {
				return staged, fmt.Errorf("failed to add %s: %w", p, err)
			}
			c.logger.Debug().Str("path", p).Msg("force-added ignored path")
			staged = append(staged, p)
			continue
		}

		for _, m := range matched {
			if err := stagePath(wt, m, st[m].Worktree); err != nil {
				return staged, err
			}
			c.logger.Debug().Str("path", m).Msg("staged path")
			staged = append(staged, m)
		}
	}

	return stringsutil.UniqueStrings(staged), nil
}

func stagePath(wt *gogit.Worktree, path string, code gogit.StatusCode) error {
	if code == gogit.Deleted {
		if _, err := wt.Remove(path); err != nil {
			return fmt.Errorf("failed to stage deletion of %s: %w", path, err)
		}
		return nil
	}
	if _, err := wt.Add(path); err != nil {
		return fmt.Errorf("failed to add %s: %w", path, err)
	}
	return nil
}

// pendingUnder lists, in sorted order, paths under p with unstaged or untracked changes.
func pendingUnder(st gogit.Status, p string) []string {
	var out []string
	for _, e := range statusEntries(st) {
		if e.Status == StatusStaged {
			continue
		}
		if pathMatches(e.Path, p) {
			out = append(out, e.Path)
		}
	}
	return stringsutil.UniqueStrings(out)
}

func indexHas(idx *index.Index, p string) bool {
	for _, e := range idx.Entries {
		if pathMatches(e.Name, p) {
			return true
		}
	}
	return false
}

// pathMatches reports whether path equals pathspec or lies under the directory pathspec.
func pathMatches(path, pathspec string) bool {
	if pathspec == "." || pathspec == "" {
		return true
	}
	return path == pathspec || strings.HasPrefix(path, pathspec+"/")
}

// RelPath converts a caller path (absolute, or relative to the working tree
// root) into the slash-separated form go-git uses.
func (c *Client) RelPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(c.root, p)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		p = rel
	}
	p = filepath.ToSlash(filepath.Clean(p))
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%w: %s is outside repository", ErrPathNotFound, p)
	}
	return p, nil
}

// Unstage moves staged changes back out of the index. HEAD's version of each
// path is restored; paths absent from HEAD are dropped from the index. An
// empty path set unstages everything.
func (c *Client) Unstage(paths []string) ([]string, error) {
	entries, err := c.Status()
	if err != nil {
		return nil, err
	}
	staged := PathsWithStatus(entries, StatusStaged)

	specs := make([]string, 0, len(paths))
	for _, raw := range paths {
		p, err := c.RelPath(raw)
		if err != nil {
			return nil, err
		}
		specs = append(specs, p)
	}

	var targets []string
	for _, s := range staged {
		if len(specs) == 0 || matchesAny(s, specs) {
			targets = append(targets, s)
		}
	}
	if len(targets) == 0 {
		return nil, nil
	}

	headTree, err := c.headTree()
	if err != nil {
		return nil, err
	}

	idx, err := c.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	for _, t := range targets {
		if err := restoreIndexEntry(idx, headTree, t); err != nil {
			return nil, err
		}
		c.logger.Debug().Str("path", t).Msg("unstaged path")
	}

	if err := c.repo.Storer.SetIndex(idx); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}
	return targets, nil
}

func matchesAny(path string, specs []string) bool {
	for _, s := range specs {
		if pathMatches(path, s) {
			return true
		}
	}
	return false
}

// headTree returns HEAD's tree, or nil on an unborn branch.
func (c *Client) headTree() (*object.Tree, error) {
	ref, err := c.headRef()
	if err != nil {
		if errors.Is(err, ErrNoCommits) {
			return nil, nil
		}
		return nil, err
	}
	commit, err := c.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD tree: %w", err)
	}
	return tree, nil
}

func restoreIndexEntry(idx *index.Index, tree *object.Tree, path string) error {
	if tree == nil {
		_, _ = idx.Remove(path)
		return nil
	}

	f, err := tree.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			_, _ = idx.Remove(path)
			return nil
		}
		return fmt.Errorf("failed to read %s from HEAD: %w", path, err)
	}

	e, err := idx.Entry(path)
	if err != nil {
		if !errors.Is(err, index.ErrEntryNotFound) {
			return fmt.Errorf("failed to read index entry %s: %w", path, err)
		}
		e = idx.Add(path)
	}
	e.Hash = f.Hash
	e.Mode = f.Mode
	e.Size = uint32(f.Size)
	// Zero timestamps force the next status to rehash the file.
	e.ModifiedAt = time.Time{}
	e.CreatedAt = time.Time{}
	return nil
}

// Remove deletes paths from the index, and from disk unless cached is set.
func (c *Client) Remove(paths []string, cached bool) ([]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", ErrPathNotFound)
	}

	idx, err := c.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var targets []string
	for _, raw := range paths {
		p, err := c.RelPath(raw)
		if err != nil {
			return nil, err
		}
		var matched []string
		for _, e := range idx.Entries {
			if pathMatches(e.Name, p) {
				matched = append(matched, e.Name)
			}
		}
		if len(matched) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, raw)
		}
		targets = append(targets, matched...)
	}
	targets = stringsutil.UniqueStrings(targets)

	if cached {
		for _, t := range targets {
			_, _ = idx.Remove(t)
		}
		if err := c.repo.Storer.SetIndex(idx); err != nil {
			return nil, fmt.Errorf("failed to write index: %w", err)
		}
		return targets, nil
	}

	wt, err := c.worktree()
	if err != nil {
		return nil, err
	}
	for _, t := range targets {
		if _, err := wt.Remove(t); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", t, err)
		}
		c.logger.Debug().Str("path", t).Msg("removed path")
	}
	return targets, nil
}
