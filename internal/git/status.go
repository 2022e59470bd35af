package git

import (
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
)

// StatusKind classifies where a pending change lives.
type StatusKind string

const (
	StatusStaged    StatusKind = "staged"
	StatusUnstaged  StatusKind = "unstaged"
	StatusUntracked StatusKind = "untracked"
)

// ChangeKind describes what happened to the path.
type ChangeKind string

const (
	ChangeNew        ChangeKind = "new"
	ChangeModified   ChangeKind = "modified"
	ChangeDeleted    ChangeKind = "deleted"
	ChangeRenamed    ChangeKind = "renamed"
	ChangeConflicted ChangeKind = "conflicted"
)

// StatusEntry is one row of the status table. A path with both staged and
// unstaged changes yields two rows.
type StatusEntry struct {
	Index  int        `yaml:"i"`
	Path   string     `yaml:"path"`
	Status StatusKind `yaml:"status"`
	Change ChangeKind `yaml:"change"`
}

// Status reads the index and working tree and returns one row per pending
// change, sorted by path with the staged row first.
func (c *Client) Status() ([]StatusEntry, error) {
	wt, err := c.worktree()
	if err != nil {
		return nil, err
	}

	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read status: %w", err)
	}

	entries := statusEntries(st)
	c.logger.Debug().Int("entries", len(entries)).Msg("read status")
	return entries, nil
}

func statusEntries(st gogit.Status) []StatusEntry {
	paths := make([]string, 0, len(st))
	for path := range st {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	entries := make([]StatusEntry, 0, len(paths))
	for _, path := range paths {
		fs := st[path]
		if fs.Staging == gogit.Untracked {
			entries = append(entries, StatusEntry{Path: path, Status: StatusUntracked, Change: ChangeNew})
			continue
		}
		if change, ok := stagingChange(fs.Staging); ok {
			entries = append(entries, StatusEntry{Path: path, Status: StatusStaged, Change: change})
		}
		// A path removed from the index but still on disk.
		if fs.Worktree == gogit.Untracked {
			entries = append(entries, StatusEntry{Path: path, Status: StatusUntracked, Change: ChangeNew})
			continue
		}
		if change, ok := worktreeChange(fs.Worktree); ok {
			entries = append(entries, StatusEntry{Path: path, Status: StatusUnstaged, Change: change})
		}
	}

	for i := range entries {
		entries[i].Index = i + 1
	}
	return entries
}

func stagingChange(code gogit.StatusCode) (ChangeKind, bool) {
	switch code {
	case gogit.Added, gogit.Copied:
		return ChangeNew, true
	case gogit.Modified:
		return ChangeModified, true
	case gogit.Deleted:
		return ChangeDeleted, true
	case gogit.Renamed:
		return ChangeRenamed, true
	case gogit.UpdatedButUnmerged:
		return ChangeConflicted, true
	default:
		return "", false
	}
}

func worktreeChange(code gogit.StatusCode) (ChangeKind, bool) {
	switch code {
	case gogit.Modified:
		return ChangeModified, true
	case gogit.Deleted:
		return ChangeDeleted, true
	case gogit.UpdatedButUnmerged:
		return ChangeConflicted, true
	default:
		return "", false
	}
}

// CountStatus returns how many entries have the given status.
func CountStatus(entries []StatusEntry, kind StatusKind) int {
	n := 0
	for _, e := range entries {
		if e.Status == kind {
			n++
		}
	}
	return n
}

// PathsWithStatus returns the paths of entries with the given status, in order.
func PathsWithStatus(entries []StatusEntry, kinds ...StatusKind) []string {
	var paths []string
	for _, e := range entries {
		for _, k := range kinds {
			if e.Status == k {
				paths = append(paths, e.Path)
				break
			}
		}
	}
	return paths
}
