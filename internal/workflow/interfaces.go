// Package workflow holds the staging and commit policies layered over the git client.
package workflow

import "github.com/samzong/gitwrap/internal/git"

// Repository abstracts the git operations the workflows drive, for testability.
type Repository interface {
	Status() ([]git.StatusEntry, error)
	Add(paths []string, force bool) ([]string, error)
	Commit(message string) (git.CommitInfo, error)
}

var _ Repository = (*git.Client)(nil)
