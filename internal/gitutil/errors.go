package gitutil

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var engineHints = []struct {
	err  error
	hint string
}{
	{gogit.ErrWorktreeNotClean, "commit or unstage your changes, or retry with --force"},
	{gogit.ErrUnstagedChanges, "commit or unstage your changes, or retry with --force"},
	{gogit.ErrEmptyCommit, "stage a change first"},
	{plumbing.ErrReferenceNotFound, "check the branch or revision name"},
	{plumbing.ErrObjectNotFound, "the repository may be shallow or corrupt"},
}

// WrapGitError adds action context to an engine error and, for go-git errors
// users commonly hit, a short hint on what to do next.
func WrapGitError(action string, err error) error {
	for _, h := range engineHints {
		if errors.Is(err, h.err) {
			return fmt.Errorf("%s: %w (%s)", action, err, h.hint)
		}
	}
	return fmt.Errorf("%s: %w", action, err)
}
