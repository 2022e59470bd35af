package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"
)

var (
	ErrNotRepository      = errors.New("not a git repository")
	ErrAlreadyRepository  = errors.New("repository already exists")
	ErrNoCommits          = errors.New("current branch has no commits yet")
	ErrDetachedHead       = errors.New("HEAD is detached")
	ErrMissingIdentity    = errors.New("author identity unknown")
	ErrPathNotFound       = errors.New("pathspec did not match any files")
	ErrPathIgnored        = errors.New("path is ignored by .gitignore")
	ErrBranchExists       = errors.New("branch already exists")
	ErrBranchNotFound     = errors.New("branch not found")
	ErrCurrentBranch      = errors.New("cannot delete the branch you are on")
	ErrDirtyWorktree      = errors.New("commit or unstage changes before switching branches")
	ErrUntrackedOverwrite = errors.New("untracked working tree files would be overwritten by checkout")
	ErrInvalidConfigKey   = errors.New("invalid config key")
	ErrConfigKeyNotFound  = errors.New("config key not set")
)

// Identity is the fallback author used when git config has no user.name/user.email.
type Identity struct {
	Name  string
	Email string
}

type Options struct {
	Logger zerolog.Logger
	// Identity is consulted only when repository and global git config lack a user.
	Identity Identity
	// DefaultBranch names the initial branch created by Init.
	DefaultBranch string
	// Now stamps new commits. Defaults to time.Now.
	Now func() time.Time
}

// Client is a handle on one on-disk repository.
type Client struct {
	repo   *gogit.Repository
	root   string
	logger zerolog.Logger
	opts   Options
}

func newClient(repo *gogit.Repository, root string, opts Options) *Client {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Client{
		repo:   repo,
		root:   root,
		logger: opts.Logger.With().Str("repo", root).Logger(),
		opts:   opts,
	}
}

// Open resolves path to the enclosing repository, walking up parent directories.
func Open(path string, opts Options) (*Client, error) {
	if path == "" {
		path = "."
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, absPath)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	c := newClient(repo, wt.Filesystem.Root(), opts)
	c.logger.Debug().Msg("opened repository")
	return c, nil
}

// Init creates a new non-bare repository at path, creating the directory if needed.
func Init(path string, opts Options) (*Client, error) {
	if path == "" {
		path = "."
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	branch := opts.DefaultBranch
	if branch == "" {
		branch = "main"
	}

	repo, err := gogit.PlainInitWithOptions(absPath, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(branch),
		},
		Bare: false,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryAlreadyExists) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyRepository, absPath)
		}
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	c := newClient(repo, absPath, opts)
	c.logger.Debug().Str("branch", branch).Msg("initialized repository")
	return c, nil
}

// Root returns the absolute path of the working tree.
func (c *Client) Root() string {
	return c.root
}

func (c *Client) worktree() (*gogit.Worktree, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	return wt, nil
}

// headRef returns the resolved HEAD reference, or ErrNoCommits on an unborn branch.
func (c *Client) headRef() (*plumbing.Reference, error) {
	ref, err := c.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoCommits
		}
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return ref, nil
}
