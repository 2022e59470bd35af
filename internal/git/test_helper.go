//go:build !prod

package git

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestIdentity is the author used by repositories created with NewTestRepo.
var TestIdentity = Identity{Name: "Test User", Email: "test@example.com"}

// TestClock returns a clock that advances one minute per call, starting at a
// fixed instant, so commit order and dates are deterministic.
func TestClock() func() time.Time {
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

// IsolateGitConfig points HOME and XDG_CONFIG_HOME at an empty directory so
// the developer's global git identity never leaks into tests.
func IsolateGitConfig(t *testing.T) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
}

// NewTestRepo initializes an empty repository in a temporary directory.
func NewTestRepo(t *testing.T) *Client {
	t.Helper()

	IsolateGitConfig(t)

	dir := filepath.Join(t.TempDir(), "repo")
	client, err := Init(dir, Options{
		Identity:      TestIdentity,
		DefaultBranch: "main",
		Now:           TestClock(),
	})
	if err != nil {
		t.Fatalf("failed to init test repository: %v", err)
	}
	AssertNotInRealRepo(t, client.Root())
	return client
}

// WriteFile writes content to a path relative to the repository root,
// creating parent directories.
func WriteFile(t *testing.T, c *Client, path, content string) {
	t.Helper()

	full := filepath.Join(c.Root(), filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// AssertNotInRealRepo fails the test when dir is not under the OS temp directory.
func AssertNotInRealRepo(t *testing.T, dir string) {
	t.Helper()

	tmp, err := filepath.EvalSymlinks(os.TempDir())
	if err != nil {
		tmp = os.TempDir()
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if !strings.HasPrefix(resolved, tmp) && !strings.HasPrefix(dir, os.TempDir()) {
		t.Fatalf("SAFETY: test repository %s is outside the temp directory %s", dir, tmp)
	}
}
