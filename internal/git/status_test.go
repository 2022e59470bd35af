package git

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusEntries(t *testing.T) {
	st := gogit.Status{
		"b.txt":   {Staging: gogit.Modified, Worktree: gogit.Modified},
		"a.txt":   {Staging: gogit.Added, Worktree: gogit.Unmodified},
		"new.txt": {Staging: gogit.Untracked, Worktree: gogit.Untracked},
		"gone.go": {Staging: gogit.Unmodified, Worktree: gogit.Deleted},
		"same.go": {Staging: gogit.Unmodified, Worktree: gogit.Unmodified},
		"kept.md": {Staging: gogit.Deleted, Worktree: gogit.Untracked},
	}

	entries := statusEntries(st)

	want := []StatusEntry{
		{Index: 1, Path: "a.txt", Status: StatusStaged, Change: ChangeNew},
		{Index: 2, Path: "b.txt", Status: StatusStaged, Change: ChangeModified},
		{Index: 3, Path: "b.txt", Status: StatusUnstaged, Change: ChangeModified},
		{Index: 4, Path: "gone.go", Status: StatusUnstaged, Change: ChangeDeleted},
		{Index: 5, Path: "kept.md", Status: StatusStaged, Change: ChangeDeleted},
		{Index: 6, Path: "kept.md", Status: StatusUntracked, Change: ChangeNew},
		{Index: 7, Path: "new.txt", Status: StatusUntracked, Change: ChangeNew},
	}
	assert.Equal(t, want, entries)
	assert.Equal(t, 3, CountStatus(entries, StatusStaged))
	assert.Equal(t, []string{"b.txt", "gone.go", "kept.md", "new.txt"}, PathsWithStatus(entries, StatusUnstaged, StatusUntracked))
}

func TestStatusEmptyRepository(t *testing.T) {
	client := NewTestRepo(t)

	entries, err := client.Status()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStatusLifecycle(t *testing.T) {
	client := NewTestRepo(t)
	WriteFile(t, client, "max.txt", "max")
	WriteFile(t, client, "louise.txt", "louise")

	entries, err := client.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{"louise.txt", "max.txt"}, PathsWithStatus(entries, StatusUntracked))

	_, err = client.Add([]string{"max.txt", "louise.txt"}, false)
	require.NoError(t, err)
	_, err = client.Commit("m1")
	require.NoError(t, err)

	WriteFile(t, client, "max.txt", "max v2")
	require.NoError(t, os.Remove(filepath.Join(client.Root(), "louise.txt")))

	entries, err = client.Status()
	require.NoError(t, err)
	assert.Equal(t, []StatusEntry{
		{Index: 1, Path: "louise.txt", Status: StatusUnstaged, Change: ChangeDeleted},
		{Index: 2, Path: "max.txt", Status: StatusUnstaged, Change: ChangeModified},
	}, entries)
}

func TestStatusIgnoresGitignored(t *testing.T) {
	client := NewTestRepo(t)
	WriteFile(t, client, ".gitignore", "*.log\n")
	WriteFile(t, client, "debug.log", "noise")

	entries, err := client.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{".gitignore"}, PathsWithStatus(entries, StatusUntracked))
}
