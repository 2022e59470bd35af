package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	t.Run("explicit paths", func(t *testing.T) {
		client := NewTestRepo(t)
		WriteFile(t, client, "a.txt", "a")
		WriteFile(t, client, "b.txt", "b")

		staged, err := client.Add([]string{"a.txt"}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, staged)

		entries, err := client.Status()
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, PathsWithStatus(entries, StatusStaged))
		assert.Equal(t, []string{"b.txt"}, PathsWithStatus(entries, StatusUntracked))
	})

	t.Run("directory expands to pending paths", func(t *testing.T) {
		client := NewTestRepo(t)
		WriteFile(t, client, "src/one.go", "package src")
		WriteFile(t, client, "src/two.go", "package src")
		WriteFile(t, client, "srcfile.txt", "not under src")

		staged, err := client.Add([]string{"src"}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"src/one.go", "src/two.go"}, staged)
	})

	t.Run("dot stages everything", func(t *testing.T) {
		client := NewTestRepo(t)
		WriteFile(t, client, "a.txt", "a")
		WriteFile(t, client, "nested/b.txt", "b")

		staged, err := client.Add([]string{"."}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "nested/b.txt"}, staged)
	})

	t.Run("deleted path", func(t *testing.T) {
		client := NewTestRepo(t)
		WriteFile(t, client, "a.txt", "a")
		_, err := client.Add([]string{"a.txt"}, false)
		require.NoError(t, err)
		_, err = client.Commit("add a")
		require.NoError(t, err)
		require.NoError(t, os.Remove(filepath.Join(client.Root(), "a.txt")))

		staged, err := client.Add([]string{"a.txt"}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, staged)

		entries, err := client.Status()
		require.NoError(t, err)
		assert.Equal(t, []StatusEntry{
			{Index: 1, Path: "a.txt", Status: StatusStaged, Change: ChangeDeleted},
		}, entries)
	})

	t.Run("already staged path is a no-op", func(t *testing.T) {
		client := NewTestRepo(t)
		WriteFile(t, client, "a.txt", "a")
		_, err := client.Add([]string{"a.txt"}, false)
		require.NoError(t, err)

		staged, err := client.Add([]string{"a.txt"}, false)
		require.NoError(t, err)
		assert.Empty(t, staged)
	})

	t.Run("missing path", func(t *testing.T) {
		client := NewTestRepo(t)

		_, err := client.Add([]string{"nope.txt"}, false)
		assert.ErrorIs(t, err, ErrPathNotFound)
	})

	t.Run("ignored path requires force", func(t *testing.T) {
		client := NewTestRepo(t)
		WriteFile(t, client, ".gitignore", "*.log\n")
		WriteFile(t, client, "debug.log", "noise")

		_, err := client.Add([]string{"debug.log"}, false)
		assert.ErrorIs(t, err, ErrPathIgnored)

		staged, err := client.Add([]string{"debug.log"}, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"debug.log"}, staged)

		entries, err := client.Status()
		require.NoError(t, err)
		assert.Contains(t, PathsWithStatus(entries, StatusStaged), "debug.log")
	})
}

func TestUnstage(t *testing.T) {
	t.Run("unborn branch drops entries", func(t *testing.T) {
		client := NewTestRepo(t)
		WriteFile(t, client, "a.txt", "a")
		WriteFile(t, client, "b.txt", "b")
		_, err := client.Add([]string{"."}, false)
		require.NoError(t, err)

		unstaged, err := client.Unstage([]string{"a.txt"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, unstaged)

		entries, err := client.Status()
		require.NoError(t, err)
		assert.Equal(t, []string{"b.txt"}, PathsWithStatus(entries, StatusStaged))
		assert.Equal(t, []string{"a.txt"}, PathsWithStatus(entries, StatusUntracked))
	})

	t.Run("restores HEAD version", func(t *testing.T) {
		client := NewTestRepo(t)
		WriteFile(t, client, "a.txt", "v1")
		_, err := client.Add([]string{"a.txt"}, false)
		require.NoError(t, err)
		_, err = client.Commit("v1")
		require.NoError(t, err)

		WriteFile(t, client, "a.txt", "version two")
		_, err = client.Add([]string{"a.txt"}, false)
		require.NoError(t, err)

		unstaged, err := client.Unstage(nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, unstaged)

		entries, err := client.Status()
		require.NoError(t, err)
		assert.Equal(t, []StatusEntry{
			{Index: 1, Path: "a.txt", Status: StatusUnstaged, Change: ChangeModified},
		}, entries)

		data, err := os.ReadFile(filepath.Join(client.Root(), "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "version two", string(data))
	})

	t.Run("nothing staged", func(t *testing.T) {
		client := NewTestRepo(t)
		WriteFile(t, client, "a.txt", "a")

		unstaged, err := client.Unstage(nil)
		require.NoError(t, err)
		assert.Empty(t, unstaged)
	})
}

func TestRemove(t *testing.T) {
	setup := func(t *testing.T) *Client {
		client := NewTestRepo(t)
		WriteFile(t, client, "keep.txt", "keep")
		WriteFile(t, client, "drop.txt", "drop")
		_, err := client.Add([]string{"."}, false)
		require.NoError(t, err)
		_, err = client.Commit("initial")
		require.NoError(t, err)
		return client
	}

	t.Run("cached keeps the file on disk", func(t *testing.T) {
		client := setup(t)

		removed, err := client.Remove([]string{"drop.txt"}, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"drop.txt"}, removed)
		assert.FileExists(t, filepath.Join(client.Root(), "drop.txt"))

		entries, err := client.Status()
		require.NoError(t, err)
		assert.Equal(t, []string{"drop.txt"}, PathsWithStatus(entries, StatusStaged))
		assert.Equal(t, []string{"drop.txt"}, PathsWithStatus(entries, StatusUntracked))
	})

	t.Run("deletes from disk", func(t *testing.T) {
		client := setup(t)

		_, err := client.Remove([]string{"drop.txt"}, false)
		require.NoError(t, err)
		assert.NoFileExists(t, filepath.Join(client.Root(), "drop.txt"))

		entries, err := client.Status()
		require.NoError(t, err)
		assert.Equal(t, []StatusEntry{
			{Index: 1, Path: "drop.txt", Status: StatusStaged, Change: ChangeDeleted},
		}, entries)
	})

	t.Run("unknown path", func(t *testing.T) {
		client := setup(t)

		_, err := client.Remove([]string{"missing.txt"}, true)
		assert.ErrorIs(t, err, ErrPathNotFound)
	})
}
