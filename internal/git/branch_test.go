package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoWithCommit(t *testing.T) *Client {
	t.Helper()

	client := NewTestRepo(t)
	commitFiles(t, client, "initial", map[string]string{"README.md": "# repo"})
	return client
}

func branchNames(branches []Branch) []string {
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}
	return names
}

func TestCreateBranch(t *testing.T) {
	client := repoWithCommit(t)

	b, err := client.CreateBranch("feature/login", "", false)
	require.NoError(t, err)
	assert.Equal(t, "feature/login", b.Name)
	assert.False(t, b.Current)

	branches, err := client.Branches(false)
	require.NoError(t, err)
	assert.Equal(t, []string{"feature/login", "main"}, branchNames(branches))
	assert.True(t, branches[1].Current)
	assert.Equal(t, branches[0].Hash, branches[1].Hash)

	_, err = client.CreateBranch("feature/login", "", false)
	assert.ErrorIs(t, err, ErrBranchExists)

	_, err = client.CreateBranch("bad..name", "", false)
	assert.Error(t, err)
}

func TestCreateBranchUnborn(t *testing.T) {
	client := NewTestRepo(t)

	_, err := client.CreateBranch("topic", "", false)
	assert.ErrorIs(t, err, ErrNoCommits)
}

func TestCreateBranchCheckout(t *testing.T) {
	client := repoWithCommit(t)

	b, err := client.CreateBranch("topic", "", true)
	require.NoError(t, err)
	assert.True(t, b.Current)

	current, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "topic", current)
}

func TestSwitchBranch(t *testing.T) {
	client := repoWithCommit(t)
	_, err := client.CreateBranch("topic", "", true)
	require.NoError(t, err)
	commitFiles(t, client, "topic work", map[string]string{"topic.txt": "t"})

	require.NoError(t, client.SwitchBranch("main", false))
	current, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", current)
	assert.NoFileExists(t, client.Root()+"/topic.txt")

	err = client.SwitchBranch("missing", false)
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestSwitchBranchDirty(t *testing.T) {
	client := repoWithCommit(t)
	_, err := client.CreateBranch("topic", "", false)
	require.NoError(t, err)

	WriteFile(t, client, "README.md", "# changed")

	err = client.SwitchBranch("topic", false)
	assert.ErrorIs(t, err, ErrDirtyWorktree)

	require.NoError(t, client.SwitchBranch("topic", true))
	current, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "topic", current)
}

func TestSwitchBranchUntrackedFiles(t *testing.T) {
	client := repoWithCommit(t)
	_, err := client.CreateBranch("feature", "", true)
	require.NoError(t, err)
	commitFiles(t, client, "add new", map[string]string{"new.txt": "feature version"})
	require.NoError(t, client.SwitchBranch("main", false))

	WriteFile(t, client, "notes.txt", "scratch")
	require.NoError(t, client.SwitchBranch("feature", false))
	assertFileContent(t, client, "notes.txt", "scratch")
	require.NoError(t, client.SwitchBranch("main", false))

	WriteFile(t, client, "new.txt", "untracked work")
	err = client.SwitchBranch("feature", false)
	require.ErrorIs(t, err, ErrUntrackedOverwrite)
	assert.Contains(t, err.Error(), "new.txt")
	assert.NotContains(t, err.Error(), "notes.txt")
	assertFileContent(t, client, "new.txt", "untracked work")

	current, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", current)

	require.NoError(t, client.SwitchBranch("feature", true))
	assertFileContent(t, client, "new.txt", "feature version")
}

func assertFileContent(t *testing.T, c *Client, path, want string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(c.Root(), path))
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestRenameBranch(t *testing.T) {
	client := repoWithCommit(t)

	require.NoError(t, client.RenameBranch("main", "trunk"))

	current, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "trunk", current)

	branches, err := client.Branches(false)
	require.NoError(t, err)
	assert.Equal(t, []string{"trunk"}, branchNames(branches))

	err = client.RenameBranch("main", "other")
	assert.ErrorIs(t, err, ErrBranchNotFound)

	_, err = client.CreateBranch("other", "", false)
	require.NoError(t, err)
	err = client.RenameBranch("other", "trunk")
	assert.ErrorIs(t, err, ErrBranchExists)
}

func TestDeleteBranch(t *testing.T) {
	client := repoWithCommit(t)
	_, err := client.CreateBranch("old", "", false)
	require.NoError(t, err)

	err = client.DeleteBranch("main")
	assert.ErrorIs(t, err, ErrCurrentBranch)

	require.NoError(t, client.DeleteBranch("old"))
	branches, err := client.Branches(false)
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, branchNames(branches))

	err = client.DeleteBranch("old")
	assert.ErrorIs(t, err, ErrBranchNotFound)
}
