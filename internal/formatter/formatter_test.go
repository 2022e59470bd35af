package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samzong/gitwrap/internal/git"
)

var testWhen = time.Date(2024, 1, 15, 9, 1, 0, 0, time.UTC)

func TestCommitHint(t *testing.T) {
	got := CommitHint("abc1234", testWhen, "m1\n\nbody text")
	assert.Equal(t, "[abc1234] 2024-01-15 09:01:00: m1", got)
}

func TestBullet(t *testing.T) {
	assert.Equal(t, "- max.txt", Bullet("max.txt"))
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "single line", message: "fix parser", want: "fix parser"},
		{name: "with body", message: "fix parser\n\nlong body", want: "fix parser"},
		{name: "leading blank lines", message: "\n\n  add tests  \nmore", want: "add tests"},
		{name: "empty", message: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.message))
		})
	}
}

func TestFormatCommitMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "trims whitespace", message: "  m1  \n", want: "m1"},
		{name: "empty", message: "   ", want: ""},
		{name: "adds blank line before body", message: "summary\nbody line", want: "summary\n\nbody line"},
		{name: "collapses blank lines", message: "summary\n\n\n\nbody\n\n\n\nmore", want: "summary\n\nbody\n\nmore"},
		{name: "drops trailing spaces", message: "summary   \n\nbody\t\nend", want: "summary\n\nbody\nend"},
		{name: "normalizes CRLF", message: "summary\r\n\r\nbody", want: "summary\n\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCommitMessage(tt.message))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "日本…", Truncate("日本語テキスト", 3))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestWriteStatusTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStatusTable(&buf, []git.StatusEntry{
		{Index: 1, Path: "louise.txt", Status: git.StatusStaged, Change: git.ChangeNew},
		{Index: 2, Path: "max.txt", Status: git.StatusUntracked, Change: git.ChangeNew},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "STATUS")
	assert.Contains(t, lines[1], "staged")
	assert.Contains(t, lines[1], "louise.txt")
	assert.Contains(t, lines[2], "untracked")
	assert.Contains(t, lines[2], "max.txt")
}

func TestWriteStatusTableClean(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStatusTable(&buf, nil))
	assert.Equal(t, "working tree clean\n", buf.String())
}

func TestTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable("A", "B")
	tbl.AddRow("long value", "x")
	tbl.AddRow("s", "y")
	require.NoError(t, tbl.Render(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Index(lines[1], "x"), strings.Index(lines[2], "y"))
}

func TestWriteBranchTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteBranchTable(&buf, []git.Branch{
		{Name: "feature/login", Hash: "1111111"},
		{Name: "main", Hash: "2222222", Current: true},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[1], "*")
	assert.Contains(t, lines[2], "*")
	assert.Contains(t, lines[2], "main")
}

func TestWriteLogTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLogTable(&buf, nil))
	assert.Equal(t, "no commits yet\n", buf.String())

	buf.Reset()
	err := WriteLogTable(&buf, []git.CommitInfo{
		{ShortHash: "abc1234", Author: "Test User", When: testWhen, Message: "m2\n\nbody"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "abc1234")
	assert.Contains(t, buf.String(), "2024-01-15 09:01:00")
	assert.NotContains(t, buf.String(), "body")
}

func TestWriteConfigTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConfigTable(&buf, []git.ConfigEntry{{Key: "user.name", Value: "Test User"}}))
	assert.Contains(t, buf.String(), "user.name")
	assert.Contains(t, buf.String(), "Test User")
}
