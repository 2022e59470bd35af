package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, selectLevel(true, false))
	assert.Equal(t, zerolog.DebugLevel, selectLevel(true, true))
	assert.Equal(t, zerolog.ErrorLevel, selectLevel(false, true))
	assert.Equal(t, zerolog.WarnLevel, selectLevel(false, false))
}

func TestSelectOutputNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Same(t, &buf, selectOutput(&buf))
}

func TestNewConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Console: &buf})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("path", "a.txt").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"path":"a.txt"`)
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Verbose: true, Console: &buf})
	require.NoError(t, err)

	logger.Debug().Msg("details")
	assert.Contains(t, buf.String(), "details")
}

func TestNewWithFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "gitwrap.log")

	logger, closer, err := New(Options{Console: &buf, File: path})
	require.NoError(t, err)

	logger.Error().Msg("to both")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestNewWithUnwritableFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	var buf bytes.Buffer
	logger, closer, err := New(Options{Console: &buf, File: filepath.Join(blocker, "sub", "gitwrap.log")})
	assert.Error(t, err)
	require.NotNil(t, closer)

	logger.Warn().Msg("still logs")
	assert.Contains(t, buf.String(), "still logs")
}
