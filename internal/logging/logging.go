// Package logging builds the zerolog logger shared by the CLI, the workflows
// and the git client.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

type Options struct {
	Verbose bool
	Quiet   bool
	// Console receives log lines meant for the user. Defaults to os.Stderr.
	Console io.Writer
	// File, when set, also receives JSON logs through a rotating writer.
	File string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger and a closer for its log file. When the log file
// cannot be opened the logger still works on the console and the error is
// returned alongside it.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	level := selectLevel(opts.Verbose, opts.Quiet)
	out := selectOutput(console)

	if opts.File == "" {
		return build(out, level), nopCloser{}, nil
	}

	fileWriter, err := createLogFileWriter(opts.File)
	if err != nil {
		return build(out, level), nopCloser{}, err
	}
	return build(zerolog.MultiLevelWriter(out, fileWriter), level), fileWriter, nil
}

func build(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// selectLevel maps the verbosity flags to a level. The default is warn so
// normal runs show only the command's own output.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// selectOutput uses the console writer on a color-capable terminal and
// plain JSON everywhere else.
func selectOutput(w io.Writer) io.Writer {
	f, ok := w.(*os.File)
	if ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
		}
	}
	return w
}

func createLogFileWriter(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}, nil
}
