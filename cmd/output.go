package cmd

import (
	"io"
	"os"

	"github.com/samzong/gitwrap/internal/config"
	"github.com/samzong/gitwrap/internal/formatter"
)

var (
	outWriterFunc = func() io.Writer { return os.Stdout }
	errWriterFunc = func() io.Writer { return os.Stderr }
)

func init() {
	outWriterFunc = func() io.Writer { return rootCmd.OutOrStdout() }
	errWriterFunc = func() io.Writer { return rootCmd.ErrOrStderr() }
}

func outWriter() io.Writer {
	return outWriterFunc()
}

func errWriter() io.Writer {
	return errWriterFunc()
}

// render writes v as YAML when --output yaml is selected, otherwise it
// calls table with the standard output writer.
func render(v any, table func(w io.Writer) error) error {
	if currentConfig().Output == config.OutputYAML {
		return formatter.WriteYAML(outWriter(), v)
	}
	return table(outWriter())
}
