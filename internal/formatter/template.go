package formatter

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/samzong/gitwrap/internal/git"
)

// LogTemplateData is the value log format templates execute against.
type LogTemplateData struct {
	git.CommitInfo
	Summary string
	Date    string
}

var builtinLogFormats = map[string]string{
	"oneline": `{{.ShortHash}} {{.Summary}}`,
	"short":   `{{.ShortHash}} {{.Date}} {{.Author}}: {{.Summary}}`,
	"full": `commit {{.Hash}}
Author: {{.Author}} <{{.Email}}>
Date:   {{.Date}}

{{indent .Message}}
`,
}

var templateFuncs = template.FuncMap{
	"indent": func(s string) string {
		lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
		for i, l := range lines {
			lines[i] = "    " + l
		}
		return strings.Join(lines, "\n")
	},
	"upper": strings.ToUpper,
	"trunc": Truncate,
}

// LogFormatNames lists the builtin log formats.
func LogFormatNames() []string {
	names := make([]string, 0, len(builtinLogFormats))
	for name := range builtinLogFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseLogFormat resolves a builtin format name, or parses format as a
// text/template over LogTemplateData.
func ParseLogFormat(format string) (*template.Template, error) {
	if builtin, ok := builtinLogFormats[format]; ok {
		format = builtin
	}
	tmpl, err := template.New("log").Funcs(templateFuncs).Parse(format)
	if err != nil {
		return nil, fmt.Errorf("template parsing error: %w", err)
	}
	return tmpl, nil
}

// WriteLogTemplate renders each commit with tmpl, one per line.
func WriteLogTemplate(w io.Writer, tmpl *template.Template, commits []git.CommitInfo) error {
	for _, c := range commits {
		var buf bytes.Buffer
		data := LogTemplateData{
			CommitInfo: c,
			Summary:    Summary(c.Message),
			Date:       c.When.Format(HintTimeLayout),
		}
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("template rendering error: %w", err)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(buf.String(), "\n")); err != nil {
			return err
		}
	}
	return nil
}

// WriteYAML encodes v as YAML with two-space indentation.
func WriteYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return encoder.Close()
}
