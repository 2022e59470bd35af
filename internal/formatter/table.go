package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/samzong/gitwrap/internal/git"
)

var (
	ColorStaged    = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}
	ColorUnstaged  = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
	ColorUntracked = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorStaged)
	hashStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
)

// logSummaryWidth caps the message column of the log table.
const logSummaryWidth = 60

// Cell is one table value with an optional style applied on render.
type Cell struct {
	Text  string
	Style *lipgloss.Style
}

func (c Cell) render() string {
	if c.Style == nil {
		return c.Text
	}
	return c.Style.Render(c.Text)
}

// Table renders left-aligned columns sized to their widest cell.
type Table struct {
	headers []string
	rows    [][]Cell
}

func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row of plain values.
func (t *Table) AddRow(values ...string) {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Text: v}
	}
	t.rows = append(t.rows, cells)
}

// AddCells appends a row of possibly styled cells.
func (t *Table) AddCells(cells ...Cell) {
	t.rows = append(t.rows, cells)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if i < len(widths) && lipgloss.Width(c.Text) > widths[i] {
				widths[i] = lipgloss.Width(c.Text)
			}
		}
	}
	return widths
}

// Render writes the table to w. Widths are measured on the unstyled text so
// colors never shift columns.
func (t *Table) Render(w io.Writer) error {
	widths := t.widths()

	header := make([]string, len(t.headers))
	for i, h := range t.headers {
		header[i] = headerStyle.Render(h) + pad(h, widths[i])
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(header, "  "), " ")); err != nil {
		return err
	}

	for _, row := range t.rows {
		line := make([]string, len(t.headers))
		for i := range t.headers {
			if i >= len(row) {
				line[i] = pad("", widths[i])
				continue
			}
			line[i] = row[i].render() + pad(row[i].Text, widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(line, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func pad(text string, width int) string {
	n := width - lipgloss.Width(text)
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func statusStyle(kind git.StatusKind) *lipgloss.Style {
	var s lipgloss.Style
	switch kind {
	case git.StatusStaged:
		s = lipgloss.NewStyle().Foreground(ColorStaged)
	case git.StatusUnstaged:
		s = lipgloss.NewStyle().Foreground(ColorUnstaged)
	default:
		s = lipgloss.NewStyle().Foreground(ColorUntracked)
	}
	return &s
}

// WriteStatusTable renders status rows, or a clean-tree notice when empty.
func WriteStatusTable(w io.Writer, entries []git.StatusEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "working tree clean")
		return err
	}

	t := NewTable("I", "STATUS", "CHANGE", "PATH")
	for _, e := range entries {
		t.AddCells(
			Cell{Text: fmt.Sprintf("%d", e.Index)},
			Cell{Text: string(e.Status), Style: statusStyle(e.Status)},
			Cell{Text: string(e.Change)},
			Cell{Text: e.Path},
		)
	}
	return t.Render(w)
}

// WriteLogTable renders commits newest first.
func WriteLogTable(w io.Writer, commits []git.CommitInfo) error {
	if len(commits) == 0 {
		_, err := fmt.Fprintln(w, "no commits yet")
		return err
	}

	t := NewTable("COMMIT", "DATE", "AUTHOR", "MESSAGE")
	for _, c := range commits {
		t.AddCells(
			Cell{Text: c.ShortHash, Style: &hashStyle},
			Cell{Text: c.When.Format(HintTimeLayout)},
			Cell{Text: c.Author},
			Cell{Text: Truncate(Summary(c.Message), logSummaryWidth)},
		)
	}
	return t.Render(w)
}

// WriteBranchTable renders branches, marking the current one with "*".
func WriteBranchTable(w io.Writer, branches []git.Branch) error {
	t := NewTable("", "BRANCH", "COMMIT")
	for _, b := range branches {
		marker := Cell{Text: ""}
		name := Cell{Text: b.Name}
		if b.Current {
			marker = Cell{Text: "*", Style: &currentStyle}
			name.Style = &currentStyle
		}
		t.AddCells(marker, name, Cell{Text: b.Hash, Style: &hashStyle})
	}
	return t.Render(w)
}

// WriteConfigTable renders key/value pairs.
func WriteConfigTable(w io.Writer, entries []git.ConfigEntry) error {
	t := NewTable("KEY", "VALUE")
	for _, e := range entries {
		t.AddRow(e.Key, e.Value)
	}
	return t.Render(w)
}
