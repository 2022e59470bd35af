package workflow

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned by prompters that cannot ask the user anything.
var ErrNotInteractive = errors.New("session is not interactive")

// Prompter is the capability to ask the user questions. Workflows only call
// Confirm and RequestText when Interactive reports true.
type Prompter interface {
	Interactive() bool
	// Confirm asks a yes/no question. An empty answer means no.
	Confirm(question string) (bool, error)
	// RequestText asks for free text. ok is false when the user cancelled.
	RequestText(prompt string) (text string, ok bool, err error)
}

// IsTerminal reports whether r is a terminal. Readers that are not files
// are never terminals.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NonInteractivePrompter is used for scripted runs and refuses every question.
type NonInteractivePrompter struct{}

func (NonInteractivePrompter) Interactive() bool { return false }

func (NonInteractivePrompter) Confirm(string) (bool, error) {
	return false, ErrNotInteractive
}

func (NonInteractivePrompter) RequestText(string) (string, bool, error) {
	return "", false, ErrNotInteractive
}

// InteractivePrompter asks questions on a line-oriented terminal.
type InteractivePrompter struct {
	ErrWriter io.Writer
	Stdin     io.Reader
	// UseEditor makes RequestText open $EDITOR instead of reading one line.
	UseEditor bool

	reader *bufio.Reader
}

func (p *InteractivePrompter) Interactive() bool { return true }

func (p *InteractivePrompter) errWriter() io.Writer {
	if p.ErrWriter == nil {
		return os.Stderr
	}
	return p.ErrWriter
}

func (p *InteractivePrompter) readLine() (string, error) {
	if p.reader == nil {
		stdin := p.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		p.reader = bufio.NewReader(stdin)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *InteractivePrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.errWriter(), "%s [y/N]: ", question)
	response, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.errWriter())
			return false, nil
		}
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	switch strings.ToLower(response) {
	case "y", "yes":
		return true, nil
	case "n", "no", "":
		return false, nil
	default:
		fmt.Fprintln(p.errWriter(), "Invalid input, assuming no")
		return false, nil
	}
}

func (p *InteractivePrompter) RequestText(prompt string) (string, bool, error) {
	if p.UseEditor {
		return p.openEditor(prompt)
	}

	fmt.Fprintf(p.errWriter(), "%s: ", prompt)
	text, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.errWriter())
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read user input: %w", err)
	}
	return text, true, nil
}

// openEditor collects text in $EDITOR. Lines starting with '#' are dropped
// and an empty result counts as a cancel.
func (p *InteractivePrompter) openEditor(prompt string) (string, bool, error) {
	tmpFile, err := os.CreateTemp("", "gitwrap-msg-")
	if err != nil {
		return "", false, fmt.Errorf("failed to create temporary file: %w", err)
	}

	tmpFileName := tmpFile.Name()
	defer os.Remove(tmpFileName)

	template := fmt.Sprintf("\n# %s\n# Lines starting with '#' are ignored. An empty message cancels.\n", prompt)
	if _, err := tmpFile.WriteString(template); err != nil {
		tmpFile.Close()
		return "", false, fmt.Errorf("failed to write to temporary file: %w", err)
	}
	tmpFile.Close()

	editor := editorCommand()
	cmd := exec.Command(editor[0], append(editor[1:], tmpFileName)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("failed to open editor: %w", err)
	}

	edited, err := os.ReadFile(tmpFileName)
	if err != nil {
		return "", false, fmt.Errorf("failed to read edited message: %w", err)
	}

	text := stripComments(string(edited))
	if text == "" {
		return "", false, nil
	}
	return text, true, nil
}

func stripComments(s string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t\r"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// getEditor returns the first editor variable that holds more than
// whitespace, falling back to vi.
func getEditor() string {
	for _, name := range []string{"GITWRAP_EDITOR", "EDITOR", "VISUAL"} {
		if editor := strings.TrimSpace(os.Getenv(name)); editor != "" {
			return editor
		}
	}
	return "vi"
}

// editorCommand splits the editor setting into program and arguments.
func editorCommand() []string {
	fields := strings.Fields(getEditor())
	if len(fields) == 0 {
		return []string{"vi"}
	}
	return fields
}
