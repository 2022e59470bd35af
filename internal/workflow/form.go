package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// FormPrompter asks questions with full-screen terminal forms.
type FormPrompter struct {
	// Accessible switches huh to plain line prompts for screen readers.
	Accessible bool
}

func (p *FormPrompter) Interactive() bool { return true }

func (p *FormPrompter) run(field huh.Field) (bool, error) {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huh.ThemeBase()).
		WithAccessible(p.Accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return true, nil
}

func (p *FormPrompter) Confirm(question string) (bool, error) {
	var confirmed bool
	field := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	completed, err := p.run(field)
	if err != nil || !completed {
		return false, err
	}
	return confirmed, nil
}

func (p *FormPrompter) RequestText(prompt string) (string, bool, error) {
	var value string
	field := huh.NewText().
		Title(prompt).
		Placeholder("Ctrl+C cancels").
		Value(&value)

	completed, err := p.run(field)
	if err != nil || !completed {
		return "", false, err
	}
	return strings.TrimSpace(value), true, nil
}
