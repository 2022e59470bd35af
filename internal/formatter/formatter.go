package formatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// HintTimeLayout is the date layout used in commit hints.
const HintTimeLayout = "2006-01-02 15:04:05"

var (
	trailingSpacePattern = regexp.MustCompile(`[ \t]+\n`)
	blankLinesPattern    = regexp.MustCompile(`\n{3,}`)
)

// CommitHint renders "[<short-sha>] <date>: <summary>".
func CommitHint(shortHash string, when time.Time, message string) string {
	return fmt.Sprintf("[%s] %s: %s", shortHash, when.Format(HintTimeLayout), Summary(message))
}

// Bullet prefixes s with a list marker.
func Bullet(s string) string {
	return "- " + s
}

// Summary returns the first non-empty line of a commit message.
func Summary(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// FormatCommitMessage tidies a user-supplied message: surrounding whitespace
// and trailing spaces are dropped, runs of blank lines collapse to one, and the
// summary is separated from the body by a blank line.
func FormatCommitMessage(message string) string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	message = strings.TrimSpace(message)
	if message == "" {
		return ""
	}

	message = trailingSpacePattern.ReplaceAllString(message+"\n", "\n")
	message = blankLinesPattern.ReplaceAllString(message, "\n\n")
	message = strings.TrimSpace(message)

	summary, body, found := strings.Cut(message, "\n")
	if !found {
		return summary
	}
	body = strings.TrimLeft(body, "\n")
	if body == "" {
		return summary
	}
	return summary + "\n\n" + body
}

// Truncate shortens s to at most max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
