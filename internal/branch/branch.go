// Package branch derives branch names from free-text descriptions.
package branch

import (
	"regexp"
	"strings"

	"github.com/samzong/gitwrap/internal/gitutil"
)

const maxSlugLength = 40

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]+`)
	separators   = regexp.MustCompile(`[\s-]+`)
)

// prefixRules are checked in order; the first rule with a matching word wins.
var prefixRules = []struct {
	prefix string
	words  []string
}{
	{"fix", []string{"fix", "fixes", "resolve", "correct", "repair", "patch", "bug", "crash"}},
	{"docs", []string{"doc", "docs", "document", "documentation", "readme", "guide", "manual"}},
	{"feature", []string{"add", "create", "implement", "new", "support", "feature", "introduce"}},
}

const defaultPrefix = "chore"

// NameFromDescription turns a description like "Fix login redirect" into
// "fix/fix-login-redirect". It returns "" when nothing usable remains.
func NameFromDescription(description string) string {
	slug := Slugify(description)
	if slug == "" {
		return ""
	}
	name := Prefix(description) + "/" + truncateSlug(slug, maxSlugLength)
	if gitutil.ValidateBranchName(name) != nil {
		return ""
	}
	return name
}

// Prefix picks the branch category for a description.
func Prefix(description string) string {
	words := strings.Fields(strings.ToLower(description))
	for _, rule := range prefixRules {
		for _, w := range words {
			w = strings.Trim(w, ".,:;!?()")
			for _, keyword := range rule.words {
				if w == keyword {
					return rule.prefix
				}
			}
		}
	}
	return defaultPrefix
}

// Slugify lowercases s, drops punctuation and joins words with hyphens.
func Slugify(s string) string {
	s = nonSlugChars.ReplaceAllString(strings.ToLower(s), "")
	s = separators.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}

// truncateSlug cuts slug to at most max bytes, at a hyphen when one exists.
func truncateSlug(slug string, max int) string {
	if len(slug) <= max {
		return slug
	}
	cut := slug[:max]
	if i := strings.LastIndex(cut, "-"); i > 0 && slug[max] != '-' {
		cut = cut[:i]
	}
	return strings.Trim(cut, "-")
}
