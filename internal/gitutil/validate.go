package gitutil

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidBranchName = errors.New("invalid branch name")

// ValidateBranchName rejects names git's check-ref-format would refuse.
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidBranchName)
	}
	if name == "@" {
		return fmt.Errorf("%w: '@' is reserved", ErrInvalidBranchName)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: cannot start with '-': %s", ErrInvalidBranchName, name)
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") || strings.Contains(name, "//") {
		return fmt.Errorf("%w: misplaced '/': %s", ErrInvalidBranchName, name)
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return fmt.Errorf("%w: cannot end with '.' or '.lock': %s", ErrInvalidBranchName, name)
	}
	for _, seq := range []string{"..", "@{"} {
		if strings.Contains(name, seq) {
			return fmt.Errorf("%w: cannot contain %q: %s", ErrInvalidBranchName, seq, name)
		}
	}
	for _, ch := range []string{" ", "~", "^", ":", "?", "*", "[", "\\"} {
		if strings.Contains(name, ch) {
			return fmt.Errorf("%w: contains invalid character %q: %s", ErrInvalidBranchName, ch, name)
		}
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: contains a control character: %q", ErrInvalidBranchName, name)
		}
	}
	return nil
}
