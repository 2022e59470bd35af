package workflow

import (
	"fmt"
	"strconv"
)

// Tristate is a boolean that remembers whether it was ever set. The zero
// value is Unset.
type Tristate int

const (
	Unset Tristate = iota
	True
	False
)

// TristateOf converts a plain bool.
func TristateOf(b bool) Tristate {
	if b {
		return True
	}
	return False
}

// IsSet reports whether a value was supplied.
func (t Tristate) IsSet() bool {
	return t != Unset
}

// Bool returns the value and whether it was set.
func (t Tristate) Bool() (value, set bool) {
	return t == True, t != Unset
}

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// Set implements pflag.Value.
func (t *Tristate) Set(s string) error {
	if s == "unset" || s == "" {
		*t = Unset
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", s)
	}
	*t = TristateOf(b)
	return nil
}

// Type implements pflag.Value.
func (t *Tristate) Type() string {
	return "bool"
}

// IsBoolFlag lets the flag appear without a value.
func (t *Tristate) IsBoolFlag() bool {
	return true
}
