// Package flags holds the repeatable flag values of the fixturegen commands.
package flags

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrEmptyValue is returned when a repeatable flag is given an empty value.
var ErrEmptyValue = errors.New("empty value")

// StringSlice collects every occurrence of a repeatable flag such as
// --field or -I, in the order given. Values are trimmed; commas are kept.
type StringSlice []string

func (s *StringSlice) String() string {
	return strings.Join(*s, ",")
}

// Set appends one value.
func (s *StringSlice) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmptyValue
	}
	*s = append(*s, value)
	return nil
}

func (s *StringSlice) Type() string {
	return "strings"
}

// Documents collects the -f values naming fixture documents. Each value is a
// path or a doublestar pattern such as "fixtures/**/*.yaml"; malformed
// patterns are rejected when the flag is parsed.
type Documents []string

func (d *Documents) String() string {
	return strings.Join(*d, ",")
}

// Set appends one path or pattern.
func (d *Documents) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmptyValue
	}
	if !doublestar.ValidatePathPattern(filepath.Clean(value)) {
		return fmt.Errorf("malformed pattern %q", value)
	}
	*d = append(*d, value)
	return nil
}

func (d *Documents) Type() string {
	return "glob"
}
