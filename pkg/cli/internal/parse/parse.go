// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"strings"
)

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to ':'.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{':'}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// FieldSpec parses a "name:kind" field declaration. A bare name is a
// string field.
func FieldSpec(s string) (name, kind string, err error) {
	s = strings.TrimSpace(s)
	name, kind, ok := KeyValue(s, ':', '=')
	if !ok {
		name, kind = s, "string"
	}
	name, kind = strings.TrimSpace(name), strings.TrimSpace(kind)
	if name == "" {
		return "", "", fmt.Errorf("invalid field %q: missing name", s)
	}
	if kind == "" {
		return "", "", fmt.Errorf("invalid field %q: missing kind", s)
	}
	return name, kind, nil
}
