// Package datefmt renders and parses the date bounds used by date fields.
//
// Bounds are normalized to a canonical ISO-8601 UTC form at field
// construction time; generation then works on the parsed instants.
package datefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Named formats accepted by Normalize.
const (
	ISOUTCDateTime = "isoUtcDateTime" // 2006-01-02T15:04:05Z
	ISODate        = "isoDate"        // 2006-01-02
	ISODateTime    = "isoDateTime"    // 2006-01-02T15:04:05-07:00
)

const isoUTCLayout = "2006-01-02T15:04:05Z"

var namedLayouts = map[string]string{
	ISOUTCDateTime: isoUTCLayout,
	ISODate:        time.DateOnly,
	ISODateTime:    "2006-01-02T15:04:05Z07:00",
}

// parseLayouts are tried in order by Parse.
var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	isoUTCLayout,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ErrUnparseable is returned when a value cannot be read as a date.
var ErrUnparseable = errors.New("unparseable date")

// ISOUTC renders t in the canonical isoUtcDateTime form.
func ISOUTC(t time.Time) string {
	return t.UTC().Format(isoUTCLayout)
}

// Normalize renders t with a named format. Any other non-empty format is
// used as a Go time layout; an empty format means isoUtcDateTime. The
// isoUtc* formats convert to UTC first.
func Normalize(t time.Time, format string) string {
	if format == "" {
		format = ISOUTCDateTime
	}
	layout, ok := namedLayouts[format]
	if !ok {
		return t.Format(format)
	}
	if strings.HasPrefix(format, "isoUtc") {
		t = t.UTC()
	}
	return t.Format(layout)
}

// Parse reads a date from a time.Time or a string in one of the common ISO
// layouts. Strings without a zone are read as UTC.
func Parse(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case *time.Time:
		if d == nil {
			return time.Time{}, fmt.Errorf("%w: nil time", ErrUnparseable)
		}
		return *d, nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range parseLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, d)
	default:
		return time.Time{}, fmt.Errorf("%w: %T", ErrUnparseable, v)
	}
}

// MustParse is like Parse but panics on error. It is intended for bounds
// written as literals.
func MustParse(v any) time.Time {
	t, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return t
}
