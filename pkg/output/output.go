package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/fixturegen/pkg/generator"
)

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatXML    Format = "xml"
)

// ErrUnknownFormat is returned for a format name ParseFormat does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatNDJSON, FormatYAML, FormatXML}
}

// ParseFormat converts a case-insensitive name to a Format. "yml" is
// accepted for YAML and "jsonl" for NDJSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Batch is a run of records of one type.
type Batch struct {
	Type    string
	Records []generator.Record
}

// Write renders the records of every batch, in order, to w. JSON and YAML
// produce a single object when there is exactly one record and a list
// otherwise.
func Write(w io.Writer, format Format, batches ...Batch) error {
	var records []generator.Record
	for _, b := range batches {
		records = append(records, b.Records...)
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatNDJSON:
		return writeNDJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	case FormatXML:
		return writeXML(w, batches)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteValues renders arbitrary values, such as the result of Select.
func WriteValues(w io.Writer, format Format, values []any) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, values)
	case FormatNDJSON:
		return writeNDJSON(w, values)
	case FormatYAML:
		return writeYAML(w, values)
	case FormatXML:
		return writeXMLValues(w, values)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func single[T any](items []T) any {
	if len(items) == 1 {
		return items[0]
	}
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(single(items)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func writeNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for i, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
	}
	return nil
}

func writeYAML[T any](w io.Writer, items []T) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(single(items)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
