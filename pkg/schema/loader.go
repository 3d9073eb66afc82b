package schema

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Parse reads one document from YAML or JSON data. source names the data in
// error messages.
func Parse(data []byte, source string, opts ...Option) (*Document, error) {
	o := newOptions(opts)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyDocument)
	}

	expanded := []byte(ExpandEnvVars(string(data)))

	var raw any
	if err := yaml.Unmarshal(expanded, &raw); err != nil {
		return nil, fmt.Errorf("%s: parsing document: %w", source, err)
	}
	if result := ValidateStructure(raw); !result.IsValid() {
		return nil, fmt.Errorf("%s: %w", source, result)
	}

	var doc Document
	if err := yaml.Unmarshal(expanded, &doc); err != nil {
		return nil, fmt.Errorf("%s: decoding document: %w", source, err)
	}
	if doc.Version == "" {
		doc.Version = Version
	}
	doc.Sources = []string{source}

	o.logger.Debug("parsed document", "source", source, "entities", len(doc.Entities))
	return &doc, nil
}

// Decode reads one document from r.
func Decode(r io.Reader, source string, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: reading document: %w", source, err)
	}
	return Parse(data, source, opts...)
}

// LoadFile reads the document at path.
func LoadFile(path string, opts ...Option) (*Document, error) {
	o := newOptions(opts)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied: %s", path)
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}

	doc, err := Parse(data, path, opts...)
	if err != nil {
		return nil, err
	}
	o.logger.Info("loaded document", "path", path, "entities", len(doc.Entities))
	return doc, nil
}

// Load reads every document named by paths, which may be plain file paths or
// glob patterns (** matches across directories), and merges them in order.
// Matches of one pattern are loaded in lexical order. A pattern that matches
// nothing is skipped; Load fails with ErrNoDocuments if no file was read.
func Load(paths []string, opts ...Option) (*Document, error) {
	var docs []*Document

	for _, p := range paths {
		files, err := expand(p)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			doc, err := LoadFile(file, opts...)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDocuments, strings.Join(paths, ", "))
	}
	return Merge(docs...), nil
}

func expand(pattern string) ([]string, error) {
	if !isGlob(pattern) {
		return []string{pattern}, nil
	}
	matches, err := doublestar.FilepathGlob(filepath.Clean(pattern), doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Marshal renders doc as YAML.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}
