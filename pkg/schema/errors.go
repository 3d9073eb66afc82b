package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for loading and building documents.
var (
	ErrEmptyDocument   = errors.New("document is empty")
	ErrNoDocuments     = errors.New("no documents matched")
	ErrUnknownEntity   = errors.New("unknown entity")
	ErrInvalidPlan     = errors.New("invalid generate entry")
	ErrInvalidDocument = errors.New("invalid document")
)

// ValidationError is one problem found in a document.
type ValidationError struct {
	Path    string `json:"path,omitempty"` // e.g. "entities[0].fields[2].type"
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationResult collects every problem found in a document.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Is makes a failed result match ErrInvalidDocument.
func (r *ValidationResult) Is(target error) bool {
	return target == ErrInvalidDocument && !r.IsValid()
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

// Err returns r as an error, or nil when r is valid.
func (r *ValidationResult) Err() error {
	if r == nil || r.IsValid() {
		return nil
	}
	return r
}
