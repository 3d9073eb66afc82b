package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed document.schema.json
var documentSchemaJSON string

const documentSchemaURL = "document.schema.json"

var (
	documentSchemaOnce sync.Once
	documentSchema     *jsonschema.Schema
	documentSchemaErr  error
)

// DocumentSchema returns the JSON Schema documents are checked against.
func DocumentSchema() string {
	return documentSchemaJSON
}

func compiledDocumentSchema() (*jsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(documentSchemaURL, strings.NewReader(documentSchemaJSON)); err != nil {
			documentSchemaErr = fmt.Errorf("adding document schema: %w", err)
			return
		}
		documentSchema, documentSchemaErr = compiler.Compile(documentSchemaURL)
	})
	return documentSchema, documentSchemaErr
}

// ValidateStructure checks a decoded document (as produced by yaml or json
// unmarshaling into any) against the document JSON Schema.
func ValidateStructure(raw any) *ValidationResult {
	result := &ValidationResult{}

	sch, err := compiledDocumentSchema()
	if err != nil {
		result.AddError("", err.Error())
		return result
	}

	// Round-trip through JSON so numbers and maps have the shapes the
	// validator expects.
	data, err := json.Marshal(raw)
	if err != nil {
		result.AddError("", fmt.Sprintf("document is not JSON-compatible: %v", err))
		return result
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		result.AddError("", err.Error())
		return result
	}

	if err := sch.Validate(instance); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			collectSchemaErrors(verr, result)
		} else {
			result.AddError("", err.Error())
		}
	}
	return result
}

func collectSchemaErrors(err *jsonschema.ValidationError, result *ValidationResult) {
	if len(err.Causes) == 0 {
		result.AddError(pointerToPath(err.InstanceLocation), err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}

// pointerToPath turns a JSON Pointer such as /entities/0/name into
// entities[0].name.
func pointerToPath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	var b strings.Builder
	for _, token := range strings.Split(pointer, "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		if isIndex(token) {
			b.WriteString("[" + token + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
