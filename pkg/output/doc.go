// Package output renders generated records as JSON, NDJSON, YAML or XML and
// narrows them with JSONPath selections.
package output
