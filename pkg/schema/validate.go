package schema

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/getmockd/fixturegen/internal/id"
	"github.com/getmockd/fixturegen/pkg/datefmt"
	"github.com/getmockd/fixturegen/pkg/generator"
	"github.com/getmockd/fixturegen/pkg/random"
)

// Validate checks the semantics of doc: field kinds and their attributes,
// parents, nested entities, references and the generate plan. Every problem
// is reported, not only the first.
func Validate(doc *Document) *ValidationResult {
	result := &ValidationResult{}

	if doc.Version != "" && doc.Version != Version {
		result.AddError("version", fmt.Sprintf("unsupported version %q, expected %q", doc.Version, Version))
	}
	if doc.Identity != "" {
		if _, err := id.New(doc.Identity, 0); err != nil {
			result.AddError("identity", err.Error())
		}
	}

	names := make(map[string]bool)
	for i := range doc.Entities {
		validateEntity(doc, &doc.Entities[i], fmt.Sprintf("entities[%d]", i), names, result)
	}

	if cycle := findCycle(doc); cycle != nil {
		result.AddError("entities", "dependency cycle: "+strings.Join(cycle, " -> "))
	} else {
		validateReferences(doc, result)
	}

	for i, p := range doc.Generate {
		path := fmt.Sprintf("generate[%d]", i)
		if _, ok := doc.Entity(p.Entity); !ok {
			result.AddError(path+".entity", fmt.Sprintf("unknown entity %q", p.Entity))
		}
		if p.Count < 0 {
			result.AddError(path+".count", fmt.Sprintf("must not be negative, got %d", p.Count))
		}
	}

	return result
}

func validateEntity(doc *Document, e *Entity, path string, names map[string]bool, result *ValidationResult) {
	switch {
	case e.Name == "":
		result.AddError(path+".name", "required")
	case names[e.Name]:
		result.AddError(path+".name", fmt.Sprintf("duplicate entity name %q", e.Name))
	default:
		names[e.Name] = true
	}

	if generator.IsMeta(e.Name) && e.Extends == "" {
		result.AddError(path+".extends", fmt.Sprintf("anonymous entity %q requires a parent", e.Name))
	}
	if e.Extends != "" {
		if _, ok := doc.Entity(e.Extends); !ok {
			result.AddError(path+".extends", fmt.Sprintf("unknown entity %q", e.Extends))
		}
	}

	fieldNames := make(map[string]bool)
	for j := range e.Fields {
		f := &e.Fields[j]
		fpath := fmt.Sprintf("%s.fields[%d]", path, j)

		switch {
		case f.Name == "":
			result.AddError(fpath+".name", "required")
		case fieldNames[f.Name]:
			result.AddError(fpath+".name", fmt.Sprintf("duplicate field name %q", f.Name))
		case generator.IsMeta(f.Name) && f.Name != generator.FieldID:
			result.AddError(fpath+".name", fmt.Sprintf("%q is reserved", f.Name))
		default:
			fieldNames[f.Name] = true
		}

		validateField(doc, f, fpath, result)
	}
}

func validateField(doc *Document, f *Field, path string, result *ValidationResult) {
	kind, err := generator.ParseKind(f.Type)
	if err != nil {
		result.AddError(path+".type", err.Error())
		return
	}

	if f.Count != nil && f.Count.Min > f.Count.Max {
		result.AddError(path+".count", fmt.Sprintf("min %d is greater than max %d", f.Count.Min, f.Count.Max))
	}
	if f.Unique && !generator.Uniquable(kind) {
		result.AddError(path+".unique", fmt.Sprintf("%s fields cannot be unique", kind))
	}

	if f.Distribution != nil {
		validateDistribution(doc, f, kind, path, result)
		return
	}

	switch kind {
	case generator.KindString:
		if f.Len < 0 {
			result.AddError(path+".len", "must not be negative")
		}
	case generator.KindDate:
		if f.MinDate != "" {
			if _, err := datefmt.Parse(f.MinDate); err != nil {
				result.AddError(path+".minDate", err.Error())
			}
		}
		if f.MaxDate != "" {
			if _, err := datefmt.Parse(f.MaxDate); err != nil {
				result.AddError(path+".maxDate", err.Error())
			}
		}
	case generator.KindDict:
		if f.Dict == "" {
			result.AddError(path+".dict", "required for dict fields")
		}
	case generator.KindFaker:
		if f.Faker == "" {
			result.AddError(path+".faker", "required for faker fields")
		} else if !random.HasFaker(f.Faker) {
			result.AddError(path+".faker", fmt.Sprintf("unknown faker %q", f.Faker))
		}
	case generator.KindEnum:
		if len(f.Values) == 0 {
			result.AddError(path+".values", "required for enum fields")
		}
	case generator.KindSerial:
		if f.Count != nil {
			result.AddError(path+".count", "serial fields cannot repeat")
		}
	case generator.KindExpr:
		if f.Expr == "" {
			result.AddError(path+".expr", "required for expr fields")
		} else if _, err := expr.Compile(f.Expr, expr.AllowUndefinedVariables()); err != nil {
			result.AddError(path+".expr", err.Error())
		}
	case generator.KindEntity, generator.KindReference:
		if f.Entity == "" {
			result.AddError(path+".entity", fmt.Sprintf("required for %s fields", kind))
		} else if _, ok := doc.Entity(f.Entity); !ok {
			result.AddError(path+".entity", fmt.Sprintf("unknown entity %q", f.Entity))
		}
	}
}

func validateDistribution(doc *Document, f *Field, kind generator.Kind, path string, result *ValidationResult) {
	if f.Count != nil {
		result.AddError(path+".count", "distribution fields cannot repeat")
	}
	if f.Unique {
		result.AddError(path+".unique", "distribution fields cannot be unique")
	}

	d := generator.Distribution{
		Type:    generator.DistributionType(f.Distribution.Type),
		Weights: f.Distribution.Weights,
		Bins:    make([]generator.Options, len(f.Distribution.Bins)),
	}
	if err := d.Check(kind); err != nil {
		result.AddError(path+".distribution", err.Error())
		return
	}
	for i, b := range f.Distribution.Bins {
		bin := f.binField(b)
		validateField(doc, &bin, fmt.Sprintf("%s.distribution.bins[%d]", path, i), result)
	}
}

// validateReferences checks that every reference field names a field its
// target declares or inherits, and that no chain of references loops.
func validateReferences(doc *Document, result *ValidationResult) {
	for i := range doc.Entities {
		e := &doc.Entities[i]
		for j := range e.Fields {
			f := &e.Fields[j]
			if f.Type != string(generator.KindReference) || f.Entity == "" {
				continue
			}
			path := fmt.Sprintf("entities[%d].fields[%d]", i, j)
			if _, _, ok := resolveField(doc, f.Entity, referenceKey(f)); !ok {
				result.AddError(path+".key", fmt.Sprintf("entity %q has no field %q", f.Entity, referenceKey(f)))
				continue
			}
			if referenceLoops(doc, e.Name, f) {
				result.AddError(path, "reference cycle")
			}
		}
	}
}

func referenceKey(f *Field) string {
	if f.Key != "" {
		return f.Key
	}
	return f.Name
}

// resolveField finds the entity that declares key as seen from entity,
// walking up the parents.
func resolveField(doc *Document, entity, key string) (*Entity, *Field, bool) {
	seen := make(map[string]bool)
	for entity != "" && !seen[entity] {
		seen[entity] = true
		e, ok := doc.Entity(entity)
		if !ok {
			return nil, nil, false
		}
		if f, ok := e.Field(key); ok {
			return e, f, true
		}
		entity = e.Extends
	}
	return nil, nil, false
}

func referenceLoops(doc *Document, owner string, f *Field) bool {
	seen := map[string]bool{owner + "." + f.Name: true}
	for f.Type == string(generator.KindReference) {
		e, next, ok := resolveField(doc, f.Entity, referenceKey(f))
		if !ok {
			return false
		}
		node := e.Name + "." + next.Name
		if seen[node] {
			return true
		}
		seen[node] = true
		f = next
	}
	return false
}
