package importer

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/getmockd/fixturegen/pkg/generator"
	"github.com/getmockd/fixturegen/pkg/schema"
)

// FromOpenAPI converts the component schemas of an OpenAPI 3 document (JSON
// or YAML) into entities. Object schemas become entities named after their
// component; properties are taken in name order.
func FromOpenAPI(ctx context.Context, data []byte) (*schema.Document, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: loading OpenAPI document: %v", ErrInvalidSource, err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if spec.Components == nil {
		return nil, ErrNoEntities
	}

	c := &openAPIConverter{components: spec.Components.Schemas}
	for _, name := range sortedKeys(spec.Components.Schemas) {
		ref := spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil || !isObjectSchema(ref.Value) {
			continue
		}
		c.entity(name, ref.Value)
	}
	return finish(c.entities)
}

type openAPIConverter struct {
	components openapi3.Schemas
	entities   []schema.Entity
}

func (c *openAPIConverter) entity(name string, s *openapi3.Schema) {
	e := schema.Entity{Name: name}
	props := openapi3.Schemas{}

	for _, part := range s.AllOf {
		if part == nil {
			continue
		}
		if part.Ref != "" && e.Extends == "" {
			e.Extends = refName(part.Ref)
			continue
		}
		if part.Value != nil {
			for k, v := range part.Value.Properties {
				props[k] = v
			}
		}
	}
	for k, v := range s.Properties {
		props[k] = v
	}

	// Appended before its fields so that nested inline objects follow it.
	c.entities = append(c.entities, e)
	idx := len(c.entities) - 1

	var fields []schema.Field
	for _, prop := range sortedKeys(props) {
		fields = append(fields, c.field(name, prop, props[prop]))
	}
	c.entities[idx].Fields = fields
}

func (c *openAPIConverter) field(owner, name string, ref *openapi3.SchemaRef) schema.Field {
	if ref == nil || ref.Value == nil {
		return stringField(name)
	}
	s := ref.Value

	if ref.Ref != "" {
		target := refName(ref.Ref)
		if isObjectSchema(s) {
			return schema.Field{Name: name, Type: string(generator.KindEntity), Entity: target}
		}
	}

	if len(s.Enum) > 0 {
		return schema.Field{Name: name, Type: string(generator.KindEnum), Values: append([]any(nil), s.Enum...)}
	}

	switch schemaType(s) {
	case openapi3.TypeArray:
		f := c.field(owner, name, s.Items)
		f.Count = arrayCount(s)
		return f
	case openapi3.TypeObject:
		if len(s.Properties) == 0 && len(s.AllOf) == 0 {
			return schema.Field{Name: name, Type: string(generator.KindDict), Dict: name}
		}
		nested := owner + exportName(name)
		c.entity(nested, s)
		return schema.Field{Name: name, Type: string(generator.KindEntity), Entity: nested}
	case openapi3.TypeInteger:
		f := integerField(name)
		applyBounds(&f, s)
		return f
	case openapi3.TypeNumber:
		f := decimalField(name)
		applyBounds(&f, s)
		return f
	case openapi3.TypeBoolean:
		return schema.Field{Name: name, Type: string(generator.KindBool)}
	default:
		return stringFormatField(name, s)
	}
}

func stringFormatField(name string, s *openapi3.Schema) schema.Field {
	switch s.Format {
	case "date-time", "date":
		return schema.Field{Name: name, Type: string(generator.KindDate)}
	case "uuid":
		return schema.Field{Name: name, Type: string(generator.KindUUID)}
	case "email":
		return schema.Field{Name: name, Type: string(generator.KindFaker), Faker: "email"}
	case "ipv4":
		return schema.Field{Name: name, Type: string(generator.KindFaker), Faker: "ipv4"}
	case "ipv6":
		return schema.Field{Name: name, Type: string(generator.KindFaker), Faker: "ipv6"}
	}

	f := stringField(name)
	if s.MaxLength != nil && int(*s.MaxLength) < f.Len {
		f.Len = int(*s.MaxLength)
	}
	if int(s.MinLength) > f.Len {
		f.Len = int(s.MinLength)
	}
	return f
}

func applyBounds(f *schema.Field, s *openapi3.Schema) {
	if s.Min != nil {
		f.Min = float(*s.Min)
		if s.Max == nil && *s.Min > *f.Max {
			f.Max = float(*s.Min + defaultMax)
		}
	}
	if s.Max != nil {
		f.Max = float(*s.Max)
		if s.Min == nil && *s.Max < *f.Min {
			f.Min = float(*s.Max - defaultMax)
		}
	}
}

func arrayCount(s *openapi3.Schema) *schema.Count {
	count := listCount()
	if s.MinItems > 0 {
		count.Min = int(s.MinItems)
		if count.Max < count.Min {
			count.Max = count.Min
		}
	}
	if s.MaxItems != nil {
		count.Max = int(*s.MaxItems)
		if count.Min > count.Max {
			count.Min = count.Max
		}
	}
	return count
}

func schemaType(s *openapi3.Schema) string {
	types := s.Type.Slice()
	if len(types) > 0 {
		return types[0]
	}
	switch {
	case len(s.Properties) > 0, len(s.AllOf) > 0:
		return openapi3.TypeObject
	case s.Items != nil:
		return openapi3.TypeArray
	default:
		return openapi3.TypeString
	}
}

func isObjectSchema(s *openapi3.Schema) bool {
	return schemaType(s) == openapi3.TypeObject && (len(s.Properties) > 0 || len(s.AllOf) > 0)
}

func refName(ref string) string {
	return path.Base(ref)
}

func sortedKeys(m openapi3.Schemas) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// exportName turns a property name such as shipping_address into
// ShippingAddress.
func exportName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
