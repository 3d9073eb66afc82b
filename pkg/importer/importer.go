package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/getmockd/fixturegen/pkg/generator"
	"github.com/getmockd/fixturegen/pkg/schema"
)

// Source names a schema language.
type Source string

// Supported sources.
const (
	SourceOpenAPI Source = "openapi"
	SourceGraphQL Source = "graphql"
	SourceProto   Source = "proto"
)

// Sources returns the supported sources.
func Sources() []Source {
	return []Source{SourceOpenAPI, SourceGraphQL, SourceProto}
}

// Sentinel errors.
var (
	ErrUnknownSource = errors.New("unknown import source")
	ErrInvalidSource = errors.New("invalid source schema")
	ErrNoEntities    = errors.New("source defines no object types")
)

// Defaults used when the source does not constrain a value.
const (
	defaultStringLen = 10
	defaultMin       = 0
	defaultMax       = 1000
	defaultListMin   = 1
	defaultListMax   = 3
)

// ParseSource converts a case-insensitive name to a Source. "oas" and
// "swagger" select OpenAPI, "gql" GraphQL and "protobuf" Proto.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(s) {
	case "openapi", "oas", "swagger":
		return SourceOpenAPI, nil
	case "graphql", "gql":
		return SourceGraphQL, nil
	case "proto", "protobuf":
		return SourceProto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

// ImportFile reads the file at path and converts it. For protobuf sources
// importPaths are searched for imports; the file's own directory is always
// searched.
func ImportFile(ctx context.Context, source Source, path string, importPaths ...string) (*schema.Document, error) {
	switch source {
	case SourceProto:
		return FromProtoFiles(ctx, importPaths, path)
	case SourceOpenAPI, SourceGraphQL:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if source == SourceOpenAPI {
		return FromOpenAPI(ctx, data)
	}
	return FromGraphQL(path, string(data))
}

// finish breaks nesting cycles, orders the entities and wraps them in a
// document.
func finish(entities []schema.Entity) (*schema.Document, error) {
	if len(entities) == 0 {
		return nil, ErrNoEntities
	}
	doc := &schema.Document{Version: schema.Version, Entities: entities}
	breakCycles(doc)
	if err := schema.SortEntities(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// breakCycles turns every entity field that would nest an entity inside
// itself, directly or through other entities, into a uuid field. Parent
// links that loop are dropped.
func breakCycles(doc *schema.Document) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int)

	var visit func(e *schema.Entity)
	visit = func(e *schema.Entity) {
		state[e.Name] = visiting
		if e.Extends != "" {
			if parent, ok := doc.Entity(e.Extends); ok {
				switch state[parent.Name] {
				case visiting:
					e.Extends = ""
				case unvisited:
					visit(parent)
				}
			}
		}
		for i := range e.Fields {
			f := &e.Fields[i]
			if f.Type != string(generator.KindEntity) {
				continue
			}
			target, ok := doc.Entity(f.Entity)
			if !ok || state[target.Name] == visiting {
				*f = schema.Field{Name: f.Name, Type: string(generator.KindUUID), Count: f.Count}
				continue
			}
			if state[target.Name] == unvisited {
				visit(target)
			}
		}
		state[e.Name] = done
	}

	for i := range doc.Entities {
		if state[doc.Entities[i].Name] == unvisited {
			visit(&doc.Entities[i])
		}
	}
}

func listCount() *schema.Count {
	return &schema.Count{Min: defaultListMin, Max: defaultListMax}
}

func float(v float64) *float64 {
	return &v
}

func stringField(name string) schema.Field {
	return schema.Field{Name: name, Type: string(generator.KindString), Len: defaultStringLen}
}

func integerField(name string) schema.Field {
	return schema.Field{Name: name, Type: string(generator.KindInteger), Min: float(defaultMin), Max: float(defaultMax)}
}

func decimalField(name string) schema.Field {
	return schema.Field{Name: name, Type: string(generator.KindDecimal), Min: float(defaultMin), Max: float(defaultMax)}
}
