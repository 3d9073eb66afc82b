package importer

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/getmockd/fixturegen/pkg/generator"
	"github.com/getmockd/fixturegen/pkg/schema"
)

// FromGraphQL converts the object and interface types of a GraphQL SDL
// schema into entities. Operation root types are skipped. A type that
// implements exactly one interface extends it and declares only the fields
// the interface lacks.
func FromGraphQL(name, sdl string) (*schema.Document, error) {
	gql, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	roots := make(map[string]bool)
	for _, root := range []*ast.Definition{gql.Query, gql.Mutation, gql.Subscription} {
		if root != nil {
			roots[root.Name] = true
		}
	}

	names := make([]string, 0, len(gql.Types))
	for typeName, def := range gql.Types {
		if def.BuiltIn || roots[typeName] {
			continue
		}
		if def.Kind == ast.Object || def.Kind == ast.Interface {
			names = append(names, typeName)
		}
	}
	sort.Strings(names)

	entities := make([]schema.Entity, 0, len(names))
	for _, typeName := range names {
		def := gql.Types[typeName]
		e := schema.Entity{Name: def.Name}

		var inherited map[string]bool
		if len(def.Interfaces) == 1 {
			if parent := gql.Types[def.Interfaces[0]]; parent != nil {
				e.Extends = parent.Name
				inherited = make(map[string]bool, len(parent.Fields))
				for _, f := range parent.Fields {
					inherited[f.Name] = true
				}
			}
		}

		for _, f := range def.Fields {
			if inherited[f.Name] || f.Name == "__typename" {
				continue
			}
			e.Fields = append(e.Fields, graphQLField(gql, f.Name, f.Type))
		}
		entities = append(entities, e)
	}

	return finish(entities)
}

func graphQLField(gql *ast.Schema, name string, t *ast.Type) schema.Field {
	if t.Elem != nil {
		f := graphQLField(gql, name, t.Elem)
		if f.Count == nil {
			f.Count = listCount()
		}
		return f
	}

	switch t.NamedType {
	case "String":
		return stringField(name)
	case "Int":
		return integerField(name)
	case "Float":
		return decimalField(name)
	case "Boolean":
		return schema.Field{Name: name, Type: string(generator.KindBool)}
	case "ID":
		return schema.Field{Name: name, Type: string(generator.KindUUID)}
	}

	def := gql.Types[t.NamedType]
	if def == nil {
		return stringField(name)
	}
	switch def.Kind {
	case ast.Enum:
		values := make([]any, len(def.EnumValues))
		for i, v := range def.EnumValues {
			values[i] = v.Name
		}
		return schema.Field{Name: name, Type: string(generator.KindEnum), Values: values}
	case ast.Object, ast.Interface:
		return schema.Field{Name: name, Type: string(generator.KindEntity), Entity: def.Name}
	case ast.Scalar:
		switch def.Name {
		case "DateTime", "Date", "Time", "Timestamp":
			return schema.Field{Name: name, Type: string(generator.KindDate)}
		}
	}
	return stringField(name)
}
