package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/getmockd/fixturegen/pkg/generator"
	"github.com/getmockd/fixturegen/pkg/schema"
)

// FromProtoFiles compiles the .proto files at paths and converts their
// messages into entities. Imports are searched in importPaths, then in the
// directory of each file. Standard google/protobuf imports are built in.
func FromProtoFiles(ctx context.Context, importPaths []string, paths ...string) (*schema.Document, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no proto files", ErrInvalidSource)
	}

	searchPaths := append([]string(nil), importPaths...)
	names := make([]string, len(paths))
	for i, p := range paths {
		dir := filepath.Dir(p)
		searchPaths = append(searchPaths, dir)
		names[i] = filepath.Base(p)
	}

	return fromProto(ctx, &protocompile.SourceResolver{ImportPaths: searchPaths}, names)
}

// FromProtoSources is FromProtoFiles for in-memory sources keyed by file
// name.
func FromProtoSources(ctx context.Context, sources map[string]string, files ...string) (*schema.Document, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no proto files", ErrInvalidSource)
	}
	resolver := &protocompile.SourceResolver{Accessor: protocompile.SourceAccessorFromMap(sources)}
	return fromProto(ctx, resolver, files)
}

func fromProto(ctx context.Context, resolver protocompile.Resolver, files []string) (*schema.Document, error) {
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(resolver),
	}
	compiled, err := compiler.Compile(ctx, files...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	c := &protoConverter{seen: make(map[protoreflect.FullName]bool)}
	for _, file := range compiled {
		c.messages(file.Messages())
	}
	return finish(c.entities)
}

type protoConverter struct {
	seen     map[protoreflect.FullName]bool
	entities []schema.Entity
}

func (c *protoConverter) messages(msgs protoreflect.MessageDescriptors) {
	for i := 0; i < msgs.Len(); i++ {
		msg := msgs.Get(i)
		if msg.IsMapEntry() {
			continue
		}
		c.message(msg)
		c.messages(msg.Messages())
	}
}

func (c *protoConverter) message(msg protoreflect.MessageDescriptor) {
	if c.seen[msg.FullName()] {
		return
	}
	c.seen[msg.FullName()] = true

	e := schema.Entity{Name: entityName(msg)}
	idx := len(c.entities)
	c.entities = append(c.entities, e)

	fields := msg.Fields()
	for i := 0; i < fields.Len(); i++ {
		e.Fields = append(e.Fields, c.field(fields.Get(i)))
	}
	c.entities[idx].Fields = e.Fields
}

func (c *protoConverter) field(fd protoreflect.FieldDescriptor) schema.Field {
	name := string(fd.Name())
	if fd.IsMap() {
		return schema.Field{Name: name, Type: string(generator.KindDict), Dict: name}
	}

	var f schema.Field
	switch fd.Kind() {
	case protoreflect.BoolKind:
		f = schema.Field{Name: name, Type: string(generator.KindBool)}
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		f = integerField(name)
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		f = decimalField(name)
	case protoreflect.StringKind:
		f = stringField(name)
	case protoreflect.BytesKind:
		f = schema.Field{Name: name, Type: string(generator.KindString), Len: 2 * defaultStringLen}
	case protoreflect.EnumKind:
		values := fd.Enum().Values()
		f = schema.Field{Name: name, Type: string(generator.KindEnum), Values: make([]any, values.Len())}
		for i := 0; i < values.Len(); i++ {
			f.Values[i] = string(values.Get(i).Name())
		}
	case protoreflect.MessageKind, protoreflect.GroupKind:
		f = c.messageField(name, fd.Message())
	default:
		f = stringField(name)
	}

	if fd.IsList() {
		f.Count = listCount()
	}
	return f
}

func (c *protoConverter) messageField(name string, msg protoreflect.MessageDescriptor) schema.Field {
	switch msg.FullName() {
	case "google.protobuf.Timestamp":
		return schema.Field{Name: name, Type: string(generator.KindDate)}
	case "google.protobuf.Duration", "google.protobuf.Int64Value", "google.protobuf.Int32Value",
		"google.protobuf.UInt64Value", "google.protobuf.UInt32Value":
		return integerField(name)
	case "google.protobuf.StringValue":
		return stringField(name)
	case "google.protobuf.BoolValue":
		return schema.Field{Name: name, Type: string(generator.KindBool)}
	case "google.protobuf.DoubleValue", "google.protobuf.FloatValue":
		return decimalField(name)
	case "google.protobuf.Struct":
		return schema.Field{Name: name, Type: string(generator.KindDict), Dict: name}
	}

	// Messages from imported files are converted on first use.
	c.message(msg)
	return schema.Field{Name: name, Type: string(generator.KindEntity), Entity: entityName(msg)}
}

// entityName is the message name qualified by its enclosing messages, such
// as Order_Line for a Line declared inside Order.
func entityName(msg protoreflect.MessageDescriptor) string {
	full := string(msg.FullName())
	if pkg := string(msg.ParentFile().Package()); pkg != "" {
		full = strings.TrimPrefix(full, pkg+".")
	}
	return strings.ReplaceAll(full, ".", "_")
}
