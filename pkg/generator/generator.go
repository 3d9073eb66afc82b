package generator

import (
	"fmt"
	"strings"
)

// Reserved field names.
const (
	FieldID      = "$id"
	FieldType    = "$type"
	FieldSpecies = "$species"
	FieldExtends = "$extends"
)

// MetaPrefix marks meta fields and anonymous schema names.
const MetaPrefix = "$"

// IsMeta reports whether name is a meta field name.
func IsMeta(name string) bool {
	return strings.HasPrefix(name, MetaPrefix)
}

// Generator is a named schema: an ordered set of fields plus an optional
// parent type.
type Generator struct {
	name   string
	base   string
	fields map[string]*Field
	order  []string
	env    *env
}

// New creates a schema with no parent. It carries a $id identity field.
func New(name string, opts ...Option) *Generator {
	e := defaultEnv()
	for _, opt := range opts {
		opt(e)
	}
	return newGenerator(name, e)
}

// Extend creates a schema whose base is parent's type. Besides $id, it
// carries the meta fields $type, $species and $extends, and a reference to
// every non-meta field parent declares at this moment. Fields added to parent
// later are not inherited.
//
// The child shares parent's providers unless opts replace them.
func Extend(name string, parent *Generator, opts ...Option) *Generator {
	e := *parent.env
	for _, opt := range opts {
		opt(&e)
	}

	g := newGenerator(name, &e)
	g.base = parent.Type()

	g.set(FieldType, NewField(KindLiteral, literalProducer{value: g.Type()}, nil, nil))
	g.set(FieldSpecies, NewField(KindLiteral, literalProducer{value: g.name}, nil, nil))
	g.set(FieldExtends, NewField(KindLiteral, literalProducer{value: g.base}, nil, nil))

	for _, key := range parent.order {
		if IsMeta(key) {
			continue
		}
		g.set(key, NewField(KindReference, referenceProducer{generator: parent, key: key}, nil, nil))
	}

	g.env.logger.Debug("extended schema", "name", g.name, "base", g.base, "inherited", len(g.order)-4)
	return g
}

func newGenerator(name string, e *env) *Generator {
	g := &Generator{
		name:   name,
		fields: make(map[string]*Field),
		env:    e,
	}
	g.set(FieldID, NewField(KindUUID, uuidProducer{ids: e.ids}, nil, nil))
	return g
}

// Name returns the schema's declared name.
func (g *Generator) Name() string {
	return g.name
}

// Base returns the parent's type, or "" when there is no parent.
func (g *Generator) Base() string {
	return g.base
}

// Type returns the effective type: the base when the name is empty or
// $-prefixed and a base exists, the name otherwise.
func (g *Generator) Type() string {
	if (g.name == "" || IsMeta(g.name)) && g.base != "" {
		return g.base
	}
	return g.name
}

// Fields returns the field names in declaration order.
func (g *Generator) Fields() []string {
	return append([]string(nil), g.order...)
}

// Field returns the field registered under name.
func (g *Generator) Field(name string) (*Field, bool) {
	f, ok := g.fields[name]
	return f, ok
}

// HasField reports whether a field is registered under name.
func (g *Generator) HasField(name string) bool {
	_, ok := g.fields[name]
	return ok
}

// WithField registers a field of the given kind under name, replacing any
// field already there (the replacement keeps the old position). On error
// the schema is left unchanged.
func (g *Generator) WithField(name string, kind Kind, opts Options) (*Generator, error) {
	f, err := g.newField(name, kind, opts)
	if err != nil {
		return g, fmt.Errorf("field %s: %w", name, err)
	}
	g.set(name, f)
	g.env.logger.Debug("registered field", "schema", g.name, "field", name, "kind", string(kind))
	return g, nil
}

// MustWithField is like WithField but panics on error.
func (g *Generator) MustWithField(name string, kind Kind, opts Options) *Generator {
	if _, err := g.WithField(name, kind, opts); err != nil {
		panic(err)
	}
	return g
}

func (g *Generator) set(name string, f *Field) {
	if _, ok := g.fields[name]; !ok {
		g.order = append(g.order, name)
	}
	g.fields[name] = f
}

func (g *Generator) newField(name string, kind Kind, opts Options) (*Field, error) {
	rnd := g.env.rnd
	var p Producer

	switch kind {
	case KindUUID:
		p = uuidProducer{ids: g.env.ids}
	case KindLiteral:
		p = literalProducer{value: opts.Value}
	case KindReference:
		if opts.Generator == nil {
			return nil, fmt.Errorf("%w: reference to %q", ErrMissingGenerator, opts.Key)
		}
		key := opts.Key
		if key == "" {
			key = name
		}
		p = referenceProducer{generator: opts.Generator, key: key}
	case KindEntity:
		if opts.Entity == nil {
			return nil, fmt.Errorf("%w: entity", ErrMissingGenerator)
		}
		p = entityProducer{entity: opts.Entity}
	case KindBool:
		p = boolProducer{rnd: rnd}
	case KindString:
		p = stringProducer{rnd: rnd, length: opts.Len}
	case KindInteger:
		p = integerProducer{rnd: rnd, min: int64(opts.Min), max: int64(opts.Max)}
	case KindDecimal:
		p = decimalProducer{rnd: rnd, min: opts.Min, max: opts.Max, precision: opts.Precision}
	case KindDate:
		p = newDateProducer(rnd, opts.MinDate, opts.MaxDate)
	case KindDict:
		p = dictProducer{name: opts.Name}
	case KindEnum:
		p = enumProducer{rnd: rnd, values: append([]any(nil), opts.Values...)}
	case KindSerial:
		if opts.Count != nil {
			return nil, ErrSerialCount
		}
		start := int64(1)
		if opts.Start != nil {
			start = *opts.Start
		}
		p = serialProducer{sequences: g.env.sequences, key: g.Type() + "." + name, start: start}
	case KindFaker:
		if _, err := rnd.Faker(opts.Name); err != nil {
			return nil, err
		}
		p = fakerProducer{rnd: rnd, name: opts.Name}
	case KindExpr:
		ep, err := newExprProducer(opts.Expr, g.env.logger)
		if err != nil {
			return nil, err
		}
		p = ep
	default:
		return nil, &UnknownFieldKindError{Kind: string(kind)}
	}

	var count *CountRange
	if opts.Count != nil {
		c := *opts.Count
		count = &c
	}
	f := NewField(kind, p, count, rnd)

	if opts.Unique {
		if !Uniquable(kind) {
			return nil, fmt.Errorf("%w: %s", ErrNotUniquable, kind)
		}
		// uuid and serial values are distinct already.
		if kind != KindUUID && kind != KindSerial {
			f.unique = newUniqueSet(g.Type()+"."+name, g.env.logger)
		}
	}
	return f, nil
}

// One produces a single record with every field in declaration order.
// Fields computed from other fields are evaluated after the rest but keep
// their declared position.
func (g *Generator) One() Record {
	rec := newRecord(len(g.order))
	var deferred []string

	for _, name := range g.order {
		f := g.fields[name]
		if f.deferred() {
			rec.Set(name, nil)
			deferred = append(deferred, name)
			continue
		}
		rec.Set(name, f.valueFor(rec))
	}

	for _, name := range deferred {
		rec.Set(name, g.fields[name].valueFor(rec))
	}

	return rec
}

// Generate produces count independent records. A count of 1 returns a
// single Record; any other count returns a []Record of that length.
func (g *Generator) Generate(count int) (any, error) {
	if count == 1 {
		return g.One(), nil
	}
	return g.Many(count)
}

// Many produces count independent records as a slice, whatever the count.
func (g *Generator) Many(count int) ([]Record, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}

	records := make([]Record, count)
	for i := range records {
		records[i] = g.One()
	}

	g.env.logger.Debug("generated records", "type", g.Type(), "count", count)
	return records, nil
}

func (g *Generator) String() string {
	return fmt.Sprintf("%s{%s}", g.Type(), strings.Join(g.order, ", "))
}
