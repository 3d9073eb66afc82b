package schema

// Version is the only document version understood by this package.
const Version = "1"

// Document is one fixture document, or several merged together.
type Document struct {
	Version  string      `yaml:"version" json:"version"`
	Seed     *uint64     `yaml:"seed,omitempty" json:"seed,omitempty"`
	Identity string      `yaml:"identity,omitempty" json:"identity,omitempty"`
	Entities []Entity    `yaml:"entities" json:"entities"`
	Generate []PlanEntry `yaml:"generate,omitempty" json:"generate,omitempty"`

	// Sources lists the files the document was read from.
	Sources []string `yaml:"-" json:"-"`
}

// Entity declares one named generator.
type Entity struct {
	Name    string  `yaml:"name" json:"name"`
	Extends string  `yaml:"extends,omitempty" json:"extends,omitempty"`
	Fields  []Field `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Field declares one field of an entity. Which attributes apply depends on
// Type.
type Field struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`

	// literal
	Value any `yaml:"value,omitempty" json:"value,omitempty"`

	// string
	Len int `yaml:"len,omitempty" json:"len,omitempty"`

	// integer, decimal
	Min       *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Precision *int     `yaml:"precision,omitempty" json:"precision,omitempty"`

	// date
	MinDate string `yaml:"minDate,omitempty" json:"minDate,omitempty"`
	MaxDate string `yaml:"maxDate,omitempty" json:"maxDate,omitempty"`

	// dict, faker
	Dict  string `yaml:"dict,omitempty" json:"dict,omitempty"`
	Faker string `yaml:"faker,omitempty" json:"faker,omitempty"`

	// enum
	Values []any `yaml:"values,omitempty" json:"values,omitempty"`

	// serial
	Start *int64 `yaml:"start,omitempty" json:"start,omitempty"`

	// expr
	Expr string `yaml:"expr,omitempty" json:"expr,omitempty"`

	// entity, reference: Entity names the target; Key the referenced field.
	Entity string `yaml:"entity,omitempty" json:"entity,omitempty"`
	Key    string `yaml:"key,omitempty" json:"key,omitempty"`

	Count *Count `yaml:"count,omitempty" json:"count,omitempty"`

	// Unique keeps the field's values distinct across every record it
	// produces.
	Unique bool `yaml:"unique,omitempty" json:"unique,omitempty"`

	// Distribution draws the field's values from several bins of its type.
	// The field's own type attributes are then unused.
	Distribution *Distribution `yaml:"distribution,omitempty" json:"distribution,omitempty"`
}

// Distribution picks a bin for every value. Type is uniform (the default),
// weighted, percent or normal.
type Distribution struct {
	Type    string    `yaml:"type,omitempty" json:"type,omitempty"`
	Weights []float64 `yaml:"weights,omitempty" json:"weights,omitempty"`
	Bins    []Bin     `yaml:"bins" json:"bins"`
}

// Bin holds the type attributes of one distribution bin.
type Bin struct {
	Value     any      `yaml:"value,omitempty" json:"value,omitempty"`
	Len       int      `yaml:"len,omitempty" json:"len,omitempty"`
	Min       *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Precision *int     `yaml:"precision,omitempty" json:"precision,omitempty"`
	MinDate   string   `yaml:"minDate,omitempty" json:"minDate,omitempty"`
	MaxDate   string   `yaml:"maxDate,omitempty" json:"maxDate,omitempty"`
	Dict      string   `yaml:"dict,omitempty" json:"dict,omitempty"`
	Faker     string   `yaml:"faker,omitempty" json:"faker,omitempty"`
	Values    []any    `yaml:"values,omitempty" json:"values,omitempty"`
}

// binField returns the field a bin of f stands for.
func (f *Field) binField(b Bin) Field {
	return Field{
		Name:      f.Name,
		Type:      f.Type,
		Value:     b.Value,
		Len:       b.Len,
		Min:       b.Min,
		Max:       b.Max,
		Precision: b.Precision,
		MinDate:   b.MinDate,
		MaxDate:   b.MaxDate,
		Dict:      b.Dict,
		Faker:     b.Faker,
		Values:    b.Values,
	}
}

// Count is an inclusive repetition range.
type Count struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// PlanEntry asks for Count records of Entity.
type PlanEntry struct {
	Entity string `yaml:"entity" json:"entity"`
	Count  int    `yaml:"count" json:"count"`
}

// Entity returns the entity called name.
func (d *Document) Entity(name string) (*Entity, bool) {
	for i := range d.Entities {
		if d.Entities[i].Name == name {
			return &d.Entities[i], true
		}
	}
	return nil, false
}

// EntityNames returns entity names in declaration order.
func (d *Document) EntityNames() []string {
	names := make([]string, len(d.Entities))
	for i, e := range d.Entities {
		names[i] = e.Name
	}
	return names
}

// Field returns the field the entity declares under name, ignoring
// inherited fields.
func (e *Entity) Field(name string) (*Field, bool) {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i], true
		}
	}
	return nil, false
}

// Merge combines documents in order. Later documents override the seed and
// identity of earlier ones; entities with the same name are replaced in
// place and plans are concatenated.
func Merge(docs ...*Document) *Document {
	result := &Document{Version: Version}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if doc.Version != "" {
			result.Version = doc.Version
		}
		if doc.Seed != nil {
			seed := *doc.Seed
			result.Seed = &seed
		}
		if doc.Identity != "" {
			result.Identity = doc.Identity
		}
		for _, e := range doc.Entities {
			if existing, ok := result.Entity(e.Name); ok {
				*existing = e
				continue
			}
			result.Entities = append(result.Entities, e)
		}
		result.Generate = append(result.Generate, doc.Generate...)
		result.Sources = append(result.Sources, doc.Sources...)
	}
	return result
}
