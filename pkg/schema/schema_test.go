package schema

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/fixturegen/pkg/generator"
)

const personDoc = `
version: "1"
seed: 7
entities:
  - name: Person
    fields:
      - {name: name, type: string, len: 5}
      - {name: age, type: integer, min: 0, max: 120}
  - name: Employee
    extends: Person
    fields:
      - {name: email, type: faker, faker: email}
      - {name: badge, type: serial, start: 100}
generate:
  - {entity: Person, count: 2}
  - {entity: Employee, count: 3}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mustBuild(t *testing.T, src string, opts ...Option) *Catalog {
	t.Helper()
	doc, err := Parse([]byte(src), "test.yaml")
	require.NoError(t, err)
	c, err := Build(doc, opts...)
	require.NoError(t, err)
	return c
}

func TestParse_YAML(t *testing.T) {
	doc, err := Parse([]byte(personDoc), "person.yaml")
	require.NoError(t, err)

	assert.Equal(t, "1", doc.Version)
	require.NotNil(t, doc.Seed)
	assert.Equal(t, uint64(7), *doc.Seed)
	assert.Equal(t, []string{"Person", "Employee"}, doc.EntityNames())
	assert.Equal(t, []string{"person.yaml"}, doc.Sources)

	e, ok := doc.Entity("Employee")
	require.True(t, ok)
	assert.Equal(t, "Person", e.Extends)
	badge, ok := e.Field("badge")
	require.True(t, ok)
	require.NotNil(t, badge.Start)
	assert.Equal(t, int64(100), *badge.Start)
}

func TestParse_JSON(t *testing.T) {
	src := `{"version": "1", "entities": [{"name": "Tag", "fields": [{"name": "label", "type": "enum", "values": ["a", "b"]}]}], "generate": [{"entity": "Tag", "count": 1}]}`
	doc, err := Parse([]byte(src), "tag.json")
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	assert.Equal(t, []any{"a", "b"}, doc.Entities[0].Fields[0].Values)
}

func TestParse_DefaultsVersion(t *testing.T) {
	doc, err := Parse([]byte("entities: []\n"), "x.yaml")
	require.NoError(t, err)
	assert.Equal(t, Version, doc.Version)
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("FIXTURE_LEN", "9")
	src := `
entities:
  - name: Code
    fields:
      - {name: value, type: string, len: ${FIXTURE_LEN}}
      - {name: region, type: literal, value: "${FIXTURE_REGION:-eu-west}"}
`
	c := mustBuild(t, src)
	records, err := c.Generate("Code", 1)
	require.NoError(t, err)

	v, _ := records[0].Get("value")
	assert.Len(t, v, 9)
	region, _ := records[0].Get("region")
	assert.Equal(t, "eu-west", region)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte("  \n"), "empty.yaml")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestParse_StructureErrors(t *testing.T) {
	src := `
entities:
  - name: Person
    colour: blue
    fields:
      - {name: age}
`
	_, err := Parse([]byte(src), "bad.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)

	var result *ValidationResult
	require.True(t, errors.As(err, &result))
	require.NotEmpty(t, result.Errors)

	var paths []string
	for _, e := range result.Errors {
		paths = append(paths, e.Path)
	}
	assert.Contains(t, paths, "entities[0]")
	assert.Contains(t, paths, "entities[0].fields[0]")
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FG_SET", "value")
	t.Setenv("FG_EMPTY", "")

	tests := []struct {
		in, want string
	}{
		{"${FG_SET}", "value"},
		{"${FG_SET:-other}", "value"},
		{"${FG_EMPTY:-fallback}", "fallback"},
		{"${FG_UNSET_VARIABLE}", ""},
		{"a-${FG_SET}-b", "a-value-b"},
		{"$FG_SET", "$FG_SET"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandEnvVars(tt.in))
		})
	}
}

func TestLoad_GlobMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/people.yaml", `
seed: 1
entities:
  - name: Person
    fields:
      - {name: name, type: string, len: 3}
generate:
  - {entity: Person, count: 1}
`)
	writeFile(t, dir, "b/nested/orders.yaml", `
seed: 2
entities:
  - name: Order
    fields:
      - {name: total, type: decimal, min: 1, max: 10}
  - name: Person
    fields:
      - {name: name, type: string, len: 8}
generate:
  - {entity: Order, count: 2}
`)
	writeFile(t, dir, "b/readme.txt", "not a document")

	doc, err := Load([]string{filepath.Join(dir, "**", "*.yaml")})
	require.NoError(t, err)

	assert.Equal(t, []string{"Person", "Order"}, doc.EntityNames())
	person, _ := doc.Entity("Person")
	assert.Equal(t, 8, person.Fields[0].Len)
	require.NotNil(t, doc.Seed)
	assert.Equal(t, uint64(2), *doc.Seed)
	assert.Equal(t, []PlanEntry{{Entity: "Person", Count: 1}, {Entity: "Order", Count: 2}}, doc.Generate)
	assert.Len(t, doc.Sources, 2)
}

func TestLoad_PlainFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "person.yaml", personDoc)
	doc, err := Load([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, doc.Sources)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load([]string{filepath.Join(dir, "*.yaml")})
	assert.ErrorIs(t, err, ErrNoDocuments)

	_, err = Load([]string{filepath.Join(dir, "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")

	bad := writeFile(t, dir, "bad.yaml", "entities: [")
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing document")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		path string
		msg  string
	}{
		{
			name: "unknown kind",
			doc:  Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "x", Type: "colour"}}}}},
			path: "entities[0].fields[0].type",
			msg:  "colour",
		},
		{
			name: "duplicate entity",
			doc:  Document{Entities: []Entity{{Name: "A"}, {Name: "A"}}},
			path: "entities[1].name",
			msg:  "duplicate",
		},
		{
			name: "duplicate field",
			doc: Document{Entities: []Entity{{Name: "A", Fields: []Field{
				{Name: "x", Type: "bool"}, {Name: "x", Type: "bool"},
			}}}},
			path: "entities[0].fields[1].name",
			msg:  "duplicate",
		},
		{
			name: "reserved field",
			doc:  Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "$type", Type: "literal"}}}}},
			path: "entities[0].fields[0].name",
			msg:  "reserved",
		},
		{
			name: "unknown parent",
			doc:  Document{Entities: []Entity{{Name: "A", Extends: "Nope"}}},
			path: "entities[0].extends",
			msg:  "unknown entity",
		},
		{
			name: "anonymous without parent",
			doc:  Document{Entities: []Entity{{Name: "$variant"}}},
			path: "entities[0].extends",
			msg:  "requires a parent",
		},
		{
			name: "inheritance cycle",
			doc:  Document{Entities: []Entity{{Name: "A", Extends: "B"}, {Name: "B", Extends: "A"}}},
			path: "entities",
			msg:  "A -> B -> A",
		},
		{
			name: "nested entity cycle",
			doc: Document{Entities: []Entity{{Name: "Node", Fields: []Field{
				{Name: "child", Type: "entity", Entity: "Node"},
			}}}},
			path: "entities",
			msg:  "Node -> Node",
		},
		{
			name: "unknown entity field target",
			doc:  Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "b", Type: "entity", Entity: "B"}}}}},
			path: "entities[0].fields[0].entity",
			msg:  "unknown entity",
		},
		{
			name: "missing reference key",
			doc: Document{Entities: []Entity{
				{Name: "A", Fields: []Field{{Name: "x", Type: "bool"}}},
				{Name: "B", Fields: []Field{{Name: "y", Type: "reference", Entity: "A"}}},
			}},
			path: "entities[1].fields[0].key",
			msg:  `has no field "y"`,
		},
		{
			name: "reference cycle",
			doc: Document{Entities: []Entity{{Name: "A", Fields: []Field{
				{Name: "x", Type: "reference", Entity: "A", Key: "y"},
				{Name: "y", Type: "reference", Entity: "A", Key: "x"},
			}}}},
			path: "entities[0].fields[0]",
			msg:  "reference cycle",
		},
		{
			name: "unknown faker",
			doc:  Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "x", Type: "faker", Faker: "horoscope"}}}}},
			path: "entities[0].fields[0].faker",
			msg:  "horoscope",
		},
		{
			name: "enum without values",
			doc:  Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "x", Type: "enum"}}}}},
			path: "entities[0].fields[0].values",
			msg:  "required",
		},
		{
			name: "repeated serial",
			doc: Document{Entities: []Entity{{Name: "A", Fields: []Field{
				{Name: "x", Type: "serial", Count: &Count{Min: 1, Max: 2}},
			}}}},
			path: "entities[0].fields[0].count",
			msg:  "cannot repeat",
		},
		{
			name: "inverted count",
			doc: Document{Entities: []Entity{{Name: "A", Fields: []Field{
				{Name: "x", Type: "bool", Count: &Count{Min: 3, Max: 1}},
			}}}},
			path: "entities[0].fields[0].count",
			msg:  "greater than",
		},
		{
			name: "bad date",
			doc:  Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "x", Type: "date", MinDate: "yesterday"}}}}},
			path: "entities[0].fields[0].minDate",
			msg:  "unparseable",
		},
		{
			name: "bad expression",
			doc:  Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "x", Type: "expr", Expr: "1 +"}}}}},
			path: "entities[0].fields[0].expr",
		},
		{
			name: "plan for unknown entity",
			doc:  Document{Entities: []Entity{{Name: "A"}}, Generate: []PlanEntry{{Entity: "B", Count: 1}}},
			path: "generate[0].entity",
			msg:  "unknown entity",
		},
		{
			name: "bool cannot be unique",
			doc:  Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "x", Type: "bool", Unique: true}}}}},
			path: "entities[0].fields[0].unique",
			msg:  "cannot be unique",
		},
		{
			name: "percent weights",
			doc: Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "x", Type: "literal", Distribution: &Distribution{
				Type: "percent", Weights: []float64{60, 30}, Bins: []Bin{{Value: "a"}, {Value: "b"}},
			}}}}}},
			path: "entities[0].fields[0].distribution",
			msg:  "not 100",
		},
		{
			name: "distribution bin",
			doc: Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "x", Type: "enum", Distribution: &Distribution{
				Bins: []Bin{{Values: []any{"a"}}, {}},
			}}}}}},
			path: "entities[0].fields[0].distribution.bins[1].values",
			msg:  "required",
		},
		{
			name: "distribution repeats",
			doc: Document{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "x", Type: "literal", Count: &Count{Min: 1, Max: 2},
				Distribution: &Distribution{Bins: []Bin{{Value: 1}}}}}}}},
			path: "entities[0].fields[0].count",
			msg:  "cannot repeat",
		},
		{
			name: "unknown identity",
			doc:  Document{Identity: "snowflake", Entities: []Entity{{Name: "A"}}},
			path: "identity",
		},
		{
			name: "unsupported version",
			doc:  Document{Version: "2"},
			path: "version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(&tt.doc)
			require.False(t, result.IsValid())

			var found bool
			for _, e := range result.Errors {
				if e.Path == tt.path && strings.Contains(e.Message, tt.msg) {
					found = true
				}
			}
			assert.True(t, found, "no error at %s containing %q in:\n%s", tt.path, tt.msg, result.Error())
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	doc, err := Parse([]byte(personDoc), "person.yaml")
	require.NoError(t, err)
	result := Validate(doc)
	assert.True(t, result.IsValid(), result.Error())
	assert.NoError(t, result.Err())
}

func TestBuild_Inheritance(t *testing.T) {
	c := mustBuild(t, personDoc)
	assert.Equal(t, []string{"Person", "Employee"}, c.EntityNames())

	emp, ok := c.Generator("Employee")
	require.True(t, ok)
	assert.Equal(t, "Person", emp.Base())
	assert.Equal(t, []string{"$id", "$type", "$species", "$extends", "name", "age", "email", "badge"}, emp.Fields())

	records, err := c.Generate("Employee", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	for i, rec := range records {
		typ, _ := rec.Get("$type")
		assert.Equal(t, "Employee", typ)
		ext, _ := rec.Get("$extends")
		assert.Equal(t, "Person", ext)
		name, _ := rec.Get("name")
		assert.Len(t, name, 5)
		age, _ := rec.Get("age")
		assert.GreaterOrEqual(t, age.(int64), int64(0))
		assert.LessOrEqual(t, age.(int64), int64(120))
		badge, _ := rec.Get("badge")
		assert.Equal(t, int64(100+i), badge)
	}
}

func TestBuild_SeededRunsRepeat(t *testing.T) {
	run := func() string {
		results, err := mustBuild(t, personDoc).Run(nil)
		require.NoError(t, err)
		data, err := json.Marshal(results)
		require.NoError(t, err)
		return string(data)
	}
	assert.Equal(t, run(), run())
}

func TestBuild_SeedOverride(t *testing.T) {
	doc, err := Parse([]byte(personDoc), "person.yaml")
	require.NoError(t, err)

	first := func(opts ...Option) any {
		c, err := Build(doc, opts...)
		require.NoError(t, err)
		recs, err := c.Generate("Person", 1)
		require.NoError(t, err)
		id, _ := recs[0].Get("$id")
		return id
	}
	assert.Equal(t, first(WithSeed(99)), first(WithSeed(99)))
	assert.NotEqual(t, first(WithSeed(99)), first(WithSeed(100)))
}

func TestBuild_IdentityOverride(t *testing.T) {
	c := mustBuild(t, personDoc, WithIdentity("short"))
	recs, err := c.Generate("Person", 1)
	require.NoError(t, err)
	id, _ := recs[0].Get("$id")
	assert.Regexp(t, `^[0-9a-f]{16}$`, id)
}

func TestBuild_Defaults(t *testing.T) {
	src := `
seed: 3
entities:
  - name: Reading
    fields:
      - {name: level, type: integer}
      - {name: ratio, type: decimal, min: 0, max: 1}
      - {name: taken, type: date}
`
	c := mustBuild(t, src)
	g, _ := c.Generator("Reading")
	f, _ := g.Field("taken")
	minISO, maxISO := f.Producer().(interface{ Bounds() (string, string) }).Bounds()
	assert.Equal(t, DefaultMinDate, minISO)
	assert.Equal(t, DefaultMaxDate, maxISO)

	records, err := c.Generate("Reading", 50)
	require.NoError(t, err)
	for _, rec := range records {
		level, _ := rec.Get("level")
		assert.GreaterOrEqual(t, level.(int64), int64(0))
		assert.LessOrEqual(t, level.(int64), int64(DefaultSpan))

		ratio, _ := rec.Get("ratio")
		r := ratio.(float64)
		assert.InDelta(t, r, float64(int(r*100+0.5))/100, 1e-9)
	}
}

func TestBuild_EntityAndReference(t *testing.T) {
	src := `
entities:
  - name: Address
    fields:
      - {name: city, type: enum, values: [Denver, Austin]}
  - name: Person
    fields:
      - {name: first, type: faker, faker: first_name}
      - {name: alias, type: reference, entity: Person, key: first}
      - {name: home, type: entity, entity: Address}
      - {name: city, type: reference, entity: Address}
      - {name: tags, type: dict, dict: tags, count: {min: 2, max: 2}}
      - {name: handle, type: expr, expr: 'first + "@" + string(len(tags))'}
`
	c := mustBuild(t, src)
	records, err := c.Generate("Person", 1)
	require.NoError(t, err)
	rec := records[0]

	first, _ := rec.Get("first")
	assert.NotEmpty(t, first)

	home, _ := rec.Get("home")
	require.IsType(t, generator.Record{}, home)
	homeCity, _ := home.(generator.Record).Get("city")
	assert.Contains(t, []any{"Denver", "Austin"}, homeCity)

	city, _ := rec.Get("city")
	assert.Contains(t, []any{"Denver", "Austin"}, city)

	tags, _ := rec.Get("tags")
	assert.Equal(t, []any{"from dictionary tags", "from dictionary tags"}, tags)

	handle, _ := rec.Get("handle")
	assert.Equal(t, first.(string)+"@2", handle)
}

func TestBuild_BuildOrderFollowsDependencies(t *testing.T) {
	src := `
entities:
  - name: Manager
    extends: Employee
    fields:
      - {name: reports, type: integer, min: 1, max: 9}
  - name: Order
    fields:
      - {name: buyer, type: entity, entity: Customer}
  - name: Employee
    fields:
      - {name: name, type: string, len: 4}
  - name: Customer
    fields:
      - {name: name, type: string, len: 6}
`
	c := mustBuild(t, src)
	assert.Equal(t, []string{"Manager", "Order", "Employee", "Customer"}, c.EntityNames())

	mgr, _ := c.Generator("Manager")
	assert.True(t, mgr.HasField("name"))

	orders, err := c.Generate("Order", 1)
	require.NoError(t, err)
	buyer, _ := orders[0].Get("buyer")
	name, _ := buyer.(generator.Record).Get("name")
	assert.Len(t, name, 6)
}

func TestBuild_Invalid(t *testing.T) {
	_, err := Build(&Document{Entities: []Entity{{Name: "A", Extends: "B"}}})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestCatalog_Run(t *testing.T) {
	c := mustBuild(t, personDoc)

	results, err := c.Run(nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Person", results[0].Entity)
	assert.Len(t, results[0].Records, 2)
	assert.Equal(t, "Employee", results[1].Entity)
	assert.Len(t, results[1].Records, 3)

	results, err = c.Run([]PlanEntry{{Entity: "Employee", Count: 0}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Records)

	_, err = c.Run([]PlanEntry{{Entity: "Ghost", Count: 1}})
	assert.ErrorIs(t, err, ErrUnknownEntity)

	_, err = c.Run([]PlanEntry{{Entity: "Person", Count: -1}})
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

const ticketDoc = `
entities:
  - name: Ticket
    fields:
      - name: number
        type: integer
        min: 1
        max: 20
        unique: true
      - name: status
        type: literal
        distribution:
          type: percent
          weights: [75, 25]
          bins: [{value: open}, {value: closed}]
      - name: priority
        type: integer
        distribution:
          type: weighted
          weights: [0, 1]
          bins: [{min: 1, max: 3}, {min: 10, max: 12}]
  - name: Escalation
    extends: Ticket
generate:
  - {entity: Ticket, count: 8}
  - {entity: Escalation, count: 4}
`

func TestCatalog_DistributionAndUnique(t *testing.T) {
	c := mustBuild(t, ticketDoc, WithSeed(3))

	results, err := c.Run(nil)
	require.NoError(t, err)

	numbers := map[any]bool{}
	statuses := map[any]int{}
	for _, res := range results {
		for _, rec := range res.Records {
			n, _ := rec.Get("number")
			assert.False(t, numbers[n], "number %v repeated", n)
			numbers[n] = true

			p, _ := rec.Get("priority")
			assert.GreaterOrEqual(t, p.(int64), int64(10))
		}
	}
	assert.Len(t, numbers, 12)

	for _, rec := range results[0].Records {
		s, _ := rec.Get("status")
		statuses[s]++
	}
	assert.Equal(t, map[any]int{"open": 6, "closed": 2}, statuses)
}

func TestCatalog_RunChecksUniqueValuesFirst(t *testing.T) {
	c := mustBuild(t, ticketDoc)

	_, err := c.Run([]PlanEntry{{Entity: "Ticket", Count: 15}, {Entity: "Escalation", Count: 6}})
	require.ErrorIs(t, err, ErrInvalidPlan)
	assert.ErrorIs(t, err, generator.ErrNotEnoughUnique)

	// Nothing was drawn, so the whole domain is still available.
	results, err := c.Run([]PlanEntry{{Entity: "Ticket", Count: 20}})
	require.NoError(t, err)
	assert.Len(t, results[0].Records, 20)

	_, err = c.Generate("Escalation", 1)
	assert.ErrorIs(t, err, generator.ErrNotEnoughUnique)
}

func TestCatalog_RunWithoutPlan(t *testing.T) {
	src := `
entities:
  - name: A
    fields: [{name: x, type: bool}]
  - name: B
    fields: [{name: y, type: bool}]
`
	results, err := mustBuild(t, src).Run(nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Entity)
	assert.Len(t, results[0].Records, 1)
	assert.Equal(t, "B", results[1].Entity)
}

func TestMarshal_LoadsBack(t *testing.T) {
	doc, err := Parse([]byte(personDoc), "person.yaml")
	require.NoError(t, err)

	data, err := Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sources")

	again, err := Parse(data, "again.yaml")
	require.NoError(t, err)
	assert.Equal(t, doc.Entities, again.Entities)
	assert.Equal(t, doc.Generate, again.Generate)
}

func TestDocumentSchema_IsJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(DocumentSchema()), &v))
	assert.Equal(t, "object", v["type"])
}

func TestSortEntities(t *testing.T) {
	doc := &Document{Entities: []Entity{
		{Name: "Manager", Extends: "Employee"},
		{Name: "Order", Fields: []Field{{Name: "buyer", Type: "entity", Entity: "Customer"}}},
		{Name: "Employee"},
		{Name: "Customer"},
	}}
	require.NoError(t, SortEntities(doc))
	assert.Equal(t, []string{"Employee", "Manager", "Customer", "Order"}, doc.EntityNames())

	cyclic := &Document{Entities: []Entity{{Name: "A", Extends: "B"}, {Name: "B", Extends: "A"}}}
	assert.ErrorIs(t, SortEntities(cyclic), ErrInvalidDocument)
}

func TestExamples(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			doc, err := LoadFile(path)
			require.NoError(t, err)
			c, err := Build(doc, WithSeed(1))
			require.NoError(t, err)

			results, err := c.Run(nil)
			require.NoError(t, err)
			for i, r := range results {
				assert.Len(t, r.Records, doc.Generate[i].Count, r.Entity)
			}
		})
	}
}
