package schema

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/getmockd/fixturegen/internal/id"
	"github.com/getmockd/fixturegen/pkg/datefmt"
	"github.com/getmockd/fixturegen/pkg/generator"
	"github.com/getmockd/fixturegen/pkg/logging"
	"github.com/getmockd/fixturegen/pkg/random"
)

// Field defaults applied when a document leaves an attribute out.
const (
	DefaultPrecision = 2
	DefaultSpan      = 100
	DefaultMinDate   = "2000-01-01T00:00:00Z"
	DefaultMaxDate   = "2030-01-01T00:00:00Z"
)

// Catalog is the set of generators built from a document.
type Catalog struct {
	generators map[string]*generator.Generator
	names      []string
	plan       []PlanEntry
	logger     *slog.Logger
}

// Result holds the records generated for one plan entry.
type Result struct {
	Entity  string
	Records []generator.Record
}

// Build validates doc and turns it into a Catalog. All generators share one
// random source, identity provider and serial store. With a seed (from the
// document or WithSeed) the random source is deterministic and identities
// default to the seeded provider, so a run can be reproduced.
func Build(doc *Document, opts ...Option) (*Catalog, error) {
	o := newOptions(opts)

	if err := Validate(doc).Err(); err != nil {
		return nil, err
	}

	seed := doc.Seed
	if o.seed != nil {
		seed = o.seed
	}
	identity := doc.Identity
	if o.identity != "" {
		identity = o.identity
	}

	var (
		rnd    *random.Source
		idSeed uint64
	)
	if seed != nil {
		rnd = random.NewSeeded(*seed)
		idSeed = *seed
		if identity == "" {
			identity = id.KindSeeded
		}
	} else {
		rnd = random.New()
	}
	ids, err := id.New(identity, idSeed)
	if err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}

	genOpts := []generator.Option{
		generator.WithIdentity(ids),
		generator.WithRandom(rnd),
		generator.WithSequences(generator.NewSequenceStore()),
		generator.WithLogger(logging.Component(o.logger, "generator")),
	}

	c := &Catalog{
		generators: make(map[string]*generator.Generator, len(doc.Entities)),
		names:      doc.EntityNames(),
		plan:       append([]PlanEntry(nil), doc.Generate...),
		logger:     o.logger,
	}

	order, _ := buildOrder(doc)
	for _, name := range order {
		e, _ := doc.Entity(name)

		var g *generator.Generator
		if e.Extends != "" {
			g = generator.Extend(e.Name, c.generators[e.Extends])
		} else {
			g = generator.New(e.Name, genOpts...)
		}
		c.generators[e.Name] = g

		for i := range e.Fields {
			if err := c.addField(g, &e.Fields[i]); err != nil {
				return nil, fmt.Errorf("entity %s: %w", e.Name, err)
			}
		}
	}

	o.logger.Debug("built catalog", "entities", len(c.names), "seeded", seed != nil, "identity", identity)
	return c, nil
}

func (c *Catalog) addField(g *generator.Generator, f *Field) error {
	if f.Distribution == nil {
		kind, opts, err := c.fieldOptions(f)
		if err != nil {
			return err
		}
		_, err = g.WithField(f.Name, kind, opts)
		return err
	}

	d := generator.Distribution{
		Type:    generator.DistributionType(f.Distribution.Type),
		Weights: f.Distribution.Weights,
	}
	var kind generator.Kind
	for _, b := range f.Distribution.Bins {
		bin := f.binField(b)
		k, opts, err := c.fieldOptions(&bin)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		kind = k
		d.Bins = append(d.Bins, opts)
	}
	if kind == "" {
		var err error
		if kind, err = generator.ParseKind(f.Type); err != nil {
			return err
		}
	}
	_, err := g.WithDistribution(f.Name, kind, d)
	return err
}

func (c *Catalog) fieldOptions(f *Field) (generator.Kind, generator.Options, error) {
	kind, err := generator.ParseKind(f.Type)
	if err != nil {
		return "", generator.Options{}, err
	}

	opts := generator.Options{
		Value:  f.Value,
		Len:    f.Len,
		Values: f.Values,
		Start:  f.Start,
		Expr:   f.Expr,
		Key:    f.Key,
		Unique: f.Unique,
	}
	if f.Count != nil {
		opts.Count = &generator.CountRange{Min: f.Count.Min, Max: f.Count.Max}
	}

	switch kind {
	case generator.KindInteger, generator.KindDecimal:
		opts.Min, opts.Max = bounds(f.Min, f.Max)
		opts.Precision = DefaultPrecision
		if f.Precision != nil {
			opts.Precision = *f.Precision
		}
	case generator.KindDate:
		if opts.MinDate, err = dateOrDefault(f.MinDate, DefaultMinDate); err != nil {
			return "", opts, err
		}
		if opts.MaxDate, err = dateOrDefault(f.MaxDate, DefaultMaxDate); err != nil {
			return "", opts, err
		}
	case generator.KindDict:
		opts.Name = f.Dict
	case generator.KindFaker:
		opts.Name = f.Faker
	case generator.KindEntity:
		opts.Entity = c.generators[f.Entity]
	case generator.KindReference:
		opts.Generator = c.generators[f.Entity]
	}
	return kind, opts, nil
}

// bounds fills in whichever of min and max is missing so the range spans
// DefaultSpan.
func bounds(min, max *float64) (float64, float64) {
	switch {
	case min != nil && max != nil:
		return *min, *max
	case min != nil:
		return *min, *min + DefaultSpan
	case max != nil:
		return *max - DefaultSpan, *max
	default:
		return 0, DefaultSpan
	}
}

func dateOrDefault(v, def string) (t time.Time, err error) {
	if v == "" {
		v = def
	}
	return datefmt.Parse(v)
}

// Generator returns the generator of the named entity.
func (c *Catalog) Generator(name string) (*generator.Generator, bool) {
	g, ok := c.generators[name]
	return g, ok
}

// EntityNames returns entity names in declaration order.
func (c *Catalog) EntityNames() []string {
	return append([]string(nil), c.names...)
}

// Plan returns the document's generate entries.
func (c *Catalog) Plan() []PlanEntry {
	return append([]PlanEntry(nil), c.plan...)
}

// Generate produces count records of the named entity.
func (c *Catalog) Generate(entity string, count int) ([]generator.Record, error) {
	g, ok := c.generators[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	if err := g.EnsureGeneratable(count); err != nil {
		return nil, fmt.Errorf("%s: %w", entity, err)
	}
	records, err := g.Many(count)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entity, err)
	}
	return records, nil
}

// Run executes plan in order. An empty plan falls back to the document's
// generate entries, and when the document has none, to one record of every
// entity.
func (c *Catalog) Run(plan []PlanEntry) ([]Result, error) {
	if len(plan) == 0 {
		plan = c.plan
	}
	if len(plan) == 0 {
		plan = make([]PlanEntry, len(c.names))
		for i, name := range c.names {
			plan[i] = PlanEntry{Entity: name, Count: 1}
		}
	}

	// Unique fields are shared across entries, so check the whole plan
	// before generating anything.
	demands := make([]generator.Demand, 0, len(plan))
	for i, entry := range plan {
		if entry.Count < 0 {
			return nil, fmt.Errorf("%w: generate[%d]: negative count %d", ErrInvalidPlan, i, entry.Count)
		}
		if g, ok := c.generators[entry.Entity]; ok {
			demands = append(demands, generator.Demand{Generator: g, Count: entry.Count})
		}
	}
	if err := generator.EnsureGeneratable(demands...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}

	results := make([]Result, 0, len(plan))
	for i, entry := range plan {
		records, err := c.Generate(entry.Entity, entry.Count)
		if err != nil {
			return nil, fmt.Errorf("generate[%d]: %w", i, err)
		}
		c.logger.Debug("ran plan entry", "entity", entry.Entity, "count", entry.Count)
		results = append(results, Result{Entity: entry.Entity, Records: records})
	}
	return results, nil
}
