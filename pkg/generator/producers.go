package generator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/fixturegen/internal/id"
	"github.com/getmockd/fixturegen/pkg/datefmt"
)

type uuidProducer struct {
	ids id.Provider
}

func (p uuidProducer) One() any { return p.ids.Next() }

type literalProducer struct {
	value any
}

func (p literalProducer) One() any { return p.value }

// referenceProducer delegates to a field of another generator, looked up by
// name on every call.
type referenceProducer struct {
	generator *Generator
	key       string
}

func (p referenceProducer) One() any {
	return p.oneFor(Record{})
}

func (p referenceProducer) oneFor(rec Record) any {
	f, ok := p.generator.Field(p.key)
	if !ok {
		return nil
	}
	return f.valueFor(rec)
}

func (p referenceProducer) deferred() bool {
	f, ok := p.generator.Field(p.key)
	return ok && f.deferred()
}

// entityProducer nests exactly one record of another generator per call.
type entityProducer struct {
	entity *Generator
}

func (p entityProducer) One() any {
	return p.entity.One()
}

type boolProducer struct {
	rnd Randomizer
}

func (p boolProducer) One() any { return p.rnd.Bool() }

type stringProducer struct {
	rnd    Randomizer
	length int
}

func (p stringProducer) One() any { return p.rnd.AlphaNumeric(p.length) }

type integerProducer struct {
	rnd      Randomizer
	min, max int64
}

func (p integerProducer) One() any { return p.rnd.IntRange(p.min, p.max) }

type decimalProducer struct {
	rnd       Randomizer
	min, max  float64
	precision int
}

func (p decimalProducer) One() any { return p.rnd.Amount(p.min, p.max, p.precision) }

// dateProducer draws between UTC bounds and reports them as ISO text.
type dateProducer struct {
	rnd            Randomizer
	minISO, maxISO string
	min, max       time.Time
}

func newDateProducer(rnd Randomizer, min, max time.Time) dateProducer {
	return dateProducer{
		rnd:    rnd,
		min:    min.UTC(),
		max:    max.UTC(),
		minISO: datefmt.ISOUTC(min),
		maxISO: datefmt.ISOUTC(max),
	}
}

func (p dateProducer) One() any { return p.rnd.DateBetween(p.min, p.max) }

// Bounds returns the normalized bounds.
func (p dateProducer) Bounds() (string, string) { return p.minISO, p.maxISO }

type dictProducer struct {
	name string
}

func (p dictProducer) One() any { return "from dictionary " + p.name }

type enumProducer struct {
	rnd    Randomizer
	values []any
}

func (p enumProducer) One() any {
	if len(p.values) == 0 {
		return nil
	}
	return p.values[p.rnd.IntN(len(p.values))]
}

type serialProducer struct {
	sequences *SequenceStore
	key       string
	start     int64
}

func (p serialProducer) One() any { return p.sequences.Next(p.key, p.start) }

type fakerProducer struct {
	rnd  Randomizer
	name string
}

func (p fakerProducer) One() any {
	v, err := p.rnd.Faker(p.name)
	if err != nil {
		return nil
	}
	return v
}

// exprProducer computes a value from the record's other fields.
type exprProducer struct {
	source  string
	program *vm.Program
	logger  *slog.Logger
}

func newExprProducer(source string, logger *slog.Logger) (exprProducer, error) {
	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return exprProducer{}, fmt.Errorf("%w: compile %q: %w", ErrInvalidExpression, source, err)
	}
	return exprProducer{source: source, program: program, logger: logger}, nil
}

func (p exprProducer) One() any {
	return p.oneFor(Record{})
}

func (p exprProducer) oneFor(rec Record) any {
	out, err := expr.Run(p.program, rec.Map())
	if err != nil {
		p.logger.Warn("field expression failed", "expr", p.source, "error", err)
		return nil
	}
	return out
}

func (p exprProducer) deferred() bool { return true }
