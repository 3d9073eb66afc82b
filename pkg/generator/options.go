package generator

import (
	"log/slog"
	"time"

	"github.com/getmockd/fixturegen/internal/id"
	"github.com/getmockd/fixturegen/pkg/logging"
	"github.com/getmockd/fixturegen/pkg/random"
)

// Randomizer is the random-value capability fields draw from.
// *random.Source implements it.
type Randomizer interface {
	IntN(n int) int
	Bool() bool
	AlphaNumeric(n int) string
	IntRange(min, max int64) int64
	Amount(min, max float64, precision int) float64
	DateBetween(min, max time.Time) time.Time
	Faker(name string) (string, error)
	Float64() float64
	NormFloat64() float64
}

// Options configures one field. Each kind reads only the options listed for
// it; the rest are ignored.
type Options struct {
	// Value is the constant of a literal field.
	Value any

	// Len is the length of a string field.
	Len int

	// Min and Max bound integer and decimal fields, inclusive.
	Min float64
	Max float64

	// Precision is the number of fractional digits of a decimal field.
	Precision int

	// MinDate and MaxDate bound a date field.
	MinDate time.Time
	MaxDate time.Time

	// Name is the dictionary of a dict field or the faker of a faker field.
	Name string

	// Values are the choices of an enum field.
	Values []any

	// Start is the first value of a serial field. Nil means 1.
	Start *int64

	// Expr is the expression of an expr field. It is evaluated against the
	// record's other fields.
	Expr string

	// Key and Generator identify the field a reference delegates to.
	Key       string
	Generator *Generator

	// Entity is the generator of a nested entity field.
	Entity *Generator

	// Count makes the field produce a sequence of values.
	Count *CountRange

	// Unique makes every value the field produces distinct from the ones it
	// produced before. See Generator.EnsureGeneratable.
	Unique bool
}

// env holds the providers shared by a family of generators.
type env struct {
	ids       id.Provider
	rnd       Randomizer
	sequences *SequenceStore
	logger    *slog.Logger
}

func defaultEnv() *env {
	return &env{
		ids:       id.UUIDProvider{},
		rnd:       random.New(),
		sequences: NewSequenceStore(),
		logger:    logging.Nop(),
	}
}

// Option configures a Generator at construction.
type Option func(*env)

// WithIdentity sets the provider of $id values.
func WithIdentity(p id.Provider) Option {
	return func(e *env) {
		if p != nil {
			e.ids = p
		}
	}
}

// WithRandom sets the random-value source.
func WithRandom(r Randomizer) Option {
	return func(e *env) {
		if r != nil {
			e.rnd = r
		}
	}
}

// WithSequences sets the store backing serial fields.
func WithSequences(s *SequenceStore) Option {
	return func(e *env) {
		if s != nil {
			e.sequences = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *env) {
		if l != nil {
			e.logger = l
		}
	}
}
