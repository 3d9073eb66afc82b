package generator

import (
	"fmt"

	"github.com/getmockd/fixturegen/pkg/random"
)

// Producer yields one value of a field's kind per call.
type Producer interface {
	One() any
}

// recordProducer is implemented by producers whose value depends on the
// fields already generated for the current record.
type recordProducer interface {
	Producer
	oneFor(rec Record) any
	deferred() bool
}

// CountRange turns a field into a sequence whose length is drawn uniformly
// from [Min, Max].
type CountRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Count draws a length from the range. Reversed bounds are swapped and
// negative lengths clamp to zero.
func (c CountRange) Count(r interface{ IntN(int) int }) int {
	lo, hi := c.Min, c.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

func (c CountRange) String() string {
	return fmt.Sprintf("[%d,%d]", c.Min, c.Max)
}

// Field binds a Producer to an optional repetition policy.
type Field struct {
	kind     Kind
	producer Producer
	count    *CountRange
	rnd      Randomizer
	unique   *uniqueSet
}

// NewField creates a Field. A nil count yields scalar values. rnd samples the
// repetition count; when it is nil and count is set, an unseeded source is
// used.
func NewField(kind Kind, p Producer, count *CountRange, rnd Randomizer) *Field {
	if rnd == nil && count != nil {
		rnd = random.New()
	}
	return &Field{kind: kind, producer: p, count: count, rnd: rnd}
}

// Kind returns the field's kind.
func (f *Field) Kind() Kind {
	return f.kind
}

// CountRange returns the repetition policy, or nil.
func (f *Field) CountRange() *CountRange {
	return f.count
}

// Producer returns the field's value strategy.
func (f *Field) Producer() Producer {
	return f.producer
}

// One produces exactly one value. It panics with an error wrapping
// ErrNotImplemented when the field has no Producer.
func (f *Field) One() any {
	return f.oneFor(Record{})
}

// Value produces One() directly, or a []any of One() results when the field
// has a CountRange.
func (f *Field) Value() any {
	return f.valueFor(Record{})
}

func (f *Field) oneFor(rec Record) any {
	if f.producer == nil {
		panic(fmt.Errorf("%w: %s field", ErrNotImplemented, f.kind))
	}
	if f.unique != nil {
		return f.unique.draw(f)
	}
	if rp, ok := f.producer.(recordProducer); ok {
		return rp.oneFor(rec)
	}
	return f.producer.One()
}

func (f *Field) valueFor(rec Record) any {
	if f.count == nil {
		return f.oneFor(rec)
	}
	n := f.count.Count(f.rnd)
	values := make([]any, n)
	for i := range values {
		values[i] = f.oneFor(rec)
	}
	return values
}

// deferred reports whether the field must be evaluated after the record's
// other fields.
func (f *Field) deferred() bool {
	rp, ok := f.producer.(recordProducer)
	return ok && rp.deferred()
}
