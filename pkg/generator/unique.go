package generator

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"
)

// maxUniqueAttempts bounds the random draws made for a fresh value before a
// unique field falls back to scanning its domain.
const maxUniqueAttempts = 64

// uniqueSet remembers every value a unique field has produced.
type uniqueSet struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	field  string
	logger *slog.Logger
}

func newUniqueSet(field string, logger *slog.Logger) *uniqueSet {
	return &uniqueSet{seen: make(map[string]struct{}), field: field, logger: logger}
}

func (u *uniqueSet) used() int64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return int64(len(u.seen))
}

// draw returns a value of f not produced before. Random draws come first;
// an enumerable domain is then scanned from a random offset. When every
// value is taken the last draw is returned and a warning logged.
func (u *uniqueSet) draw(f *Field) any {
	u.mu.Lock()
	defer u.mu.Unlock()

	var v any
	for range maxUniqueAttempts {
		v = f.producer.One()
		if u.claim(v) {
			return v
		}
	}

	if e, ok := f.producer.(enumerable); ok {
		if n := e.possibilities(); n > 0 {
			start := int64(0)
			if f.rnd != nil {
				start = f.rnd.IntRange(0, n-1)
			}
			for i := range n {
				if c := e.nth((start + i) % n); u.claim(c) {
					return c
				}
			}
		}
	}

	u.logger.Warn("unique values exhausted", "field", u.field, "used", len(u.seen))
	return v
}

func (u *uniqueSet) claim(v any) bool {
	k := uniqueKey(v)
	if _, dup := u.seen[k]; dup {
		return false
	}
	u.seen[k] = struct{}{}
	return true
}

func uniqueKey(v any) string {
	if t, ok := v.(time.Time); ok {
		return "time:" + t.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%T:%v", v, v)
}

// enumerable is implemented by producers whose values can be counted and
// listed. possibilities returns -1 when the domain is too large to count.
type enumerable interface {
	possibilities() int64
	nth(i int64) any
}

func (p literalProducer) possibilities() int64 { return 1 }
func (p literalProducer) nth(int64) any        { return p.value }

func (p dictProducer) possibilities() int64 { return 1 }
func (p dictProducer) nth(int64) any        { return p.One() }

func (p stringProducer) possibilities() int64 {
	n := int64(1)
	for range p.length {
		if n > math.MaxInt64/int64(len(alphabet)) {
			return -1
		}
		n *= int64(len(alphabet))
	}
	return n
}

func (p stringProducer) nth(i int64) any {
	b := make([]byte, max(p.length, 0))
	for j := len(b) - 1; j >= 0; j-- {
		b[j] = alphabet[i%int64(len(alphabet))]
		i /= int64(len(alphabet))
	}
	return string(b)
}

// alphabet lists the characters of random strings.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func (p integerProducer) possibilities() int64 {
	lo, hi := p.min, p.max
	if lo > hi {
		lo, hi = hi, lo
	}
	span := uint64(hi) - uint64(lo)
	if span >= math.MaxInt64 {
		return -1
	}
	return int64(span) + 1
}

func (p integerProducer) nth(i int64) any {
	return min(p.min, p.max) + i
}

// grid returns the scaled integer bounds a decimal draws between.
func (p decimalProducer) grid() (lo, hi, scale float64, ok bool) {
	a, b := p.min, p.max
	if a > b {
		a, b = b, a
	}
	scale = math.Pow10(max(p.precision, 0))
	lo, hi = math.Ceil(a*scale), math.Floor(b*scale)
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, 0, false
	}
	if lo > hi {
		lo = math.Round(a * scale)
		hi = lo
	}
	return lo, hi, scale, hi-lo < 1<<53
}

func (p decimalProducer) possibilities() int64 {
	lo, hi, _, ok := p.grid()
	if !ok {
		return -1
	}
	return int64(hi-lo) + 1
}

func (p decimalProducer) nth(i int64) any {
	lo, _, scale, _ := p.grid()
	return (lo + float64(i)) / scale
}

func (p dateProducer) possibilities() int64 {
	from, to := p.min.UnixMilli(), p.max.UnixMilli()
	if from > to {
		from, to = to, from
	}
	if uint64(to)-uint64(from) >= math.MaxInt64 {
		return -1
	}
	return to - from + 1
}

func (p dateProducer) nth(i int64) any {
	lo, hi := p.min, p.max
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	t := time.UnixMilli(lo.UnixMilli() + i)
	switch {
	case t.Before(lo):
		t = lo
	case t.After(hi):
		t = hi
	}
	return t.UTC()
}

func (p enumProducer) distinct() []any {
	seen := make(map[string]bool, len(p.values))
	var out []any
	for _, v := range p.values {
		if k := uniqueKey(v); !seen[k] {
			seen[k] = true
			out = append(out, v)
		}
	}
	return out
}

func (p enumProducer) possibilities() int64 { return int64(len(p.distinct())) }
func (p enumProducer) nth(i int64) any      { return p.distinct()[i] }

// Uniquable reports whether fields of kind accept Options.Unique.
func Uniquable(kind Kind) bool {
	switch kind {
	case KindBool, KindEntity, KindExpr, KindReference:
		return false
	}
	return true
}

// Possibilities returns how many distinct values the field can produce per
// call, or -1 when the number is unknown or too large to count. A reference
// field reports its target's count.
func (f *Field) Possibilities() int64 {
	switch p := f.producer.(type) {
	case referenceProducer:
		if tf, ok := p.generator.Field(p.key); ok {
			return tf.Possibilities()
		}
		return 0
	case boolProducer:
		return 2
	case enumerable:
		return p.possibilities()
	default:
		return -1
	}
}

// Unique reports whether the field keeps its values distinct.
func (f *Field) Unique() bool {
	return f.unique != nil
}

// Demand asks for Count records of Generator.
type Demand struct {
	Generator *Generator
	Count     int
}

// EnsureGeneratable returns an error wrapping ErrNotEnoughUnique when count
// more records would need more distinct values than a unique field has
// left, counting repetition, nested entities and references.
func (g *Generator) EnsureGeneratable(count int) error {
	return EnsureGeneratable(Demand{Generator: g, Count: count})
}

// EnsureGeneratable is Generator.EnsureGeneratable for several generations
// run one after another, which draw from the same unique fields.
func EnsureGeneratable(demands ...Demand) error {
	d := &uniqueDemand{need: make(map[*Field]int64)}
	for _, dm := range demands {
		if dm.Generator != nil && dm.Count > 0 {
			dm.Generator.addDemand(int64(dm.Count), d, 0)
		}
	}

	for _, f := range d.order {
		n := f.Possibilities()
		if n < 0 {
			continue
		}
		if left := n - f.unique.used(); left < d.need[f] {
			return fmt.Errorf("%w for %s: %d left, %d needed", ErrNotEnoughUnique, f.unique.field, max(left, 0), d.need[f])
		}
	}
	return nil
}

type uniqueDemand struct {
	order []*Field
	need  map[*Field]int64
}

func (d *uniqueDemand) add(f *Field, n int64) {
	if _, ok := d.need[f]; !ok {
		d.order = append(d.order, f)
	}
	d.need[f] = addCapped(d.need[f], n)
}

// maxDemandDepth stops the walk through nested entities and references.
const maxDemandDepth = 32

func (g *Generator) addDemand(n int64, d *uniqueDemand, depth int) {
	if depth > maxDemandDepth {
		return
	}
	for _, name := range g.order {
		g.fields[name].addDemand(n, d, depth)
	}
}

func (f *Field) addDemand(n int64, d *uniqueDemand, depth int) {
	if f.count != nil {
		n = mulCapped(n, int64(max(f.count.Min, f.count.Max, 0)))
	}
	switch p := f.producer.(type) {
	case referenceProducer:
		if tf, ok := p.generator.Field(p.key); ok && depth < maxDemandDepth {
			tf.addDemand(n, d, depth+1)
		}
	case entityProducer:
		p.entity.addDemand(n, d, depth+1)
	}
	if f.unique != nil {
		d.add(f, n)
	}
}

func mulCapped(a, b int64) int64 {
	if a != 0 && b > math.MaxInt64/a {
		return math.MaxInt64
	}
	return a * b
}

func addCapped(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
