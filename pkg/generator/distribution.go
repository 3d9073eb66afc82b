package generator

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"
	"time"
)

// DistributionType names how a distribution picks among its bins.
type DistributionType string

const (
	// DistributionUniform picks every bin with the same probability.
	DistributionUniform DistributionType = "uniform"
	// DistributionWeighted picks bins in proportion to their weights.
	DistributionWeighted DistributionType = "weighted"
	// DistributionPercent keeps the running share of each bin as close as
	// possible to its weight, read as a percentage.
	DistributionPercent DistributionType = "percent"
	// DistributionNormal draws from a bell curve over a single numeric or
	// date bin.
	DistributionNormal DistributionType = "normal"
)

// DistributionTypes returns the supported distribution types.
func DistributionTypes() []DistributionType {
	return []DistributionType{DistributionUniform, DistributionWeighted, DistributionPercent, DistributionNormal}
}

// ParseDistributionType returns the named type. The empty name is uniform.
func ParseDistributionType(s string) (DistributionType, error) {
	if s == "" {
		return DistributionUniform, nil
	}
	t := DistributionType(s)
	if !slices.Contains(DistributionTypes(), t) {
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidDistribution, s)
	}
	return t, nil
}

// Distribution describes a field whose values come from one of several bins.
// Every bin is configured like a field of the distribution's kind.
type Distribution struct {
	Type    DistributionType
	Weights []float64
	Bins    []Options
}

var distributionKinds = []Kind{
	KindLiteral, KindBool, KindString, KindInteger, KindDecimal,
	KindDate, KindDict, KindEnum, KindFaker,
}

// WithDistribution registers under name a field that draws each value from
// one of d's bins. Bins ignore Count and Unique. On error the schema is left
// unchanged.
func (g *Generator) WithDistribution(name string, kind Kind, d Distribution) (*Generator, error) {
	f, err := g.newDistributionField(name, kind, d)
	if err != nil {
		return g, fmt.Errorf("field %s: %w", name, err)
	}
	g.set(name, f)
	g.env.logger.Debug("registered distribution", "schema", g.name, "field", name,
		"kind", string(kind), "type", string(d.Type), "bins", len(d.Bins))
	return g, nil
}

// Check reports whether d can drive a field of the given kind. It looks at
// the type, the weights and the number of bins, not inside the bins.
func (d Distribution) Check(kind Kind) error {
	typ, err := ParseDistributionType(string(d.Type))
	if err != nil {
		return err
	}
	if len(d.Bins) == 0 {
		return fmt.Errorf("%w: no bins", ErrInvalidDistribution)
	}
	if !slices.Contains(distributionKinds, kind) {
		return fmt.Errorf("%w: %s bins are not supported", ErrInvalidDistribution, kind)
	}

	switch typ {
	case DistributionWeighted:
		_, err = checkWeights(d.Weights, len(d.Bins))
	case DistributionPercent:
		var total float64
		if total, err = checkWeights(d.Weights, len(d.Bins)); err == nil && math.Abs(total-100) > 1e-9 {
			err = fmt.Errorf("%w: percentages add up to %g, not 100", ErrInvalidDistribution, total)
		}
	default:
		if len(d.Weights) > 0 {
			return fmt.Errorf("%w: %s takes no weights", ErrInvalidDistribution, typ)
		}
	}
	if err != nil {
		return err
	}

	if typ == DistributionNormal {
		if len(d.Bins) != 1 {
			return fmt.Errorf("%w: normal needs exactly one bin, got %d", ErrInvalidDistribution, len(d.Bins))
		}
		if kind != KindInteger && kind != KindDecimal && kind != KindDate {
			return fmt.Errorf("%w: normal needs an integer, decimal or date bin", ErrInvalidDistribution)
		}
	}
	return nil
}

func (g *Generator) newDistributionField(name string, kind Kind, d Distribution) (*Field, error) {
	if err := d.Check(kind); err != nil {
		return nil, err
	}
	typ, _ := ParseDistributionType(string(d.Type))

	bins := make([]*Field, len(d.Bins))
	for i, opts := range d.Bins {
		opts.Count, opts.Unique = nil, false
		f, err := g.newField(name, kind, opts)
		if err != nil {
			return nil, fmt.Errorf("bin %d: %w", i, err)
		}
		bins[i] = f
	}

	rnd := g.env.rnd
	var p Producer
	switch typ {
	case DistributionWeighted:
		p = newWeightedProducer(rnd, bins, d.Weights)
	case DistributionPercent:
		p = &percentProducer{bins: bins, weights: slices.Clone(d.Weights), counts: make([]float64, len(bins))}
	case DistributionNormal:
		np, err := newNormalProducer(rnd, bins[0].producer)
		if err != nil {
			return nil, err
		}
		p = np
	default:
		p = &uniformProducer{rnd: rnd, bins: bins}
	}

	return NewField(kind, p, nil, rnd), nil
}

func checkWeights(weights []float64, bins int) (float64, error) {
	if len(weights) != bins {
		return 0, fmt.Errorf("%w: %d weights for %d bins", ErrInvalidDistribution, len(weights), bins)
	}
	var total float64
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("%w: weight %g", ErrInvalidDistribution, w)
		}
		total += w
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: weights add up to zero", ErrInvalidDistribution)
	}
	return total, nil
}

type uniformProducer struct {
	rnd  Randomizer
	bins []*Field
}

func (p *uniformProducer) One() any {
	return p.bins[p.rnd.IntN(len(p.bins))].One()
}

type weightedProducer struct {
	rnd        Randomizer
	bins       []*Field
	cumulative []float64
	total      float64
}

func newWeightedProducer(rnd Randomizer, bins []*Field, weights []float64) *weightedProducer {
	cumulative := make([]float64, len(weights))
	var sum float64
	for i, w := range weights {
		sum += w
		cumulative[i] = sum
	}
	return &weightedProducer{rnd: rnd, bins: bins, cumulative: cumulative, total: sum}
}

func (p *weightedProducer) One() any {
	x := p.rnd.Float64() * p.total
	i := sort.Search(len(p.cumulative), func(i int) bool { return p.cumulative[i] > x })
	if i == len(p.cumulative) {
		// Rounding left x at the very top.
		i = p.lastNonEmpty()
	}
	return p.bins[i].One()
}

func (p *weightedProducer) lastNonEmpty() int {
	for i := len(p.cumulative) - 1; i > 0; i-- {
		if p.cumulative[i] > p.cumulative[i-1] {
			return i
		}
	}
	return 0
}

// percentProducer picks, on every call, the bin furthest below its share.
// Ties go to the earlier bin.
type percentProducer struct {
	mu      sync.Mutex
	bins    []*Field
	weights []float64
	counts  []float64
	total   float64
}

func (p *percentProducer) One() any {
	p.mu.Lock()
	p.total++
	best, gap := 0, math.Inf(-1)
	for i, w := range p.weights {
		if w == 0 {
			continue
		}
		if d := w*p.total/100 - p.counts[i]; d > gap {
			best, gap = i, d
		}
	}
	p.counts[best]++
	p.mu.Unlock()
	return p.bins[best].One()
}

// normalProducer draws around the middle of a bin's range, with the range
// spanning six standard deviations. Draws are clamped to the range.
type normalProducer struct {
	rnd      Randomizer
	min, max float64
	convert  func(float64) any
}

func newNormalProducer(rnd Randomizer, bin Producer) (*normalProducer, error) {
	p := &normalProducer{rnd: rnd}
	switch b := bin.(type) {
	case integerProducer:
		lo, hi := min(b.min, b.max), max(b.min, b.max)
		p.min, p.max = float64(lo), float64(hi)
		p.convert = func(v float64) any {
			switch {
			case v <= p.min:
				return lo
			case v >= p.max:
				return hi
			}
			return min(max(int64(math.Round(v)), lo), hi)
		}
	case decimalProducer:
		lo, hi, scale, _ := b.grid()
		if scale == 0 {
			return nil, fmt.Errorf("%w: normal range is too wide", ErrInvalidDistribution)
		}
		p.min, p.max = min(b.min, b.max), max(b.min, b.max)
		p.convert = func(v float64) any { return min(max(math.Round(v*scale), lo), hi) / scale }
	case dateProducer:
		lo, hi := b.min, b.max
		if hi.Before(lo) {
			lo, hi = hi, lo
		}
		p.min, p.max = float64(lo.UnixMilli()), float64(hi.UnixMilli())
		p.convert = func(v float64) any {
			t := time.UnixMilli(int64(math.Round(v))).UTC()
			switch {
			case t.Before(lo):
				return lo
			case t.After(hi):
				return hi
			}
			return t
		}
	default:
		return nil, fmt.Errorf("%w: normal needs an integer, decimal or date bin", ErrInvalidDistribution)
	}
	if math.IsInf(p.max-p.min, 0) {
		return nil, fmt.Errorf("%w: normal range is too wide", ErrInvalidDistribution)
	}
	return p, nil
}

func (p *normalProducer) One() any {
	mean := p.min/2 + p.max/2
	sd := (p.max - p.min) / 6
	v := mean + p.rnd.NormFloat64()*sd
	return p.convert(min(max(v, p.min), p.max))
}
