package random

import (
	"math"
	mathrand "math/rand/v2"
	"sync"
	"time"
)

const alphaNumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Source produces random values. The zero value is not usable; call New or
// NewSeeded.
type Source struct {
	mu  sync.Mutex
	rng *mathrand.Rand // nil means the global source
}

// New returns a Source backed by the automatically seeded global generator.
func New() *Source {
	return &Source{}
}

// NewSeeded returns a deterministic Source.
func NewSeeded(seed uint64) *Source {
	return &Source{rng: mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Seeded reports whether the Source is deterministic.
func (s *Source) Seeded() bool {
	return s.rng != nil
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	if s.rng == nil {
		return mathrand.IntN(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

func (s *Source) int64N(n int64) int64 {
	if s.rng == nil {
		return mathrand.Int64N(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int64N(n)
}

func (s *Source) uint64() uint64 {
	if s.rng == nil {
		return mathrand.Uint64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Uint64()
}

// Float64 returns a random float64 in [0, 1).
func (s *Source) Float64() float64 {
	if s.rng == nil {
		return mathrand.Float64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Bool returns true or false with equal probability.
func (s *Source) Bool() bool {
	return s.IntN(2) == 1
}

// AlphaNumeric returns a string of exactly n characters from [a-zA-Z0-9].
func (s *Source) AlphaNumeric(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alphaNumeric[s.IntN(len(alphaNumeric))]
	}
	return string(b)
}

// IntRange returns a random integer in [min, max]. Reversed bounds are
// swapped.
func (s *Source) IntRange(min, max int64) int64 {
	if min > max {
		min, max = max, min
	}
	span := uint64(max) - uint64(min)
	if span < math.MaxInt64 {
		return min + s.int64N(int64(span)+1)
	}
	for {
		if v := s.uint64(); v <= span {
			return int64(uint64(min) + v)
		}
	}
}

// Amount returns a decimal in [min, max] with at most precision fractional
// digits. When no grid point of that precision lies inside the range, min is
// returned rounded to precision.
func (s *Source) Amount(min, max float64, precision int) float64 {
	if min > max {
		min, max = max, min
	}
	if precision < 0 {
		precision = 0
	}
	scale := math.Pow10(precision)
	lo := math.Ceil(min * scale)
	hi := math.Floor(max * scale)
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return clamp(lerp(min, max, s.Float64()), min, max)
	}
	if lo > hi {
		return math.Round(min*scale) / scale
	}
	if hi-lo < maxExactSpan {
		return (lo + float64(s.int64N(int64(hi-lo)+1))) / scale
	}
	// Too many grid points to count in an int64.
	v := math.Round(lerp(lo, hi, s.Float64()))
	return clamp(v, lo, hi) / scale
}

// maxExactSpan is 2^63, the first span Int64N cannot draw from.
const maxExactSpan = float64(1 << 63)

// lerp interpolates between a and b without overflowing on wide ranges.
func lerp(a, b, u float64) float64 {
	return a*(1-u) + b*u
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// NormFloat64 returns a normally distributed float64 with mean 0 and
// standard deviation 1.
func (s *Source) NormFloat64() float64 {
	if s.rng == nil {
		return mathrand.NormFloat64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.NormFloat64()
}

// DateBetween returns an instant in [min, max] at millisecond resolution.
// Reversed bounds are swapped. The span is counted in Unix milliseconds, so
// ranges wider than a time.Duration are covered in full.
func (s *Source) DateBetween(min, max time.Time) time.Time {
	if max.Before(min) {
		min, max = max, min
	}
	from, to := min.UnixMilli(), max.UnixMilli()
	if to <= from {
		return min.UTC()
	}
	t := time.UnixMilli(s.IntRange(from, to))
	switch {
	case t.Before(min):
		t = min
	case t.After(max):
		t = max
	}
	return t.UTC()
}

// Pick returns a uniformly chosen element of items. It returns the zero value
// for an empty slice.
func Pick[T any](s *Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[s.IntN(len(items))]
}
