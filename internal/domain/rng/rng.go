// Package rng provides the deterministic random source every generator in
// this core consumes.
//
// Conventions:
//   - Generators take a Source parameter explicitly; nothing in this module
//     reads ambient randomness.
//   - A given seed plus the same call order yields a bit-identical draw
//     sequence, which is what makes sessions replayable.
//   - Weighted selection lives here, once, so no table duplicates it.
package rng

import (
	"math"
	"math/rand"
)

// Source is the draw contract consumed by the generators. Tests may
// substitute biased implementations to pin down chance-gated behavior.
type Source interface {
	// Float returns a uniform float64 in [min, max).
	Float(min, max float64) float64

	// IntBetween returns a uniform int in [min, max] inclusive.
	IntBetween(min, max int) int

	// Gaussian returns a normally distributed sample. Callers clamp.
	Gaussian(mean, stddev float64) float64

	// Chance returns true with probability p (clamped to [0,1]).
	Chance(p float64) bool

	// Shuffle randomizes the order of n elements via swap.
	Shuffle(n int, swap func(i, j int))
}

// SeededSource implements Source over a seeded math/rand generator.
type SeededSource struct {
	r *rand.Rand
}

// NewSeeded creates a deterministic source from seed.
func NewSeeded(seed int64) *SeededSource {
	return &SeededSource{r: rand.New(rand.NewSource(seed))} //nolint:gosec // deterministic seed is the point: session replay
}

// Float returns a uniform float64 in [min, max).
func (s *SeededSource) Float(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.r.Float64()*(max-min)
}

// IntBetween returns a uniform int in [min, max] inclusive.
func (s *SeededSource) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}

// Gaussian returns a sample from N(mean, stddev).
func (s *SeededSource) Gaussian(mean, stddev float64) float64 {
	return mean + s.r.NormFloat64()*stddev
}

// Chance returns true with probability p.
func (s *SeededSource) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.r.Float64() < p
}

// Shuffle randomizes the order of n elements via swap.
func (s *SeededSource) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// Weighted pairs an item with its selection weight.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// WeightedPick selects one item proportionally to its weight. Entries with
// non-positive weight are never selected. When every weight is
// non-positive (or the slice is empty) the zero value is returned with
// ok=false; callers that filtered eligibility beforehand can ignore ok.
func WeightedPick[T any](src Source, items []Weighted[T]) (T, bool) {
	var zero T
	total := 0.0
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}
	if total <= 0 {
		return zero, false
	}
	roll := src.Float(0, total)
	acc := 0.0
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		acc += it.Weight
		if roll < acc {
			return it.Item, true
		}
	}
	// Float rounding can leave roll == total; fall back to the last
	// positive-weight entry.
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Weight > 0 {
			return items[i].Item, true
		}
	}
	return zero, false
}

// Pick selects one item uniformly. Returns the zero value on an empty
// slice.
func Pick[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.IntBetween(0, len(items)-1)]
}

// Sample returns n distinct items drawn without replacement, preserving
// no particular order. When n >= len(items) a shuffled copy of the whole
// slice is returned.
func Sample[T any](src Source, items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	cp := make([]T, len(items))
	copy(cp, items)
	src.Shuffle(len(cp), func(i, j int) { cp[i], cp[j] = cp[j], cp[i] })
	if n >= len(cp) {
		return cp
	}
	return cp[:n]
}

// ClampedGaussianInt draws from N(mean, stddev), rounds to the nearest
// int and clamps into [lo, hi]. Several generators share this shape for
// quality scores.
func ClampedGaussianInt(src Source, mean, stddev float64, lo, hi int) int {
	v := int(math.Round(src.Gaussian(mean, stddev)))
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
