package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
// It drives sampling decisions (which regions to probe, which seeds to sweep),
// never point placement; that is hash based.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Int32Range returns a random int32 in [lo, hi). It returns lo when the range is empty.
func (r *RNG) Int32Range(lo, hi int32) int32 {
	if hi <= lo {
		return lo
	}
	return lo + int32(r.r.Int64N(int64(hi)-int64(lo)))
}

// Origin returns a random region origin with both coordinates in [-span, span).
func (r *RNG) Origin(span int32) (int32, int32) {
	return r.Int32Range(-span, span), r.Int32Range(-span, span)
}

// Seed returns a random world seed.
func (r *RNG) Seed() int64 {
	return r.r.Int64()
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
