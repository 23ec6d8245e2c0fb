package sim

import (
	"math"
	"math/rand"
	"time"
)

// newSource builds the random source owned by one simulation instance.
// Sources are never global and never shared between instances: two engines
// built with the same non-nil seed MUST produce bit-for-bit identical
// histories, and concurrent sweeps stay reproducible because each instance
// draws only from its own source.
//
// A nil seed falls back to the wall clock, which deliberately gives up
// reproducibility.
func newSource(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// RateSampler turns a mean/std rate (in per-tick units) into nonnegative
// integer per-tick counts. Each call draws one value from
// Normal(Mean, Std), rounds to the nearest integer, and clamps below at
// zero — a negative draw is not an error, it is "nothing happened this
// tick". With Std == 0 the draw is deterministic (the rounded mean),
// though it still consumes one value from the source so that toggling
// variance alone does not shift unrelated draw sequences.
type RateSampler struct {
	Mean float64
	Std  float64
}

// Sample draws the next per-tick count from rng.
func (s RateSampler) Sample(rng *rand.Rand) int {
	val := rng.NormFloat64()*s.Std + s.Mean
	n := int(math.Round(val))
	if n < 0 {
		return 0
	}
	return n
}
