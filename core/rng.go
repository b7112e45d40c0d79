package core

import (
	"math/rand"
	"time"
)

// RNG is the explicit, per-simulator pseudo-random stream the spec calls
// for in place of the reference implementation's process-wide generator.
// Every channel, readout-error and sampling draw goes through Float64,
// so the draw order — and therefore reproducibility under a fixed seed —
// is entirely determined by call order, never by goroutine scheduling.
type RNG struct {
	r    *rand.Rand
	seed int64
}

// NewRNG returns an RNG seeded with seed. A seed of 0 derives a seed from
// the current time, matching the "acceptable for single-threaded
// correctness" fallback the spec allows when reproducibility isn't
// required.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{r: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed reports the seed this stream was constructed with.
func (g *RNG) Seed() int64 {
	return g.seed
}

// Float64 draws the next value in [0,1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}
