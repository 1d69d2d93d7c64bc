package core

import (
	"math/rand/v2"
	"time"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// SeedOrNow returns seed, or a time-based seed when seed is zero.
func SeedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// Int64 returns a non-negative random int64, used to derive child seeds.
func (r *RNG) Int64() int64 { return r.r.Int64() }

// FillDensity sets each entry of buf to 1 with probability density, else 0.
func FillDensity(r *rand.Rand, buf []uint8, density float64) {
	for i := range buf {
		if r.Float64() < density {
			buf[i] = 1
		} else {
			buf[i] = 0
		}
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
