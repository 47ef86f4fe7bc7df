package core

import "math/rand/v2"

// RNG is a thin wrapper around a math/rand/v2 PCG source for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewStream creates a deterministic RNG for one member of a seeded family.
// Streams with the same seed and different indexes are independent, which lets
// every particle draw from its own source regardless of scheduling.
func NewStream(seed int64, index int) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), uint64(index)+1))}
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}
