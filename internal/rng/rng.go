package rng

import "math/rand"

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded is a reproducible generator backed by math/rand
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a generator that always yields the same sequence for a seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))} // nolint:gosec
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}

// New returns a seeded generator when seed is non-zero, otherwise a crypto generator
func New(seed int64) Generator {
	if seed != 0 {
		return NewSeeded(seed)
	}

	return Crypto{}
}
