package seedtree

import (
	"hash/fnv"
	"math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Stream is a reproducible source of floats in [0,1).
type Stream interface {
	Float64() float64
}

// RandStream is a Stream backed by a PCG generator. It also satisfies
// rand.Source so text providers can draw from the same sequence.
// A RandStream is not safe for concurrent use.
type RandStream struct {
	rng   *rand.Rand
	draws int
}

// NewStream returns a stream seeded from a sub-seed string.
func NewStream(subSeed string) *RandStream {
	h := fnv.New64a()
	h.Write([]byte(subSeed))
	return newStream(h.Sum64())
}

// NewNumericStream returns a stream seeded from a numeric seed.
func NewNumericStream(seed int32) *RandStream {
	return newStream(uint64(int64(seed)))
}

func newStream(seed uint64) *RandStream {
	pcg := rand.NewPCG(mix(seed), mix(seed+goldenRatio64))
	return &RandStream{rng: rand.New(pcg)}
}

// Float64 returns the next value in [0,1).
func (s *RandStream) Float64() float64 {
	s.draws++
	return s.rng.Float64()
}

// IntN returns the next value in [0,n). It panics if n <= 0.
func (s *RandStream) IntN(n int) int {
	s.draws++
	return s.rng.IntN(n)
}

// Uint64 returns the next raw 64-bit value.
func (s *RandStream) Uint64() uint64 {
	s.draws++
	return s.rng.Uint64()
}

// Draws reports how many values have been taken from the stream.
func (s *RandStream) Draws() int {
	return s.draws
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
