package seedtree

import "unicode/utf16"

// NumericSeed converts a sub-seed into a 32-bit signed seed.
//
// The sub-seed is folded with a polynomial rolling hash, h = h*31 + unit over
// its UTF-16 code units with two's-complement wraparound, and the result is
// passed through a murmur3-style finaliser so neighbouring sub-seeds
// ("..._book_41" and "..._book_42") land far apart. Changing either step
// changes every generated catalog.
func NumericSeed(s string) int32 {
	return int32(avalanche(uint32(rollingHash(s))))
}

// rollingHash is the bare polynomial fold; the empty string maps to 0.
func rollingHash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return h
}

func avalanche(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
