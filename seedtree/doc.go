// Package seedtree fans one root seed out into an unbounded tree of
// reproducible sub-seeds and turns any of them into a random stream.
//
// A sub-seed is plain string concatenation of the root seed, the book index
// and a path of field segments:
//
//	DeriveSubSeed("42", 7, "review_content", "3", "text")
//	// "42_book_7_review_content_3_text"
//
// Keeping the path as a readable string means any single field can be
// replayed in isolation by rebuilding its exact sub-seed. Every leaf owns a
// disjoint stream, so generating one field never shifts the values of another.
//
// # Numeric seeds
//
// NumericSeed is a 32-bit polynomial rolling hash (multiplier 31) over the
// UTF-16 code units of the sub-seed, wrapping on overflow, followed by a
// 32-bit avalanche finaliser. Its bit behaviour is part of the
// reproducibility contract and is pinned by golden tests.
//
// # Streams
//
// NewStream seeds a PCG generator from the 64-bit FNV-1a digest of the
// sub-seed string; NewNumericStream seeds it from a NumericSeed. Both mix the
// seed through splitmix64 before filling the two PCG state words.
package seedtree
