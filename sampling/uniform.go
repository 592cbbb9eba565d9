package sampling

import "bookforge/seedtree"

// UniformInt draws one value and maps it onto the inclusive range [lo, hi].
// Unlike Repeat this is a bounded pick, not a rate.
func UniformInt(rng seedtree.Stream, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	v := lo + int(rng.Float64()*float64(hi-lo+1))
	if v > hi {
		return hi
	}
	return v
}
