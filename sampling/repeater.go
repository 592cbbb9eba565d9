// Package sampling turns fractional rates into reproducible integer counts.
package sampling

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"bookforge/seedtree"
)

// ErrInvalidArgument is returned for negative, non-finite or int-overflowing
// rates and for a missing step function or random stream.
var ErrInvalidArgument = errors.New("sampling: invalid argument")

// Repeat builds a function that applies step floor(rate) times and then
// once more with probability frac(rate).
//
// The extra application is decided by exactly one draw from rng, taken after
// the whole-number applications. When rate is an integer no draw is made, so
// the stream position is untouched.
func Repeat[T any](rate float64, step func(T) T, rng seedtree.Stream) (func(T) T, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return nil, fmt.Errorf("%w: rate must be a finite number >= 0, got %v", ErrInvalidArgument, rate)
	}
	if step == nil {
		return nil, fmt.Errorf("%w: step function is required", ErrInvalidArgument)
	}
	if isNilStream(rng) {
		return nil, fmt.Errorf("%w: a seeded random stream is required", ErrInvalidArgument)
	}

	whole := math.Floor(rate)
	// float64(math.MaxInt) rounds up to 2^63, which has no int value.
	if whole >= float64(math.MaxInt) {
		return nil, fmt.Errorf("%w: rate %v exceeds the largest repeat count", ErrInvalidArgument, rate)
	}
	frac := rate - whole
	n := int(whole)

	return func(v T) T {
		for i := 0; i < n; i++ {
			v = step(v)
		}
		if frac > 0 && rng.Float64() < frac {
			v = step(v)
		}
		return v
	}, nil
}

// Count realises rate as an integer count starting from zero.
func Count(rate float64, rng seedtree.Stream) (int, error) {
	inc, err := Repeat(rate, func(n int) int { return n + 1 }, rng)
	if err != nil {
		return 0, err
	}
	return inc(0), nil
}

func isNilStream(rng seedtree.Stream) bool {
	if rng == nil {
		return true
	}
	v := reflect.ValueOf(rng)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}
