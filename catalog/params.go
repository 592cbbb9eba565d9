package catalog

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument marks caller mistakes: an empty seed, a rate outside
// its range, a negative index or a page outside its bounds.
var ErrInvalidArgument = errors.New("catalog: invalid argument")

// Upper bounds on caller input, enforced for every transport.
const (
	MaxAvgLikes   = 100.0
	MaxAvgReviews = 20.0
	MaxPageSize   = 1000
)

// Params selects one reproducible catalog.
type Params struct {
	Seed       string  `json:"seed"`
	Locale     string  `json:"locale"`
	AvgLikes   float64 `json:"avgLikes"`
	AvgReviews float64 `json:"avgReviews"`
}

// Validate checks the parameters. An unsupported locale is not an error; the
// generator falls back to the default locale.
func (p Params) Validate() error {
	if p.Seed == "" {
		return fmt.Errorf("%w: seed is required", ErrInvalidArgument)
	}
	if err := validateRate("avgLikes", p.AvgLikes, MaxAvgLikes); err != nil {
		return err
	}
	return validateRate("avgReviews", p.AvgReviews, MaxAvgReviews)
}

func validateRate(name string, v, limit float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > limit {
		return fmt.Errorf("%w: %s must be a number between 0 and %v, got %v", ErrInvalidArgument, name, limit, v)
	}
	return nil
}

// Page addresses a contiguous run of books. Number is 0-based.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"count"`
}

// FirstIndex is the 0-based index of the first book on the page.
func (p Page) FirstIndex() int {
	return p.Number * p.Size
}

func (p Page) validate() error {
	if p.Number < 0 {
		return fmt.Errorf("%w: page must be >= 0, got %d", ErrInvalidArgument, p.Number)
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return fmt.Errorf("%w: count must be between 1 and %d, got %d", ErrInvalidArgument, MaxPageSize, p.Size)
	}
	// FirstIndex plus the page length must stay within int.
	if p.Number > (math.MaxInt-p.Size)/p.Size {
		return fmt.Errorf("%w: page %d is out of range for count %d", ErrInvalidArgument, p.Number, p.Size)
	}
	return nil
}
