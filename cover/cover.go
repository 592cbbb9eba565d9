// Package cover paints deterministic book covers.
//
// The background colour comes from a stream seeded by the book's cover seed,
// so a given seed always paints the same colour. Title and author are laid
// out with the basic 7x13 bitmap face and scaled to the requested font size.
// That face is ASCII only: accented Latin text is folded to ASCII and other
// scripts draw as replacement boxes.
package cover

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"bookforge/seedtree"
)

// Default and maximum cover dimensions in pixels.
const (
	DefaultWidth  = 120
	DefaultHeight = 180
	MaxDimension  = 2048
)

// Cover errors.
var (
	ErrMissingField      = errors.New("cover: missing required field")
	ErrInvalidDimensions = errors.New("cover: invalid dimensions")
	ErrEncodeFailed      = errors.New("cover: failed to encode image")
)

// Request describes one cover.
type Request struct {
	Title  string
	Author string
	Width  int
	Height int
	Seed   string
}

// Validate checks required fields and dimensions.
func (r Request) Validate() error {
	switch {
	case r.Title == "":
		return fmt.Errorf("%w: title", ErrMissingField)
	case r.Author == "":
		return fmt.Errorf("%w: author", ErrMissingField)
	case r.Seed == "":
		return fmt.Errorf("%w: seed", ErrMissingField)
	}
	if r.Width <= 0 || r.Height <= 0 || r.Width > MaxDimension || r.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d must be within 1..%d", ErrInvalidDimensions, r.Width, r.Height, MaxDimension)
	}
	return nil
}

// Background returns the light background colour for a cover seed. Each
// channel is one draw mapped onto [200, 254], in R, G, B order.
func Background(seed string) color.RGBA {
	rng := seedtree.NewStream(seedtree.Child(seed, "cover_details"))
	channel := func() uint8 { return uint8(int(rng.Float64()*55) + 200) }
	r := channel()
	g := channel()
	b := channel()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Draw paints the cover into a new RGBA image.
func Draw(req Request) (*image.RGBA, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, req.Width, req.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background(req.Seed)), image.Point{}, draw.Src)

	cx := req.Width / 2
	titleSize := clamp(req.Width/10, 14, 20)
	lineHeight := float64(titleSize) * 1.2
	maxLineWidth := float64(req.Width) * 0.8
	y := float64(req.Height) * 0.35

	lines := wrapWords(strings.Split(req.Title, " "), func(s string) bool {
		return float64(textWidth(s, titleSize)) <= maxLineWidth
	})
	for _, line := range lines {
		drawCentered(img, line, titleSize, cx, int(y))
		y += lineHeight
	}

	authorSize := clamp(req.Width/12, 12, 16)
	drawCentered(img, "by "+req.Author, authorSize, cx, int(y)+authorSize)

	return img, nil
}

// Render paints the cover and encodes it as PNG.
func Render(req Request) ([]byte, error) {
	img, err := Draw(req)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
