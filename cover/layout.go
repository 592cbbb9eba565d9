package cover

import (
	"image"
	"image/color"
	"math"
	"strings"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// face covers printable ASCII and U+FFFD only.
var face = basicfont.Face7x13

// glyphReplacement stands in for runes the face cannot draw.
const glyphReplacement = '\ufffd'

// Spellings the accent fold below would lose.
var foldSpellings = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"ß", "ss", "ẞ", "SS",
)

// drawable rewrites s into runes the face has glyphs for. German letters get
// their two-letter spelling, other accented Latin letters lose the accent and
// anything still outside the face, such as kana and kanji, becomes U+FFFD.
// The rewrite is deterministic, so covers stay byte-stable.
func drawable(s string) string {
	s = foldSpellings.Replace(s)
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	return strings.Map(func(r rune) rune {
		if _, ok := face.GlyphAdvance(r); ok {
			return r
		}
		return glyphReplacement
	}, s)
}

// wrapWords greedily packs words into lines. A word that overflows an empty
// line stays on it; the first word never starts a new line.
func wrapWords(words []string, fits func(string) bool) []string {
	var lines []string
	line := ""
	for n, word := range words {
		test := line + word + " "
		if !fits(test) && n > 0 {
			lines = append(lines, strings.TrimSpace(line))
			line = word + " "
			continue
		}
		line = test
	}
	return append(lines, strings.TrimSpace(line))
}

// scaleFor returns the factor that maps the bitmap face to size pixels.
func scaleFor(size int) float64 {
	return float64(size) / float64(face.Metrics().Height.Ceil())
}

// textWidth is the rendered width of s at size pixels, measured after the
// drawable rewrite.
func textWidth(s string, size int) int {
	native := font.MeasureString(face, drawable(s)).Ceil()
	return int(math.Round(float64(native) * scaleFor(size)))
}

// drawCentered draws s in black, centred on cx with its baseline at y.
func drawCentered(dst *image.RGBA, s string, size, cx, baseline int) {
	s = drawable(s)
	native := font.MeasureString(face, s).Ceil()
	if native == 0 {
		return
	}
	metrics := face.Metrics()
	height := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	glyphs := image.NewRGBA(image.Rect(0, 0, native, height))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(s)

	scale := scaleFor(size)
	w := int(math.Round(float64(native) * scale))
	h := int(math.Round(float64(height) * scale))
	top := baseline - int(math.Round(float64(ascent)*scale))
	left := cx - w/2

	draw.ApproxBiLinear.Scale(dst, image.Rect(left, top, left+w, top+h), glyphs, glyphs.Bounds(), draw.Over, nil)
}
