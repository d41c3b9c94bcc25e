package raster

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// ParseColor parses any CSS color string ("#rrggbb", "#rgb", "red",
// "rgba(...)"). ok is false when the string is not a color.
func ParseColor(s string) (c color.NRGBA, ok bool) {
	pc, err := csscolorparser.Parse(s)
	if err != nil {
		return color.NRGBA{A: 255}, false
	}
	r, g, b, a := pc.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, true
}

// Color parses s, falling back to opaque black on error.
func Color(s string) color.NRGBA {
	c, _ := ParseColor(s)
	return c
}

// WithOpacity returns c with its alpha replaced by round(opacity*255).
func WithOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(math.Round(clamp01(opacity) * 255))
	return c
}

// Hex formats the color channels of c as "#rrggbb", ignoring alpha.
func Hex(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
