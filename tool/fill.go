package tool

import (
	"image"
	"math"

	"github.com/ha1tch/deluxepaint"
	"github.com/ha1tch/deluxepaint/raster"
)

// Fill flood-fills the region under the pointer with the stroke color, or
// the fill color with the secondary button. The new pixels replace the old
// ones with alpha set from the tool opacity.
type Fill struct {
	base
}

func NewFill(env Env) *Fill {
	return &Fill{base: newBase(env, IDFill, "Fill", "g")}
}

func (f *Fill) PointerDown(e PointerEvent) {
	l := f.editable()
	if l == nil {
		return
	}
	x, y := int(math.Round(e.Point.X)), int(math.Round(e.Point.Y))
	if !(image.Point{x, y}).In(l.Image().Bounds()) {
		return
	}

	c := raster.Color(f.cfg.StrokeColor)
	if e.Button == ButtonSecondary {
		c = raster.Color(f.cfg.FillColor)
	}
	c = raster.WithOpacity(c, f.cfg.Opacity)
	if l.Image().NRGBAAt(x, y) == c {
		return
	}

	before := l.Pixels()
	n := FloodFill(l.Image(), x, y, c, FillTolerance)
	deluxepaint.Logger().Debug("flood fill", "layer", l.ID(), "x", x, "y", y, "pixels", n)
	f.commit(l, before, "Fill")
}
