package tool

import (
	"image"
	"math"

	"github.com/ha1tch/deluxepaint/raster"
)

// ColorPick receives a picked color as "#rrggbb".
type ColorPick func(hex string)

// Eyedropper reads the composited color under the pointer on press and on
// every move, pressed or not. The tool preview is not part of the sample.
type Eyedropper struct {
	base
	pick ColorPick
}

func NewEyedropper(env Env) *Eyedropper {
	return &Eyedropper{base: newBase(env, IDEyedropper, "Eyedropper", "i")}
}

// SetPick installs the callback receiving picked colors.
func (t *Eyedropper) SetPick(fn ColorPick) { t.pick = fn }

func (t *Eyedropper) PointerDown(e PointerEvent) { t.sample(e) }
func (t *Eyedropper) PointerMove(e PointerEvent) { t.sample(e) }

func (t *Eyedropper) sample(e PointerEvent) {
	if t.env.Compositor == nil {
		return
	}
	merged := t.env.Compositor.Composite(t.env.Layers.Layers())
	x, y := int(math.Round(e.Point.X)), int(math.Round(e.Point.Y))
	if !(image.Point{x, y}).In(merged.Bounds()) {
		return
	}
	if t.pick != nil {
		t.pick(raster.Hex(merged.NRGBAAt(x, y)))
	}
}
