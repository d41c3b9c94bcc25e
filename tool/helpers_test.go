package tool

import (
	"image"
	"image/color"

	"github.com/ha1tch/deluxepaint/geom"
	"github.com/ha1tch/deluxepaint/history"
	"github.com/ha1tch/deluxepaint/layer"
)

func newEnv(w, h int) Env {
	return Env{
		Layers:     layer.NewManager(w, h),
		History:    history.New(0),
		Compositor: layer.NewCompositor(w, h),
	}
}

func at(x, y float64) PointerEvent {
	return PointerEvent{Point: geom.Pt(x, y), Pressure: 0.5}
}

// drag runs a full press-move-release from a to b.
func drag(t Tool, a, b PointerEvent) {
	t.PointerDown(a)
	t.PointerMove(b)
	t.PointerUp(b)
}

func countOpaque(img *image.NRGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

var (
	colorRed   = color.NRGBA{R: 255, A: 255}
	colorBlue  = color.NRGBA{B: 255, A: 255}
	colorBlack = color.NRGBA{A: 255}
)
