package tool

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/ha1tch/deluxepaint/geom"
	"github.com/ha1tch/deluxepaint/layer"
	"github.com/ha1tch/deluxepaint/raster"
)

// freehand is the stroke machine behind Pencil and Eraser. Each pointer
// sample renders one round-capped segment into scratch and applies just
// that region to the layer, so the stroke is visible immediately.
type freehand struct {
	base
	erase bool

	drawing bool
	target  string
	button  Button
	last    geom.Point
	before  *image.NRGBA
	buf     scratch
}

// Pencil paints freehand strokes in the stroke color (fill color with the
// secondary button).
type Pencil struct{ freehand }

// Eraser removes alpha along a freehand stroke.
type Eraser struct{ freehand }

func NewPencil(env Env) *Pencil {
	return &Pencil{freehand{base: newBase(env, IDPencil, "Pencil", "p")}}
}

func NewEraser(env Env) *Eraser {
	return &Eraser{freehand{base: newBase(env, IDEraser, "Eraser", "e"), erase: true}}
}

func (f *freehand) label() string {
	if f.erase {
		return "Eraser"
	}
	return "Pencil stroke"
}

func (f *freehand) PointerDown(e PointerEvent) {
	l := f.editable()
	if l == nil {
		return
	}
	f.drawing = true
	f.target = l.ID()
	f.button = e.Button
	f.last = e.Point
	f.before = l.Pixels()

	w := max(f.cfg.StrokeWidth, 1)
	p := e.Point
	r := around(w/2, p.X, p.Y)
	dc := f.buf.fresh(l, r)
	dc.SetColor(f.color())
	dc.DrawCircle(p.X, p.Y, w/2)
	dc.Fill()
	f.apply(l, r)
}

func (f *freehand) PointerMove(e PointerEvent) {
	if !f.drawing {
		return
	}
	l := f.env.Layers.Layer(f.target)
	if l == nil {
		f.reset()
		return
	}
	w := max(f.cfg.StrokeWidth, 1)
	a, b := f.last, e.Point
	r := around(w/2, a.X, a.Y, b.X, b.Y)
	dc := f.buf.fresh(l, r)
	dc.SetColor(f.color())
	dc.SetLineWidth(w)
	if f.erase {
		dc.SetLineCap(gg.LineCapRound)
	} else {
		dc.SetLineCap(f.cfg.ggCap())
	}
	dc.SetLineJoin(f.cfg.ggJoin())
	dc.DrawLine(a.X, a.Y, b.X, b.Y)
	dc.Stroke()
	f.apply(l, r)
	f.last = b
}

func (f *freehand) Busy() bool { return f.drawing }

func (f *freehand) PointerUp(PointerEvent) {
	f.finish()
}

// Deactivate ends a stroke still in progress so it is not lost.
func (f *freehand) Deactivate() {
	f.finish()
}

func (f *freehand) finish() {
	if !f.drawing {
		return
	}
	if l := f.env.Layers.Layer(f.target); l != nil {
		f.commit(l, f.before, f.label())
	}
	f.reset()
}

func (f *freehand) reset() {
	f.drawing = false
	f.before = nil
	f.target = ""
}

func (f *freehand) color() color.Color {
	if f.erase {
		return color.Black
	}
	return f.cfg.paint(f.button)
}

func (f *freehand) apply(l *layer.Layer, r image.Rectangle) {
	if f.erase {
		raster.Erase(l.Image(), r, f.buf.img, f.cfg.Opacity)
		return
	}
	f.buf.blendOnto(l, r)
}
