package tool

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/ha1tch/deluxepaint/geom"
)

// minSelection is the size a drag must exceed on both axes to select.
const minSelection = 2

// SelectFunc receives the selected rectangle; ok is false when the drag
// was too small and any selection should be dropped.
type SelectFunc func(r image.Rectangle, ok bool)

// Selection drags out a rectangle, shown as a marching border while
// dragging, and reports it on release. It never edits pixels.
type Selection struct {
	base
	onSelect  SelectFunc
	selecting bool
	start     geom.Point
	buf       scratch
}

func NewSelection(env Env) *Selection {
	return &Selection{base: newBase(env, IDSelection, "Selection", "s")}
}

// SetOnSelect installs the selection callback.
func (t *Selection) SetOnSelect(fn SelectFunc) { t.onSelect = fn }

func (t *Selection) PointerDown(e PointerEvent) {
	w, h := t.env.Layers.Size()
	t.buf.ensure(w, h)
	t.buf.clear()
	t.selecting = true
	t.start = e.Point
}

func (t *Selection) PointerMove(e PointerEvent) {
	if !t.selecting {
		return
	}
	t.buf.clear()
	x, y, w, h := spanRect(t.start, e.Point)
	dashedRect(t.buf.dc, x, y, w, h)
}

func (t *Selection) PointerUp(e PointerEvent) {
	if !t.selecting {
		return
	}
	t.selecting = false
	t.buf.clear()

	x, y, w, h := spanRect(t.start, e.Point)
	if t.onSelect == nil {
		return
	}
	if w > minSelection && h > minSelection {
		r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
		t.onSelect(r, true)
		return
	}
	t.onSelect(image.Rectangle{}, false)
}

func (t *Selection) Deactivate() {
	t.selecting = false
	t.buf.clear()
}

func (t *Selection) Preview() image.Image {
	if !t.selecting {
		return nil
	}
	return t.buf.img
}

func (t *Selection) Busy() bool { return t.selecting }

// spanRect normalizes the box spanned by two corners.
func spanRect(a, b geom.Point) (x, y, w, h float64) {
	return math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Abs(b.X - a.X), math.Abs(b.Y - a.Y)
}

// dashedRect strokes a one-pixel black-on-white dashed outline.
func dashedRect(dc *gg.Context, x, y, w, h float64) {
	dc.SetLineWidth(1)
	dc.SetDash()
	dc.SetColor(color.White)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
	dc.SetDash(5, 5)
	dc.SetColor(color.Black)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
	dc.SetDash()
}
