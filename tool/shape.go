package tool

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/ha1tch/deluxepaint"
	"github.com/ha1tch/deluxepaint/geom"
	"github.com/ha1tch/deluxepaint/raster"
)

// renderFunc draws the shape spanned by start and end into dc. It reports
// false when the geometry is degenerate and nothing was drawn.
type renderFunc func(dc *gg.Context, c Config, start, end geom.Point, shift bool) bool

// Shape is a preview-then-place tool: a drag draws into a scratch bitmap,
// release lifts the drawn pixels into a Placement, and the result reaches
// the layer only on confirm. The layer active at pointer-down is the one
// committed to.
type Shape struct {
	base
	render renderFunc

	drawing bool
	start   geom.Point
	target  string
	before  *image.NRGBA
	buf     scratch
	place   Placement
}

func newShape(env Env, id ID, label, shortcut string, fn renderFunc) *Shape {
	return &Shape{base: newBase(env, id, label, shortcut), render: fn}
}

func NewLine(env Env) *Shape      { return newShape(env, IDLine, "Line", "l", drawLine) }
func NewRectangle(env Env) *Shape { return newShape(env, IDRectangle, "Rectangle", "r", drawRectangle) }
func NewCircle(env Env) *Shape    { return newShape(env, IDCircle, "Circle", "c", drawEllipse) }
func NewPolygon(env Env) *Shape   { return newShape(env, IDPolygon, "Polygon", "o", drawPolygon) }
func NewArrow(env Env) *Shape     { return newShape(env, IDArrow, "Arrow", "a", drawArrow) }
func NewStar(env Env) *Shape      { return newShape(env, IDStar, "Star", "x", drawStar) }
func NewTriangle(env Env) *Shape  { return newShape(env, IDTriangle, "Triangle", "w", drawTriangle) }
func NewArc(env Env) *Shape       { return newShape(env, IDArc, "Arc", "", drawArc) }

func NewRoundedRectangle(env Env) *Shape {
	return newShape(env, IDRoundedRectangle, "Rounded Rectangle", "", drawRoundedRectangle)
}

func (s *Shape) Cursor() Cursor {
	if s.place.Active() {
		return s.place.Cursor()
	}
	return CursorCrosshair
}

func (s *Shape) PointerDown(e PointerEvent) {
	if s.place.Active() {
		if s.place.PointerDown(e.Point) == HitOutside {
			s.ConfirmPlacement()
		}
		return
	}
	l := s.editable()
	if l == nil {
		return
	}
	s.drawing = true
	s.start = e.Point
	s.target = l.ID()
	s.before = l.Pixels()
	s.buf.ensure(l.Width(), l.Height())
	s.buf.clear()
}

func (s *Shape) PointerMove(e PointerEvent) {
	if s.place.Active() {
		s.place.PointerMove(e.Point, e.Shift)
		return
	}
	if s.drawing {
		s.redraw(e)
	}
}

func (s *Shape) PointerUp(e PointerEvent) {
	if s.place.Active() {
		s.place.PointerUp()
		return
	}
	if !s.drawing {
		return
	}
	s.drawing = false
	s.redraw(e)

	r, ok := raster.ContentBounds(s.buf.img, BoundsPadding)
	if !ok {
		deluxepaint.Logger().Debug("shape has no pixels", "tool", s.id)
		s.buf.clear()
		s.before = nil
		return
	}
	src := raster.Crop(s.buf.img, r)
	s.buf.clear()
	s.place.Start(src, r)
}

func (s *Shape) redraw(e PointerEvent) {
	s.buf.clear()
	s.buf.dc.ClearPath()
	s.render(s.buf.dc, s.cfg, s.start, e.Point, e.Shift)
}

func (s *Shape) Preview() image.Image {
	if s.place.Active() {
		w, h := s.env.Layers.Size()
		return s.place.Preview(w, h)
	}
	if s.drawing {
		return s.buf.img
	}
	return nil
}

// Deactivate confirms a floating shape and abandons a drag in progress.
func (s *Shape) Deactivate() {
	if s.place.Active() {
		s.ConfirmPlacement()
	}
	if s.drawing {
		s.drawing = false
		s.before = nil
		s.buf.clear()
	}
}

func (s *Shape) HasPlacement() bool { return s.place.Active() }

// Busy is true between pointer-down and the release that starts placement.
func (s *Shape) Busy() bool { return s.drawing }

// Placement exposes the floating state, mainly for hosts drawing handles
// themselves.
func (s *Shape) Placement() *Placement { return &s.place }

// ConfirmPlacement blits the floating shape onto its layer and records a
// single history entry covering the whole operation.
func (s *Shape) ConfirmPlacement() {
	if !s.place.Active() {
		return
	}
	l := s.env.Layers.Layer(s.target)
	if l != nil && !l.Locked && s.before != nil {
		s.place.DrawOnto(l.Image())
		s.commit(l, s.before, s.label)
		deluxepaint.Logger().Debug("placement confirmed", "tool", s.id, "bounds", s.place.Bounds())
	} else {
		deluxepaint.Logger().Debug("placement dropped", "tool", s.id, "layer", s.target)
	}
	s.place.Reset()
	s.before = nil
}

// CancelPlacement discards the floating shape without touching the layer.
func (s *Shape) CancelPlacement() {
	if !s.place.Active() {
		return
	}
	s.place.Reset()
	s.before = nil
	deluxepaint.Logger().Debug("placement cancelled", "tool", s.id)
}
