package tool

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"

	"github.com/ha1tch/deluxepaint/geom"
	"github.com/ha1tch/deluxepaint/raster"
)

const (
	// BoundsPadding is added around a drawn shape's content before it is
	// lifted into a floating bitmap.
	BoundsPadding = 2
	// HandleHit is how close to a corner a pointer-down grabs its handle.
	HandleHit = 8
	// HandleSize is the drawn size of a corner handle.
	HandleSize = 6
	// MinPlacementSize bounds both sides while resizing.
	MinPlacementSize = 10
)

// Corner names a resize handle.
type Corner int

const (
	CornerNone Corner = iota
	CornerTopLeft
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// Hit is the outcome of a pointer-down on a placement.
type Hit int

const (
	HitOutside Hit = iota
	HitDrag
	HitResize
)

var handleBorder = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

// Placement floats a bitmap above the canvas so it can be dragged and
// resized from its corners before being committed. It is inactive until
// Start and after Reset.
type Placement struct {
	src  *image.NRGBA
	pos  image.Point
	size image.Point

	dragging   bool
	dragOffset geom.Point

	corner      Corner
	resizeFrom  geom.Point
	resizeStart image.Rectangle

	last geom.Point

	scaled  *image.NRGBA
	preview *image.RGBA
	stale   bool
}

// Active reports whether a bitmap is floating.
func (p *Placement) Active() bool { return p.src != nil }

// Start floats src with its top-left corner and size given by r.
func (p *Placement) Start(src *image.NRGBA, r image.Rectangle) {
	p.src = src
	p.pos = r.Min
	p.size = r.Size()
	p.dragging = false
	p.corner = CornerNone
	p.scaled = nil
	p.stale = true
}

// Source returns the floating bitmap at its original size.
func (p *Placement) Source() *image.NRGBA { return p.src }

// Bounds returns the current position and size.
func (p *Placement) Bounds() image.Rectangle {
	return image.Rectangle{Min: p.pos, Max: p.pos.Add(p.size)}
}

func (p *Placement) corners() [4]struct {
	c  Corner
	pt geom.Point
} {
	x0, y0 := float64(p.pos.X), float64(p.pos.Y)
	x1, y1 := x0+float64(p.size.X), y0+float64(p.size.Y)
	return [4]struct {
		c  Corner
		pt geom.Point
	}{
		{CornerTopLeft, geom.Pt(x0, y0)},
		{CornerTopRight, geom.Pt(x1, y0)},
		{CornerBottomLeft, geom.Pt(x0, y1)},
		{CornerBottomRight, geom.Pt(x1, y1)},
	}
}

// HitCorner returns the handle within HandleHit of pt, if any.
func (p *Placement) HitCorner(pt geom.Point) Corner {
	for _, c := range p.corners() {
		if math.Abs(pt.X-c.pt.X) <= HandleHit && math.Abs(pt.Y-c.pt.Y) <= HandleHit {
			return c.c
		}
	}
	return CornerNone
}

// Inside reports whether pt lies within the bounds, edges included.
func (p *Placement) Inside(pt geom.Point) bool {
	return pt.X >= float64(p.pos.X) && pt.X <= float64(p.pos.X+p.size.X) &&
		pt.Y >= float64(p.pos.Y) && pt.Y <= float64(p.pos.Y+p.size.Y)
}

// Cursor reflects what a pointer-down at the last seen position would do.
func (p *Placement) Cursor() Cursor {
	if !p.Active() {
		return CursorDefault
	}
	switch p.HitCorner(p.last) {
	case CornerTopLeft, CornerBottomRight:
		return CursorResizeNWSE
	case CornerTopRight, CornerBottomLeft:
		return CursorResizeNESW
	}
	if p.Inside(p.last) {
		return CursorMove
	}
	return CursorDefault
}

// PointerDown starts a resize on a handle or a drag inside the bounds.
// HitOutside tells the owner to confirm.
func (p *Placement) PointerDown(pt geom.Point) Hit {
	if !p.Active() {
		return HitOutside
	}
	if c := p.HitCorner(pt); c != CornerNone {
		p.corner = c
		p.resizeFrom = pt
		p.resizeStart = p.Bounds()
		return HitResize
	}
	if p.Inside(pt) {
		p.dragging = true
		p.dragOffset = pt.Sub(geom.Pt(float64(p.pos.X), float64(p.pos.Y)))
		return HitDrag
	}
	return HitOutside
}

// PointerMove moves or resizes. With keepAspect the size follows the
// source bitmap's aspect ratio, anchored at the opposite corner.
func (p *Placement) PointerMove(pt geom.Point, keepAspect bool) {
	p.last = pt
	if !p.Active() {
		return
	}
	if p.dragging {
		p.pos = pt.Sub(p.dragOffset).Round()
		p.stale = true
		return
	}
	if p.corner == CornerNone {
		return
	}

	d := pt.Sub(p.resizeFrom)
	s := p.resizeStart
	sx, sy := float64(s.Min.X), float64(s.Min.Y)
	sw, sh := float64(s.Dx()), float64(s.Dy())
	x, y, w, h := sx, sy, sw, sh

	switch p.corner {
	case CornerBottomRight:
		w = math.Max(MinPlacementSize, sw+d.X)
		h = math.Max(MinPlacementSize, sh+d.Y)
	case CornerBottomLeft:
		w = math.Max(MinPlacementSize, sw-d.X)
		h = math.Max(MinPlacementSize, sh+d.Y)
	case CornerTopRight:
		w = math.Max(MinPlacementSize, sw+d.X)
		h = math.Max(MinPlacementSize, sh-d.Y)
	case CornerTopLeft:
		w = math.Max(MinPlacementSize, sw-d.X)
		h = math.Max(MinPlacementSize, sh-d.Y)
	}

	if keepAspect {
		sb := p.src.Bounds()
		aspect := float64(sb.Dx()) / float64(sb.Dy())
		if w/h > aspect {
			w = math.Round(h * aspect)
		} else {
			h = math.Round(w / aspect)
		}
	}
	if p.corner == CornerTopLeft || p.corner == CornerBottomLeft {
		x = sx + sw - w
	}
	if p.corner == CornerTopLeft || p.corner == CornerTopRight {
		y = sy + sh - h
	}

	p.pos = image.Pt(int(math.Round(x)), int(math.Round(y)))
	p.size = image.Pt(int(math.Round(w)), int(math.Round(h)))
	p.stale = true
}

// PointerUp ends any drag or resize.
func (p *Placement) PointerUp() {
	p.dragging = false
	p.corner = CornerNone
}

// bitmap returns the source resampled to the current size.
func (p *Placement) bitmap() *image.NRGBA {
	if p.size == p.src.Bounds().Size() {
		return p.src
	}
	if p.scaled == nil || p.scaled.Bounds().Size() != p.size {
		p.scaled = raster.Scale(p.src, p.size.X, p.size.Y)
	}
	return p.scaled
}

// DrawOnto composites the floating bitmap onto dst at its current bounds.
func (p *Placement) DrawOnto(dst *image.NRGBA) {
	if !p.Active() || p.size.X < 1 || p.size.Y < 1 {
		return
	}
	raster.Draw(dst, p.pos, p.bitmap(), 1, raster.BlendNormal)
}

// Preview renders the bitmap with a dashed border and corner handles into
// a w×h overlay. The overlay is reused between calls.
func (p *Placement) Preview(w, h int) image.Image {
	if !p.Active() || w < 1 || h < 1 {
		return nil
	}
	if p.preview == nil || p.preview.Rect.Dx() != w || p.preview.Rect.Dy() != h {
		p.preview = image.NewRGBA(image.Rect(0, 0, w, h))
		p.stale = true
	}
	if !p.stale {
		return p.preview
	}
	p.stale = false
	clear(p.preview.Pix)

	if p.size.X >= 1 && p.size.Y >= 1 {
		draw.Draw(p.preview, p.Bounds(), p.bitmap(), image.Point{}, draw.Over)
	}

	dc := gg.NewContextForRGBA(p.preview)
	x, y := float64(p.pos.X), float64(p.pos.Y)
	dashedRect(dc, x, y, float64(p.size.X), float64(p.size.Y))

	half := float64(HandleSize) / 2
	for _, c := range p.corners() {
		dc.DrawRectangle(c.pt.X-half, c.pt.Y-half, HandleSize, HandleSize)
		dc.SetColor(color.White)
		dc.FillPreserve()
		dc.SetColor(handleBorder)
		dc.Stroke()
	}
	return p.preview
}

// Reset drops the floating bitmap.
func (p *Placement) Reset() {
	p.src = nil
	p.scaled = nil
	p.dragging = false
	p.corner = CornerNone
	if p.preview != nil {
		clear(p.preview.Pix)
	}
}
