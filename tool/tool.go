// Package tool implements the drawing tools and the shared machinery they
// are built from: the placement sub-machine for floating bitmaps, flood
// fill, text rendering and the registry the engine dispatches through.
//
// Tools fall into two shapes. Direct-commit tools (pencil, eraser, spray,
// fill, text) paint straight into the active layer and push one history
// entry when the interaction ends. Preview-then-place tools (line,
// rectangle, circle, polygon, arrow, star, triangle and the others built on
// Shape) draw into a scratch bitmap, then float the result for moving and
// resizing until it is confirmed or cancelled. Paste floats a bitmap
// supplied by the host.
package tool

import (
	"image"
	"math/rand/v2"
	"time"

	"github.com/fogleman/gg"

	"github.com/ha1tch/deluxepaint/history"
	"github.com/ha1tch/deluxepaint/layer"
	"github.com/ha1tch/deluxepaint/raster"
)

// ID identifies a tool.
type ID string

const (
	IDPencil           ID = "pencil"
	IDEraser           ID = "eraser"
	IDLine             ID = "line"
	IDRectangle        ID = "rectangle"
	IDRoundedRectangle ID = "rounded-rectangle"
	IDCircle           ID = "circle"
	IDFill             ID = "fill"
	IDText             ID = "text"
	IDSelection        ID = "selection"
	IDEyedropper       ID = "eyedropper"
	IDSpray            ID = "spray"
	IDPolygon          ID = "polygon"
	IDArrow            ID = "arrow"
	IDStar             ID = "star"
	IDTriangle         ID = "triangle"
	IDArc              ID = "arc"
	IDPaste            ID = "paste"
)

// Cursor is the pointer shape a tool asks the host to show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorText
	CursorMove
	CursorResizeNWSE
	CursorResizeNESW
)

var cursorNames = [...]string{"default", "crosshair", "text", "move", "nwse-resize", "nesw-resize"}

// String returns the CSS cursor name.
func (c Cursor) String() string {
	if c < 0 || int(c) >= len(cursorNames) {
		return "default"
	}
	return cursorNames[c]
}

// Tool is the contract every tool implements. The engine holds exactly one
// active tool and forwards pointer events to it.
type Tool interface {
	ID() ID
	Label() string
	Shortcut() string
	Cursor() Cursor

	PointerDown(e PointerEvent)
	PointerMove(e PointerEvent)
	PointerUp(e PointerEvent)

	// Preview returns a canvas-sized overlay to draw above the layers,
	// or nil when there is none.
	Preview() image.Image

	Activate()
	Deactivate()

	// Busy reports a press-drag-release interaction still in progress.
	// Its edit is not in history until the pointer is released.
	Busy() bool

	HasPlacement() bool
	ConfirmPlacement()
	CancelPlacement()

	SetConfig(c Config)
}

// Ticker is implemented by tools that repeat work on a timer. Tick reports
// whether anything was drawn.
type Ticker interface {
	Tick(now time.Time) bool
}

// Env is what tools need from the engine.
type Env struct {
	Layers     *layer.Manager
	History    *history.History
	Compositor *layer.Compositor
	Rand       *rand.Rand
}

// base carries the identity and config shared by all tools and supplies
// no-op defaults for the optional parts of Tool.
type base struct {
	id       ID
	label    string
	shortcut string
	env      Env
	cfg      Config
}

func newBase(env Env, id ID, label, shortcut string) base {
	return base{id: id, label: label, shortcut: shortcut, env: env, cfg: DefaultConfig()}
}

func (b *base) ID() ID               { return b.id }
func (b *base) Label() string        { return b.label }
func (b *base) Shortcut() string     { return b.shortcut }
func (b *base) Cursor() Cursor       { return CursorCrosshair }
func (b *base) Preview() image.Image { return nil }
func (b *base) Activate()            {}
func (b *base) Deactivate()          {}
func (b *base) Busy() bool           { return false }
func (b *base) HasPlacement() bool   { return false }
func (b *base) ConfirmPlacement()    {}
func (b *base) CancelPlacement()     {}
func (b *base) SetConfig(c Config)   { b.cfg = c }

func (b *base) PointerMove(PointerEvent) {}
func (b *base) PointerUp(PointerEvent)   {}

// editable returns the active layer, or nil when it is locked.
func (b *base) editable() *layer.Layer {
	l := b.env.Layers.Active()
	if l.Locked {
		return nil
	}
	return l
}

// commit records an edit of l whose prior state is before.
func (b *base) commit(l *layer.Layer, before *image.NRGBA, label string) {
	b.env.History.Push(history.NewDrawCommand(b.env.Layers, l.ID(), before, l.Pixels(), label))
}

// scratch is a canvas-sized premultiplied bitmap with a gg context over it.
// Tools render into a region of it and then blend that region onto a layer.
type scratch struct {
	img *image.RGBA
	dc  *gg.Context
}

// ensure (re)allocates the bitmap to w×h if needed.
func (s *scratch) ensure(w, h int) {
	if s.img != nil && s.img.Rect.Dx() == w && s.img.Rect.Dy() == h {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.dc = gg.NewContextForRGBA(s.img)
}

// fresh sizes the scratch to l and clears r, returning the context.
func (s *scratch) fresh(l *layer.Layer, r image.Rectangle) *gg.Context {
	s.ensure(l.Width(), l.Height())
	raster.ClearRect(s.img, r)
	s.dc.ClearPath()
	return s.dc
}

func (s *scratch) clear() {
	if s.img != nil {
		clear(s.img.Pix)
	}
}

// blendOnto composites the region r of the scratch onto l.
func (s *scratch) blendOnto(l *layer.Layer, r image.Rectangle) {
	raster.Blend(l.Image(), r, s.img, r.Min, 1, raster.BlendNormal)
}

// around returns the integer box covering the given points grown by pad.
func around(pad float64, xs ...float64) image.Rectangle {
	var r image.Rectangle
	for i := 0; i+1 < len(xs); i += 2 {
		x0, y0 := int(xs[i]-pad)-1, int(xs[i+1]-pad)-1
		x1, y1 := int(xs[i]+pad)+2, int(xs[i+1]+pad)+2
		pr := image.Rect(x0, y0, x1, y1)
		if i == 0 {
			r = pr
		} else {
			r = r.Union(pr)
		}
	}
	return r
}
