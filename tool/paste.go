package tool

import (
	"image"
	"math"

	"github.com/ha1tch/deluxepaint"
	"github.com/ha1tch/deluxepaint/raster"
)

// Paste floats an externally supplied bitmap, centered on the canvas, for
// moving and resizing before it is committed to the active layer.
type Paste struct {
	base
	place  Placement
	onDone func(confirmed bool)
}

func NewPaste(env Env) *Paste {
	return &Paste{base: newBase(env, IDPaste, "Paste", "")}
}

// SetOnDone installs the callback run when a paste is confirmed or
// cancelled.
func (p *Paste) SetOnDone(fn func(confirmed bool)) { p.onDone = fn }

// SetImage starts floating a copy of img, replacing any previous one.
func (p *Paste) SetImage(img image.Image) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	src := raster.Crop(img, b)
	w, h := p.env.Layers.Size()
	at := image.Pt(
		int(math.Round(float64(w)/2-float64(b.Dx())/2)),
		int(math.Round(float64(h)/2-float64(b.Dy())/2)),
	)
	p.place.Start(src, image.Rectangle{Min: at, Max: at.Add(b.Size())})
	deluxepaint.Logger().Debug("paste started", "size", b.Size())
}

func (p *Paste) Cursor() Cursor { return p.place.Cursor() }

func (p *Paste) PointerDown(e PointerEvent) {
	if !p.place.Active() {
		return
	}
	if p.place.PointerDown(e.Point) == HitOutside {
		p.ConfirmPlacement()
	}
}

func (p *Paste) PointerMove(e PointerEvent) { p.place.PointerMove(e.Point, e.Shift) }
func (p *Paste) PointerUp(PointerEvent)     { p.place.PointerUp() }

func (p *Paste) Preview() image.Image {
	w, h := p.env.Layers.Size()
	return p.place.Preview(w, h)
}

func (p *Paste) HasPlacement() bool { return p.place.Active() }

// Placement exposes the floating state.
func (p *Paste) Placement() *Placement { return &p.place }

// Deactivate confirms a pending paste.
func (p *Paste) Deactivate() {
	if p.place.Active() {
		p.ConfirmPlacement()
	}
}

// ConfirmPlacement draws the bitmap onto the active layer. A locked layer
// rejects it and the paste ends unconfirmed.
func (p *Paste) ConfirmPlacement() {
	if !p.place.Active() {
		return
	}
	l := p.editable()
	if l == nil {
		p.finish(false)
		return
	}
	before := l.Pixels()
	p.place.DrawOnto(l.Image())
	p.commit(l, before, "Paste")
	p.finish(true)
}

func (p *Paste) CancelPlacement() {
	if p.place.Active() {
		p.finish(false)
	}
}

func (p *Paste) finish(confirmed bool) {
	p.place.Reset()
	deluxepaint.Logger().Debug("paste finished", "confirmed", confirmed)
	if p.onDone != nil {
		p.onDone(confirmed)
	}
}
