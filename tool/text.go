package tool

import (
	"image"
	"strings"

	"github.com/ha1tch/deluxepaint/geom"
)

// TextRequest asks the host for a string to place at p. The host calls
// confirm with the text, possibly later; not calling it cancels.
type TextRequest func(p geom.Point, confirm func(text string))

// Text renders a single line of text with its top-left corner at the click
// point, in the stroke color and configured font.
type Text struct {
	base
	request TextRequest
	fonts   *fontCache
	buf     scratch
}

func NewText(env Env) *Text {
	return &Text{base: newBase(env, IDText, "Text", "t"), fonts: newFontCache()}
}

// SetRequest installs the callback used to obtain text.
func (t *Text) SetRequest(fn TextRequest) { t.request = fn }

func (t *Text) Cursor() Cursor { return CursorText }

func (t *Text) PointerDown(e PointerEvent) {
	l := t.editable()
	if l == nil || t.request == nil {
		return
	}
	id, p := l.ID(), e.Point
	t.request(p, func(text string) { t.Draw(id, p, text) })
}

// Draw renders text onto the layer id and records it. Blank text, a
// missing layer or a locked layer do nothing.
func (t *Text) Draw(layerID string, p geom.Point, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	l := t.env.Layers.Layer(layerID)
	if l == nil || l.Locked {
		return false
	}
	before := l.Pixels()

	full := image.Rect(0, 0, l.Width(), l.Height())
	dc := t.buf.fresh(l, full)
	dc.SetFontFace(t.fonts.face(t.cfg.FontFamily, t.cfg.FontSize))
	dc.SetColor(t.cfg.stroke())
	dc.DrawStringAnchored(text, p.X, p.Y, 0, 1)
	t.buf.blendOnto(l, full)

	t.commit(l, before, "Text")
	return true
}
