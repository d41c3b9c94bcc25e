// Package layer implements the editable bitmap stack: a single Layer, the
// Manager that owns the ordered collection, and the Compositor that merges
// it into one image.
package layer

import (
	"image"
	"image/color"

	"github.com/google/uuid"

	"github.com/ha1tch/deluxepaint/raster"
)

// Layer is one bitmap plus its display metadata. The pixel buffer always
// has the canvas's current dimensions.
type Layer struct {
	id        string
	Name      string
	Visible   bool
	Locked    bool
	Opacity   float64
	BlendMode raster.BlendMode
	Order     int

	pix *image.NRGBA
}

// Info is the metadata of a layer without its pixels.
type Info struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Visible   bool             `json:"visible"`
	Locked    bool             `json:"locked"`
	Opacity   float64          `json:"opacity"`
	BlendMode raster.BlendMode `json:"blend_mode"`
	Order     int              `json:"order"`
}

// Snapshot is a full copy of one layer's pixels.
type Snapshot struct {
	LayerID string
	Pixels  *image.NRGBA
}

// New creates a transparent, visible, unlocked layer with a fresh id.
func New(width, height int, name string) *Layer {
	return &Layer{
		id:        uuid.NewString(),
		Name:      name,
		Visible:   true,
		Opacity:   1,
		BlendMode: raster.BlendNormal,
		pix:       raster.New(width, height),
	}
}

func (l *Layer) ID() string  { return l.id }
func (l *Layer) Width() int  { return l.pix.Rect.Dx() }
func (l *Layer) Height() int { return l.pix.Rect.Dy() }

// Image returns the layer's own buffer. Callers may draw into it but must
// not keep it beyond the current event.
func (l *Layer) Image() *image.NRGBA { return l.pix }

// Pixels returns a deep copy of the buffer.
func (l *Layer) Pixels() *image.NRGBA { return raster.Clone(l.pix) }

// PutPixels copies img into the buffer at the origin. Parts outside the
// layer are dropped; parts of the layer not covered keep their pixels.
func (l *Layer) PutPixels(img *image.NRGBA) {
	if img == nil {
		return
	}
	r := img.Bounds().Intersect(l.pix.Bounds())
	if r.Empty() {
		return
	}
	n := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(l.pix.Pix[l.pix.PixOffset(r.Min.X, y):][:n], img.Pix[img.PixOffset(r.Min.X, y):][:n])
	}
}

// Clear makes every pixel fully transparent.
func (l *Layer) Clear() {
	clear(l.pix.Pix)
}

// Fill paints r with an opaque or translucent color, replacing pixels.
func (l *Layer) Fill(r image.Rectangle, c color.NRGBA) {
	raster.Fill(l.pix, r, c)
}

// Resize reallocates the buffer to width×height and copies the old content
// offset by (shiftX, shiftY). Content pushed outside is lost; new area is
// transparent. Sizes below 1px are rejected.
func (l *Layer) Resize(width, height, shiftX, shiftY int) bool {
	if width < 1 || height < 1 {
		return false
	}
	old := l.pix
	l.pix = raster.New(width, height)
	copyShifted(l.pix, old, image.Pt(shiftX, shiftY))
	return true
}

// copyShifted copies src into dst displaced by d, replacing pixels
// (including translucent ones) rather than blending them.
func copyShifted(dst, src *image.NRGBA, d image.Point) {
	r := src.Bounds().Add(d).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	n := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(r.Min.X, y):][:n], src.Pix[src.PixOffset(r.Min.X-d.X, y-d.Y):][:n])
	}
}

// Clone deep-copies pixels and metadata into a new layer with a fresh id
// and "(copy)" appended to the name.
func (l *Layer) Clone() *Layer {
	return &Layer{
		id:        uuid.NewString(),
		Name:      l.Name + " (copy)",
		Visible:   l.Visible,
		Locked:    l.Locked,
		Opacity:   l.Opacity,
		BlendMode: l.BlendMode,
		Order:     l.Order,
		pix:       raster.Clone(l.pix),
	}
}

// Snapshot captures the full buffer.
func (l *Layer) Snapshot() Snapshot {
	return Snapshot{LayerID: l.id, Pixels: l.Pixels()}
}

// RestoreSnapshot clears the layer and replays s.
func (l *Layer) RestoreSnapshot(s Snapshot) {
	l.Clear()
	l.PutPixels(s.Pixels)
}

// Info returns the layer's metadata.
func (l *Layer) Info() Info {
	return Info{
		ID:        l.id,
		Name:      l.Name,
		Visible:   l.Visible,
		Locked:    l.Locked,
		Opacity:   l.Opacity,
		BlendMode: l.BlendMode,
		Order:     l.Order,
	}
}
