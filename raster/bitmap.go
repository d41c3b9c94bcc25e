package raster

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// New allocates a transparent w×h bitmap anchored at the origin.
func New(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Clone returns a deep copy of img.
func Clone(img *image.NRGBA) *image.NRGBA {
	if img == nil {
		return nil
	}
	out := &image.NRGBA{
		Pix:    make([]uint8, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	return out
}

// Fill paints r with c, replacing what was there.
func Fill(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
			dst.Pix[i] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = c.A
		}
	}
}

// ClearRect zeroes every channel inside r. It supports the two concrete
// bitmap types the engine renders into.
func ClearRect(img draw.Image, r image.Rectangle) {
	var pix []uint8
	var offset func(x, y int) int
	switch m := img.(type) {
	case *image.NRGBA:
		pix, offset = m.Pix, m.PixOffset
	case *image.RGBA:
		pix, offset = m.Pix, m.PixOffset
	default:
		draw.Draw(img, r, image.Transparent, image.Point{}, draw.Src)
		return
	}
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	n := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := offset(r.Min.X, y)
		clear(pix[i : i+n])
	}
}

// Erase reduces dst alpha inside r by the coverage of mask scaled by
// strength: a' = a * (1 - coverage*strength). This is destination-out.
func Erase(dst *image.NRGBA, r image.Rectangle, mask image.Image, strength float64) {
	strength = clamp01(strength)
	r = r.Intersect(dst.Bounds()).Intersect(mask.Bounds())
	if r.Empty() || strength == 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
			cov := maskAlpha(mask, x, y)
			if cov == 0 || dst.Pix[i+3] == 0 {
				continue
			}
			a := float64(dst.Pix[i+3]) / 255
			dst.Pix[i+3] = to8(a * (1 - float64(cov)/255*strength))
		}
	}
}

func maskAlpha(m image.Image, x, y int) uint8 {
	switch mm := m.(type) {
	case *image.RGBA:
		return mm.Pix[mm.PixOffset(x, y)+3]
	case *image.NRGBA:
		return mm.Pix[mm.PixOffset(x, y)+3]
	case *image.Alpha:
		return mm.Pix[mm.PixOffset(x, y)]
	default:
		_, _, _, a := m.At(x, y).RGBA()
		return uint8(a >> 8)
	}
}

// ContentBounds returns the tight box around every pixel with alpha > 0,
// grown by padding and clamped to the image. ok is false when the image is
// entirely transparent.
func ContentBounds(img image.Image, padding int) (r image.Rectangle, ok bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if maskAlpha(img, x, y) == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < b.Min.X {
		return image.Rectangle{}, false
	}

	r = image.Rect(minX-padding, minY-padding, maxX+1+padding, maxY+1+padding)
	return r.Intersect(b), true
}

// Crop copies the region r of src into a new bitmap anchored at the origin.
func Crop(src image.Image, r image.Rectangle) *image.NRGBA {
	out := New(r.Dx(), r.Dy())
	draw.Draw(out, out.Bounds(), src, r.Min, draw.Src)
	return out
}

// Scale resamples src to w×h with bilinear filtering. Equal sizes produce an
// exact copy.
func Scale(src image.Image, w, h int) *image.NRGBA {
	if w < 1 || h < 1 {
		return New(0, 0)
	}
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return Crop(src, b)
	}
	out := New(w, h)
	xdraw.BiLinear.Scale(out, out.Bounds(), src, b, xdraw.Src, nil)
	return out
}

// DiffBounds returns the smallest rectangle containing every pixel where a
// and b differ. ok is false for identical bitmaps. Both must share bounds.
func DiffBounds(a, b *image.NRGBA) (r image.Rectangle, ok bool) {
	if a.Rect != b.Rect {
		return a.Rect.Union(b.Rect), true
	}
	bb := a.Bounds()
	minX, minY := bb.Max.X, bb.Max.Y
	maxX, maxY := bb.Min.X-1, bb.Min.Y-1
	for y := bb.Min.Y; y < bb.Max.Y; y++ {
		i := a.PixOffset(bb.Min.X, y)
		for x := bb.Min.X; x < bb.Max.X; x, i = x+1, i+4 {
			if a.Pix[i] == b.Pix[i] && a.Pix[i+1] == b.Pix[i+1] &&
				a.Pix[i+2] == b.Pix[i+2] && a.Pix[i+3] == b.Pix[i+3] {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < bb.Min.X {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
