// Package raster implements the pixel-level operations the engine is built on:
// blend modes, bitmap compositing, erasing, content bounds, cropping and
// resampling of non-premultiplied RGBA bitmaps.
//
// Blending follows the separable blend modes of W3C Compositing and Blending
// Level 1. All bitmaps owned by the engine are *image.NRGBA; sources may also
// be *image.RGBA (what fogleman/gg renders into) or any image.Image.
package raster

import (
	"image"
	"image/color"
	"math"
)

// BlendMode selects how a source pixel combines with the backdrop.
type BlendMode int

const (
	BlendNormal   BlendMode = iota // source-over
	BlendMultiply                  // S * D
	BlendScreen                    // S + D - S*D
	BlendOverlay                   // HardLight with swapped layers
	BlendDarken                    // min(S, D)
	BlendLighten                   // max(S, D)
)

var blendNames = [...]string{
	BlendNormal:   "source-over",
	BlendMultiply: "multiply",
	BlendScreen:   "screen",
	BlendOverlay:  "overlay",
	BlendDarken:   "darken",
	BlendLighten:  "lighten",
}

// String returns the canvas name of the mode ("source-over", "multiply", ...).
func (m BlendMode) String() string {
	if m < 0 || int(m) >= len(blendNames) {
		return "unknown"
	}
	return blendNames[m]
}

// BlendModes lists every supported mode in declaration order.
func BlendModes() []BlendMode {
	return []BlendMode{BlendNormal, BlendMultiply, BlendScreen, BlendOverlay, BlendDarken, BlendLighten}
}

// ParseBlendMode maps a canvas name back to a BlendMode. "normal" is accepted
// as an alias for "source-over".
func ParseBlendMode(s string) (BlendMode, bool) {
	if s == "normal" {
		return BlendNormal, true
	}
	for i, name := range blendNames {
		if name == s {
			return BlendMode(i), true
		}
	}
	return BlendNormal, false
}

// channel returns B(cb, cs) for one unmultiplied channel in [0,1].
func (m BlendMode) channel(cb, cs float64) float64 {
	switch m {
	case BlendMultiply:
		return cs * cb
	case BlendScreen:
		return cs + cb - cs*cb
	case BlendOverlay:
		if cb <= 0.5 {
			return 2 * cs * cb
		}
		return 1 - 2*(1-cs)*(1-cb)
	case BlendDarken:
		return math.Min(cs, cb)
	case BlendLighten:
		return math.Max(cs, cb)
	default:
		return cs
	}
}

// blendPixel composites one unmultiplied source pixel (components in [0,1],
// alpha already scaled by layer opacity) onto the 4 bytes at d.
//
//	Cs' = (1 - ab) * Cs + ab * B(Cb, Cs)
//	co  = as * Cs' + ab * Cb * (1 - as)
//	ao  = as + ab * (1 - as)
func blendPixel(mode BlendMode, d []uint8, sr, sg, sb, sa float64) {
	if sa <= 0 {
		return
	}
	ab := float64(d[3]) / 255
	ao := sa + ab*(1-sa)
	if ao <= 0 {
		return
	}
	src := [3]float64{sr, sg, sb}
	for i := 0; i < 3; i++ {
		cb := float64(d[i]) / 255
		cs := src[i]
		mixed := (1-ab)*cs + ab*mode.channel(cb, cs)
		co := sa*mixed + ab*cb*(1-sa)
		d[i] = to8(co / ao)
	}
	d[3] = to8(ao)
}

// to8 converts a [0,1] value to a byte with rounding and clamping.
func to8(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Blend composites the part of src aligned with r onto dst. r is in dst
// coordinates; sp is the source point that maps to r.Min. opacity scales
// every source alpha and is clamped to [0,1].
func Blend(dst *image.NRGBA, r image.Rectangle, src image.Image, sp image.Point, opacity float64, mode BlendMode) {
	opacity = clamp01(opacity)
	if opacity == 0 {
		return
	}
	r, sp = clipRects(dst.Bounds(), r, src.Bounds(), sp)
	if r.Empty() {
		return
	}

	switch s := src.(type) {
	case *image.NRGBA:
		for y := 0; y < r.Dy(); y++ {
			di := dst.PixOffset(r.Min.X, r.Min.Y+y)
			si := s.PixOffset(sp.X, sp.Y+y)
			for x := 0; x < r.Dx(); x, di, si = x+1, di+4, si+4 {
				a := s.Pix[si+3]
				if a == 0 {
					continue
				}
				blendPixel(mode, dst.Pix[di:di+4],
					float64(s.Pix[si])/255, float64(s.Pix[si+1])/255, float64(s.Pix[si+2])/255,
					float64(a)/255*opacity)
			}
		}
	case *image.RGBA:
		for y := 0; y < r.Dy(); y++ {
			di := dst.PixOffset(r.Min.X, r.Min.Y+y)
			si := s.PixOffset(sp.X, sp.Y+y)
			for x := 0; x < r.Dx(); x, di, si = x+1, di+4, si+4 {
				a := s.Pix[si+3]
				if a == 0 {
					continue
				}
				af := float64(a)
				blendPixel(mode, dst.Pix[di:di+4],
					math.Min(float64(s.Pix[si])/af, 1), math.Min(float64(s.Pix[si+1])/af, 1), math.Min(float64(s.Pix[si+2])/af, 1),
					af/255*opacity)
			}
		}
	default:
		for y := 0; y < r.Dy(); y++ {
			di := dst.PixOffset(r.Min.X, r.Min.Y+y)
			for x := 0; x < r.Dx(); x, di = x+1, di+4 {
				c := color.NRGBAModel.Convert(src.At(sp.X+x, sp.Y+y)).(color.NRGBA)
				if c.A == 0 {
					continue
				}
				blendPixel(mode, dst.Pix[di:di+4],
					float64(c.R)/255, float64(c.G)/255, float64(c.B)/255,
					float64(c.A)/255*opacity)
			}
		}
	}
}

// Draw composites the whole of src onto dst with its top-left corner at dp.
func Draw(dst *image.NRGBA, dp image.Point, src image.Image, opacity float64, mode BlendMode) {
	b := src.Bounds()
	Blend(dst, b.Sub(b.Min).Add(dp), src, b.Min, opacity, mode)
}

// clipRects shrinks r so that both r (in dst) and its source counterpart
// (starting at sp) lie inside their bounds.
func clipRects(dstB, r, srcB image.Rectangle, sp image.Point) (image.Rectangle, image.Point) {
	orig := r.Min
	r = r.Intersect(dstB)
	sp = sp.Add(r.Min.Sub(orig))

	sr := image.Rectangle{Min: sp, Max: sp.Add(r.Size())}
	clipped := sr.Intersect(srcB)
	if clipped.Empty() {
		return image.Rectangle{}, sp
	}
	r.Min = r.Min.Add(clipped.Min.Sub(sp))
	r.Max = r.Min.Add(clipped.Size())
	return r, clipped.Min
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MarshalText encodes the mode by its canvas name.
func (m BlendMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a canvas name; unknown names become BlendNormal.
func (m *BlendMode) UnmarshalText(b []byte) error {
	*m, _ = ParseBlendMode(string(b))
	return nil
}
