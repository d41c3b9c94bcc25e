// Package project reads and writes documents: flattened PNG/JPEG exports
// and the layered .ddd project archive.
package project

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
)

// DefaultJPEGQuality is used when ExportJPEG is given a quality outside
// 1..100.
const DefaultJPEGQuality = 95

// ExportPNG writes img as PNG, keeping transparency.
func ExportPNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// ExportJPEG writes img as JPEG. JPEG has no alpha, so transparent pixels
// are flattened onto white first.
func ExportJPEG(w io.Writer, img image.Image, quality int) error {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return jpeg.Encode(w, OnWhite(img), &jpeg.Options{Quality: quality})
}

// OnWhite returns an opaque copy of img composited over white.
func OnWhite(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}
