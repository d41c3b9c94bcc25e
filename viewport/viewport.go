// Package viewport maps between screen space and canvas space.
//
// The transform is affine: canvas = (screen - offset) / zoom.
package viewport

import (
	"math"

	"github.com/ha1tch/deluxepaint/geom"
)

const (
	MinZoom = 0.1
	MaxZoom = 32.0

	// zoom step used by ZoomIn/ZoomOut
	zoomStep = 1.25
	// fraction of the container a fitted canvas occupies
	fitMargin = 0.9
)

// Viewport holds zoom and pan state for one canvas.
type Viewport struct {
	zoom       float64
	offset     geom.Point
	canvasSize geom.Size
}

// New returns a viewport at zoom 1 with no offset.
func New(canvasSize geom.Size) *Viewport {
	return &Viewport{zoom: 1, canvasSize: canvasSize}
}

func (v *Viewport) Zoom() float64         { return v.zoom }
func (v *Viewport) Offset() geom.Point    { return v.offset }
func (v *Viewport) CanvasSize() geom.Size { return v.canvasSize }

func (v *Viewport) SetCanvasSize(s geom.Size) { v.canvasSize = s }
func (v *Viewport) SetOffset(p geom.Point)    { v.offset = p }

// Pan translates the canvas origin on screen.
func (v *Viewport) Pan(dx, dy float64) {
	v.offset.X += dx
	v.offset.Y += dy
}

// SetZoom clamps z to [MinZoom, MaxZoom] and keeps the offset.
func (v *Viewport) SetZoom(z float64) {
	if math.IsNaN(z) {
		return
	}
	v.zoom = clampZoom(z)
}

// ZoomAt sets the zoom so that the canvas point under focal (a screen
// point) stays under focal.
func (v *Viewport) ZoomAt(z float64, focal geom.Point) {
	if math.IsNaN(z) {
		return
	}
	c := v.ScreenToCanvas(focal)
	v.zoom = clampZoom(z)
	v.offset = geom.Point{
		X: focal.X - c.X*v.zoom,
		Y: focal.Y - c.Y*v.zoom,
	}
}

func (v *Viewport) ZoomIn()  { v.SetZoom(v.zoom * zoomStep) }
func (v *Viewport) ZoomOut() { v.SetZoom(v.zoom / zoomStep) }

func (v *Viewport) ScreenToCanvas(p geom.Point) geom.Point {
	return p.Sub(v.offset).Div(v.zoom)
}

func (v *Viewport) CanvasToScreen(p geom.Point) geom.Point {
	return p.Mul(v.zoom).Add(v.offset)
}

// FitToContainer scales the canvas to 90% of the container and centers it.
func (v *Viewport) FitToContainer(container geom.Size) {
	if v.canvasSize.W <= 0 || v.canvasSize.H <= 0 {
		return
	}
	sx := container.W / v.canvasSize.W
	sy := container.H / v.canvasSize.H
	v.zoom = clampZoom(min(sx, sy) * fitMargin)
	v.CenterInContainer(container)
}

// CenterInContainer centers the canvas at the current zoom.
func (v *Viewport) CenterInContainer(container geom.Size) {
	v.offset = geom.Point{
		X: (container.W - v.canvasSize.W*v.zoom) / 2,
		Y: (container.H - v.canvasSize.H*v.zoom) / 2,
	}
}

// ResetZoom restores zoom 1 and a zero offset.
func (v *Viewport) ResetZoom() {
	v.zoom = 1
	v.offset = geom.Point{}
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
