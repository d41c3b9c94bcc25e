package layer

import (
	"image"

	"github.com/ha1tch/deluxepaint/raster"
)

// Compositor merges a layer stack into one bitmap. It keeps no per-layer
// state: the output depends only on its inputs.
type Compositor struct {
	merged *image.NRGBA
}

// NewCompositor allocates the merged bitmap.
func NewCompositor(width, height int) *Compositor {
	return &Compositor{merged: raster.New(width, height)}
}

// Composite clears the merged bitmap and draws every visible layer bottom
// to top with its opacity and blend mode. Locked layers are drawn normally.
// The returned image is owned by the compositor and is overwritten by the
// next call.
func (c *Compositor) Composite(layers []*Layer) *image.NRGBA {
	clear(c.merged.Pix)
	for _, l := range layers {
		if !l.Visible {
			continue
		}
		raster.Draw(c.merged, image.Point{}, l.Image(), l.Opacity, l.BlendMode)
	}
	return c.merged
}

// CompositeWithPreview composites layers and then draws preview on top at
// full opacity with normal blending. A nil preview is skipped.
func (c *Compositor) CompositeWithPreview(layers []*Layer, preview image.Image) *image.NRGBA {
	c.Composite(layers)
	if preview != nil {
		raster.Draw(c.merged, image.Point{}, preview, 1, raster.BlendNormal)
	}
	return c.merged
}

// Resize reallocates the merged bitmap.
func (c *Compositor) Resize(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	c.merged = raster.New(width, height)
}

// Image returns the result of the last composite.
func (c *Compositor) Image() *image.NRGBA { return c.merged }
