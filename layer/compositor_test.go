package layer

import (
	"image"
	"image/color"
	"testing"

	"github.com/ha1tch/deluxepaint/raster"
)

func TestCompositeOpaqueTopWins(t *testing.T) {
	m := NewManager(20, 20)
	b := m.Active()
	a := m.Add("A")

	b.Fill(image.Rect(0, 0, 20, 20), color.NRGBA{30, 200, 90, 180})
	a.Fill(image.Rect(5, 5, 15, 15), red)

	c := NewCompositor(20, 20)
	out := c.Composite(m.Layers())
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			if got := out.NRGBAAt(x, y); got != red {
				t.Fatalf("overlap pixel (%d,%d) = %v, want %v", x, y, got, red)
			}
		}
	}

	// Swapping order lets B show through in the overlap.
	m.Reorder(1, 0)
	out = c.Composite(m.Layers())
	if got := out.NRGBAAt(10, 10); got == red {
		t.Error("order change had no effect in the overlap region")
	}
}

func TestCompositeNonOverlappingIsOrderIndependent(t *testing.T) {
	m := NewManager(10, 10)
	b := m.Active()
	a := m.Add("A")
	b.Fill(image.Rect(0, 0, 5, 10), blue)
	a.Fill(image.Rect(5, 0, 10, 10), red)
	a.Opacity = 0.6

	c := NewCompositor(10, 10)
	first := raster.Clone(c.Composite(m.Layers()))
	m.Reorder(0, 1)
	second := c.Composite(m.Layers())
	if r, differ := raster.DiffBounds(first, second); differ {
		t.Errorf("non-overlapping layers depend on order in %v", r)
	}
}

func TestCompositeSkipsHiddenNotLocked(t *testing.T) {
	m := NewManager(4, 4)
	bg := m.Active()
	bg.Fill(bg.Image().Bounds(), blue)
	bg.Locked = true
	top := m.Add("top")
	top.Fill(top.Image().Bounds(), red)
	top.Visible = false

	out := NewCompositor(4, 4).Composite(m.Layers())
	if got := out.NRGBAAt(2, 2); got != blue {
		t.Errorf("pixel = %v, want locked background %v", got, blue)
	}
}

func TestCompositeClearsPreviousResult(t *testing.T) {
	m := NewManager(4, 4)
	m.Active().Fill(image.Rect(0, 0, 4, 4), red)
	c := NewCompositor(4, 4)
	c.Composite(m.Layers())

	m.Active().Clear()
	out := c.Composite(m.Layers())
	if out.NRGBAAt(0, 0).A != 0 {
		t.Error("stale pixels from the previous composite")
	}
}

func TestCompositeWithPreview(t *testing.T) {
	m := NewManager(8, 8)
	l := m.Active()
	l.Fill(l.Image().Bounds(), blue)
	l.Opacity = 0.2
	l.BlendMode = raster.BlendMultiply

	preview := raster.New(8, 8)
	raster.Fill(preview, image.Rect(0, 0, 4, 4), red)

	c := NewCompositor(8, 8)
	out := c.CompositeWithPreview(m.Layers(), preview)
	if got := out.NRGBAAt(1, 1); got != red {
		t.Errorf("preview pixel = %v, want %v regardless of layer settings", got, red)
	}
	if got := out.NRGBAAt(6, 6); got == red {
		t.Errorf("preview leaked outside its pixels")
	}

	plain := raster.Clone(c.Composite(m.Layers()))
	out = c.CompositeWithPreview(m.Layers(), nil)
	if _, differ := raster.DiffBounds(plain, out); differ {
		t.Error("nil preview changed the result")
	}
}

func TestCompositorResize(t *testing.T) {
	c := NewCompositor(4, 4)
	c.Resize(10, 3)
	if b := c.Image().Bounds(); b != image.Rect(0, 0, 10, 3) {
		t.Errorf("bounds = %v", b)
	}
	c.Resize(0, 3)
	if b := c.Image().Bounds(); b != image.Rect(0, 0, 10, 3) {
		t.Errorf("degenerate Resize changed bounds to %v", b)
	}
}
