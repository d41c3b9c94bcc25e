package tool

import (
	"image"
	"image/color"
	"testing"

	"github.com/ha1tch/deluxepaint/raster"
)

// framed returns a 12×12 bitmap: a 1px red frame around a 10×10 blue area.
func framed() *image.NRGBA {
	img := raster.New(12, 12)
	raster.Fill(img, img.Bounds(), colorRed)
	raster.Fill(img, image.Rect(1, 1, 11, 11), colorBlue)
	return img
}

func TestFloodFillRegion(t *testing.T) {
	img := framed()
	green := color.NRGBA{G: 255, A: 255}

	if n := FloodFill(img, 5, 5, green, FillTolerance); n != 100 {
		t.Errorf("FloodFill() = %d pixels, want 100", n)
	}
	for y := range 12 {
		for x := range 12 {
			got := img.NRGBAAt(x, y)
			want := colorRed
			if x >= 1 && x < 11 && y >= 1 && y < 11 {
				want = green
			}
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFloodFillTolerance(t *testing.T) {
	img := raster.New(3, 1)
	img.SetNRGBA(0, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 110, G: 90, B: 100, A: 245})
	img.SetNRGBA(2, 0, color.NRGBA{R: 111, G: 100, B: 100, A: 255})

	if n := FloodFill(img, 0, 0, colorBlue, FillTolerance); n != 2 {
		t.Errorf("FloodFill() = %d pixels, want 2", n)
	}
	if got := img.NRGBAAt(2, 0).R; got != 111 {
		t.Errorf("pixel beyond tolerance changed: R = %d", got)
	}
}

func TestFloodFillOutside(t *testing.T) {
	img := framed()
	if n := FloodFill(img, -1, 3, colorBlue, FillTolerance); n != 0 {
		t.Errorf("FloodFill() outside = %d, want 0", n)
	}
}

func TestFloodFillLarge(t *testing.T) {
	img := raster.New(800, 600)
	if n := FloodFill(img, 400, 300, colorRed, FillTolerance); n != 800*600 {
		t.Errorf("FloodFill() = %d, want %d", n, 800*600)
	}
}

func TestFillTool(t *testing.T) {
	env := newEnv(12, 12)
	l := env.Layers.Active()
	l.PutPixels(framed())

	fill := NewFill(env)
	cfg := DefaultConfig()
	cfg.StrokeColor = "#00ff00"
	cfg.FillColor = "#ffff00"
	cfg.Opacity = 0.5
	fill.SetConfig(cfg)

	fill.PointerDown(at(5.2, 4.8))
	if got := env.History.UndoCount(); got != 1 {
		t.Fatalf("UndoCount() = %d, want 1", got)
	}
	if got, want := l.Image().NRGBAAt(5, 5), (color.NRGBA{G: 255, A: 128}); got != want {
		t.Errorf("filled pixel = %v, want %v", got, want)
	}

	// Filling with the exact color already present is a no-op.
	fill.PointerDown(at(5, 5))
	if got := env.History.UndoCount(); got != 1 {
		t.Errorf("same-color fill pushed history: UndoCount() = %d", got)
	}

	// The secondary button uses the fill color.
	fill.PointerDown(PointerEvent{Point: at(0, 0).Point, Button: ButtonSecondary})
	if got, want := l.Image().NRGBAAt(0, 0), (color.NRGBA{R: 255, G: 255, A: 128}); got != want {
		t.Errorf("secondary fill = %v, want %v", got, want)
	}

	// Out of bounds and locked layers are ignored.
	fill.PointerDown(at(40, 40))
	l.Locked = true
	fill.PointerDown(at(5, 5))
	if got := env.History.UndoCount(); got != 2 {
		t.Errorf("UndoCount() = %d, want 2", got)
	}
}
