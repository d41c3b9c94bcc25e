package tool

import (
	"image"
	"testing"

	"github.com/ha1tch/deluxepaint/geom"
	"github.com/ha1tch/deluxepaint/raster"
)

func startPlacement() *Placement {
	p := &Placement{}
	p.Start(raster.New(40, 20), image.Rect(10, 10, 50, 30))
	return p
}

func TestPlacementPointerDown(t *testing.T) {
	tests := []struct {
		name string
		pt   geom.Point
		want Hit
	}{
		{"top-left handle", geom.Pt(12, 8), HitResize},
		{"bottom-right handle", geom.Pt(50, 30), HitResize},
		{"inside", geom.Pt(30, 20), HitDrag},
		{"edge counts as inside", geom.Pt(30, 30), HitDrag},
		{"outside", geom.Pt(200, 200), HitOutside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := startPlacement().PointerDown(tt.pt); got != tt.want {
				t.Errorf("PointerDown(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}

	var idle Placement
	if got := idle.PointerDown(geom.Pt(0, 0)); got != HitOutside {
		t.Errorf("inactive PointerDown() = %v, want HitOutside", got)
	}
}

func TestPlacementResize(t *testing.T) {
	tests := []struct {
		name   string
		grab   geom.Point
		to     geom.Point
		aspect bool
		want   image.Rectangle
	}{
		{"bottom-right grows", geom.Pt(50, 30), geom.Pt(70, 40), false, image.Rect(10, 10, 70, 40)},
		{"minimum size", geom.Pt(50, 30), geom.Pt(0, 0), false, image.Rect(10, 10, 20, 20)},
		{"top-left anchors bottom-right", geom.Pt(10, 10), geom.Pt(0, 5), false, image.Rect(0, 5, 50, 30)},
		{"top-right anchors bottom-left", geom.Pt(50, 10), geom.Pt(60, 0), false, image.Rect(10, 0, 60, 30)},
		{"bottom-left anchors top-right", geom.Pt(10, 30), geom.Pt(0, 40), false, image.Rect(0, 10, 50, 40)},
		{"aspect bottom-right", geom.Pt(50, 30), geom.Pt(70, 60), true, image.Rect(10, 10, 70, 40)},
		{"aspect top-left", geom.Pt(10, 10), geom.Pt(0, 0), true, image.Rect(0, 5, 50, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := startPlacement()
			if hit := p.PointerDown(tt.grab); hit != HitResize {
				t.Fatalf("PointerDown(%v) = %v, want HitResize", tt.grab, hit)
			}
			p.PointerMove(tt.to, tt.aspect)
			p.PointerUp()
			if got := p.Bounds(); got != tt.want {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlacementDrag(t *testing.T) {
	p := startPlacement()
	p.PointerDown(geom.Pt(30, 20))
	p.PointerMove(geom.Pt(35.4, 22.6), false)
	p.PointerUp()
	if got, want := p.Bounds(), image.Rect(15, 13, 55, 33); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}

	// Moves after release do nothing but track the cursor.
	p.PointerMove(geom.Pt(100, 100), false)
	if got, want := p.Bounds(), image.Rect(15, 13, 55, 33); got != want {
		t.Errorf("Bounds() after release = %v, want %v", got, want)
	}
}

func TestPlacementCursor(t *testing.T) {
	tests := []struct {
		pt   geom.Point
		want Cursor
	}{
		{geom.Pt(10, 10), CursorResizeNWSE},
		{geom.Pt(50, 30), CursorResizeNWSE},
		{geom.Pt(50, 10), CursorResizeNESW},
		{geom.Pt(10, 30), CursorResizeNESW},
		{geom.Pt(30, 20), CursorMove},
		{geom.Pt(100, 100), CursorDefault},
	}
	for _, tt := range tests {
		p := startPlacement()
		p.PointerMove(tt.pt, false)
		if got := p.Cursor(); got != tt.want {
			t.Errorf("Cursor() at %v = %v, want %v", tt.pt, got, tt.want)
		}
	}
}

func TestPlacementDrawOnto(t *testing.T) {
	src := raster.New(20, 20)
	raster.Fill(src, src.Bounds(), colorRed)
	p := &Placement{}
	p.Start(src, image.Rect(2, 2, 22, 22))

	dst := raster.New(40, 40)
	p.DrawOnto(dst)
	if got := dst.NRGBAAt(3, 3); got != colorRed {
		t.Errorf("pixel (3,3) = %v, want %v", got, colorRed)
	}
	if got := dst.NRGBAAt(25, 25).A; got != 0 {
		t.Errorf("pixel (25,25) alpha = %d, want 0", got)
	}

	// Resized to 28×28 the bitmap covers the new area.
	if hit := p.PointerDown(geom.Pt(22, 22)); hit != HitResize {
		t.Fatalf("PointerDown() = %v, want HitResize", hit)
	}
	p.PointerMove(geom.Pt(30, 30), false)
	p.PointerUp()
	dst = raster.New(40, 40)
	p.DrawOnto(dst)
	if got := dst.NRGBAAt(25, 25).A; got != 255 {
		t.Errorf("scaled pixel (25,25) alpha = %d, want 255", got)
	}
}

func TestPlacementPreviewAndReset(t *testing.T) {
	p := startPlacement()
	if p.Preview(100, 100) == nil {
		t.Fatal("Preview() = nil while active")
	}
	p.Reset()
	if p.Active() {
		t.Error("Active() after Reset")
	}
	if p.Preview(100, 100) != nil {
		t.Error("Preview() != nil after Reset")
	}
}
