package engine

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/ha1tch/deluxepaint/geom"
	"github.com/ha1tch/deluxepaint/layer"
	"github.com/ha1tch/deluxepaint/raster"
	"github.com/ha1tch/deluxepaint/tool"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func at(x, y float64) tool.PointerEvent {
	return tool.PointerEvent{Point: geom.Pt(x, y), Pressure: 0.5}
}

func TestNewFillsBackground(t *testing.T) {
	e := New(WithSize(64, 32), WithBackground("#ff0000"))
	if w, h := e.Layers().Size(); w != 64 || h != 32 {
		t.Fatalf("Size() = %dx%d, want 64x32", w, h)
	}
	if got := e.Flatten().NRGBAAt(10, 10); got != red {
		t.Errorf("background pixel = %v, want %v", got, red)
	}
	if e.History().CanUndo() {
		t.Error("CanUndo() = true on a new engine")
	}
	if got := e.ActiveTool().ID(); got != tool.IDPencil {
		t.Errorf("active tool = %q, want %q", got, tool.IDPencil)
	}
}

func TestResizeLeavesNewAreaTransparent(t *testing.T) {
	e := New(WithSize(800, 600))
	if !e.Resize(1000, 800, 0, 0) {
		t.Fatal("Resize() = false")
	}
	for _, l := range e.Layers().Layers() {
		if l.Width() != 1000 || l.Height() != 800 {
			t.Fatalf("layer %q is %dx%d, want 1000x800", l.Name, l.Width(), l.Height())
		}
	}
	img := e.Flatten()
	if got := img.Bounds(); got != image.Rect(0, 0, 1000, 800) {
		t.Fatalf("composite bounds = %v", got)
	}
	if got := img.NRGBAAt(10, 10); got != white {
		t.Errorf("old area pixel = %v, want %v", got, white)
	}
	for _, p := range []image.Point{{900, 100}, {100, 700}, {999, 799}} {
		if a := img.NRGBAAt(p.X, p.Y).A; a != 0 {
			t.Errorf("new area pixel %v alpha = %d, want 0", p, a)
		}
	}
	if got := e.Config(); got.Width != 1000 || got.Height != 800 {
		t.Errorf("Config() size = %dx%d", got.Width, got.Height)
	}
	if s := e.Viewport().CanvasSize(); s.W != 1000 || s.H != 800 {
		t.Errorf("viewport canvas size = %v", s)
	}
}

func TestResizeShiftsContent(t *testing.T) {
	e := New(WithSize(20, 20))
	bg := e.Layers().Active()
	bg.Clear()
	bg.Image().SetNRGBA(0, 0, red)

	e.Resize(30, 30, 5, 7)
	if got := bg.Image().NRGBAAt(5, 7); got != red {
		t.Errorf("shifted pixel = %v, want %v", got, red)
	}
}

func TestResizeRejectsEmpty(t *testing.T) {
	e := New(WithSize(20, 20))
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if e.Resize(sz[0], sz[1], 0, 0) {
			t.Errorf("Resize(%d, %d) = true", sz[0], sz[1])
		}
	}
	if w, h := e.Layers().Size(); w != 20 || h != 20 {
		t.Errorf("Size() = %dx%d after rejected resizes", w, h)
	}
}

func TestNewCanvas(t *testing.T) {
	e := New(WithSize(100, 100))
	e.Layers().Active().Clear()
	e.ClearActiveLayer()
	if !e.History().CanUndo() {
		t.Fatal("CanUndo() = false after clear")
	}

	if !e.NewCanvas(320, 240) {
		t.Fatal("NewCanvas() = false")
	}
	if e.History().CanUndo() || e.History().CanRedo() {
		t.Error("history survived NewCanvas")
	}
	img := e.Flatten()
	if got := img.Bounds().Size(); got != image.Pt(320, 240) {
		t.Fatalf("composite size = %v", got)
	}
	for _, p := range []image.Point{{0, 0}, {150, 120}, {319, 239}} {
		if got := img.NRGBAAt(p.X, p.Y); got != white {
			t.Errorf("pixel %v = %v, want background", p, got)
		}
	}
}

func TestTickRendersOnlyWhenDirty(t *testing.T) {
	e := New(WithSize(16, 16))
	now := time.Now()
	if !e.Tick(now) {
		t.Fatal("first Tick() = false")
	}
	if e.Tick(now) {
		t.Error("Tick() = true with nothing changed")
	}
	e.MarkDirty()
	if !e.Dirty() {
		t.Error("Dirty() = false after MarkDirty")
	}
	if !e.Tick(now) {
		t.Error("Tick() = false after MarkDirty")
	}

	e.Layers().SetVisible(e.Layers().ActiveID(), false)
	if !e.Tick(now) {
		t.Error("Tick() = false after a layer change")
	}
	if a := e.Frame().NRGBAAt(1, 1).A; a != 0 {
		t.Errorf("hidden layer still rendered, alpha = %d", a)
	}
}

func TestClearActiveLayerUndo(t *testing.T) {
	e := New(WithSize(40, 30))
	if !e.ClearActiveLayer() {
		t.Fatal("ClearActiveLayer() = false")
	}
	if a := e.Flatten().NRGBAAt(5, 5).A; a != 0 {
		t.Fatalf("alpha after clear = %d, want 0", a)
	}
	if label, _ := e.History().LastLabel(); label != "Clear Canvas" {
		t.Errorf("LastLabel() = %q", label)
	}
	if !e.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := e.Flatten().NRGBAAt(5, 5); got != white {
		t.Errorf("pixel after undo = %v, want %v", got, white)
	}
	if !e.Redo() {
		t.Fatal("Redo() = false")
	}
	if a := e.Flatten().NRGBAAt(5, 5).A; a != 0 {
		t.Errorf("alpha after redo = %d, want 0", a)
	}
}

func TestClearLockedLayer(t *testing.T) {
	e := New(WithSize(10, 10))
	e.Layers().SetLocked(e.Layers().ActiveID(), true)
	if e.ClearActiveLayer() {
		t.Error("ClearActiveLayer() = true on a locked layer")
	}
	if e.History().CanUndo() {
		t.Error("locked clear was recorded")
	}
}

func TestUndoCancelsPlacement(t *testing.T) {
	e := New(WithSize(200, 100))
	e.SetTool(tool.IDRectangle)
	e.PointerDown(at(10, 10))
	e.PointerMove(at(110, 60))
	e.PointerUp(at(110, 60))
	if !e.HasPlacement() {
		t.Fatal("HasPlacement() = false after drawing a rectangle")
	}
	if !e.Undo() {
		t.Fatal("Undo() = false with a placement")
	}
	if e.HasPlacement() {
		t.Error("placement survived Undo")
	}
	if e.History().CanUndo() {
		t.Error("cancelled placement was recorded")
	}
}

func TestSetToolConfirmsPlacement(t *testing.T) {
	e := New(WithSize(200, 100))
	e.SetTool(tool.IDRectangle)
	e.PointerDown(at(10, 10))
	e.PointerMove(at(110, 60))
	e.PointerUp(at(110, 60))

	e.SetTool(tool.IDPencil)
	if got := e.History().UndoCount(); got != 1 {
		t.Errorf("UndoCount() = %d after switching tools, want 1", got)
	}
}

func TestPasteRestoresPreviousTool(t *testing.T) {
	e := New(WithSize(200, 100))
	e.SetTool(tool.IDLine)

	var done []bool
	e.SetOnPasteDone(func(confirmed bool) { done = append(done, confirmed) })

	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []byte{255, 0, 0, 255})
	}
	e.Paste(src)
	if got := e.ActiveTool().ID(); got != tool.IDPaste {
		t.Fatalf("active tool = %q during paste", got)
	}
	if !e.HasPlacement() {
		t.Fatal("HasPlacement() = false after Paste")
	}

	e.ConfirmPlacement()
	if got := e.ActiveTool().ID(); got != tool.IDLine {
		t.Errorf("active tool = %q after paste, want %q", got, tool.IDLine)
	}
	if len(done) != 1 || !done[0] {
		t.Errorf("paste callbacks = %v, want [true]", done)
	}
	if got := e.Flatten().NRGBAAt(100, 50); got != red {
		t.Errorf("center pixel = %v, want %v", got, red)
	}
	if label, _ := e.History().LastLabel(); label != "Paste" {
		t.Errorf("LastLabel() = %q", label)
	}
}

func TestPasteCancelled(t *testing.T) {
	e := New(WithSize(100, 100))
	e.Paste(image.NewNRGBA(image.Rect(0, 0, 10, 10)))
	e.CancelPlacement()
	if got := e.ActiveTool().ID(); got != tool.IDPencil {
		t.Errorf("active tool = %q after cancelled paste", got)
	}
	if e.History().CanUndo() {
		t.Error("cancelled paste was recorded")
	}
}

func TestSprayTicks(t *testing.T) {
	e := New(WithSize(100, 100), WithRand(rand.New(rand.NewPCG(1, 2))))
	e.Layers().Active().Clear()
	e.SetTool(tool.IDSpray)

	start := time.Unix(1000, 0)
	e.PointerDown(at(50, 50))
	e.Tick(start)
	if e.Tick(start.Add(10 * time.Millisecond)) {
		t.Error("Tick() = true before the spray interval elapsed")
	}
	before := e.Layers().Active().Pixels()
	if !e.Tick(start.Add(tool.SprayInterval)) {
		t.Fatal("Tick() = false after the spray interval")
	}
	if _, changed := raster.DiffBounds(before, e.Layers().Active().Image()); !changed {
		t.Error("spray tick drew nothing")
	}
	e.PointerUp(at(50, 50))
	if got := e.History().UndoCount(); got != 1 {
		t.Errorf("UndoCount() = %d, want 1", got)
	}
	e.Tick(start.Add(time.Second))
	if e.Tick(start.Add(2 * time.Second)) {
		t.Error("Tick() = true after the spray stopped")
	}
}

func TestScreenPointerUsesViewport(t *testing.T) {
	e := New(WithSize(100, 100))
	e.Layers().Active().Image().SetNRGBA(50, 60, red)
	e.Viewport().SetZoom(2)
	e.Viewport().SetOffset(geom.Pt(10, 10))

	var picked string
	e.Tools().Eyedropper().SetPick(func(hex string) { picked = hex })
	e.SetTool(tool.IDEyedropper)
	e.ScreenPointerDown(at(10+2*50, 10+2*60))
	e.ScreenPointerUp(at(10+2*50, 10+2*60))

	if picked != "#ff0000" {
		t.Errorf("picked %q, want #ff0000", picked)
	}
}

func TestOpenReplacesDocument(t *testing.T) {
	e := New(WithSize(10, 10))
	e.ClearActiveLayer()

	a := layer.New(50, 40, "Ink")
	b := layer.New(50, 40, "Notes")
	b.Visible = false
	if !e.Open(50, 40, []*layer.Layer{a, b}, 1) {
		t.Fatal("Open() = false")
	}
	if got := e.Layers().Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if got := e.Layers().ActiveID(); got != b.ID() {
		t.Errorf("active = %q, want %q", got, b.ID())
	}
	stack := e.Layers().Layers()
	if stack[0] != a || stack[1] != b {
		t.Error("layer order not preserved")
	}
	if e.History().CanUndo() {
		t.Error("history survived Open")
	}
	if got := e.Flatten().Bounds().Size(); got != image.Pt(50, 40) {
		t.Errorf("composite size = %v", got)
	}
	if e.Open(50, 40, nil, 0) {
		t.Error("Open() with no layers = true")
	}
}

func TestPixelsLength(t *testing.T) {
	e := New(WithSize(7, 3))
	if got := len(e.Pixels()); got != 7*3*4 {
		t.Errorf("len(Pixels()) = %d, want %d", got, 7*3*4)
	}
}

func TestUndoDuringStrokeRefused(t *testing.T) {
	e := New(WithSize(100, 100))
	e.ClearActiveLayer()

	e.PointerDown(at(40, 40))
	e.PointerMove(at(50, 50))
	if !e.Busy() {
		t.Fatal("Busy() = false mid-stroke")
	}
	if e.Undo() {
		t.Error("Undo() = true mid-stroke")
	}
	if a := e.Flatten().NRGBAAt(5, 5).A; a != 0 {
		t.Fatalf("alpha = %d after refused undo, want 0", a)
	}
	e.PointerUp(at(50, 50))

	if got := e.History().UndoCount(); got != 2 {
		t.Fatalf("UndoCount() = %d, want 2", got)
	}
	e.Undo()
	if a := e.Flatten().NRGBAAt(5, 5).A; a != 0 {
		t.Errorf("undoing the stroke brought back cleared pixels, alpha = %d", a)
	}
	e.Undo()
	if got := e.Flatten().NRGBAAt(5, 5); got != white {
		t.Errorf("pixel after undoing clear = %v, want %v", got, white)
	}
	if got := e.History().RedoCount(); got != 2 {
		t.Errorf("RedoCount() = %d, want 2", got)
	}
}

func TestBusyRefusesCanvasEdits(t *testing.T) {
	tests := []struct {
		name string
		op   func(e *Engine) bool
	}{
		{"Redo", func(e *Engine) bool { return e.Redo() }},
		{"ClearActiveLayer", func(e *Engine) bool { return e.ClearActiveLayer() }},
		{"Resize", func(e *Engine) bool { return e.Resize(50, 50, 0, 0) }},
		{"NewCanvas", func(e *Engine) bool { return e.NewCanvas(50, 50) }},
		{"Open", func(e *Engine) bool {
			return e.Open(50, 50, []*layer.Layer{layer.New(50, 50, "x")}, 0)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithSize(100, 100))
			e.ClearActiveLayer()
			e.Undo()

			e.PointerDown(at(10, 10))
			if tt.op(e) {
				t.Errorf("%s() = true mid-stroke", tt.name)
			}
			e.PointerUp(at(10, 10))
			if w, h := e.Layers().Size(); w != 100 || h != 100 {
				t.Errorf("Size() = %dx%d, want 100x100", w, h)
			}
			if got := e.History().UndoCount(); got != 1 {
				t.Errorf("UndoCount() = %d, want 1", got)
			}
		})
	}
}

func TestBusyTools(t *testing.T) {
	tests := []struct {
		id   tool.ID
		busy bool
	}{
		{tool.IDPencil, true},
		{tool.IDEraser, true},
		{tool.IDSpray, true},
		{tool.IDRectangle, true},
		{tool.IDSelection, true},
		{tool.IDEyedropper, false},
		{tool.IDFill, false},
	}
	for _, tt := range tests {
		e := New(WithSize(100, 100))
		e.SetTool(tt.id)
		e.PointerDown(at(10, 10))
		e.PointerMove(at(60, 60))
		if got := e.Busy(); got != tt.busy {
			t.Errorf("%s: Busy() mid-drag = %v, want %v", tt.id, got, tt.busy)
		}
		e.PointerUp(at(60, 60))
		if e.Busy() {
			t.Errorf("%s: Busy() = true after release", tt.id)
		}
	}
}
