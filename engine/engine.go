// Package engine wires the layer stack, compositor, viewport, history and
// tools into one editor and runs its cooperative render loop.
//
// The engine is single-threaded: every method must be called from the
// goroutine that owns it, normally the host's UI loop. Mutations only set a
// dirty flag; the next Tick re-composites once no matter how many edits
// happened in between.
package engine

import (
	"image"
	"time"

	"github.com/ha1tch/deluxepaint"
	"github.com/ha1tch/deluxepaint/geom"
	"github.com/ha1tch/deluxepaint/history"
	"github.com/ha1tch/deluxepaint/layer"
	"github.com/ha1tch/deluxepaint/raster"
	"github.com/ha1tch/deluxepaint/tool"
	"github.com/ha1tch/deluxepaint/viewport"
)

// Engine is the editor core.
type Engine struct {
	cfg CanvasConfig

	layers *layer.Manager
	comp   *layer.Compositor
	view   *viewport.Viewport
	hist   *history.History
	tools  *tool.Registry

	dirty bool
	frame *image.NRGBA

	// tool to return to when a paste ends
	pasteReturn tool.ID
	onPasteDone func(confirmed bool)
}

// New creates an editor with one background layer filled with the
// configured background color.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := o.canvas

	e := &Engine{
		cfg:    c,
		layers: layer.NewManager(c.Width, c.Height),
		comp:   layer.NewCompositor(c.Width, c.Height),
		view:   viewport.New(geom.Sz(float64(c.Width), float64(c.Height))),
		hist:   history.New(c.MaxHistory),
	}
	e.tools = tool.NewRegistry(tool.Env{
		Layers:     e.layers,
		History:    e.hist,
		Compositor: e.comp,
		Rand:       o.rng,
	})

	e.layers.Subscribe(func(layer.Event) { e.dirty = true })
	e.hist.SetOnChange(e.MarkDirty)
	e.tools.Paste().SetOnDone(e.pasteDone)

	bg := e.layers.Active()
	bg.Fill(bg.Image().Bounds(), raster.Color(c.Background))
	e.dirty = true

	deluxepaint.Logger().Info("engine created", "width", c.Width, "height", c.Height)
	return e
}

// Config returns the current canvas configuration.
func (e *Engine) Config() CanvasConfig { return e.cfg }

func (e *Engine) Layers() *layer.Manager        { return e.layers }
func (e *Engine) History() *history.History     { return e.hist }
func (e *Engine) Viewport() *viewport.Viewport  { return e.view }
func (e *Engine) Tools() *tool.Registry         { return e.tools }
func (e *Engine) Compositor() *layer.Compositor { return e.comp }

// MarkDirty schedules a re-composite on the next Tick.
func (e *Engine) MarkDirty() { e.dirty = true }

// Dirty reports whether the composite is stale.
func (e *Engine) Dirty() bool { return e.dirty }

// Tick advances timer-driven tools and re-composites if anything changed.
// It reports whether a fresh frame is available from Frame.
func (e *Engine) Tick(now time.Time) bool {
	if t, ok := e.tools.Active().(tool.Ticker); ok && t.Tick(now) {
		e.dirty = true
	}
	if !e.dirty {
		return false
	}
	e.render()
	return true
}

// Frame returns the last rendered composite, including the tool preview.
// The image is owned by the engine and replaced by the next render.
func (e *Engine) Frame() *image.NRGBA {
	if e.frame == nil {
		e.render()
	}
	return e.frame
}

// Composite renders immediately and returns the result.
func (e *Engine) Composite() *image.NRGBA {
	e.render()
	return e.frame
}

func (e *Engine) render() {
	e.frame = e.comp.CompositeWithPreview(e.layers.Layers(), e.tools.Active().Preview())
	e.dirty = false
}

// Flatten returns a copy of the merged layers without any tool preview.
func (e *Engine) Flatten() *image.NRGBA {
	out := raster.Clone(e.comp.Composite(e.layers.Layers()))
	e.dirty = true
	return out
}

// Pixels returns the flattened canvas as non-premultiplied RGBA bytes, row
// by row.
func (e *Engine) Pixels() []byte {
	return e.Flatten().Pix
}

// PointerDown forwards a canvas-space event to the active tool.
func (e *Engine) PointerDown(ev tool.PointerEvent) {
	e.tools.Active().PointerDown(ev)
	e.dirty = true
}

func (e *Engine) PointerMove(ev tool.PointerEvent) {
	e.tools.Active().PointerMove(ev)
	e.dirty = true
}

func (e *Engine) PointerUp(ev tool.PointerEvent) {
	e.tools.Active().PointerUp(ev)
	e.dirty = true
}

// ScreenPointerDown converts ev.Point from screen to canvas space first.
func (e *Engine) ScreenPointerDown(ev tool.PointerEvent) {
	e.PointerDown(e.toCanvas(ev))
}

func (e *Engine) ScreenPointerMove(ev tool.PointerEvent) {
	e.PointerMove(e.toCanvas(ev))
}

func (e *Engine) ScreenPointerUp(ev tool.PointerEvent) {
	e.PointerUp(e.toCanvas(ev))
}

func (e *Engine) toCanvas(ev tool.PointerEvent) tool.PointerEvent {
	ev.Point = e.view.ScreenToCanvas(ev.Point)
	return ev
}

// SetTool switches the active tool; a floating placement of the old tool
// is confirmed.
func (e *Engine) SetTool(id tool.ID) bool {
	e.pasteReturn = ""
	ok := e.tools.SetActive(id)
	e.dirty = true
	return ok
}

// ActiveTool returns the active tool.
func (e *Engine) ActiveTool() tool.Tool { return e.tools.Active() }

// SetToolConfig pushes new drawing parameters.
func (e *Engine) SetToolConfig(c tool.Config) { e.tools.SetConfig(c) }

// ToolConfig returns the drawing parameters in use.
func (e *Engine) ToolConfig() tool.Config { return e.tools.Config() }

// HasPlacement reports whether the active tool holds a floating bitmap.
func (e *Engine) HasPlacement() bool { return e.tools.Active().HasPlacement() }

func (e *Engine) ConfirmPlacement() {
	e.tools.Active().ConfirmPlacement()
	e.dirty = true
}

func (e *Engine) CancelPlacement() {
	e.tools.Active().CancelPlacement()
	e.dirty = true
}

// Busy reports whether the active tool is in the middle of a pointer
// interaction. History and whole-canvas edits are refused until it ends,
// since the tool already holds a snapshot of the layer taken before them.
func (e *Engine) Busy() bool { return e.tools.Active().Busy() }

// Undo reverts the last edit. A floating placement has not been recorded
// yet, so it is cancelled instead. Nothing happens while Busy.
func (e *Engine) Undo() bool {
	if e.Busy() {
		return false
	}
	if e.HasPlacement() {
		e.CancelPlacement()
		return true
	}
	return e.hist.Undo()
}

// Redo re-applies the last undone edit.
func (e *Engine) Redo() bool {
	if e.Busy() || e.HasPlacement() {
		return false
	}
	return e.hist.Redo()
}

// ClearActiveLayer makes the active layer transparent as one undoable
// step. A locked layer is left alone.
func (e *Engine) ClearActiveLayer() bool {
	l := e.layers.Active()
	if l.Locked || e.Busy() {
		return false
	}
	before := l.Pixels()
	l.Clear()
	e.hist.Push(history.NewDrawCommand(e.layers, l.ID(), before, l.Pixels(), "Clear Canvas"))
	e.dirty = true
	return true
}

// SetOnPasteDone installs a callback run when a paste is confirmed or
// cancelled.
func (e *Engine) SetOnPasteDone(fn func(confirmed bool)) { e.onPasteDone = fn }

// Paste floats img over the canvas using the paste tool. When the paste
// ends the previously active tool is restored.
func (e *Engine) Paste(img image.Image) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	prev := e.tools.Active().ID()
	if prev != tool.IDPaste {
		e.tools.SetActive(tool.IDPaste)
		e.pasteReturn = prev
	}
	e.tools.Paste().SetImage(img)
	e.dirty = true
}

func (e *Engine) pasteDone(confirmed bool) {
	e.dirty = true
	if e.pasteReturn != "" && e.tools.Active().ID() == tool.IDPaste {
		prev := e.pasteReturn
		e.pasteReturn = ""
		e.tools.SetActive(prev)
	}
	if e.onPasteDone != nil {
		e.onPasteDone(confirmed)
	}
}

// Resize changes the canvas size, moving existing content by (shiftX,
// shiftY). Newly exposed pixels are transparent. Sizes below 1px are
// rejected, as is any resize while Busy.
func (e *Engine) Resize(width, height, shiftX, shiftY int) bool {
	if width < 1 || height < 1 || e.Busy() {
		return false
	}
	e.ConfirmPlacement()
	e.layers.ResizeAll(width, height, shiftX, shiftY)
	e.comp.Resize(width, height)
	e.view.SetCanvasSize(geom.Sz(float64(width), float64(height)))
	e.cfg.Width, e.cfg.Height = width, height
	e.dirty = true
	deluxepaint.Logger().Info("canvas resized", "width", width, "height", height, "shift_x", shiftX, "shift_y", shiftY)
	return true
}

// NewCanvas resizes to width×height, fills the bottom layer with the
// background color and forgets all history.
func (e *Engine) NewCanvas(width, height int) bool {
	if width < 1 || height < 1 || e.Busy() {
		return false
	}
	e.CancelPlacement()
	if !e.Resize(width, height, 0, 0) {
		return false
	}
	bottom := e.layers.Layers()[0]
	bottom.Fill(bottom.Image().Bounds(), raster.Color(e.cfg.Background))
	e.hist.Clear()
	e.dirty = true
	deluxepaint.Logger().Info("new canvas", "width", width, "height", height)
	return true
}

// Open replaces the whole document with layers (bottom to top) of the
// given size. active indexes the layer to select. History is cleared.
func (e *Engine) Open(width, height int, layers []*layer.Layer, active int) bool {
	if width < 1 || height < 1 || len(layers) == 0 || e.Busy() {
		return false
	}
	e.CancelPlacement()
	placeholder := e.layers.Reset(width, height)
	for _, l := range layers {
		e.layers.Insert(l)
	}
	e.layers.Remove(placeholder.ID())
	if active >= 0 && active < len(layers) {
		e.layers.SetActive(layers[active].ID())
	}
	e.comp.Resize(width, height)
	e.view.SetCanvasSize(geom.Sz(float64(width), float64(height)))
	e.cfg.Width, e.cfg.Height = width, height
	e.hist.Clear()
	e.dirty = true
	deluxepaint.Logger().Info("document opened", "width", width, "height", height, "layers", len(layers))
	return true
}
