// Package deluxepaint is a layered raster painting engine.
//
// # Overview
//
// The engine keeps a stack of independently editable bitmap layers, a set of
// drawing tools that mutate the active layer, a compositor that merges the
// stack into one image, snapshot-based undo/redo and a pan/zoom viewport.
//
//	e := engine.New(engine.WithSize(800, 600))
//	e.SetTool(tool.IDRectangle)
//	e.PointerDown(tool.PointerEvent{Point: geom.Pt(10, 10)})
//	e.PointerMove(tool.PointerEvent{Point: geom.Pt(110, 60)})
//	e.PointerUp(tool.PointerEvent{Point: geom.Pt(110, 60)})
//	e.ConfirmPlacement()
//	img := e.Composite()
//
// # Packages
//
//   - geom: points and sizes
//   - raster: blend modes and pixel helpers
//   - viewport: screen/canvas coordinate mapping
//   - layer: layers, the layer manager and the compositor
//   - history: reversible commands and the undo/redo stacks
//   - tool: the drawing tools and the shared placement state machine
//   - engine: the orchestrator the UI talks to
//   - project: PNG/JPEG export and .ddd project files
//
// # Threading
//
// Everything runs on the goroutine that delivers input. Nothing in the engine
// spawns goroutines or blocks; a host calls engine.Tick once per frame.
package deluxepaint
