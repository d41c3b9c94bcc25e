package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ha1tch/deluxepaint"
	"github.com/ha1tch/deluxepaint/engine"
	"github.com/ha1tch/deluxepaint/geom"
	"github.com/ha1tch/deluxepaint/internal/config"
	"github.com/ha1tch/deluxepaint/project"
	"github.com/ha1tch/deluxepaint/raster"
	"github.com/ha1tch/deluxepaint/tool"
)

const (
	fontSize   = 10
	leftPanel  = 100
	rightPanel = 200
	topBar     = 50
	layerRow   = 40
	wheelZoom  = 1.1
)

var (
	panelColor  = gray(50)
	buttonColor = gray(70)
	hoverColor  = gray(80)
	borderColor = gray(90)
	activeColor = rl.NewColor(100, 100, 150, 255)
	layerActive = rl.NewColor(80, 80, 120, 255)
)

func gray(v uint8) rl.Color { return rl.NewColor(v, v, v, 255) }

// textPrompt collects a line of text for the text tool.
type textPrompt struct {
	buf     []rune
	confirm func(string)
}

type app struct {
	eng      *engine.Engine
	settings config.Settings
	palette  []color.NRGBA
	path     string

	width, height int32

	tex     rl.Texture2D
	texSize image.Point
	texBuf  []color.RGBA

	down      bool
	button    tool.Button
	lastMouse rl.Vector2

	prompt    *textPrompt
	selection image.Rectangle
	clip      *image.NRGBA
	status    string
}

func newApp(eng *engine.Engine, s config.Settings, palette []color.NRGBA) *app {
	a := &app{
		eng:      eng,
		settings: s,
		palette:  palette,
		width:    int32(s.Window.Width),
		height:   int32(s.Window.Height),
	}

	tools := eng.Tools()
	tools.Text().SetRequest(func(_ geom.Point, confirm func(string)) {
		a.prompt = &textPrompt{confirm: confirm}
	})
	tools.Eyedropper().SetPick(func(hex string) {
		cfg := eng.ToolConfig()
		cfg.StrokeColor = hex
		eng.SetToolConfig(cfg)
		a.status = "picked " + hex
	})
	tools.Selection().SetOnSelect(func(r image.Rectangle, ok bool) {
		if !ok {
			return
		}
		a.selection = r
		a.status = fmt.Sprintf("selected %dx%d at %d,%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	})
	eng.SetOnPasteDone(func(confirmed bool) {
		if confirmed {
			a.status = "pasted"
		} else {
			a.status = "paste cancelled"
		}
	})
	return a
}

func (a *app) run() {
	rl.InitWindow(a.width, a.height, "Deluxe Draw")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(a.settings.Window.FPS))
	rl.SetExitKey(0)

	a.fit()
	deluxepaint.Logger().Info("window opened", "width", a.width, "height", a.height)

	for !rl.WindowShouldClose() {
		a.update()
		if a.eng.Tick(time.Now()) {
			a.upload(a.eng.Frame())
		}
		a.draw()
	}
	if a.texSize != (image.Point{}) {
		rl.UnloadTexture(a.tex)
	}
}

func (a *app) canvasArea() geom.Size {
	return geom.Sz(float64(a.width-leftPanel-rightPanel), float64(a.height-topBar))
}

// fit scales the canvas into the area between the panels.
func (a *app) fit() {
	v := a.eng.Viewport()
	v.FitToContainer(a.canvasArea())
	v.Pan(leftPanel, topBar)
}

// upload copies the composite into the GPU texture, reallocating it when
// the canvas size changed.
func (a *app) upload(frame *image.NRGBA) {
	size := frame.Bounds().Size()
	if size != a.texSize {
		if a.texSize != (image.Point{}) {
			rl.UnloadTexture(a.tex)
		}
		img := rl.GenImageColor(size.X, size.Y, rl.Blank)
		a.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		rl.SetTextureFilter(a.tex, rl.FilterPoint)
		a.texSize = size
		a.texBuf = make([]color.RGBA, size.X*size.Y)
	}
	for i := range a.texBuf {
		p := frame.Pix[i*4 : i*4+4 : i*4+4]
		a.texBuf[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	rl.UpdateTexture(a.tex, a.texBuf)
}

func (a *app) inCanvas(p rl.Vector2) bool {
	return p.X > leftPanel && p.X < float32(a.width-rightPanel) && p.Y > topBar
}

func (a *app) update() {
	if a.prompt != nil {
		a.updatePrompt()
		return
	}
	a.handleDroppedFiles()
	a.handleKeys()

	mouse := rl.GetMousePosition()
	if !a.down && !a.inCanvas(mouse) {
		rl.SetMouseCursor(rl.MouseCursorDefault)
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			a.clickPanels(mouse)
		}
		a.lastMouse = mouse
		return
	}

	v := a.eng.Viewport()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.ZoomAt(v.Zoom()*math.Pow(wheelZoom, float64(wheel)), geom.Pt(float64(mouse.X), float64(mouse.Y)))
		a.eng.MarkDirty()
	}
	spacePan := !a.down && rl.IsKeyDown(rl.KeySpace)
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) || (spacePan && rl.IsMouseButtonDown(rl.MouseLeftButton)) {
		d := rl.GetMouseDelta()
		v.Pan(float64(d.X), float64(d.Y))
	}
	if spacePan {
		rl.SetMouseCursor(rl.MouseCursorResizeAll)
		a.lastMouse = mouse
		return
	}

	ev := a.pointer(mouse)
	switch {
	case !a.down && rl.IsMouseButtonPressed(rl.MouseLeftButton):
		a.down, a.button = true, tool.ButtonPrimary
		ev.Button, ev.Pressure = a.button, 0.5
		a.eng.ScreenPointerDown(ev)
	case !a.down && rl.IsMouseButtonPressed(rl.MouseRightButton):
		a.down, a.button = true, tool.ButtonSecondary
		ev.Button, ev.Pressure = a.button, 0.5
		a.eng.ScreenPointerDown(ev)
	case mouse != a.lastMouse:
		ev.Button = a.button
		a.eng.ScreenPointerMove(ev)
	}
	if a.down && a.released() {
		ev.Button = a.button
		ev.Pressure = 0
		a.eng.ScreenPointerUp(ev)
		a.down = false
	}
	a.lastMouse = mouse
	rl.SetMouseCursor(mouseCursor(a.eng.ActiveTool().Cursor()))
}

func (a *app) released() bool {
	if a.button == tool.ButtonSecondary {
		return rl.IsMouseButtonReleased(rl.MouseRightButton)
	}
	return rl.IsMouseButtonReleased(rl.MouseLeftButton)
}

func (a *app) pointer(mouse rl.Vector2) tool.PointerEvent {
	ev := tool.PointerEvent{
		Point: geom.Pt(float64(mouse.X), float64(mouse.Y)),
		Shift: rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		Ctrl:  ctrlDown(),
		Alt:   rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt),
	}
	if a.down {
		ev.Pressure = 0.5
	}
	return ev
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}

func mouseCursor(c tool.Cursor) int32 {
	switch c {
	case tool.CursorCrosshair:
		return rl.MouseCursorCrosshair
	case tool.CursorText:
		return rl.MouseCursorIBeam
	case tool.CursorMove:
		return rl.MouseCursorResizeAll
	case tool.CursorResizeNWSE:
		return rl.MouseCursorResizeNWSE
	case tool.CursorResizeNESW:
		return rl.MouseCursorResizeNESW
	default:
		return rl.MouseCursorDefault
	}
}

func (a *app) handleKeys() {
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	if ctrlDown() {
		switch {
		case rl.IsKeyPressed(rl.KeyZ) && shift, rl.IsKeyPressed(rl.KeyY):
			a.eng.Redo()
		case rl.IsKeyPressed(rl.KeyZ):
			a.eng.Undo()
		case rl.IsKeyPressed(rl.KeyS) && shift:
			a.saveProject()
		case rl.IsKeyPressed(rl.KeyS):
			a.export(a.settings.ExportPath)
		case rl.IsKeyPressed(rl.KeyN):
			c := a.settings.Canvas
			a.eng.NewCanvas(c.Width, c.Height)
			a.fit()
		case rl.IsKeyPressed(rl.KeyC):
			a.copySelection()
		case rl.IsKeyPressed(rl.KeyV):
			if a.clip != nil {
				a.eng.Paste(a.clip)
			}
		case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
			a.eng.Viewport().ZoomIn()
		case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
			a.eng.Viewport().ZoomOut()
		case rl.IsKeyPressed(rl.KeyZero):
			a.fit()
		}
		// drain so shortcuts don't leak into the tool keys
		for rl.GetCharPressed() > 0 {
		}
		return
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEnter):
		a.eng.ConfirmPlacement()
	case rl.IsKeyPressed(rl.KeyEscape):
		a.eng.CancelPlacement()
	case rl.IsKeyPressed(rl.KeyDelete):
		a.eng.ClearActiveLayer()
	}

	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		a.handleChar(unicode.ToLower(rune(ch)))
	}
}

func (a *app) handleChar(r rune) {
	cfg := a.eng.ToolConfig()
	switch r {
	case '[':
		cfg.StrokeWidth = max(1, cfg.StrokeWidth-1)
	case ']':
		cfg.StrokeWidth = min(100, cfg.StrokeWidth+1)
	case 'f':
		cfg.FillEnabled = !cfg.FillEnabled
	default:
		if t, ok := a.eng.Tools().ByShortcut(string(r)); ok {
			a.eng.SetTool(t.ID())
		}
		return
	}
	a.eng.SetToolConfig(cfg)
}

func (a *app) updatePrompt() {
	p := a.prompt
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		p.buf = append(p.buf, rune(ch))
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace) && len(p.buf) > 0:
		p.buf = p.buf[:len(p.buf)-1]
	case rl.IsKeyPressed(rl.KeyEnter):
		a.prompt = nil
		p.confirm(string(p.buf))
		a.eng.MarkDirty()
	case rl.IsKeyPressed(rl.KeyEscape):
		a.prompt = nil
	}
}

func (a *app) copySelection() {
	if a.selection.Empty() {
		return
	}
	a.clip = raster.Crop(a.eng.Flatten(), a.selection)
	a.status = fmt.Sprintf("copied %dx%d", a.clip.Rect.Dx(), a.clip.Rect.Dy())
}

// handleDroppedFiles opens dropped projects and pastes dropped images.
func (a *app) handleDroppedFiles() {
	if !rl.IsFileDropped() {
		return
	}
	files := rl.LoadDroppedFiles()
	defer rl.UnloadDroppedFiles()
	for _, path := range files {
		doc, err := project.ReadFile(path)
		if err != nil {
			deluxepaint.Logger().Warn("cannot open dropped file", "path", path, "err", err)
			a.status = err.Error()
			continue
		}
		if strings.EqualFold(filepath.Ext(path), project.Extension) {
			a.eng.Open(doc.Width, doc.Height, doc.Layers, doc.Active)
			if len(doc.Palette) > 0 {
				a.palette = doc.Palette
			}
			a.path = path
			a.fit()
			continue
		}
		a.eng.Paste(doc.Layers[0].Image())
	}
}

func (a *app) saveProject() {
	path := a.path
	if !strings.EqualFold(filepath.Ext(path), project.Extension) {
		path = strings.TrimSuffix(a.settings.ExportPath, filepath.Ext(a.settings.ExportPath)) + project.Extension
	}
	if a.export(path) {
		a.path = path
	}
}

func (a *app) export(path string) bool {
	if err := project.WriteFile(path, a.eng.Layers(), a.palette, a.eng.Flatten()); err != nil {
		deluxepaint.Logger().Warn("save failed", "path", path, "err", err)
		a.status = err.Error()
		return false
	}
	a.status = "saved " + path
	return true
}

// Layout. The same rectangles are used for drawing and hit testing.

func toolRect(i int) rl.Rectangle {
	return rl.Rectangle{X: float32(10 + (i%2)*40), Y: float32(topBar + (i/2)*40), Width: 36, Height: 36}
}

func paletteTop(tools int) int { return topBar + (tools+1)/2*40 + 20 }

func paletteRect(tools, i int) rl.Rectangle {
	return rl.Rectangle{X: float32(10 + (i%4)*20), Y: float32(paletteTop(tools) + (i/4)*20), Width: 18, Height: 18}
}

func (a *app) layerRect(row int) rl.Rectangle {
	return rl.Rectangle{X: float32(a.width - rightPanel + 10), Y: float32(30 + row*layerRow), Width: rightPanel - 20, Height: layerRow - 4}
}

var layerButtons = []string{"NEW", "DEL", "DUP", "UP", "DOWN"}

func (a *app) layerButtonRect(i int) rl.Rectangle {
	return rl.Rectangle{X: float32(a.width - rightPanel + 5 + int32(i)*38), Y: float32(a.height - 40), Width: 36, Height: 30}
}

func visRect(row rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{X: row.X + 5, Y: row.Y + 8, Width: 20, Height: 20}
}

func lockRect(row rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{X: row.X + 30, Y: row.Y + 8, Width: 20, Height: 20}
}

func (a *app) clickPanels(mouse rl.Vector2) {
	tools := a.eng.Tools().Tools()
	for i, t := range tools {
		if rl.CheckCollisionPointRec(mouse, toolRect(i)) {
			a.eng.SetTool(t.ID())
			return
		}
	}
	for i, c := range a.palette {
		if rl.CheckCollisionPointRec(mouse, paletteRect(len(tools), i)) {
			cfg := a.eng.ToolConfig()
			if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
				cfg.FillColor = raster.Hex(c)
			} else {
				cfg.StrokeColor = raster.Hex(c)
			}
			a.eng.SetToolConfig(cfg)
			return
		}
	}

	m := a.eng.Layers()
	infos := m.Infos()
	for row := range infos {
		info := infos[len(infos)-1-row]
		r := a.layerRect(row)
		if !rl.CheckCollisionPointRec(mouse, r) {
			continue
		}
		switch {
		case rl.CheckCollisionPointRec(mouse, visRect(r)):
			m.SetVisible(info.ID, !info.Visible)
		case rl.CheckCollisionPointRec(mouse, lockRect(r)):
			m.SetLocked(info.ID, !info.Locked)
		default:
			m.SetActive(info.ID)
		}
		return
	}

	active := m.ActiveID()
	for i := range layerButtons {
		if !rl.CheckCollisionPointRec(mouse, a.layerButtonRect(i)) {
			continue
		}
		switch i {
		case 0:
			m.SetActive(m.Add("").ID())
		case 1:
			m.Remove(active)
		case 2:
			if l, ok := m.Duplicate(active); ok {
				m.SetActive(l.ID())
			}
		case 3:
			m.MoveUp(active)
		case 4:
			m.MoveDown(active)
		}
		return
	}
}

func (a *app) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(gray(40))

	a.drawCanvas()
	a.drawToolPanel()
	a.drawLayerPanel()
	a.drawInfoBar()
	if a.prompt != nil {
		a.drawPrompt()
	}

	rl.EndDrawing()
}

func (a *app) drawCanvas() {
	if a.texSize == (image.Point{}) {
		return
	}
	v := a.eng.Viewport()
	off, z := v.Offset(), v.Zoom()
	dst := rl.Rectangle{
		X:      float32(off.X),
		Y:      float32(off.Y),
		Width:  float32(float64(a.texSize.X) * z),
		Height: float32(float64(a.texSize.Y) * z),
	}

	rl.BeginScissorMode(leftPanel, topBar, a.width-leftPanel-rightPanel, a.height-topBar)
	drawCheckerboard(dst)
	src := rl.Rectangle{Width: float32(a.texSize.X), Height: float32(a.texSize.Y)}
	rl.DrawTexturePro(a.tex, src, dst, rl.Vector2{}, 0, rl.White)
	rl.DrawRectangleLinesEx(dst, 2, gray(100))
	rl.EndScissorMode()
}

func drawCheckerboard(r rl.Rectangle) {
	const size = 16
	for y := float32(0); y < r.Height; y += size {
		for x := float32(0); x < r.Width; x += size {
			c := gray(150)
			if (int(x/size)+int(y/size))%2 == 0 {
				c = gray(100)
			}
			rl.DrawRectangleRec(rl.Rectangle{
				X:      r.X + x,
				Y:      r.Y + y,
				Width:  min(size, r.Width-x),
				Height: min(size, r.Height-y),
			}, c)
		}
	}
}

func (a *app) drawToolPanel() {
	rl.DrawRectangle(0, 0, leftPanel, a.height, panelColor)
	rl.DrawText("DELUXE DRAW", 10, 10, fontSize, rl.White)

	mouse := rl.GetMousePosition()
	active := a.eng.ActiveTool().ID()
	tools := a.eng.Tools().Tools()
	for i, t := range tools {
		r := toolRect(i)
		c := buttonColor
		hover := rl.CheckCollisionPointRec(mouse, r)
		switch {
		case t.ID() == active:
			c = activeColor
		case hover:
			c = hoverColor
		}
		rl.DrawRectangleRec(r, c)
		rl.DrawRectangleLinesEx(r, 1, borderColor)
		label := strings.ToUpper(t.Shortcut())
		if label == "" {
			label = strings.ToUpper(t.Label()[:2])
		}
		w := rl.MeasureText(label, fontSize)
		rl.DrawText(label, int32(r.X)+(int32(r.Width)-w)/2, int32(r.Y)+13, fontSize, rl.White)
		if hover {
			rl.DrawText(t.Label(), int32(mouse.X)+10, int32(mouse.Y), fontSize, rl.Yellow)
		}
	}

	top := paletteTop(len(tools))
	rl.DrawText("COLORS", 10, int32(top-14), fontSize, rl.LightGray)
	for i, c := range a.palette {
		r := paletteRect(len(tools), i)
		rl.DrawRectangleRec(r, rl.Color(raster.WithOpacity(c, 1)))
		rl.DrawRectangleLinesEx(r, 1, gray(70))
	}

	cfg := a.eng.ToolConfig()
	y := int32(top + (len(a.palette)+3)/4*20 + 10)
	rl.DrawRectangle(10, y, 36, 24, rl.Color(raster.Color(cfg.StrokeColor)))
	rl.DrawRectangleLines(10, y, 36, 24, rl.White)
	rl.DrawRectangle(54, y, 36, 24, rl.Color(raster.Color(cfg.FillColor)))
	rl.DrawRectangleLines(54, y, 36, 24, rl.White)
	fill := "FILL OFF"
	if cfg.FillEnabled {
		fill = "FILL ON"
	}
	rl.DrawText(fmt.Sprintf("SIZE %.0f", cfg.StrokeWidth), 10, y+32, fontSize, rl.White)
	rl.DrawText(fill, 10, y+46, fontSize, rl.White)
}

func (a *app) drawLayerPanel() {
	x := a.width - rightPanel
	rl.DrawRectangle(x, 0, rightPanel, a.height, panelColor)
	rl.DrawText("LAYERS", x+10, 10, fontSize, rl.White)

	m := a.eng.Layers()
	infos := m.Infos()
	active := m.ActiveID()
	for row := range infos {
		info := infos[len(infos)-1-row]
		r := a.layerRect(row)
		bg := gray(60)
		if info.ID == active {
			bg = layerActive
		}
		rl.DrawRectangleRec(r, bg)

		vr, lr := visRect(r), lockRect(r)
		rl.DrawRectangleRec(vr, gray(40))
		rl.DrawRectangleLinesEx(vr, 1, rl.White)
		if info.Visible {
			rl.DrawText("V", int32(vr.X)+7, int32(vr.Y)+5, fontSize, rl.White)
		}
		rl.DrawRectangleRec(lr, gray(40))
		rl.DrawRectangleLinesEx(lr, 1, rl.White)
		if info.Locked {
			rl.DrawText("L", int32(lr.X)+7, int32(lr.Y)+5, fontSize, rl.Yellow)
		}

		name := info.Name
		if len(name) > 16 {
			name = name[:16]
		}
		rl.DrawText(name, int32(r.X)+58, int32(r.Y)+8, fontSize, rl.White)
		rl.DrawText(fmt.Sprintf("%.0f%% %s", info.Opacity*100, info.BlendMode), int32(r.X)+58, int32(r.Y)+21, fontSize, rl.LightGray)
	}

	mouse := rl.GetMousePosition()
	for i, label := range layerButtons {
		r := a.layerButtonRect(i)
		c := buttonColor
		if rl.CheckCollisionPointRec(mouse, r) {
			c = hoverColor
		}
		rl.DrawRectangleRec(r, c)
		rl.DrawRectangleLinesEx(r, 1, borderColor)
		w := rl.MeasureText(label, fontSize)
		rl.DrawText(label, int32(r.X)+(int32(r.Width)-w)/2, int32(r.Y)+10, fontSize, rl.White)
	}
}

func (a *app) drawInfoBar() {
	rl.DrawRectangle(leftPanel, 0, a.width-leftPanel-rightPanel, topBar, gray(60))
	w, h := a.eng.Layers().Size()
	info := fmt.Sprintf("%s | %dx%d | %.0f%% | %s | undo %d redo %d",
		a.eng.ActiveTool().Label(), w, h, a.eng.Viewport().Zoom()*100,
		a.eng.Layers().Active().Name, a.eng.History().UndoCount(), a.eng.History().RedoCount())
	rl.DrawText(info, leftPanel+10, 12, fontSize, rl.White)
	if a.status != "" {
		rl.DrawText(a.status, leftPanel+10, 30, fontSize, rl.LightGray)
	}
}

func (a *app) drawPrompt() {
	r := rl.Rectangle{X: float32(a.width/2 - 200), Y: float32(a.height/2 - 30), Width: 400, Height: 60}
	rl.DrawRectangleRec(r, panelColor)
	rl.DrawRectangleLinesEx(r, 1, rl.White)
	rl.DrawText("TEXT (ENTER TO PLACE, ESC TO CANCEL)", int32(r.X)+10, int32(r.Y)+10, fontSize, rl.LightGray)
	rl.DrawText(string(a.prompt.buf)+"_", int32(r.X)+10, int32(r.Y)+32, fontSize, rl.White)
}
