package tool

import "testing"

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry(newEnv(50, 50))
	if got := r.Active().ID(); got != IDPencil {
		t.Errorf("Active() = %v, want %v", got, IDPencil)
	}
	if got := len(r.Tools()); got != 17 {
		t.Errorf("len(Tools()) = %d, want 17", got)
	}
	if r.Text() == nil || r.Eyedropper() == nil || r.Selection() == nil || r.Paste() == nil {
		t.Error("typed accessor returned nil")
	}
}

func TestRegistryShortcuts(t *testing.T) {
	r := NewRegistry(newEnv(50, 50))
	tests := map[string]ID{
		"p": IDPencil, "e": IDEraser, "l": IDLine, "r": IDRectangle,
		"c": IDCircle, "g": IDFill, "t": IDText, "s": IDSelection,
		"i": IDEyedropper, "y": IDSpray, "o": IDPolygon, "a": IDArrow,
		"x": IDStar, "w": IDTriangle,
	}
	for key, want := range tests {
		got, ok := r.ByShortcut(key)
		if !ok || got.ID() != want {
			t.Errorf("ByShortcut(%q) = %v, %v; want %v", key, got, ok, want)
		}
	}
	if _, ok := r.ByShortcut(""); ok {
		t.Error("empty shortcut matched a tool")
	}
	if _, ok := r.ByShortcut("q"); ok {
		t.Error("unbound shortcut matched a tool")
	}
}

func TestRegistrySetActive(t *testing.T) {
	env := newEnv(100, 100)
	r := NewRegistry(env)

	if r.SetActive("nope") {
		t.Error("SetActive(unknown) = true")
	}
	if r.Active().ID() != IDPencil {
		t.Error("unknown id changed the active tool")
	}

	r.SetActive(IDRectangle)
	drag(r.Active(), at(10, 10), at(40, 40))
	if !r.Active().HasPlacement() {
		t.Fatal("rectangle did not enter placement")
	}

	// Switching tools confirms the floating shape.
	r.SetActive(IDPencil)
	if got := env.History.UndoCount(); got != 1 {
		t.Errorf("UndoCount() after switch = %d, want 1", got)
	}
}

func TestRegistryConfig(t *testing.T) {
	env := newEnv(20, 20)
	r := NewRegistry(env)
	cfg := DefaultConfig()
	cfg.StrokeColor = "#0000ff"
	r.SetConfig(cfg)
	if r.Config() != cfg {
		t.Error("Config() does not return the pushed config")
	}

	// The tool activated after the push sees the new config.
	r.SetActive(IDFill)
	r.Active().PointerDown(at(5, 5))
	if got := env.Layers.Active().Image().NRGBAAt(5, 5); got != colorBlue {
		t.Errorf("fill color = %v, want %v", got, colorBlue)
	}
}

func TestCursorString(t *testing.T) {
	tests := map[Cursor]string{
		CursorDefault:    "default",
		CursorCrosshair:  "crosshair",
		CursorText:       "text",
		CursorResizeNESW: "nesw-resize",
		Cursor(99):       "default",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("Cursor(%d).String() = %q, want %q", int(c), got, want)
		}
	}
}
