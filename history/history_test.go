package history

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/ha1tch/deluxepaint/layer"
)

// counter is a command that adds delta to a shared value.
type counter struct {
	label string
	value *int
	delta int
}

func (c *counter) Label() string { return c.label }
func (c *counter) Execute()      { *c.value += c.delta }
func (c *counter) Undo()         { *c.value -= c.delta }

func push(h *History, v *int, label string, delta int) {
	c := &counter{label: label, value: v, delta: delta}
	c.Execute()
	h.Push(c)
}

func TestNewDefaults(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultMaxSize},
		{-3, DefaultMaxSize},
		{5, 5},
	}
	for _, tt := range tests {
		if got := New(tt.in).MaxSize(); got != tt.want {
			t.Errorf("New(%d).MaxSize() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUndoRedoFlags(t *testing.T) {
	h := New(10)
	v := 0

	if h.CanUndo() || h.CanRedo() {
		t.Fatal("empty history reports available steps")
	}
	if h.Undo() || h.Redo() {
		t.Fatal("Undo/Redo on empty history returned true")
	}

	push(h, &v, "a", 1)
	push(h, &v, "b", 10)
	if !h.CanUndo() || h.CanRedo() {
		t.Errorf("after push: CanUndo=%v CanRedo=%v", h.CanUndo(), h.CanRedo())
	}

	h.Undo()
	if v != 1 {
		t.Errorf("after Undo value = %d, want 1", v)
	}
	if !h.CanUndo() || !h.CanRedo() {
		t.Errorf("after one undo: CanUndo=%v CanRedo=%v", h.CanUndo(), h.CanRedo())
	}

	h.Undo()
	if h.CanUndo() || !h.CanRedo() {
		t.Errorf("after two undos: CanUndo=%v CanRedo=%v", h.CanUndo(), h.CanRedo())
	}
	if v != 0 {
		t.Errorf("value = %d, want 0", v)
	}

	h.Redo()
	h.Redo()
	if v != 11 {
		t.Errorf("after redo value = %d, want 11", v)
	}
	if h.UndoCount() != 2 || h.RedoCount() != 0 {
		t.Errorf("counts = %d/%d, want 2/0", h.UndoCount(), h.RedoCount())
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := New(10)
	v := 0
	push(h, &v, "a", 1)
	push(h, &v, "b", 2)
	h.Undo()
	h.Undo()

	push(h, &v, "c", 100)
	if h.CanRedo() {
		t.Error("redo entries survived a push")
	}
	if h.Redo() {
		t.Error("Redo() = true after push")
	}
	if v != 100 {
		t.Errorf("value = %d, want 100", v)
	}
}

func TestEviction(t *testing.T) {
	h := New(3)
	v := 0
	for i := 1; i <= 5; i++ {
		push(h, &v, string(rune('a'+i-1)), i)
	}
	if h.UndoCount() != 3 {
		t.Fatalf("UndoCount() = %d, want 3", h.UndoCount())
	}
	if got, _ := h.LastLabel(); got != "e" {
		t.Errorf("LastLabel() = %q, want %q", got, "e")
	}

	undone := 0
	for h.Undo() {
		undone++
	}
	if undone != 3 {
		t.Errorf("undid %d steps, want 3", undone)
	}
	// 1+2 were evicted and stay applied.
	if v != 3 {
		t.Errorf("value = %d, want 3", v)
	}
}

func TestClearAndOnChange(t *testing.T) {
	h := New(10)
	calls := 0
	h.SetOnChange(func() { calls++ })
	v := 0

	push(h, &v, "a", 1)
	h.Undo()
	h.Redo()
	h.Undo() // still notifies
	h.Clear()
	if calls != 5 {
		t.Errorf("onChange called %d times, want 5", calls)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear() left entries")
	}
	if _, ok := h.LastLabel(); ok {
		t.Error("LastLabel() ok on empty history")
	}

	h.SetOnChange(nil)
	h.Clear()
	if calls != 5 {
		t.Errorf("removed callback still called")
	}
}

func TestDrawCommandRoundTrip(t *testing.T) {
	m := layer.NewManager(8, 8)
	l := m.Active()
	before := l.Pixels()
	l.Fill(l.Image().Bounds(), color.NRGBA{R: 200, A: 255})
	after := l.Pixels()

	h := New(10)
	h.Push(NewDrawCommand(m, l.ID(), before, after, "Fill"))

	h.Undo()
	if !bytes.Equal(l.Image().Pix, before.Pix) {
		t.Error("undo did not restore the before snapshot")
	}
	h.Redo()
	if !bytes.Equal(l.Image().Pix, after.Pix) {
		t.Error("redo did not restore the after snapshot")
	}

	// Snapshots are not aliased by the layer.
	l.Clear()
	if after.Pix[3] != 255 {
		t.Error("snapshot changed when the layer was edited")
	}
}

func TestDrawCommandStaleLayer(t *testing.T) {
	m := layer.NewManager(4, 4)
	extra := m.Add("")
	before := extra.Pixels()
	extra.Fill(extra.Image().Bounds(), color.NRGBA{G: 255, A: 255})
	cmd := NewDrawCommand(m, extra.ID(), before, extra.Pixels(), "Pencil")
	m.Remove(extra.ID())

	// Must not panic or touch other layers.
	cmd.Undo()
	cmd.Execute()
	if m.Active().Image().Pix[3] != 0 {
		t.Error("stale command modified another layer")
	}
}
