// Package history implements reversible commands and the bounded undo/redo
// stacks that hold them.
package history

import "github.com/ha1tch/deluxepaint"

// DefaultMaxSize is the number of undo steps kept when none is configured.
const DefaultMaxSize = 50

// Command is a reversible edit. Commands are immutable once pushed.
type Command interface {
	Label() string
	Execute()
	Undo()
}

// History holds the undo and redo stacks. Pushing a command clears the redo
// stack; the undo stack never grows beyond its maximum size, the oldest entry
// being dropped first.
type History struct {
	undo     []Command
	redo     []Command
	max      int
	onChange func()
}

// New returns an empty history keeping at most maxSize undo steps. A
// non-positive size selects DefaultMaxSize.
func New(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &History{max: maxSize}
}

// SetOnChange installs the single change callback (nil removes it).
func (h *History) SetOnChange(fn func()) {
	h.onChange = fn
}

// MaxSize returns the undo capacity.
func (h *History) MaxSize() int { return h.max }

// Push records an already-applied command.
func (h *History) Push(cmd Command) {
	h.undo = append(h.undo, cmd)
	clear(h.redo)
	h.redo = h.redo[:0]

	if len(h.undo) > h.max {
		evicted := h.undo[0]
		h.undo[0] = nil
		h.undo = h.undo[1:]
		deluxepaint.Logger().Debug("history evicted", "label", evicted.Label())
	}
	deluxepaint.Logger().Debug("history push", "label", cmd.Label(), "undo", len(h.undo))
	h.changed()
}

// Undo reverts the most recent command and moves it to the redo stack.
func (h *History) Undo() bool {
	n := len(h.undo)
	if n == 0 {
		return false
	}
	cmd := h.undo[n-1]
	h.undo[n-1] = nil
	h.undo = h.undo[:n-1]
	cmd.Undo()
	h.redo = append(h.redo, cmd)
	deluxepaint.Logger().Debug("history undo", "label", cmd.Label())
	h.changed()
	return true
}

// Redo re-applies the most recently undone command.
func (h *History) Redo() bool {
	n := len(h.redo)
	if n == 0 {
		return false
	}
	cmd := h.redo[n-1]
	h.redo[n-1] = nil
	h.redo = h.redo[:n-1]
	cmd.Execute()
	h.undo = append(h.undo, cmd)
	deluxepaint.Logger().Debug("history redo", "label", cmd.Label())
	h.changed()
	return true
}

func (h *History) CanUndo() bool  { return len(h.undo) > 0 }
func (h *History) CanRedo() bool  { return len(h.redo) > 0 }
func (h *History) UndoCount() int { return len(h.undo) }
func (h *History) RedoCount() int { return len(h.redo) }

// LastLabel returns the label of the next command Undo would revert.
func (h *History) LastLabel() (string, bool) {
	if len(h.undo) == 0 {
		return "", false
	}
	return h.undo[len(h.undo)-1].Label(), true
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.changed()
}

func (h *History) changed() {
	if h.onChange != nil {
		h.onChange()
	}
}
