package layer

import (
	"fmt"
	"math"
	"slices"

	"github.com/ha1tch/deluxepaint"
	"github.com/ha1tch/deluxepaint/raster"
)

// EventType names what changed in a Manager.
type EventType string

const (
	EventAdd          EventType = "add"
	EventRemove       EventType = "remove"
	EventReorder      EventType = "reorder"
	EventUpdate       EventType = "update"
	EventActiveChange EventType = "active-change"
)

// Event is delivered to subscribers after every mutation. LayerID is empty
// for events that concern the whole stack.
type Event struct {
	Type    EventType
	LayerID string
}

// Listener receives events synchronously. It must not call back into
// mutating Manager methods.
type Listener func(Event)

type subscription struct {
	fn Listener
}

// Manager owns the ordered layer stack and the active-layer selection.
// There is always at least one layer and the active id always refers to a
// live layer.
type Manager struct {
	layers    map[string]*Layer
	order     []string // bottom to top
	active    string
	listeners []*subscription

	width, height int
}

// NewManager creates a stack holding a single "Background" layer, which is
// active.
func NewManager(width, height int) *Manager {
	m := &Manager{
		layers: make(map[string]*Layer),
		width:  width,
		height: height,
	}
	bg := m.Add("Background")
	m.active = bg.ID()
	return m
}

// Reset discards every layer and starts over with one empty "Background"
// layer of the given size.
func (m *Manager) Reset(width, height int) *Layer {
	m.layers = make(map[string]*Layer)
	m.order = nil
	m.width, m.height = width, height
	bg := New(width, height, "Background")
	m.layers[bg.ID()] = bg
	m.order = append(m.order, bg.ID())
	m.active = bg.ID()
	m.emit(Event{Type: EventReorder})
	m.emit(Event{Type: EventActiveChange, LayerID: bg.ID()})
	return bg
}

// Size returns the canvas dimensions every layer shares.
func (m *Manager) Size() (width, height int) { return m.width, m.height }

// Len reports the number of layers.
func (m *Manager) Len() int { return len(m.order) }

// Add appends a new layer on top of the stack without changing the active
// layer. An empty name becomes "Layer N".
func (m *Manager) Add(name string) *Layer {
	if name == "" {
		name = fmt.Sprintf("Layer %d", len(m.layers)+1)
	}
	l := New(m.width, m.height, name)
	l.Order = len(m.order)
	m.layers[l.ID()] = l
	m.order = append(m.order, l.ID())
	deluxepaint.Logger().Debug("layer added", "id", l.ID(), "name", name)
	m.emit(Event{Type: EventAdd, LayerID: l.ID()})
	return l
}

// Remove deletes a layer. Removing the last remaining layer or an unknown
// id does nothing. If the active layer goes, the new top becomes active.
func (m *Manager) Remove(id string) bool {
	if len(m.layers) <= 1 {
		return false
	}
	if _, ok := m.layers[id]; !ok {
		return false
	}
	delete(m.layers, id)
	m.order = slices.DeleteFunc(m.order, func(lid string) bool { return lid == id })
	m.updateOrders()
	deluxepaint.Logger().Debug("layer removed", "id", id)

	if m.active == id {
		m.active = m.order[len(m.order)-1]
		m.emit(Event{Type: EventActiveChange, LayerID: m.active})
	}
	m.emit(Event{Type: EventRemove, LayerID: id})
	return true
}

// Duplicate clones a layer and inserts the copy directly above it.
func (m *Manager) Duplicate(id string) (*Layer, bool) {
	src, ok := m.layers[id]
	if !ok {
		return nil, false
	}
	c := src.Clone()
	idx := slices.Index(m.order, id)
	m.layers[c.ID()] = c
	m.order = slices.Insert(m.order, idx+1, c.ID())
	m.updateOrders()
	deluxepaint.Logger().Debug("layer duplicated", "source", id, "id", c.ID())
	m.emit(Event{Type: EventAdd, LayerID: c.ID()})
	return c, true
}

// Layer looks up a layer by id; it returns nil for unknown ids.
func (m *Manager) Layer(id string) *Layer {
	return m.layers[id]
}

// Active returns the active layer.
func (m *Manager) Active() *Layer { return m.layers[m.active] }

// ActiveID returns the id of the active layer.
func (m *Manager) ActiveID() string { return m.active }

// SetActive selects a layer. Unknown ids are ignored.
func (m *Manager) SetActive(id string) bool {
	if _, ok := m.layers[id]; !ok {
		return false
	}
	m.active = id
	m.emit(Event{Type: EventActiveChange, LayerID: id})
	return true
}

// Layers returns the stack bottom to top.
func (m *Manager) Layers() []*Layer {
	out := make([]*Layer, len(m.order))
	for i, id := range m.order {
		out[i] = m.layers[id]
	}
	return out
}

// VisibleLayers returns the visible part of the stack bottom to top.
func (m *Manager) VisibleLayers() []*Layer {
	var out []*Layer
	for _, id := range m.order {
		if l := m.layers[id]; l.Visible {
			out = append(out, l)
		}
	}
	return out
}

// Infos returns the metadata of every layer bottom to top.
func (m *Manager) Infos() []Info {
	out := make([]Info, len(m.order))
	for i, id := range m.order {
		out[i] = m.layers[id].Info()
	}
	return out
}

// Index returns the stack position of id, or -1.
func (m *Manager) Index(id string) int {
	return slices.Index(m.order, id)
}

func (m *Manager) SetVisible(id string, visible bool) bool {
	return m.update(id, func(l *Layer) { l.Visible = visible })
}

// SetOpacity sets a layer's opacity clamped to [0,1]. NaN is ignored.
func (m *Manager) SetOpacity(id string, opacity float64) bool {
	if math.IsNaN(opacity) {
		return false
	}
	return m.update(id, func(l *Layer) { l.Opacity = max(0, min(1, opacity)) })
}

func (m *Manager) SetLocked(id string, locked bool) bool {
	return m.update(id, func(l *Layer) { l.Locked = locked })
}

func (m *Manager) SetName(id, name string) bool {
	return m.update(id, func(l *Layer) { l.Name = name })
}

func (m *Manager) SetBlendMode(id string, mode raster.BlendMode) bool {
	return m.update(id, func(l *Layer) { l.BlendMode = mode })
}

func (m *Manager) update(id string, fn func(*Layer)) bool {
	l, ok := m.layers[id]
	if !ok {
		return false
	}
	fn(l)
	m.emit(Event{Type: EventUpdate, LayerID: id})
	return true
}

// Reorder moves the layer at fromIndex to toIndex. Out-of-range indices are
// ignored.
func (m *Manager) Reorder(fromIndex, toIndex int) bool {
	n := len(m.order)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return false
	}
	id := m.order[fromIndex]
	m.order = slices.Delete(m.order, fromIndex, fromIndex+1)
	m.order = slices.Insert(m.order, toIndex, id)
	m.updateOrders()
	m.emit(Event{Type: EventReorder})
	return true
}

// MoveUp moves a layer one step toward the top.
func (m *Manager) MoveUp(id string) bool {
	i := m.Index(id)
	if i < 0 {
		return false
	}
	return m.Reorder(i, i+1)
}

// MoveDown moves a layer one step toward the bottom.
func (m *Manager) MoveDown(id string) bool {
	i := m.Index(id)
	if i < 0 {
		return false
	}
	return m.Reorder(i, i-1)
}

// ResizeAll resizes every layer identically. Sizes below 1px are rejected.
func (m *Manager) ResizeAll(width, height, shiftX, shiftY int) bool {
	if width < 1 || height < 1 {
		return false
	}
	m.width, m.height = width, height
	for _, l := range m.layers {
		l.Resize(width, height, shiftX, shiftY)
	}
	m.emit(Event{Type: EventUpdate})
	return true
}

// Insert places an existing layer on top of the stack. It is used when
// restoring a project; the layer is resized to the canvas if needed.
func (m *Manager) Insert(l *Layer) {
	if l.Width() != m.width || l.Height() != m.height {
		l.Resize(m.width, m.height, 0, 0)
	}
	l.Order = len(m.order)
	m.layers[l.ID()] = l
	m.order = append(m.order, l.ID())
	m.emit(Event{Type: EventAdd, LayerID: l.ID()})
}

// Subscribe registers fn and returns a function that removes it.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	s := &subscription{fn: fn}
	m.listeners = append(m.listeners, s)
	return func() {
		m.listeners = slices.DeleteFunc(m.listeners, func(x *subscription) bool { return x == s })
	}
}

func (m *Manager) emit(e Event) {
	for _, s := range m.listeners {
		s.fn(e)
	}
}

func (m *Manager) updateOrders() {
	for i, id := range m.order {
		m.layers[id].Order = i
	}
}
