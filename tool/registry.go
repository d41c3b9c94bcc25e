package tool

import (
	"github.com/ha1tch/deluxepaint"
)

// Registry holds every tool and the one that is active. The config is
// pushed into a tool when it becomes active and whenever it changes.
type Registry struct {
	tools  map[ID]Tool
	order  []ID
	active Tool
	cfg    Config
}

// NewRegistry builds the standard tool set with the pencil active.
func NewRegistry(env Env) *Registry {
	r := &Registry{tools: make(map[ID]Tool), cfg: DefaultConfig()}
	for _, t := range []Tool{
		NewPencil(env),
		NewEraser(env),
		NewLine(env),
		NewRectangle(env),
		NewRoundedRectangle(env),
		NewCircle(env),
		NewFill(env),
		NewText(env),
		NewSelection(env),
		NewEyedropper(env),
		NewSpray(env),
		NewPolygon(env),
		NewArrow(env),
		NewStar(env),
		NewTriangle(env),
		NewArc(env),
		NewPaste(env),
	} {
		r.Register(t)
	}
	r.active = r.tools[IDPencil]
	r.active.SetConfig(r.cfg)
	return r
}

// Register adds t, replacing a tool with the same id.
func (r *Registry) Register(t Tool) {
	if _, ok := r.tools[t.ID()]; !ok {
		r.order = append(r.order, t.ID())
	}
	r.tools[t.ID()] = t
}

// Get returns the tool with the given id.
func (r *Registry) Get(id ID) (Tool, bool) {
	t, ok := r.tools[id]
	return t, ok
}

// Active returns the active tool.
func (r *Registry) Active() Tool { return r.active }

// SetActive deactivates the current tool, which confirms any floating
// placement, then activates id. Unknown ids are ignored.
func (r *Registry) SetActive(id ID) bool {
	t, ok := r.tools[id]
	if !ok {
		deluxepaint.Logger().Warn("unknown tool", "id", id)
		return false
	}
	r.active.Deactivate()
	r.active = t
	t.SetConfig(r.cfg)
	t.Activate()
	deluxepaint.Logger().Debug("tool activated", "id", id)
	return true
}

// SetConfig stores c and pushes it to the active tool.
func (r *Registry) SetConfig(c Config) {
	r.cfg = c
	r.active.SetConfig(c)
}

// Config returns the current tool config.
func (r *Registry) Config() Config { return r.cfg }

// Tools returns every tool in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id])
	}
	return out
}

// ByShortcut finds the tool bound to a single-key shortcut.
func (r *Registry) ByShortcut(key string) (Tool, bool) {
	if key == "" {
		return nil, false
	}
	for _, id := range r.order {
		if t := r.tools[id]; t.Shortcut() == key {
			return t, true
		}
	}
	return nil, false
}

// Text returns the text tool, for installing its request callback.
func (r *Registry) Text() *Text {
	t, _ := r.tools[IDText].(*Text)
	return t
}

func (r *Registry) Eyedropper() *Eyedropper {
	t, _ := r.tools[IDEyedropper].(*Eyedropper)
	return t
}

func (r *Registry) Selection() *Selection {
	t, _ := r.tools[IDSelection].(*Selection)
	return t
}

func (r *Registry) Paste() *Paste {
	t, _ := r.tools[IDPaste].(*Paste)
	return t
}
