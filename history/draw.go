package history

import (
	"image"

	"github.com/ha1tch/deluxepaint"
	"github.com/ha1tch/deluxepaint/layer"
)

// LayerLookup resolves a layer id; nil means the layer no longer exists.
type LayerLookup interface {
	Layer(id string) *layer.Layer
}

// DrawCommand swaps a layer between two full-bitmap snapshots taken before
// and after an edit. If the layer has been deleted since, Execute and Undo
// do nothing.
type DrawCommand struct {
	label  string
	id     string
	before *image.NRGBA
	after  *image.NRGBA
	layers LayerLookup
}

// NewDrawCommand records an edit of layer id. The snapshots must be copies
// the caller no longer writes to.
func NewDrawCommand(layers LayerLookup, id string, before, after *image.NRGBA, label string) *DrawCommand {
	return &DrawCommand{label: label, id: id, before: before, after: after, layers: layers}
}

func (c *DrawCommand) Label() string   { return c.label }
func (c *DrawCommand) LayerID() string { return c.id }

func (c *DrawCommand) Execute() { c.apply(c.after) }
func (c *DrawCommand) Undo()    { c.apply(c.before) }

func (c *DrawCommand) apply(img *image.NRGBA) {
	l := c.layers.Layer(c.id)
	if l == nil {
		deluxepaint.Logger().Warn("draw command targets a deleted layer", "label", c.label, "layer", c.id)
		return
	}
	l.Clear()
	l.PutPixels(img)
}
