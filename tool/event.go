package tool

import "github.com/ha1tch/deluxepaint/geom"

// Button identifies the pointer button, numbered like DOM mouse events.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// PointerEvent is a normalized pointer sample. Point is already in canvas
// coordinates.
type PointerEvent struct {
	Point    geom.Point
	Pressure float64
	Button   Button
	Shift    bool
	Ctrl     bool
	Alt      bool
}
