package tool

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/ha1tch/deluxepaint/geom"
)

// boxFrom normalizes the drag into a box; square keeps the shorter side on
// both axes, in the drag direction.
func boxFrom(start, end geom.Point, square bool) (x, y, w, h float64) {
	w, h = end.X-start.X, end.Y-start.Y
	if square {
		side := math.Min(math.Abs(w), math.Abs(h))
		w = math.Copysign(side, w)
		h = math.Copysign(side, h)
	}
	x, y = start.X, start.Y
	if w < 0 {
		x += w
	}
	if h < 0 {
		y += h
	}
	return x, y, math.Abs(w), math.Abs(h)
}

// snap45 rotates end about start to the nearest multiple of 45 degrees,
// keeping the distance.
func snap45(start, end geom.Point) geom.Point {
	d := end.Sub(start)
	step := math.Pi / 4
	angle := math.Round(math.Atan2(d.Y, d.X)/step) * step
	dist := math.Hypot(d.X, d.Y)
	return geom.Pt(start.X+math.Cos(angle)*dist, start.Y+math.Sin(angle)*dist)
}

func drawLine(dc *gg.Context, c Config, start, end geom.Point, shift bool) bool {
	if shift {
		end = snap45(start, end)
	}
	if start.Distance(end) == 0 {
		return false
	}
	dc.SetColor(c.stroke())
	dc.SetLineWidth(c.StrokeWidth)
	dc.SetLineCap(c.ggCap())
	dc.DrawLine(start.X, start.Y, end.X, end.Y)
	dc.Stroke()
	return true
}

func drawRectangle(dc *gg.Context, c Config, start, end geom.Point, shift bool) bool {
	x, y, w, h := boxFrom(start, end, shift)
	if w == 0 || h == 0 {
		return false
	}
	dc.DrawRectangle(x, y, w, h)
	c.fillAndStroke(dc)
	return true
}

func drawRoundedRectangle(dc *gg.Context, c Config, start, end geom.Point, shift bool) bool {
	x, y, w, h := boxFrom(start, end, shift)
	if w == 0 || h == 0 {
		return false
	}
	r := math.Max(0, math.Min(c.CornerRadius, math.Min(w, h)/2))
	dc.DrawRoundedRectangle(x, y, w, h, r)
	c.fillAndStroke(dc)
	return true
}

// drawEllipse fits an ellipse in the dragged box, a circle with shift.
func drawEllipse(dc *gg.Context, c Config, start, end geom.Point, shift bool) bool {
	x, y, w, h := boxFrom(start, end, shift)
	rx, ry := w/2, h/2
	if rx == 0 || ry == 0 {
		return false
	}
	dc.DrawEllipse(x+rx, y+ry, rx, ry)
	c.fillAndStroke(dc)
	return true
}

// drawPolygon draws a regular polygon centered on start with a vertex at
// end.
func drawPolygon(dc *gg.Context, c Config, center, edge geom.Point, _ bool) bool {
	d := edge.Sub(center)
	radius := math.Hypot(d.X, d.Y)
	if radius < 2 {
		return false
	}
	sides := max(c.PolygonSides, 3)
	a0 := math.Atan2(d.Y, d.X)
	for i := range sides {
		a := a0 + float64(i)*2*math.Pi/float64(sides)
		dc.LineTo(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}
	dc.ClosePath()
	c.fillAndStroke(dc)
	return true
}

// drawStar alternates outer and inner vertices around start; the first
// outer point is at end.
func drawStar(dc *gg.Context, c Config, center, edge geom.Point, _ bool) bool {
	d := edge.Sub(center)
	outer := math.Hypot(d.X, d.Y)
	if outer < 2 {
		return false
	}
	points := max(c.StarPoints, 2)
	inner := outer * c.StarInnerRatio
	a0 := math.Atan2(d.Y, d.X)
	for i := range points * 2 {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := a0 + float64(i)*math.Pi/float64(points)
		dc.LineTo(center.X+r*math.Cos(a), center.Y+r*math.Sin(a))
	}
	dc.ClosePath()
	c.fillAndStroke(dc)
	return true
}

// drawArrow strokes a shaft from start to end and fills a head at end in
// the stroke color.
func drawArrow(dc *gg.Context, c Config, from, to geom.Point, _ bool) bool {
	if from.Distance(to) == 0 {
		return false
	}
	head := c.ArrowHeadSize
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)

	dc.SetColor(c.stroke())
	dc.SetLineWidth(c.StrokeWidth)
	dc.SetLineCap(c.ggCap())
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	dc.Stroke()

	dc.MoveTo(to.X, to.Y)
	dc.LineTo(to.X-head*math.Cos(angle-math.Pi/6), to.Y-head*math.Sin(angle-math.Pi/6))
	dc.LineTo(to.X-head*math.Cos(angle+math.Pi/6), to.Y-head*math.Sin(angle+math.Pi/6))
	dc.ClosePath()
	dc.Fill()
	return true
}

// drawTriangle spans top-center, bottom-left and bottom-right of the box.
func drawTriangle(dc *gg.Context, c Config, start, end geom.Point, shift bool) bool {
	x, y, w, h := boxFrom(start, end, shift)
	if w < 1 || h < 1 {
		return false
	}
	dc.MoveTo(x+w/2, y)
	dc.LineTo(x, y+h)
	dc.LineTo(x+w, y+h)
	dc.ClosePath()
	c.fillAndStroke(dc)
	return true
}

// drawArc strokes ArcSweepAngle degrees of a circle centered on start,
// beginning at end.
func drawArc(dc *gg.Context, c Config, center, edge geom.Point, _ bool) bool {
	d := edge.Sub(center)
	radius := math.Hypot(d.X, d.Y)
	if radius < 2 || c.ArcSweepAngle == 0 {
		return false
	}
	a0 := math.Atan2(d.Y, d.X)
	dc.SetColor(c.stroke())
	dc.SetLineWidth(c.StrokeWidth)
	dc.SetLineCap(c.ggCap())
	dc.DrawArc(center.X, center.Y, radius, a0, a0+gg.Radians(c.ArcSweepAngle))
	dc.Stroke()
	return true
}
