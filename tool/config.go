package tool

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/ha1tch/deluxepaint/raster"
)

// LineCap is the stroke end style, using canvas names.
type LineCap string

const (
	CapButt   LineCap = "butt"
	CapRound  LineCap = "round"
	CapSquare LineCap = "square"
)

// LineJoin is the stroke corner style, using canvas names.
type LineJoin string

const (
	JoinMiter LineJoin = "miter"
	JoinRound LineJoin = "round"
	JoinBevel LineJoin = "bevel"
)

// Config is the flat record of drawing parameters pushed in by the host.
// Tools only read it.
type Config struct {
	StrokeWidth    float64  `yaml:"stroke_width"`
	StrokeColor    string   `yaml:"stroke_color"`
	FillColor      string   `yaml:"fill_color"`
	Opacity        float64  `yaml:"opacity"`
	FillEnabled    bool     `yaml:"fill_enabled"`
	StrokeEnabled  bool     `yaml:"stroke_enabled"`
	LineCap        LineCap  `yaml:"line_cap"`
	LineJoin       LineJoin `yaml:"line_join"`
	FontSize       float64  `yaml:"font_size"`
	FontFamily     string   `yaml:"font_family"`
	SprayRadius    float64  `yaml:"spray_radius"`
	SprayDensity   int      `yaml:"spray_density"`
	PolygonSides   int      `yaml:"polygon_sides"`
	ArrowHeadSize  float64  `yaml:"arrow_head_size"`
	CornerRadius   float64  `yaml:"corner_radius"`
	StarPoints     int      `yaml:"star_points"`
	StarInnerRatio float64  `yaml:"star_inner_ratio"`
	ArcSweepAngle  float64  `yaml:"arc_sweep_angle"`
}

// DefaultConfig returns the settings a fresh editor starts with.
func DefaultConfig() Config {
	return Config{
		StrokeWidth:    3,
		StrokeColor:    "#000000",
		FillColor:      "#000000",
		Opacity:        1,
		FillEnabled:    false,
		StrokeEnabled:  true,
		LineCap:        CapRound,
		LineJoin:       JoinRound,
		FontSize:       16,
		FontFamily:     "Arial",
		SprayRadius:    20,
		SprayDensity:   30,
		PolygonSides:   5,
		ArrowHeadSize:  15,
		CornerRadius:   20,
		StarPoints:     5,
		StarInnerRatio: 0.4,
		ArcSweepAngle:  270,
	}
}

// stroke returns the stroke color with the tool opacity applied.
func (c Config) stroke() color.NRGBA {
	return raster.WithOpacity(raster.Color(c.StrokeColor), c.Opacity)
}

func (c Config) fill() color.NRGBA {
	return raster.WithOpacity(raster.Color(c.FillColor), c.Opacity)
}

// paint returns the stroke color, or the fill color for the secondary
// button.
func (c Config) paint(b Button) color.NRGBA {
	if b == ButtonSecondary {
		return c.fill()
	}
	return c.stroke()
}

func (c Config) ggCap() gg.LineCap {
	switch c.LineCap {
	case CapButt:
		return gg.LineCapButt
	case CapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapRound
	}
}

// gg has no miter join; miter falls back to bevel.
func (c Config) ggJoin() gg.LineJoin {
	if c.LineJoin == JoinRound || c.LineJoin == "" {
		return gg.LineJoinRound
	}
	return gg.LineJoinBevel
}

// fillAndStroke paints the current path with the enabled fill and stroke
// and clears it.
func (c Config) fillAndStroke(dc *gg.Context) {
	if c.FillEnabled {
		dc.SetColor(c.fill())
		dc.FillPreserve()
	}
	if c.StrokeEnabled {
		dc.SetColor(c.stroke())
		dc.SetLineWidth(c.StrokeWidth)
		dc.SetLineJoin(c.ggJoin())
		dc.SetLineCap(c.ggCap())
		dc.StrokePreserve()
	}
	dc.ClearPath()
}
