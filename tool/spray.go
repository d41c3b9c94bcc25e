package tool

import (
	"image"
	"math"
	"math/rand/v2"
	"time"

	"github.com/ha1tch/deluxepaint/geom"
)

// SprayInterval is the emission period while the pointer is held.
const SprayInterval = 30 * time.Millisecond

// Spray scatters single-pixel dots in a disc around the pointer, once on
// pointer-down and then every SprayInterval from Tick until pointer-up.
type Spray struct {
	base

	drawing bool
	target  string
	at      geom.Point
	before  *image.NRGBA
	last    time.Time
	buf     scratch
	rng     *rand.Rand
}

func NewSpray(env Env) *Spray {
	return &Spray{base: newBase(env, IDSpray, "Spray", "y"), rng: env.Rand}
}

func (s *Spray) PointerDown(e PointerEvent) {
	l := s.editable()
	if l == nil {
		return
	}
	s.drawing = true
	s.target = l.ID()
	s.at = e.Point
	s.before = l.Pixels()
	s.last = time.Time{}
	s.emit()
}

func (s *Spray) PointerMove(e PointerEvent) {
	if s.drawing {
		s.at = e.Point
	}
}

func (s *Spray) PointerUp(PointerEvent) { s.stop() }

// Deactivate stops emission and keeps what was sprayed so far.
func (s *Spray) Deactivate() { s.stop() }

// Tick emits one burst when at least SprayInterval has passed since the
// previous one. The first tick after pointer-down only starts the clock.
func (s *Spray) Tick(now time.Time) bool {
	if !s.drawing {
		return false
	}
	if s.last.IsZero() {
		s.last = now
		return false
	}
	if now.Sub(s.last) < SprayInterval {
		return false
	}
	s.last = now
	return s.emit()
}

// Spraying reports whether emission is running.
func (s *Spray) Spraying() bool { return s.drawing }

func (s *Spray) Busy() bool { return s.drawing }

func (s *Spray) emit() bool {
	l := s.env.Layers.Layer(s.target)
	if l == nil {
		s.drawing = false
		s.before = nil
		return false
	}
	radius := max(s.cfg.SprayRadius, 0)
	r := around(radius+1, s.at.X, s.at.Y)
	dc := s.buf.fresh(l, r)
	dc.SetColor(s.cfg.stroke())
	for range s.cfg.SprayDensity {
		angle := s.float() * math.Pi * 2
		d := s.float() * radius
		dc.DrawRectangle(s.at.X+math.Cos(angle)*d, s.at.Y+math.Sin(angle)*d, 1, 1)
		dc.Fill()
	}
	s.buf.blendOnto(l, r)
	return true
}

func (s *Spray) stop() {
	if !s.drawing {
		return
	}
	s.drawing = false
	if l := s.env.Layers.Layer(s.target); l != nil {
		s.commit(l, s.before, "Spray")
	}
	s.before = nil
}

func (s *Spray) float() float64 {
	if s.rng != nil {
		return s.rng.Float64()
	}
	return rand.Float64()
}
