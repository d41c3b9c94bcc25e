package engine

import (
	"math/rand/v2"

	"github.com/ha1tch/deluxepaint/history"
)

// CanvasConfig describes a new document.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	MaxHistory int    `yaml:"max_history"`
}

// DefaultCanvasConfig returns an 800×600 white canvas with 50 undo steps.
func DefaultCanvasConfig() CanvasConfig {
	return CanvasConfig{
		Width:      800,
		Height:     600,
		Background: "#ffffff",
		MaxHistory: history.DefaultMaxSize,
	}
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	canvas CanvasConfig
	rng    *rand.Rand
}

func defaultOptions() options {
	return options{canvas: DefaultCanvasConfig()}
}

// WithCanvasConfig replaces the whole canvas configuration. Zero fields keep
// their defaults.
func WithCanvasConfig(c CanvasConfig) Option {
	return func(o *options) {
		if c.Width > 0 && c.Height > 0 {
			o.canvas.Width, o.canvas.Height = c.Width, c.Height
		}
		if c.Background != "" {
			o.canvas.Background = c.Background
		}
		if c.MaxHistory > 0 {
			o.canvas.MaxHistory = c.MaxHistory
		}
	}
}

// WithSize sets the canvas dimensions. Sizes below 1px are ignored.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.canvas.Width, o.canvas.Height = width, height
		}
	}
}

// WithBackground sets the color the bottom layer is filled with.
func WithBackground(color string) Option {
	return func(o *options) {
		o.canvas.Background = color
	}
}

// WithMaxHistory sets the number of undo steps kept.
func WithMaxHistory(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.canvas.MaxHistory = n
		}
	}
}

// WithRand sets the random source used by the spray tool, for reproducible
// output.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}
