// Package config loads the desktop editor settings from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/ha1tch/deluxepaint"
	"github.com/ha1tch/deluxepaint/engine"
	"github.com/ha1tch/deluxepaint/raster"
	"github.com/ha1tch/deluxepaint/tool"
)

// Settings is the YAML configuration of the editor window.
type Settings struct {
	Window struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
		FPS    int `yaml:"fps"`
	} `yaml:"window"`
	Canvas     engine.CanvasConfig `yaml:"canvas"`
	LogLevel   string              `yaml:"log_level"`
	ExportPath string              `yaml:"export_path"`
	Tool       tool.Config         `yaml:"tool"`
	Palette    []string            `yaml:"palette"`
}

// DefaultSettings matches settings.yaml.
func DefaultSettings() Settings {
	var s Settings
	s.Window.Width = 1280
	s.Window.Height = 800
	s.Window.FPS = 60
	s.Canvas = engine.DefaultCanvasConfig()
	s.LogLevel = "info"
	s.ExportPath = "drawing.png"
	s.Tool = tool.DefaultConfig()
	s.Palette = []string{
		"#000000", "#ffffff", "#e62937", "#00e430", "#0079f1",
		"#fdf900", "#ffa100", "#c87aff", "#ff6dc2", "#7f6a4f",
		"#828282", "#505050", "#c8c8c8", "#66bfff", "#ff00ff",
	}
	return s
}

// LoadSettings reads path over the defaults. A missing file is not an
// error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}
	if s.Window.Width < 1 || s.Window.Height < 1 {
		return s, fmt.Errorf("invalid window size %dx%d", s.Window.Width, s.Window.Height)
	}
	return s, nil
}

// Colors parses the palette, skipping entries that are not colors.
func (s Settings) Colors() []color.NRGBA {
	out := make([]color.NRGBA, 0, len(s.Palette))
	for _, p := range s.Palette {
		c, ok := raster.ParseColor(p)
		if !ok {
			deluxepaint.Logger().Warn("ignoring palette entry", "color", p)
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
