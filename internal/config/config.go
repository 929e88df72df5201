// Package config loads gridsmith.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where the editor looks for its settings.
const DefaultPath = "gridsmith.toml"

// Settings represents gridsmith.toml.
type Settings struct {
	Window WindowConfig `toml:"window"`
	Input  InputConfig  `toml:"input"`
	Graph  GraphConfig  `toml:"graph"`
	Map    MapConfig    `toml:"map"`
	Log    LogConfig    `toml:"log"`
	// Workspace is the workspace file opened at startup.
	Workspace string `toml:"workspace"`
	// FontPath is a TTF used for UI text. Missing or broken fonts fall back
	// to the built-in bitmap face.
	FontPath string  `toml:"font_path"`
	FontSize float64 `toml:"font_size"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type InputConfig struct {
	// DragThreshold is the pointer travel in pixels, summed over both
	// axes, that turns a press into a drag.
	DragThreshold float64 `toml:"drag_threshold"`
	// BlinkInterval is the caret's on and off period in seconds.
	BlinkInterval float64 `toml:"blink_interval"`
}

type GraphConfig struct {
	MinZoom  float64 `toml:"min_zoom"`
	MaxZoom  float64 `toml:"max_zoom"`
	ZoomStep float64 `toml:"zoom_step"`
}

type MapConfig struct {
	Columns    int       `toml:"columns"`
	Rows       int       `toml:"rows"`
	CellSize   float64   `toml:"cell_size"`
	ZoomLevels []float64 `toml:"zoom_levels"`
	ZoomIndex  int       `toml:"zoom_index"`
	// GlideSeconds is how long the go-to-cell camera animation takes.
	GlideSeconds float64 `toml:"glide_seconds"`
}

type LogConfig struct {
	Verbose bool `toml:"verbose"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		Window: WindowConfig{Width: 1280, Height: 800, Title: "gridsmith"},
		Input:  InputConfig{DragThreshold: 4, BlinkInterval: 0.5},
		Graph:  GraphConfig{MinZoom: 0.25, MaxZoom: 4, ZoomStep: 1.1},
		Map: MapConfig{
			Columns:      24,
			Rows:         16,
			CellSize:     16,
			ZoomLevels:   []float64{1, 2, 3, 4, 6, 8, 12, 16},
			ZoomIndex:    1,
			GlideSeconds: 0.35,
		},
		Workspace: "workspace.yml",
		FontPath:  "res/Roboto-Regular.ttf",
		FontSize:  14,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	s.fix()
	return s, nil
}

// fix replaces nonsensical values with defaults.
func (s *Settings) fix() {
	d := Default()
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		s.Window.Width, s.Window.Height = d.Window.Width, d.Window.Height
	}
	if s.Input.DragThreshold <= 0 {
		s.Input.DragThreshold = d.Input.DragThreshold
	}
	if s.Input.BlinkInterval <= 0 {
		s.Input.BlinkInterval = d.Input.BlinkInterval
	}
	if s.Graph.MinZoom <= 0 || s.Graph.MaxZoom < s.Graph.MinZoom {
		s.Graph.MinZoom, s.Graph.MaxZoom = d.Graph.MinZoom, d.Graph.MaxZoom
	}
	if s.Graph.ZoomStep <= 1 {
		s.Graph.ZoomStep = d.Graph.ZoomStep
	}
	if s.Map.Columns <= 0 || s.Map.Rows <= 0 {
		s.Map.Columns, s.Map.Rows = d.Map.Columns, d.Map.Rows
	}
	if s.Map.CellSize <= 0 {
		s.Map.CellSize = d.Map.CellSize
	}
	levels := s.Map.ZoomLevels[:0:0]
	for _, z := range s.Map.ZoomLevels {
		if z > 0 {
			levels = append(levels, z)
		}
	}
	if len(levels) == 0 {
		levels = d.Map.ZoomLevels
	}
	s.Map.ZoomLevels = levels
	if s.Map.ZoomIndex < 0 || s.Map.ZoomIndex >= len(levels) {
		s.Map.ZoomIndex = 0
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
}

// Save writes s to path.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
