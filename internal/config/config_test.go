package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(s, Default()) {
		t.Errorf("got %+v, want defaults", s)
	}
}

func TestLoadOverridesAndFixes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridsmith.toml")
	data := `
workspace = "levels.yml"

[input]
drag_threshold = 8.0
blink_interval = -1.0

[graph]
min_zoom = 0.5
max_zoom = 0.1

[map]
zoom_levels = [0.0, 2.0, 4.0]
zoom_index = 9

[log]
verbose = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Default()
	tests := []struct {
		name     string
		got, want any
	}{
		{"workspace", s.Workspace, "levels.yml"},
		{"threshold", s.Input.DragThreshold, 8.0},
		{"blink falls back", s.Input.BlinkInterval, d.Input.BlinkInterval},
		{"inverted zoom range falls back", s.Graph.MinZoom, d.Graph.MinZoom},
		{"zero level dropped", s.Map.ZoomLevels, []float64{2, 4}},
		{"index out of range", s.Map.ZoomIndex, 0},
		{"verbose", s.Log.Verbose, true},
		{"untouched window", s.Window, d.Window},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[window\nwidth = "), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !reflect.DeepEqual(s, Default()) {
		t.Error("parse failure must still return defaults")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	want := Default()
	want.Window.Title = "saved"
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Window.Title != "saved" || !reflect.DeepEqual(got.Map.ZoomLevels, want.Map.ZoomLevels) {
		t.Errorf("round trip lost data: %+v", got)
	}
}
