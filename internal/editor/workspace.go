package editor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/example/gridsmith/internal/dialog"
)

// Camera is a saved view transform.
type Camera struct {
	X     float64 `yaml:"x" toml:"x"`
	Y     float64 `yaml:"y" toml:"y"`
	Zoom  float64 `yaml:"zoom,omitempty" toml:"zoom,omitempty"`
	Level int     `yaml:"level,omitempty" toml:"level,omitempty"`
}

// Node is a box on the graph canvas with one input and one output port.
type Node struct {
	ID    int     `yaml:"id" toml:"id"`
	Title string  `yaml:"title" toml:"title"`
	X     float64 `yaml:"x" toml:"x"`
	Y     float64 `yaml:"y" toml:"y"`
	W     float64 `yaml:"w" toml:"w"`
	H     float64 `yaml:"h" toml:"h"`
}

// Link connects the output of node From to the input of node To.
type Link struct {
	From int `yaml:"from" toml:"from"`
	To   int `yaml:"to" toml:"to"`
}

type GraphDoc struct {
	Camera Camera `yaml:"camera" toml:"camera"`
	Nodes  []Node `yaml:"nodes" toml:"nodes"`
	Links  []Link `yaml:"links" toml:"links"`
}

// Placement is a named map occupying one grid cell.
type Placement struct {
	Name string `yaml:"name" toml:"name"`
	Col  int    `yaml:"col" toml:"col"`
	Row  int    `yaml:"row" toml:"row"`
}

type MapDoc struct {
	Camera     Camera      `yaml:"camera" toml:"camera"`
	Columns    int         `yaml:"columns" toml:"columns"`
	Rows       int         `yaml:"rows" toml:"rows"`
	CellSize   float64     `yaml:"cell_size" toml:"cell_size"`
	Placements []Placement `yaml:"placements" toml:"placements"`
}

type Layer struct {
	Name    string `yaml:"name" toml:"name"`
	Visible bool   `yaml:"visible" toml:"visible"`
}

// LayerGroup is a named list of layers. Index 0 is the bottom layer.
type LayerGroup struct {
	Name      string  `yaml:"name" toml:"name"`
	Collapsed bool    `yaml:"collapsed,omitempty" toml:"collapsed,omitempty"`
	Layers    []Layer `yaml:"layers" toml:"layers"`
}

// Workspace is everything saved in workspace.yml.
type Workspace struct {
	Name      string       `yaml:"name" toml:"name"`
	ActiveTab int          `yaml:"active_tab" toml:"active_tab"`
	Graph     GraphDoc     `yaml:"graph" toml:"graph"`
	Map       MapDoc       `yaml:"map" toml:"map"`
	Groups    []LayerGroup `yaml:"layer_groups" toml:"layer_groups"`
}

// NewWorkspace returns an empty workspace with a map of the given size.
func NewWorkspace(name string, cols, rows int, cellSize float64) *Workspace {
	return &Workspace{
		Name:   name,
		Graph:  GraphDoc{Camera: Camera{Zoom: 1}},
		Map:    MapDoc{Columns: cols, Rows: rows, CellSize: cellSize},
		Groups: []LayerGroup{{Name: "Terrain", Layers: []Layer{{Name: "Ground", Visible: true}}}},
	}
}

// SampleWorkspace is what a first launch shows.
func SampleWorkspace() *Workspace {
	ws := NewWorkspace("untitled", 24, 16, 16)
	ws.Graph.Nodes = []Node{
		{ID: 1, Title: "Start", X: 40, Y: 60, W: 140, H: 70},
		{ID: 2, Title: "Dialogue", X: 260, Y: 40, W: 140, H: 70},
		{ID: 3, Title: "End", X: 480, Y: 120, W: 140, H: 70},
	}
	ws.Graph.Links = []Link{{From: 1, To: 2}}
	ws.Map.Placements = []Placement{{Name: "town", Col: 2, Row: 3}, {Name: "cave", Col: 5, Row: 1}}
	ws.Groups = []LayerGroup{
		{Name: "Terrain", Layers: []Layer{{"Water", true}, {"Ground", true}, {"Grass", true}}},
		{Name: "Objects", Layers: []Layer{{"Trees", true}, {"Props", false}}},
	}
	return ws
}

// normalize fills zero values a hand-edited file may leave behind.
func (w *Workspace) normalize() {
	if w.Graph.Camera.Zoom <= 0 {
		w.Graph.Camera.Zoom = 1
	}
	if w.Map.Columns <= 0 {
		w.Map.Columns = 24
	}
	if w.Map.Rows <= 0 {
		w.Map.Rows = 16
	}
	if w.Map.CellSize <= 0 {
		w.Map.CellSize = 16
	}
	for i := range w.Graph.Nodes {
		n := &w.Graph.Nodes[i]
		if n.W <= 0 {
			n.W = 140
		}
		if n.H <= 0 {
			n.H = 70
		}
	}
}

// LoadWorkspace reads a workspace YAML file.
func LoadWorkspace(path string) (*Workspace, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ws Workspace
	if err := yaml.Unmarshal(b, &ws); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	ws.normalize()
	return &ws, nil
}

// Save writes the workspace as YAML, creating the directory if needed.
func (w *Workspace) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(w); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return enc.Close()
}

// Export encodes a copy of the workspace shaped by opts.
func (w *Workspace) Export(opts dialog.ExportOptions) ([]byte, error) {
	out := *w
	if !opts.IncludeCamera {
		out.Graph.Camera = Camera{}
		out.Map.Camera = Camera{}
	}
	if opts.OnlyVisible {
		out.Groups = make([]LayerGroup, len(w.Groups))
		for i, g := range w.Groups {
			g.Layers = nil
			for _, l := range w.Groups[i].Layers {
				if l.Visible {
					g.Layers = append(g.Layers, l)
				}
			}
			out.Groups[i] = g
		}
	}
	switch opts.Format {
	case "TOML":
		return toml.Marshal(&out)
	case "YAML", "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&out); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown export format %q", opts.Format)
}

// ExportExt returns the file extension for an export format.
func ExportExt(format string) string {
	if format == "TOML" {
		return "toml"
	}
	return "yml"
}

// node returns the node with the given id, or nil.
func (g *GraphDoc) node(id int) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

func (g *GraphDoc) nextID() int {
	id := 0
	for _, n := range g.Nodes {
		if n.ID > id {
			id = n.ID
		}
	}
	return id + 1
}

func (g *GraphDoc) hasLink(l Link) bool {
	for _, x := range g.Links {
		if x == l {
			return true
		}
	}
	return false
}

// removeNode deletes a node and every link touching it.
func (g *GraphDoc) removeNode(id int) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			g.Nodes = append(g.Nodes[:i], g.Nodes[i+1:]...)
			break
		}
	}
	links := g.Links[:0]
	for _, l := range g.Links {
		if l.From != id && l.To != id {
			links = append(links, l)
		}
	}
	g.Links = links
}

// occupant returns the index of the placement at (col,row), or -1.
func (m *MapDoc) occupant(col, row int) int {
	for i, p := range m.Placements {
		if p.Col == col && p.Row == row {
			return i
		}
	}
	return -1
}

func (m *MapDoc) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.Columns && row < m.Rows
}

func (m *MapDoc) placement(name string) int {
	for i, p := range m.Placements {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (w *Workspace) group(name string) int {
	for i, g := range w.Groups {
		if g.Name == name {
			return i
		}
	}
	return -1
}

func (g *LayerGroup) layer(name string) int {
	for i, l := range g.Layers {
		if l.Name == name {
			return i
		}
	}
	return -1
}
