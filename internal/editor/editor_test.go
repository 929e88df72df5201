package editor

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/gridsmith/internal/config"
	"github.com/example/gridsmith/internal/dialog"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/render"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

type fakePicker struct {
	path   string
	err    error
	alerts []string
}

func (p *fakePicker) Open(string, string, ...string) (string, error) { return p.path, p.err }
func (p *fakePicker) Save(string, string, ...string) (string, error) { return p.path, p.err }
func (p *fakePicker) Alert(title, _ string) {
	p.alerts = append(p.alerts, title)
}

// rig drives an App with scripted input on an 800x600 screen.
type rig struct {
	t      *testing.T
	app    *App
	rec    *input.Recorder
	picker *fakePicker
	pos    geom.Vec2
}

func newRig(t *testing.T, ws *Workspace) *rig {
	t.Helper()
	p := &fakePicker{}
	r := &rig{
		t:      t,
		app:    New(config.Default(), ws, filepath.Join(t.TempDir(), "workspace.yml"), p, nil),
		rec:    input.NewRecorder(),
		picker: p,
	}
	r.frame(input.Move(geom.V(0, 0)))
	return r
}

func (r *rig) frame(s input.Sample) *input.Frame {
	r.pos = s.Pos
	f := r.rec.NextWith(s, input.KeySample{}, nil, geom.Vec2{})
	r.app.Update(f)
	return f
}

func (r *rig) move(p geom.Vec2) {
	r.frame(input.Move(p))
}

func (r *rig) clickWith(p geom.Vec2, b input.Button) {
	r.frame(input.Move(p))
	r.frame(input.Hold(p, b))
	r.frame(input.Move(p))
}

func (r *rig) click(p geom.Vec2) {
	r.clickWith(p, input.ButtonPrimary)
}

// drag presses b at from, passes through the given points and releases at
// the last one.
func (r *rig) drag(b input.Button, from geom.Vec2, through ...geom.Vec2) {
	r.frame(input.Move(from))
	r.frame(input.Hold(from, b))
	for _, p := range through {
		r.frame(input.Hold(p, b))
	}
	r.frame(input.Move(through[len(through)-1]))
}

func (r *rig) wheel(p geom.Vec2, dy float64) {
	r.pos = p
	r.app.Update(r.rec.NextWith(input.Move(p), input.KeySample{}, nil, geom.V(0, dy)))
}

// keys presses keys and types chars in one frame, then releases.
func (r *rig) keys(chars string, keys ...input.Key) {
	var ks input.KeySample
	for _, k := range keys {
		ks.Set(k, true)
	}
	r.app.Update(r.rec.NextWith(input.Move(r.pos), ks, []rune(chars), geom.Vec2{}))
	r.app.Update(r.rec.NextWith(input.Move(r.pos), input.KeySample{}, nil, geom.Vec2{}))
}

func (r *rig) lastStatus() string {
	l := r.app.Log()
	if len(l) == 0 {
		return ""
	}
	return l[len(l)-1]
}

func layeredWorkspace() *Workspace {
	ws := NewWorkspace("layers", 24, 16, 16)
	ws.Groups = []LayerGroup{
		{Name: "A", Layers: []Layer{{"L0", true}, {"L1", true}, {"L2", true}, {"L3", true}}},
		{Name: "B", Layers: []Layer{{"M0", true}}},
	}
	return ws
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(geom.R(0, 0, 800, 600))
	tests := []struct {
		name string
		got  geom.Rect
		want geom.Rect
	}{
		{"menu bar", l.MenuBar, geom.R(0, 0, 800, 22)},
		{"tabs", l.Tabs, geom.R(220, 22, 580, 24)},
		{"layers", l.Layers, geom.R(0, 22, 220, 560)},
		{"canvas", l.Canvas, geom.R(220, 46, 580, 536)},
		{"status", l.Status, geom.R(0, 582, 800, 18)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestMenuBarSwitchesTab(t *testing.T) {
	r := newRig(t, SampleWorkspace())
	r.click(r.app.Menus.Trigger(menuView).Center())
	if r.app.Menus.OpenIndex() != menuView {
		t.Fatalf("open menu = %d, want View", r.app.Menus.OpenIndex())
	}
	r.move(geom.V(0, 300))
	item := r.app.Menus.Menus[menuView].ItemRect(viewMap)
	r.click(item.Center())
	if r.app.Tabs.Active != TabMap {
		t.Errorf("active tab = %d, want map", r.app.Tabs.Active)
	}
	if r.app.Stack.AnyOpen() {
		t.Error("menu still open after selection")
	}
}

func TestMenuClickDoesNotReachWidgetsBeneath(t *testing.T) {
	ws := layeredWorkspace()
	r := newRig(t, ws)
	r.click(r.app.Menus.Trigger(menuFile).Center())
	r.move(geom.V(300, 300))
	// The File menu hangs over the layers panel; a click outside every row
	// dismisses it and must not toggle the group header under the pointer.
	menu := r.app.Menus.Menus[menuFile].Bounds
	hdr := r.app.Layers.HeaderRect("A")
	p := geom.V(menu.Right()+20, hdr.MidY())
	if !hdr.Contains(p) {
		t.Fatalf("test point %v not over header %v", p, hdr)
	}
	r.click(p)
	if r.app.Stack.AnyOpen() {
		t.Error("menu still open")
	}
	if ws.Groups[0].Collapsed {
		t.Error("dismissing click toggled the header beneath the menu")
	}
}

func TestModalSwallowsCanvasClicks(t *testing.T) {
	r := newRig(t, SampleWorkspace())
	r.app.Graph.RenameNode(1)
	if r.app.Modal() == nil {
		t.Fatal("rename prompt not open")
	}
	b, _ := r.app.Graph.NodeBounds(2)
	r.click(b.Header.Center())
	if r.app.Graph.Selected != 0 || r.app.Drag.Active() {
		t.Errorf("selected = %d, drag active = %v; modal should swallow the click", r.app.Graph.Selected, r.app.Drag.Active())
	}
	r.keys("X")
	r.keys("", input.KeyEnter)
	if r.app.Modal() != nil {
		t.Fatal("prompt still open after Enter")
	}
	if got := r.app.Workspace.Graph.node(1).Title; got != "StartX" {
		t.Errorf("title = %q, want StartX", got)
	}
}

func TestModalSwallowsWheel(t *testing.T) {
	tests := []struct {
		name string
		tab  int
	}{
		{"graph", TabGraph},
		{"map", TabMap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := SampleWorkspace()
			ws.ActiveTab = tt.tab
			for i := 0; i < 30; i++ {
				ws.Groups[0].Layers = append(ws.Groups[0].Layers, Layer{fmt.Sprintf("Extra %d", i), true})
			}
			r := newRig(t, ws)
			r.app.menuAction(menuHelp, helpAbout)
			if r.app.Modal() == nil {
				t.Fatal("about dialog not open")
			}
			graph, world := r.app.Graph.View.Zoom(), r.app.Map.View.Zoom()
			r.wheel(geom.V(700, 500), 3)
			r.wheel(geom.V(105, 300), -3)
			if r.app.Graph.View.Zoom() != graph || r.app.Map.View.Zoom() != world {
				t.Errorf("canvas zoomed under the modal: graph %v map %v", r.app.Graph.View.Zoom(), r.app.Map.View.Zoom())
			}
			if r.app.Layers.Scroll.Offset != 0 {
				t.Errorf("layers scrolled under the modal: %v", r.app.Layers.Scroll.Offset)
			}
		})
	}
}

func TestModalCancelLeavesDocument(t *testing.T) {
	r := newRig(t, SampleWorkspace())
	r.app.Graph.RenameNode(1)
	r.keys("X")
	r.keys("", input.KeyEscape) // blurs the field
	r.keys("", input.KeyEscape) // cancels
	if r.app.Modal() != nil {
		t.Fatal("prompt still open")
	}
	if got := r.app.Workspace.Graph.node(1).Title; got != "Start" {
		t.Errorf("title = %q, want unchanged", got)
	}
}

func TestSaveShortcut(t *testing.T) {
	r := newRig(t, SampleWorkspace())
	r.keys("", input.KeyControl, input.KeyS)
	if _, err := os.Stat(r.app.Path); err != nil {
		t.Fatalf("workspace not saved: %v", err)
	}
	ws, err := LoadWorkspace(r.app.Path)
	if err != nil {
		t.Fatal(err)
	}
	cam := ws.Graph.Camera
	off := r.app.Graph.View.Offset
	if cam.X != off.X || cam.Y != off.Y || cam.Zoom != 1 {
		t.Errorf("saved camera = %+v, want offset %v zoom 1", cam, off)
	}
	if !strings.HasPrefix(r.lastStatus(), "saved ") {
		t.Errorf("status = %q", r.lastStatus())
	}
}

func TestOpenWorkspace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.yml")
	other := NewWorkspace("other", 10, 5, 32)
	if err := other.Save(path); err != nil {
		t.Fatal(err)
	}
	r := newRig(t, SampleWorkspace())
	r.picker.path = path
	r.app.menuAction(menuFile, fileOpen)
	if r.app.Workspace.Name != "other" || r.app.Path != path {
		t.Errorf("workspace = %q at %q, want other at %q", r.app.Workspace.Name, r.app.Path, path)
	}
	if r.app.Map.Doc.Columns != 10 {
		t.Errorf("map editor columns = %d, want 10", r.app.Map.Doc.Columns)
	}
}

func TestPickerErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantAlerts int
	}{
		{"cancelled", "", dialog.ErrCancelled, 0},
		{"picker failure", "", errors.New("no display"), 1},
		{"unreadable file", "/nonexistent/ws.yml", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, SampleWorkspace())
			r.picker.path, r.picker.err = tt.path, tt.err
			r.app.menuAction(menuFile, fileOpen)
			if len(r.picker.alerts) != tt.wantAlerts {
				t.Errorf("alerts = %v, want %d", r.picker.alerts, tt.wantAlerts)
			}
			if r.app.Workspace.Name != "untitled" {
				t.Errorf("workspace replaced with %q", r.app.Workspace.Name)
			}
		})
	}
}

func TestNewProjectDialog(t *testing.T) {
	r := newRig(t, SampleWorkspace())
	r.keys("", input.KeyControl, input.KeyN)
	if r.app.Modal() == nil {
		t.Fatal("New Project dialog not open")
	}
	r.keys("demo")
	r.keys("", input.KeyEnter)
	ws := r.app.Workspace
	if ws.Name != "demo" || ws.Map.Columns != 24 || ws.Map.Rows != 16 || ws.Map.CellSize != 16 {
		t.Errorf("new workspace = %q %dx%d cell %v", ws.Name, ws.Map.Columns, ws.Map.Rows, ws.Map.CellSize)
	}
	if len(ws.Graph.Nodes) != 0 {
		t.Errorf("new workspace has %d nodes", len(ws.Graph.Nodes))
	}
}

func TestQuitConfirm(t *testing.T) {
	r := newRig(t, SampleWorkspace())
	r.app.menuAction(menuFile, fileQuit)
	if r.app.Quit() {
		t.Fatal("quit before confirming")
	}
	r.click(geom.V(534, 357))
	if !r.app.Quit() {
		t.Error("Quit() = false after confirming")
	}
}

func TestExportTOML(t *testing.T) {
	r := newRig(t, SampleWorkspace())
	r.picker.path = filepath.Join(t.TempDir(), "out")
	r.app.export(dialog.ExportOptions{Format: "TOML", OnlyVisible: true})
	b, err := os.ReadFile(r.picker.path + ".toml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "Trees") || strings.Contains(string(b), "Props") {
		t.Errorf("export should keep visible layers only:\n%s", b)
	}
}

func TestDrawOrder(t *testing.T) {
	r := newRig(t, SampleWorkspace())
	r.clickWith(geom.V(300, 400), input.ButtonSecondary)
	r.move(geom.V(300, 400))
	if !r.app.Graph.ctx.Visible() {
		t.Fatal("context menu not open")
	}
	rec := render.NewRecorder()
	r.app.Draw(rec, geom.R(0, 0, 800, 600))
	if rec.ClipDepth() != 0 {
		t.Errorf("clip depth = %d after draw, want 0", rec.ClipDepth())
	}
	menu, node, layers := rec.IndexOfText("New Node"), rec.IndexOfText("Start"), rec.IndexOfText("Layers")
	if menu < 0 || node < 0 || layers < 0 {
		t.Fatalf("missing text: menu %d node %d layers %d", menu, node, layers)
	}
	if !(node < layers && layers < menu) {
		t.Errorf("draw order canvas %d, layers %d, popup %d; want popup last", node, layers, menu)
	}
}
