package editor

import (
	"strings"
	"testing"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
)

func mapRig(t *testing.T) (*rig, *MapEditor) {
	t.Helper()
	ws := NewWorkspace("map", 24, 16, 16)
	ws.ActiveTab = TabMap
	ws.Map.Placements = []Placement{{Name: "a", Col: 6, Row: 3}, {Name: "b", Col: 8, Row: 3}}
	r := newRig(t, ws)
	return r, r.app.Map
}

func placementCell(m *MapEditor, name string) Cell {
	p := m.Doc.Placements[m.Doc.placement(name)]
	return Cell{p.Col, p.Row}
}

func TestFreshMapIsCentered(t *testing.T) {
	_, m := mapRig(t)
	if m.View.Zoom() != 2 {
		t.Fatalf("zoom = %v, want the default level 2", m.View.Zoom())
	}
	world := m.CellRect(Cell{0, 0}).Pos()
	if world != geom.V(126, 58) {
		t.Errorf("map origin on screen = %v, want (126,58)", world)
	}
}

func TestPlacementDrag(t *testing.T) {
	tests := []struct {
		name string
		to   func(m *MapEditor) geom.Vec2
		want Cell
	}{
		{"free cell commits", func(m *MapEditor) geom.Vec2 { return m.CellRect(Cell{7, 5}).Center() }, Cell{7, 5}},
		{"occupied cell reverts", func(m *MapEditor) geom.Vec2 { return m.CellRect(Cell{8, 3}).Center() }, Cell{6, 3}},
		{"outside the map reverts", func(m *MapEditor) geom.Vec2 { return geom.V(334, 575) }, Cell{6, 3}},
		{"outside the canvas reverts", func(m *MapEditor) geom.Vec2 { return geom.V(100, 300) }, Cell{6, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, m := mapRig(t)
			from := m.CellRect(Cell{6, 3}).Center()
			r.drag(input.ButtonPrimary, from, from.Add(geom.V(0, 10)), tt.to(m))
			if got := placementCell(m, "a"); got != tt.want {
				t.Errorf("a at %v, want %v", got, tt.want)
			}
			if got := placementCell(m, "b"); got != (Cell{8, 3}) {
				t.Errorf("b moved to %v", got)
			}
		})
	}
}

func TestHoveredCellName(t *testing.T) {
	r, m := mapRig(t)
	r.move(m.CellRect(Cell{5, 3}).Center())
	c, ok := m.Hovered()
	if !ok || c.String() != "F4" {
		t.Errorf("hovered = %v (%v), want F4", c, ok)
	}
	if !strings.HasPrefix(m.info(), "F4") {
		t.Errorf("status info = %q", m.info())
	}
	r.move(geom.V(100, 300))
	if _, ok := m.Hovered(); ok {
		t.Error("hovering with the pointer outside the canvas")
	}
}

func TestDiscreteWheelZoom(t *testing.T) {
	r, m := mapRig(t)
	p := geom.V(400, 300)
	world := m.View.ScreenToWorld(p)
	r.wheel(p, 1)
	if m.View.Zoom() != 3 {
		t.Fatalf("zoom = %v, want the next level 3", m.View.Zoom())
	}
	got := m.View.WorldToScreen(world)
	if !approxEqual(got.X, p.X, 1e-9) || !approxEqual(got.Y, p.Y, 1e-9) {
		t.Errorf("anchor moved to %v", got)
	}
	r.wheel(p, -1)
	r.wheel(p, -1)
	r.wheel(p, -1)
	if m.View.Zoom() != 1 {
		t.Errorf("zoom = %v, want clamped at the first level", m.View.Zoom())
	}
}

func TestGoToCell(t *testing.T) {
	r, m := mapRig(t)
	r.click(m.GoToRect().Center())
	if !m.GoTo.Focused() {
		t.Fatal("go-to field not focused by click")
	}
	r.keys("C4")
	r.keys("", input.KeyEnter)
	if m.GoTo.Focused() {
		t.Error("field still focused after submit")
	}
	if !m.View.Gliding() {
		t.Fatal("camera not gliding")
	}
	for i := 0; i < 40; i++ {
		r.move(geom.V(0, 300))
	}
	want := m.View.OffsetCentering(geom.V(40, 56), m.Bounds())
	got := m.View.Offset
	if !approxEqual(got.X, want.X, 0.01) || !approxEqual(got.Y, want.Y, 0.01) {
		t.Errorf("offset = %v, want %v", got, want)
	}
}

func TestGoToCellRejects(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Z99", "outside"},
		{"4C", "missing column"},
		{"C", "missing row"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, m := mapRig(t)
			if m.GoToCell(tt.in) {
				t.Fatal("GoToCell succeeded")
			}
			if m.View.Gliding() {
				t.Error("camera moved")
			}
			if !strings.Contains(r.lastStatus(), tt.want) {
				t.Errorf("status = %q, want it to mention %q", r.lastStatus(), tt.want)
			}
		})
	}
}

func TestMapContextPlace(t *testing.T) {
	r, m := mapRig(t)
	at := m.CellRect(Cell{4, 6}).Center()
	r.clickWith(at, input.ButtonSecondary)
	if !m.ctx.Visible() || m.ctx.Menu.Enabled(mapRemove) {
		t.Fatal("expected context menu for an empty cell")
	}
	r.move(at)
	r.click(m.ctx.Menu.ItemRect(mapPlace).Center())
	if i := m.Doc.occupant(4, 6); i < 0 || m.Doc.Placements[i].Name != "map" {
		t.Errorf("placements = %+v, want a new map at E7", m.Doc.Placements)
	}
}
