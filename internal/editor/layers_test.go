package editor

import (
	"fmt"
	"testing"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
)

func layerNames(g LayerGroup) []string {
	out := make([]string, len(g.Layers))
	for i, l := range g.Layers {
		out[i] = l.Name
	}
	return out
}

func sameNames(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestLayerRowsAreReversed(t *testing.T) {
	r := newRig(t, layeredWorkspace())
	l := r.app.Layers
	tests := []struct {
		key LayerKey
		y   float64
	}{
		{LayerKey{"A", "L3"}, 64},
		{LayerKey{"A", "L2"}, 86},
		{LayerKey{"A", "L1"}, 108},
		{LayerKey{"A", "L0"}, 130},
		{LayerKey{"B", "M0"}, 174},
	}
	for _, tt := range tests {
		t.Run(tt.key.Layer, func(t *testing.T) {
			if got := l.RowRect(tt.key).Y; got != tt.y {
				t.Errorf("row y = %v, want %v", got, tt.y)
			}
		})
	}
	if got := l.HeaderRect("B").Y; got != 152 {
		t.Errorf("header B y = %v, want 152", got)
	}
}

func TestLayerReorder(t *testing.T) {
	tests := []struct {
		name    string
		through []geom.Vec2
		want    []string
	}{
		{"to the top", []geom.Vec2{geom.V(105, 99), geom.V(105, 66)}, []string{"L0", "L2", "L3", "L1"}},
		{"to the bottom", []geom.Vec2{geom.V(105, 130), geom.V(105, 148)}, []string{"L1", "L0", "L2", "L3"}},
		{"small move", []geom.Vec2{geom.V(105, 121)}, []string{"L0", "L1", "L2", "L3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, layeredWorkspace())
			r.drag(input.ButtonPrimary, geom.V(105, 119), tt.through...)
			if got := layerNames(r.app.Workspace.Groups[0]); !sameNames(got, tt.want...) {
				t.Errorf("A = %v, want %v", got, tt.want)
			}
			if r.app.Layers.Selected != (LayerKey{"A", "L1"}) {
				t.Errorf("selected = %v", r.app.Layers.Selected)
			}
		})
	}
}

func TestLayerMovesBetweenGroups(t *testing.T) {
	r := newRig(t, layeredWorkspace())
	r.drag(input.ButtonPrimary, geom.V(105, 119), geom.V(105, 140), geom.V(105, 163))
	gs := r.app.Workspace.Groups
	if got := layerNames(gs[0]); !sameNames(got, "L0", "L2", "L3") {
		t.Errorf("A = %v", got)
	}
	if got := layerNames(gs[1]); !sameNames(got, "M0", "L1") {
		t.Errorf("B = %v", got)
	}
	if r.app.Layers.Selected != (LayerKey{"B", "L1"}) {
		t.Errorf("selected = %v", r.app.Layers.Selected)
	}
}

func TestLayerNameClashRejected(t *testing.T) {
	ws := layeredWorkspace()
	ws.Groups[1].Layers = append(ws.Groups[1].Layers, Layer{"L1", true})
	r := newRig(t, ws)
	r.drag(input.ButtonPrimary, geom.V(105, 119), geom.V(105, 140), geom.V(105, 163))
	if got := layerNames(r.app.Workspace.Groups[0]); !sameNames(got, "L0", "L1", "L2", "L3") {
		t.Errorf("A = %v, want it unchanged", got)
	}
	if got := len(r.app.Workspace.Groups[1].Layers); got != 2 {
		t.Errorf("B has %d layers, want 2", got)
	}
}

func TestLayerDropOutsideListReverts(t *testing.T) {
	r := newRig(t, layeredWorkspace())
	r.drag(input.ButtonPrimary, geom.V(105, 119), geom.V(105, 99), geom.V(400, 300))
	if got := layerNames(r.app.Workspace.Groups[0]); !sameNames(got, "L0", "L1", "L2", "L3") {
		t.Errorf("A = %v, want it unchanged", got)
	}
	if r.app.Drag.Active() {
		t.Error("drag still active")
	}
}

func TestGroupHeader(t *testing.T) {
	t.Run("click collapses", func(t *testing.T) {
		r := newRig(t, layeredWorkspace())
		r.click(r.app.Layers.HeaderRect("A").Center())
		if !r.app.Workspace.Groups[0].Collapsed {
			t.Fatal("A not collapsed")
		}
		if !r.app.Layers.RowRect(LayerKey{"A", "L3"}).Empty() {
			t.Error("collapsed group still lays out rows")
		}
		if got := r.app.Layers.HeaderRect("B").Y; got != 64 {
			t.Errorf("header B y = %v, want 64", got)
		}
	})
	t.Run("drag reorders", func(t *testing.T) {
		r := newRig(t, layeredWorkspace())
		r.drag(input.ButtonPrimary, geom.V(105, 163), geom.V(105, 140), geom.V(105, 45))
		gs := r.app.Workspace.Groups
		if gs[0].Name != "B" || gs[1].Name != "A" {
			t.Errorf("groups = %s, %s; want B, A", gs[0].Name, gs[1].Name)
		}
		if gs[0].Collapsed || gs[1].Collapsed {
			t.Error("a drag toggled a group")
		}
	})
}

func TestVisibilityCheckbox(t *testing.T) {
	r := newRig(t, layeredWorkspace())
	k := LayerKey{"A", "L3"}
	r.click(r.app.Layers.CheckRect(k).Center())
	if r.app.Workspace.Groups[0].Layers[3].Visible {
		t.Error("L3 still visible")
	}
	if r.app.Drag.Active() {
		t.Error("checkbox click started a drag")
	}
}

func TestLayerDeletedMidDrag(t *testing.T) {
	r := newRig(t, layeredWorkspace())
	r.frame(input.Move(geom.V(105, 119)))
	r.frame(input.Hold(geom.V(105, 119), input.ButtonPrimary))
	r.frame(input.Hold(geom.V(105, 99), input.ButtonPrimary))
	if !r.app.Drag.Active() {
		t.Fatal("drag not started")
	}
	r.app.Layers.DeleteLayer(LayerKey{"A", "L1"})
	r.frame(input.Hold(geom.V(105, 66), input.ButtonPrimary))
	if r.app.Drag.Active() {
		t.Error("drag survived its layer")
	}
	r.frame(input.Move(geom.V(105, 66)))
	if got := layerNames(r.app.Workspace.Groups[0]); !sameNames(got, "L0", "L2", "L3") {
		t.Errorf("A = %v", got)
	}
}

func TestLayerListScrolls(t *testing.T) {
	ws := NewWorkspace("tall", 24, 16, 16)
	ws.Groups[0].Layers = nil
	for i := 0; i < 30; i++ {
		ws.Groups[0].Layers = append(ws.Groups[0].Layers, Layer{fmt.Sprintf("L%d", i), true})
	}
	r := newRig(t, ws)
	top := r.app.Layers.RowRect(LayerKey{"Terrain", "L29"}).Y
	r.wheel(geom.V(105, 300), -1)
	if got := r.app.Layers.Scroll.Offset; got != 66 {
		t.Fatalf("offset = %v, want 66", got)
	}
	r.move(geom.V(105, 300))
	if got := r.app.Layers.RowRect(LayerKey{"Terrain", "L29"}).Y; got != top-66 {
		t.Errorf("top row y = %v, want %v", got, top-66)
	}
	if r.app.Graph.View.Zoom() != 1 {
		t.Error("wheel over the list reached the canvas")
	}
}

func TestLayerContextRename(t *testing.T) {
	r := newRig(t, layeredWorkspace())
	at := r.app.Layers.RowRect(LayerKey{"A", "L3"}).Center()
	r.clickWith(at, input.ButtonSecondary)
	if !r.app.Layers.rowCtx.Visible() {
		t.Fatal("row context menu not open")
	}
	r.move(at)
	r.click(r.app.Layers.rowCtx.Menu.ItemRect(layerRename).Center())
	if r.app.Modal() == nil {
		t.Fatal("rename prompt not open")
	}
	r.keys("X")
	r.keys("", input.KeyEnter)
	if r.app.Modal() != nil {
		t.Error("prompt still open")
	}
	if got := r.app.Workspace.Groups[0].Layers[3].Name; got != "L3X" {
		t.Errorf("name = %q, want L3X", got)
	}
	if r.app.Layers.Selected != (LayerKey{"A", "L3X"}) {
		t.Errorf("selected = %v", r.app.Layers.Selected)
	}
}

func TestAddLayerButton(t *testing.T) {
	r := newRig(t, layeredWorkspace())
	r.app.Layers.Selected = LayerKey{"B", "M0"}
	_, _, lb, _ := r.app.Layers.frame(r.app.Layout().Layers)
	r.click(lb.Center())
	if got := layerNames(r.app.Workspace.Groups[1]); !sameNames(got, "M0", "Layer 2") {
		t.Errorf("B = %v", got)
	}
}
