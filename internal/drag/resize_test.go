package drag

import (
	"testing"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
)

func TestHitEdges(t *testing.T) {
	r := geom.R(100, 100, 200, 100)
	tests := []struct {
		name string
		p    geom.Vec2
		want Edges
	}{
		{"interior", geom.V(200, 150), 0},
		{"left", geom.V(102, 150), EdgeLeft},
		{"right outside", geom.V(303, 150), EdgeRight},
		{"top", geom.V(200, 99), EdgeTop},
		{"bottom-right corner", geom.V(299, 199), EdgeRight | EdgeBottom},
		{"far outside", geom.V(10, 10), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitEdges(r, tt.p, 6); got != tt.want {
				t.Errorf("HitEdges(%v) = %b, want %b", tt.p, got, tt.want)
			}
		})
	}
}

func TestResizeSize(t *testing.T) {
	lo, hi := geom.V(100, 80), geom.V(600, 400)
	snap := geom.V(300, 200)
	tests := []struct {
		name  string
		edges Edges
		delta geom.Vec2
		want  geom.Vec2
	}{
		{"right grows twice the delta", EdgeRight, geom.V(10, 0), geom.V(320, 200)},
		{"left moving left grows", EdgeLeft, geom.V(-10, 0), geom.V(320, 200)},
		{"bottom-right corner", EdgeRight | EdgeBottom, geom.V(5, 7), geom.V(310, 214)},
		{"top ignores x", EdgeTop, geom.V(50, -20), geom.V(300, 240)},
		{"clamped max", EdgeRight, geom.V(1000, 0), geom.V(600, 200)},
		{"clamped min", EdgeBottom | EdgeLeft, geom.V(1000, -1000), geom.V(100, 80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResizeSize(snap, tt.edges, tt.delta, lo, hi); got != tt.want {
				t.Errorf("ResizeSize = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResizerDragAndRevert(t *testing.T) {
	rec := input.NewRecorder()
	c := NewController(DefaultThreshold)
	rz := NewResizer(geom.V(200, 100), geom.V(100, 50), geom.V(400, 300))
	bounds := geom.R(300, 250, 200, 100) // centered in 800x600

	rec.Next(input.Move(geom.V(499, 300)))
	f := rec.Next(input.Hold(geom.V(499, 300), input.ButtonPrimary))
	c.Update(f.Pointer)
	if !rz.Update(f, c, bounds, "modal") {
		t.Fatal("press on the right edge did not begin a resize")
	}
	f = rec.Next(input.Hold(geom.V(519, 300), input.ButtonPrimary))
	c.Update(f.Pointer)
	if rz.Size != geom.V(240, 100) {
		t.Fatalf("live size = %v, want (240,100)", rz.Size)
	}
	if rz.Grabbed() != EdgeRight {
		t.Errorf("Grabbed = %b, want right", rz.Grabbed())
	}
	c.Cancel()
	if rz.Size != geom.V(200, 100) {
		t.Errorf("size after cancel = %v, want snapshot (200,100)", rz.Size)
	}
}

func TestResizerIgnoresInteriorPress(t *testing.T) {
	rec := input.NewRecorder()
	c := NewController(DefaultThreshold)
	rz := NewResizer(geom.V(200, 100), geom.V(100, 50), geom.V(400, 300))
	rec.Next(input.Move(geom.V(400, 300)))
	f := rec.Next(input.Hold(geom.V(400, 300), input.ButtonPrimary))
	if rz.Update(f, c, geom.R(300, 250, 200, 100), "modal") {
		t.Error("interior press began a resize")
	}
	if f.Pointer.Claimed(input.ButtonPrimary) {
		t.Error("interior press was claimed")
	}
}
