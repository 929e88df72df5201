package render

import (
	"math"
	"testing"

	"github.com/example/gridsmith/internal/geom"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestCurvePointsEndpoints(t *testing.T) {
	p0, p3 := geom.V(0, 0), geom.V(100, 50)
	pts := CurvePoints(p0, geom.V(50, 0), geom.V(50, 50), p3, 8)
	if len(pts) != 9 {
		t.Fatalf("len = %d, want 9", len(pts))
	}
	if pts[0] != p0 || !pts[8].Eq(p3, 1e-9) {
		t.Errorf("endpoints = %v %v, want %v %v", pts[0], pts[8], p0, p3)
	}
	// Symmetric control points put the midpoint at the chord's center.
	if !approxEqual(pts[4].X, 50, 1e-9) || !approxEqual(pts[4].Y, 25, 1e-9) {
		t.Errorf("midpoint = %v, want (50,25)", pts[4])
	}
}

func TestCurvePointsMinimumSegments(t *testing.T) {
	if got := len(CurvePoints(geom.V(0, 0), geom.V(0, 0), geom.V(1, 1), geom.V(1, 1), 0)); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
}

func TestRecorderClipStack(t *testing.T) {
	r := NewRecorder()
	r.PushClip(geom.R(0, 0, 100, 100))
	r.PushClip(geom.R(50, 50, 100, 100))
	if got := r.Ops[1].Rect; got != geom.R(50, 50, 50, 50) {
		t.Errorf("nested clip = %v, want intersection", got)
	}
	r.PopClip()
	r.PopClip()
	r.PopClip() // unbalanced pop is ignored
	if r.ClipDepth() != 0 {
		t.Errorf("ClipDepth = %d", r.ClipDepth())
	}
}

func TestTextCentered(t *testing.T) {
	r := NewRecorder()
	TextCentered(r, "ab", geom.R(0, 0, 100, 33), ColorText)
	if got := r.Ops[0].A; got != geom.V(43, 10) {
		t.Errorf("pos = %v, want (43,10)", got)
	}
}
