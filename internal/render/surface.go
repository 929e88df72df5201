// Package render defines the drawing boundary between widgets and the
// host. Widgets draw through a Surface and never touch the GPU directly.
package render

import (
	"image/color"

	"github.com/example/gridsmith/internal/geom"
)

// Surface is the set of drawing primitives the editor needs. Coordinates
// are screen pixels.
type Surface interface {
	FillRect(r geom.Rect, c color.Color)
	StrokeRect(r geom.Rect, c color.Color, thickness float64)
	Line(a, b geom.Vec2, c color.Color, thickness float64)
	// Curve strokes the cubic bezier p0..p3 as segments straight lines.
	Curve(p0, p1, p2, p3 geom.Vec2, c color.Color, thickness float64, segments int)
	// Text draws s with its top-left corner at pos.
	Text(s string, pos geom.Vec2, c color.Color)
	Measure(s string) geom.Vec2
	// PushClip restricts drawing to r intersected with the current clip.
	PushClip(r geom.Rect)
	PopClip()
}

// CurvePoints returns segments+1 points along the cubic bezier p0..p3.
// Fewer than one segment is treated as one.
func CurvePoints(p0, p1, p2, p3 geom.Vec2, segments int) []geom.Vec2 {
	if segments < 1 {
		segments = 1
	}
	pts := make([]geom.Vec2, segments+1)
	for i := range pts {
		t := float64(i) / float64(segments)
		u := 1 - t
		a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		pts[i] = geom.Vec2{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		}
	}
	return pts
}

// ConnectionCurve draws the horizontal S-curve used between an output port
// at from and an input port at to.
func ConnectionCurve(s Surface, from, to geom.Vec2, c color.Color) {
	bend := (to.X - from.X) / 2
	if bend < 40 {
		bend = 40
	}
	s.Curve(from, from.Add(geom.V(bend, 0)), to.Sub(geom.V(bend, 0)), to, c, 2, 24)
}

// TextCentered draws s centered inside r.
func TextCentered(s Surface, str string, r geom.Rect, c color.Color) {
	sz := s.Measure(str)
	s.Text(str, geom.V(r.X+(r.W-sz.X)/2, r.Y+(r.H-sz.Y)/2), c)
}

// TextLeft draws s left-aligned and vertically centered inside r, pad
// pixels from its left edge.
func TextLeft(s Surface, str string, r geom.Rect, pad float64, c color.Color) {
	sz := s.Measure(str)
	s.Text(str, geom.V(r.X+pad, r.Y+(r.H-sz.Y)/2), c)
}

// Panel draws a filled box with a border, the frame every panel, menu and
// modal in the editor shares.
func Panel(s Surface, r geom.Rect, bg, border color.Color) {
	s.FillRect(r, bg)
	s.StrokeRect(r, border, BorderWidth)
}
