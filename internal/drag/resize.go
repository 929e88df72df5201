package drag

import (
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
)

// Edges is a set of rectangle edges.
type Edges uint8

const (
	EdgeLeft Edges = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Has reports whether e contains every edge in o.
func (e Edges) Has(o Edges) bool {
	return e&o == o
}

// Horizontal reports whether e grabs a vertical edge, i.e. changes width.
func (e Edges) Horizontal() bool {
	return e&(EdgeLeft|EdgeRight) != 0
}

// Vertical reports whether e grabs a horizontal edge, i.e. changes height.
func (e Edges) Vertical() bool {
	return e&(EdgeTop|EdgeBottom) != 0
}

// HitEdges returns the edges of r within grip pixels of p. A corner yields
// two edges. Points farther than grip outside r hit nothing.
func HitEdges(r geom.Rect, p geom.Vec2, grip float64) Edges {
	if !r.Inset(-grip).Contains(p) {
		return 0
	}
	var e Edges
	switch {
	case p.X < r.X+grip:
		e |= EdgeLeft
	case p.X >= r.Right()-grip:
		e |= EdgeRight
	}
	switch {
	case p.Y < r.Y+grip:
		e |= EdgeTop
	case p.Y >= r.Bottom()-grip:
		e |= EdgeBottom
	}
	return e
}

// ResizeSize computes the size of a centered box after dragging edges by
// delta from snapshot. Both sides of a centered box move, so each axis
// changes by twice the pointer travel. The result is clamped to [lo, hi].
func ResizeSize(snapshot geom.Vec2, edges Edges, delta, lo, hi geom.Vec2) geom.Vec2 {
	size := snapshot
	if edges.Has(EdgeRight) {
		size.X += 2 * delta.X
	}
	if edges.Has(EdgeLeft) {
		size.X -= 2 * delta.X
	}
	if edges.Has(EdgeBottom) {
		size.Y += 2 * delta.Y
	}
	if edges.Has(EdgeTop) {
		size.Y -= 2 * delta.Y
	}
	size.X = geom.Clamp(size.X, lo.X, hi.X)
	size.Y = geom.Clamp(size.Y, lo.Y, hi.Y)
	return size
}

// Resizer lets the user resize a centered modal by dragging its edges.
type Resizer struct {
	Size geom.Vec2
	Min  geom.Vec2
	Max  geom.Vec2
	// Grip is how close to an edge, in pixels, a press must land.
	Grip float64

	hover Edges
	grab  Edges
}

// NewResizer returns a resizer with the given initial size and limits.
func NewResizer(size, lo, hi geom.Vec2) *Resizer {
	return &Resizer{Size: ResizeSize(size, 0, geom.Vec2{}, lo, hi), Min: lo, Max: hi, Grip: 6}
}

// Hover returns the edges under the pointer as of the last Update.
func (r *Resizer) Hover() Edges {
	return r.hover
}

// Grabbed returns the edges being dragged, or 0.
func (r *Resizer) Grabbed() Edges {
	return r.grab
}

// Update begins an edge drag when the primary button goes down on one of
// bounds' edges. bounds is the modal's current screen rectangle and id
// names it to the controller.
func (r *Resizer) Update(f *input.Frame, c *Controller, bounds geom.Rect, id any) bool {
	p := f.Pointer
	r.hover = HitEdges(bounds, p.Pos, r.Grip)
	if r.hover == 0 || c.Active() {
		return false
	}
	if !p.TryConsumePress(input.ButtonPrimary, bounds.Inset(-r.Grip)) {
		return false
	}
	edges := r.hover
	return c.Begin(p, Spec{
		Mode:     ModeResizeEdge,
		ID:       id,
		Button:   input.ButtonPrimary,
		Snapshot: r.Size,
		Preview: func(s *Session) {
			r.grab = edges
			r.Size = ResizeSize(s.Snapshot.(geom.Vec2), edges, s.Delta(), r.Min, r.Max)
		},
		Commit: func(*Session) { r.grab = 0 },
		Revert: func(s *Session) {
			r.grab = 0
			r.Size = s.Snapshot.(geom.Vec2)
		},
	})
}
