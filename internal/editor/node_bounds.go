package editor

import (
	"github.com/example/gridsmith/internal/camera"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/render"
)

// Layout constants for node drawing and hit testing.
const (
	portSize    = 10
	portSlop    = 4
	nodeMinW    = 80
	nodeMinH    = 40
	gridSpacing = 40
)

// NodeBounds is the on-screen geometry of a node for the current camera.
type NodeBounds struct {
	Total  geom.Rect
	Header geom.Rect
	Body   geom.Rect
	In     geom.Rect
	Out    geom.Rect
}

// Bounds returns where n is drawn through v. Ports keep a fixed screen size
// so they stay easy to hit when zoomed out.
func (n *Node) Bounds(v *camera.View) NodeBounds {
	t := v.WorldRectToScreen(geom.R(n.X, n.Y, n.W, n.H))
	hh := render.HeaderH * v.Zoom()
	if hh > t.H {
		hh = t.H
	}
	half := geom.V(portSize/2, portSize/2)
	return NodeBounds{
		Total:  t,
		Header: geom.R(t.X, t.Y, t.W, hh),
		Body:   geom.R(t.X, t.Y+hh, t.W, t.H-hh),
		In:     geom.RectAt(geom.V(t.X, t.MidY()).Sub(half), geom.V(portSize, portSize)),
		Out:    geom.RectAt(geom.V(t.Right(), t.MidY()).Sub(half), geom.V(portSize, portSize)),
	}
}
