package editor

import (
	"fmt"
	"math"

	"github.com/example/gridsmith/internal/camera"
	"github.com/example/gridsmith/internal/config"
	"github.com/example/gridsmith/internal/drag"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/overlay"
	"github.com/example/gridsmith/internal/render"
)

// Drag session ids.
type (
	nodeKey int
	portKey int
)

// Graph context menu rows.
const (
	graphNew = iota
	graphRename
	graphDuplicate
	_
	graphDelete
)

// graphTarget is what a graph context menu was opened on. Node is zero on
// the background.
type graphTarget struct {
	Node  int
	World geom.Vec2
}

// linkDrag is the connection being drawn from an output port.
type linkDrag struct {
	from   int
	end    geom.Vec2
	target int
}

// GraphEditor edits nodes and links on a continuously zoomable canvas.
type GraphEditor struct {
	Doc      *GraphDoc
	View     *camera.View
	Selected int

	app    actions
	ctx    *overlay.ContextMenu
	bounds geom.Rect
	hover  int
	link   *linkDrag
	fresh  bool
}

func newGraphEditor(doc *GraphDoc, s config.GraphConfig, ctx *overlay.Group, app actions) *GraphEditor {
	v := camera.NewContinuous(s.MinZoom, s.MaxZoom, s.ZoomStep)
	v.Offset = geom.V(doc.Camera.X, doc.Camera.Y)
	v.SetZoom(doc.Camera.Zoom, v.Offset)
	g := &GraphEditor{Doc: doc, View: v, app: app, fresh: doc.Camera.X == 0 && doc.Camera.Y == 0}
	g.ctx = overlay.NewContextMenu(ctx,
		overlay.Item{Label: "New Node"},
		overlay.Item{Label: "Rename..."},
		overlay.Item{Label: "Duplicate"},
		overlay.Sep,
		overlay.Item{Label: "Delete", Shortcut: "Del"},
	)
	g.ctx.SetAlive(func() bool {
		t, ok := g.ctx.Target().(graphTarget)
		return ok && (t.Node == 0 || g.Doc.node(t.Node) != nil)
	})
	return g
}

// sync copies the camera into the document before saving.
func (g *GraphEditor) sync() {
	g.Doc.Camera = Camera{X: g.View.Offset.X, Y: g.View.Offset.Y, Zoom: g.View.Zoom()}
}

// Bounds returns the canvas rectangle from the last Update.
func (g *GraphEditor) Bounds() geom.Rect {
	return g.bounds
}

// NodeBounds returns the screen geometry of node id.
func (g *GraphEditor) NodeBounds(id int) (NodeBounds, bool) {
	n := g.Doc.node(id)
	if n == nil {
		return NodeBounds{}, false
	}
	return n.Bounds(g.View), true
}

// nodeAt returns the topmost node under p, or zero.
func (g *GraphEditor) nodeAt(p geom.Vec2) int {
	for i := len(g.Doc.Nodes) - 1; i >= 0; i-- {
		if g.Doc.Nodes[i].Bounds(g.View).Total.Contains(p) {
			return g.Doc.Nodes[i].ID
		}
	}
	return 0
}

// inputAt returns the node whose input port is under p, or zero.
func (g *GraphEditor) inputAt(p geom.Vec2) int {
	for i := len(g.Doc.Nodes) - 1; i >= 0; i-- {
		if g.Doc.Nodes[i].Bounds(g.View).In.Inset(-portSlop).Contains(p) {
			return g.Doc.Nodes[i].ID
		}
	}
	return 0
}

func (g *GraphEditor) canLink(from, to int) bool {
	return to != 0 && to != from && g.Doc.node(to) != nil && !g.Doc.hasLink(Link{From: from, To: to})
}

// Update handles the canvas for one frame. keys is false while a text
// field owns the keyboard.
func (g *GraphEditor) Update(f *input.Frame, c *drag.Controller, bounds geom.Rect, keys bool) {
	g.bounds = bounds
	p := f.Pointer
	if g.fresh {
		g.fresh = false
		g.View.Offset = bounds.Pos().Add(geom.V(gridSpacing, gridSpacing))
	}
	g.takeContext()
	if w := p.ConsumeScroll(bounds); w.Y != 0 {
		g.View.AdjustZoom(w.Y, p.Pos)
	}
	g.View.Update(f.Dt)
	g.hover = 0
	if bounds.Contains(p.Pos) {
		g.hover = g.nodeAt(p.Pos)
	}
	if keys {
		g.handleKeys(f.Keys)
	}
	if c.Active() {
		return
	}

	// Topmost first: ports, then headers, then bodies.
	for i := len(g.Doc.Nodes) - 1; i >= 0; i-- {
		n := &g.Doc.Nodes[i]
		b := n.Bounds(g.View)
		if p.TryConsumePress(input.ButtonPrimary, b.Out.Inset(-portSlop).Intersect(bounds)) {
			g.beginLink(p, c, n.ID)
			return
		}
		if p.TryConsumePress(input.ButtonPrimary, b.Header.Intersect(bounds)) {
			g.beginMove(p, c, n.ID)
			return
		}
		if p.TryConsumePress(input.ButtonPrimary, b.Body.Intersect(bounds)) {
			return
		}
	}
	for i := len(g.Doc.Nodes) - 1; i >= 0; i-- {
		if p.TryConsumeClick(g.Doc.Nodes[i].Bounds(g.View).Total.Intersect(bounds)) {
			g.selectNode(g.Doc.Nodes[i].ID)
			return
		}
	}

	if p.TryConsumePress(input.ButtonSecondary, bounds) {
		target := graphTarget{Node: g.nodeAt(p.Pos), World: g.View.ScreenToWorld(p.Pos)}
		at := p.Pos
		g.beginPan(p, c, input.ButtonSecondary, func() { g.showContext(at, target) })
		return
	}
	if p.TryConsumePress(input.ButtonMiddle, bounds) {
		g.beginPan(p, c, input.ButtonMiddle, nil)
		return
	}
	if p.TryConsumeClick(bounds) {
		g.Selected = 0
	}
}

func (g *GraphEditor) handleKeys(k *input.KeyFrame) {
	if g.Selected != 0 && k.Consume(input.KeyDelete) {
		g.deleteNode(g.Selected)
	}
	if k.Consume(input.KeyEqual) {
		g.View.AdjustZoom(1, g.bounds.Center())
	}
	if k.Consume(input.KeyMinus) {
		g.View.AdjustZoom(-1, g.bounds.Center())
	}
	if k.Consume(input.KeyZero) {
		g.ResetView(0.35)
	}
}

// ResetView returns to 100% with the world origin near the top-left of the
// canvas.
func (g *GraphEditor) ResetView(seconds float64) {
	g.View.SetZoom(1, g.View.Offset)
	g.View.GlideTo(g.bounds.Pos().Add(geom.V(gridSpacing, gridSpacing)), seconds)
}

// selectNode selects id and raises it above the others.
func (g *GraphEditor) selectNode(id int) {
	g.Selected = id
	for i := range g.Doc.Nodes {
		if g.Doc.Nodes[i].ID == id {
			drag.Move(g.Doc.Nodes, i, len(g.Doc.Nodes)-1)
			return
		}
	}
}

func (g *GraphEditor) beginMove(p *input.PointerFrame, c *drag.Controller, id int) {
	n := g.Doc.node(id)
	// grab is the pointer's world offset from the node origin. It stays
	// fixed while the view zooms or pans under the drag.
	grab := g.View.ScreenToWorld(p.Pos).Sub(geom.V(n.X, n.Y))
	c.Begin(p, drag.Spec{
		Mode:     drag.ModeNode,
		ID:       nodeKey(id),
		Button:   input.ButtonPrimary,
		Snapshot: geom.V(n.X, n.Y),
		Region:   g.bounds,
		Alive:    func(*drag.Session) bool { return g.Doc.node(id) != nil },
		Preview: func(s *drag.Session) {
			pos := g.View.ScreenToWorld(s.Pos).Sub(grab)
			n := g.Doc.node(id)
			n.X, n.Y = math.Round(pos.X), math.Round(pos.Y)
		},
		Commit: func(*drag.Session) {
			g.selectNode(id)
			g.app.status("moved %q", g.Doc.node(id).Title)
		},
		Revert: func(s *drag.Session) {
			if n := g.Doc.node(id); n != nil {
				orig := s.Snapshot.(geom.Vec2)
				n.X, n.Y = orig.X, orig.Y
			}
		},
		Click: func(*drag.Session) { g.selectNode(id) },
	})
}

func (g *GraphEditor) beginLink(p *input.PointerFrame, c *drag.Controller, from int) {
	c.Begin(p, drag.Spec{
		Mode:   drag.ModeConnection,
		ID:     portKey(from),
		Button: input.ButtonPrimary,
		Region: g.bounds,
		Alive:  func(*drag.Session) bool { return g.Doc.node(from) != nil },
		Preview: func(s *drag.Session) {
			g.link = &linkDrag{from: from, end: s.Pos, target: g.inputAt(s.Pos)}
			s.Target = g.link.target
		},
		CanDrop: func(s *drag.Session) bool {
			to, _ := s.Target.(int)
			return g.canLink(from, to)
		},
		Commit: func(s *drag.Session) {
			l := Link{From: from, To: s.Target.(int)}
			g.Doc.Links = append(g.Doc.Links, l)
			g.link = nil
			g.app.status("linked %q to %q", g.Doc.node(l.From).Title, g.Doc.node(l.To).Title)
		},
		Revert: func(*drag.Session) { g.link = nil },
		Click:  func(*drag.Session) { g.link = nil },
	})
}

// beginPan pans with b held. A release without movement undoes the jitter
// and runs click.
func (g *GraphEditor) beginPan(p *input.PointerFrame, c *drag.Controller, b input.Button, click func()) {
	spec := drag.Spec{
		Mode:      drag.ModePan,
		ID:        g.View,
		Button:    b,
		Snapshot:  g.View.Offset,
		Immediate: true,
		Preview:   func(s *drag.Session) { g.View.Pan(s.FrameDelta()) },
	}
	if click != nil {
		spec.Click = func(s *drag.Session) {
			g.View.Offset = s.Snapshot.(geom.Vec2)
			click()
		}
	}
	c.Begin(p, spec)
}

func (g *GraphEditor) showContext(at geom.Vec2, t graphTarget) {
	m := g.ctx.Menu
	onNode := t.Node != 0
	m.SetItemEnabled(graphRename, onNode)
	m.SetItemEnabled(graphDuplicate, onNode)
	m.SetItemEnabled(graphDelete, onNode)
	if onNode {
		g.selectNode(t.Node)
	}
	g.ctx.Show(at, t)
}

func (g *GraphEditor) takeContext() {
	target, idx, ok := g.ctx.TakeResult()
	if !ok {
		return
	}
	t := target.(graphTarget)
	switch idx {
	case graphNew:
		g.AddNode(t.World)
	case graphRename:
		g.RenameNode(t.Node)
	case graphDuplicate:
		g.DuplicateNode(t.Node)
	case graphDelete:
		g.deleteNode(t.Node)
	}
}

// AddNode creates a node centered on the world point at and selects it.
func (g *GraphEditor) AddNode(at geom.Vec2) int {
	id := g.Doc.nextID()
	g.Doc.Nodes = append(g.Doc.Nodes, Node{
		ID: id, Title: fmt.Sprintf("Node %d", id),
		X: math.Round(at.X - 70), Y: math.Round(at.Y - 35), W: 140, H: 70,
	})
	g.Selected = id
	g.app.status("added node %d", id)
	return id
}

// DuplicateNode copies id, offset down and right, without its links.
func (g *GraphEditor) DuplicateNode(id int) {
	n := g.Doc.node(id)
	if n == nil {
		return
	}
	cp := *n
	cp.ID = g.Doc.nextID()
	cp.Title = n.Title + " copy"
	cp.X += 20
	cp.Y += 20
	g.Doc.Nodes = append(g.Doc.Nodes, cp)
	g.Selected = cp.ID
}

// RenameNode asks for a new title.
func (g *GraphEditor) RenameNode(id int) {
	n := g.Doc.node(id)
	if n == nil {
		return
	}
	g.app.prompt("Rename Node", "Title", n.Title, nil, func(v string) {
		if n := g.Doc.node(id); n != nil {
			n.Title = v
		}
	})
}

func (g *GraphEditor) deleteNode(id int) {
	n := g.Doc.node(id)
	if n == nil {
		return
	}
	title := n.Title
	g.Doc.removeNode(id)
	if g.Selected == id {
		g.Selected = 0
	}
	g.app.status("deleted %q", title)
}

func (g *GraphEditor) Draw(s render.Surface, c *drag.Controller) {
	s.PushClip(g.bounds)
	defer s.PopClip()
	s.FillRect(g.bounds, render.ColorBackground)
	g.drawGrid(s)

	for _, l := range g.Doc.Links {
		from, to := g.Doc.node(l.From), g.Doc.node(l.To)
		if from == nil || to == nil {
			continue
		}
		render.ConnectionCurve(s, from.Bounds(g.View).Out.Center(), to.Bounds(g.View).In.Center(), render.ColorConnection)
	}
	for i := range g.Doc.Nodes {
		n := &g.Doc.Nodes[i]
		b := n.Bounds(g.View)
		border := render.ColorPanelBorder
		switch {
		case n.ID == g.Selected || c.Dragging(nodeKey(n.ID)):
			border = render.ColorFocus
		case n.ID == g.hover:
			border = render.ColorResizeHandle
		}
		render.Panel(s, b.Total, render.ColorPanelBg, border)
		s.FillRect(b.Header.Inset(render.BorderWidth), render.ColorPanelHeader)
		s.PushClip(b.Header)
		render.TextLeft(s, n.Title, b.Header, render.InnerPad, render.ColorText)
		s.PopClip()
		s.FillRect(b.In, render.ColorPort)
		s.FillRect(b.Out, render.ColorPort)
	}
	if l := g.link; l != nil {
		if from := g.Doc.node(l.from); from != nil {
			col := render.ColorConnection
			end := l.end
			if g.canLink(l.from, l.target) {
				in := g.Doc.node(l.target).Bounds(g.View).In
				end = in.Center()
				s.StrokeRect(in.Inset(-2), render.ColorFocus, 2)
			} else if l.target != 0 {
				col = render.ColorInvalid
			}
			render.ConnectionCurve(s, from.Bounds(g.View).Out.Center(), end, col)
		}
	}
}

func (g *GraphEditor) drawGrid(s render.Surface) {
	step := gridSpacing * g.View.Zoom()
	if step < 8 {
		return
	}
	vis := g.View.VisibleBounds(g.bounds)
	for x := math.Floor(vis.X/gridSpacing) * gridSpacing; x <= vis.Right(); x += gridSpacing {
		sx := g.View.WorldToScreen(geom.V(x, 0)).X
		s.Line(geom.V(sx, g.bounds.Y), geom.V(sx, g.bounds.Bottom()), render.ColorGridLine, 1)
	}
	for y := math.Floor(vis.Y/gridSpacing) * gridSpacing; y <= vis.Bottom(); y += gridSpacing {
		sy := g.View.WorldToScreen(geom.V(0, y)).Y
		s.Line(geom.V(g.bounds.X, sy), geom.V(g.bounds.Right(), sy), render.ColorGridLine, 1)
	}
}

// info is the status bar summary for the canvas.
func (g *GraphEditor) info() string {
	return fmt.Sprintf("zoom %d%%  nodes %d  links %d", int(math.Round(g.View.Zoom()*100)), len(g.Doc.Nodes), len(g.Doc.Links))
}
