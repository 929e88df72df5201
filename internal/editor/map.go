package editor

import (
	"fmt"
	"math"

	"github.com/example/gridsmith/internal/camera"
	"github.com/example/gridsmith/internal/config"
	"github.com/example/gridsmith/internal/drag"
	"github.com/example/gridsmith/internal/focus"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/overlay"
	"github.com/example/gridsmith/internal/render"
	"github.com/example/gridsmith/internal/widget"
)

// Cell is a map grid coordinate.
type Cell struct {
	Col, Row int
}

func (c Cell) String() string {
	return CellName(c.Col, c.Row)
}

type placementKey string

// Map context menu rows.
const (
	mapPlace = iota
	mapRename
	_
	mapRemove
)

type mapTarget struct {
	Name string
	Cell Cell
}

const goToW = 150

// MapEditor places named maps on a grid viewed at discrete zoom levels.
type MapEditor struct {
	Doc  *MapDoc
	View *camera.View
	// GoTo takes a cell name like "C4" and glides the camera there.
	GoTo *widget.TextField

	app         actions
	chain       *focus.Chain
	ctx         *overlay.ContextMenu
	glide       float64
	defaultZoom int
	bounds      geom.Rect
	hover       Cell
	hovering    bool
	// fresh is set until the first Update centers a never-saved camera.
	fresh bool
}

func newMapEditor(doc *MapDoc, s config.MapConfig, chain *focus.Chain, ctx *overlay.Group, app actions) *MapEditor {
	levels := s.ZoomLevels
	if len(levels) == 0 {
		levels = camera.DefaultLevels
	}
	m := &MapEditor{
		Doc:         doc,
		View:        camera.NewDiscrete(levels, s.ZoomIndex),
		app:         app,
		chain:       chain,
		glide:       s.GlideSeconds,
		defaultZoom: s.ZoomIndex,
	}
	if doc.Camera.Level > 0 || doc.Camera.X != 0 || doc.Camera.Y != 0 {
		m.View.SetZoomIndex(doc.Camera.Level)
		m.View.Offset = geom.V(doc.Camera.X, doc.Camera.Y)
	} else {
		m.fresh = true
	}
	m.GoTo = widget.NewTextField(chain)
	m.GoTo.Placeholder = "go to cell"
	m.GoTo.MaxLen = 8
	m.ctx = overlay.NewContextMenu(ctx,
		overlay.Item{Label: "Place Map Here"},
		overlay.Item{Label: "Rename..."},
		overlay.Sep,
		overlay.Item{Label: "Remove"},
	)
	return m
}

func (m *MapEditor) sync() {
	m.Doc.Camera = Camera{X: m.View.Offset.X, Y: m.View.Offset.Y, Level: m.View.ZoomIndex()}
}

// Bounds returns the canvas rectangle from the last Update.
func (m *MapEditor) Bounds() geom.Rect {
	return m.bounds
}

// GoToRect is where the go-to field sits inside the canvas.
func (m *MapEditor) GoToRect() geom.Rect {
	b := m.bounds
	return geom.R(b.Right()-goToW-render.PadX, b.Y+render.PadY, goToW, render.RowH)
}

// CellAt returns the cell under a screen point. ok is false outside the map.
func (m *MapEditor) CellAt(p geom.Vec2) (Cell, bool) {
	w := m.View.ScreenToWorld(p)
	c := Cell{int(math.Floor(w.X / m.Doc.CellSize)), int(math.Floor(w.Y / m.Doc.CellSize))}
	return c, m.Doc.inBounds(c.Col, c.Row)
}

// CellRect returns a cell's screen rectangle.
func (m *MapEditor) CellRect(c Cell) geom.Rect {
	cs := m.Doc.CellSize
	return m.View.WorldRectToScreen(geom.R(float64(c.Col)*cs, float64(c.Row)*cs, cs, cs))
}

// Hovered returns the cell under the pointer from the last Update.
func (m *MapEditor) Hovered() (Cell, bool) {
	return m.hover, m.hovering
}

// free reports whether c is in bounds and holds no placement but name's.
func (m *MapEditor) free(c Cell, name string) bool {
	if !m.Doc.inBounds(c.Col, c.Row) {
		return false
	}
	for _, p := range m.Doc.Placements {
		if p.Name != name && p.Col == c.Col && p.Row == c.Row {
			return false
		}
	}
	return true
}

// Update handles the map for one frame. The go-to field is on top of the
// canvas, so it gets the pointer first.
func (m *MapEditor) Update(f *input.Frame, c *drag.Controller, bounds geom.Rect, keys bool) {
	m.bounds = bounds
	p := f.Pointer
	if m.fresh {
		m.fresh = false
		cs := m.Doc.CellSize
		m.View.CenterOnRect(geom.V(float64(m.Doc.Columns)*cs, float64(m.Doc.Rows)*cs), bounds)
	}
	m.takeContext()

	if _, submitted := m.GoTo.Update(f, m.GoToRect()); submitted {
		m.GoToCell(m.GoTo.Text)
		m.chain.Focus(nil)
	}
	if w := p.ConsumeScroll(bounds); w.Y != 0 {
		m.View.AdjustZoom(w.Y, p.Pos)
	}
	if keys {
		m.handleKeys(f.Keys)
	}
	m.View.Update(f.Dt)
	m.hover, m.hovering = m.CellAt(p.Pos)
	m.hovering = m.hovering && bounds.Contains(p.Pos)

	if c.Active() || m.GoToRect().Contains(p.Pos) {
		return
	}
	for i := len(m.Doc.Placements) - 1; i >= 0; i-- {
		pl := m.Doc.Placements[i]
		if p.TryConsumePress(input.ButtonPrimary, m.CellRect(Cell{pl.Col, pl.Row}).Intersect(bounds)) {
			m.beginMove(p, c, pl.Name)
			return
		}
	}
	if p.TryConsumePress(input.ButtonSecondary, bounds) {
		cell, _ := m.CellAt(p.Pos)
		t := mapTarget{Cell: cell}
		if i := m.Doc.occupant(cell.Col, cell.Row); i >= 0 {
			t.Name = m.Doc.Placements[i].Name
		}
		at := p.Pos
		m.beginPan(p, c, input.ButtonSecondary, func() { m.showContext(at, t) })
		return
	}
	if p.TryConsumePress(input.ButtonMiddle, bounds) {
		m.beginPan(p, c, input.ButtonMiddle, nil)
	}
}

func (m *MapEditor) handleKeys(k *input.KeyFrame) {
	if k.Consume(input.KeyEqual) {
		m.View.AdjustZoom(1, m.bounds.Center())
	}
	if k.Consume(input.KeyMinus) {
		m.View.AdjustZoom(-1, m.bounds.Center())
	}
	if k.Consume(input.KeyZero) {
		m.ResetView()
	}
}

// ResetView restores the default zoom level and glides to the map center.
func (m *MapEditor) ResetView() {
	m.View.SetZoomIndex(m.defaultZoom)
	cs := m.Doc.CellSize
	center := geom.V(float64(m.Doc.Columns)*cs/2, float64(m.Doc.Rows)*cs/2)
	m.View.GlideTo(m.View.OffsetCentering(center, m.bounds), m.glide)
}

// GoToCell parses a cell name and glides the camera to center it.
func (m *MapEditor) GoToCell(name string) bool {
	col, row, err := ParseCell(name)
	if err != nil {
		m.app.status("go to: %v", err)
		return false
	}
	if !m.Doc.inBounds(col, row) {
		m.app.status("go to: %s is outside the %dx%d map", CellName(col, row), m.Doc.Columns, m.Doc.Rows)
		return false
	}
	cs := m.Doc.CellSize
	center := geom.V((float64(col)+0.5)*cs, (float64(row)+0.5)*cs)
	m.View.GlideTo(m.View.OffsetCentering(center, m.bounds), m.glide)
	m.app.status("go to %s", CellName(col, row))
	return true
}

func (m *MapEditor) beginMove(p *input.PointerFrame, c *drag.Controller, name string) {
	i := m.Doc.placement(name)
	orig := Cell{m.Doc.Placements[i].Col, m.Doc.Placements[i].Row}
	c.Begin(p, drag.Spec{
		Mode:     drag.ModeNode,
		ID:       placementKey(name),
		Button:   input.ButtonPrimary,
		Snapshot: orig,
		Region:   m.bounds,
		Alive:    func(*drag.Session) bool { return m.Doc.placement(name) >= 0 },
		Preview: func(s *drag.Session) {
			cell, _ := m.CellAt(s.Pos)
			s.Target = cell
			pl := &m.Doc.Placements[m.Doc.placement(name)]
			pl.Col, pl.Row = cell.Col, cell.Row
		},
		CanDrop: func(s *drag.Session) bool {
			cell, ok := s.Target.(Cell)
			return ok && m.free(cell, name)
		},
		Commit: func(s *drag.Session) {
			m.app.status("moved %s to %s", name, s.Target.(Cell))
		},
		Revert: func(s *drag.Session) {
			if i := m.Doc.placement(name); i >= 0 {
				o := s.Snapshot.(Cell)
				m.Doc.Placements[i].Col, m.Doc.Placements[i].Row = o.Col, o.Row
			}
		},
		Click: func(*drag.Session) {
			m.app.status("%s at %s", name, orig)
		},
	})
}

func (m *MapEditor) beginPan(p *input.PointerFrame, c *drag.Controller, b input.Button, click func()) {
	spec := drag.Spec{
		Mode:      drag.ModePan,
		ID:        m.View,
		Button:    b,
		Snapshot:  m.View.Offset,
		Immediate: true,
		Preview:   func(s *drag.Session) { m.View.Pan(s.FrameDelta()) },
	}
	if click != nil {
		spec.Click = func(s *drag.Session) {
			m.View.Offset = s.Snapshot.(geom.Vec2)
			click()
		}
	}
	c.Begin(p, spec)
}

func (m *MapEditor) showContext(at geom.Vec2, t mapTarget) {
	menu := m.ctx.Menu
	menu.SetItemEnabled(mapPlace, t.Name == "" && m.Doc.inBounds(t.Cell.Col, t.Cell.Row))
	menu.SetItemEnabled(mapRename, t.Name != "")
	menu.SetItemEnabled(mapRemove, t.Name != "")
	m.ctx.Show(at, t)
}

func (m *MapEditor) takeContext() {
	target, idx, ok := m.ctx.TakeResult()
	if !ok {
		return
	}
	t := target.(mapTarget)
	switch idx {
	case mapPlace:
		m.Place(t.Cell)
	case mapRename:
		m.Rename(t.Name)
	case mapRemove:
		if i := m.Doc.placement(t.Name); i >= 0 {
			m.Doc.Placements = append(m.Doc.Placements[:i], m.Doc.Placements[i+1:]...)
			m.app.status("removed %s", t.Name)
		}
	}
}

// Place adds a new map at c if the cell is free.
func (m *MapEditor) Place(c Cell) bool {
	if !m.free(c, "") {
		return false
	}
	name := "map"
	for n := 1; m.Doc.placement(name) >= 0; n++ {
		name = fmt.Sprintf("map%d", n)
	}
	m.Doc.Placements = append(m.Doc.Placements, Placement{Name: name, Col: c.Col, Row: c.Row})
	m.app.status("placed %s at %s", name, c)
	return true
}

// Rename asks for a new unique map name.
func (m *MapEditor) Rename(name string) {
	m.app.prompt("Rename Map", "Name", name, func(v string) string {
		if v != name && m.Doc.placement(v) >= 0 {
			return "name already used"
		}
		return ""
	}, func(v string) {
		if i := m.Doc.placement(name); i >= 0 {
			m.Doc.Placements[i].Name = v
		}
	})
}

func (m *MapEditor) Draw(s render.Surface, c *drag.Controller) {
	s.PushClip(m.bounds)
	defer s.PopClip()
	s.FillRect(m.bounds, render.ColorBackground)

	cs := m.Doc.CellSize
	world := m.View.WorldRectToScreen(geom.R(0, 0, float64(m.Doc.Columns)*cs, float64(m.Doc.Rows)*cs))
	s.FillRect(world, render.ColorCellBg)
	step := cs * m.View.Zoom()
	if step >= 4 {
		for col := 0; col <= m.Doc.Columns; col++ {
			x := world.X + float64(col)*step
			s.Line(geom.V(x, world.Y), geom.V(x, world.Bottom()), render.ColorGridLine, 1)
		}
		for row := 0; row <= m.Doc.Rows; row++ {
			y := world.Y + float64(row)*step
			s.Line(geom.V(world.X, y), geom.V(world.Right(), y), render.ColorGridLine, 1)
		}
	}
	for _, pl := range m.Doc.Placements {
		r := m.CellRect(Cell{pl.Col, pl.Row})
		s.FillRect(r.Inset(1), render.ColorSelection)
		if sz := s.Measure(pl.Name); sz.X <= r.W-2 && sz.Y <= r.H {
			render.TextCentered(s, pl.Name, r, render.ColorText)
		}
		if sess := c.Session(); sess != nil && sess.ID == placementKey(pl.Name) && c.State() == drag.Dragging {
			col := render.ColorFocus
			if !m.free(Cell{pl.Col, pl.Row}, pl.Name) {
				col = render.ColorInvalid
			}
			s.StrokeRect(r, col, 2)
		}
	}
	if m.hovering {
		s.StrokeRect(m.CellRect(m.hover), render.ColorFocus, 1)
	}
	m.GoTo.Draw(s)
}

func (m *MapEditor) info() string {
	cell := "--"
	if m.hovering {
		cell = m.hover.String()
	}
	return fmt.Sprintf("%s  zoom %gx  maps %d", cell, m.View.Zoom(), len(m.Doc.Placements))
}
