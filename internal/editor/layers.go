package editor

import (
	"fmt"

	"github.com/example/gridsmith/internal/drag"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/overlay"
	"github.com/example/gridsmith/internal/render"
	"github.com/example/gridsmith/internal/widget"
)

// LayerKey names a layer by its group and its own name.
type LayerKey struct {
	Group, Layer string
}

type groupKey string

// layerDrop is where a dragged layer would land.
type layerDrop struct {
	group int
	index int
}

// Row context menu rows.
const (
	layerRename = iota
	layerToggle
	_
	layerDelete
)

// Group context menu rows.
const (
	groupRename = iota
	groupAddLayer
	_
	groupDelete
)

const (
	scrollW = 10
	checkW  = 18
)

type layerRow struct {
	key    LayerKey
	rect   geom.Rect
	handle geom.Rect
	check  widget.Checkbox
}

type groupRow struct {
	name   string
	header geom.Rect
	// extent covers the header and the visible layer rows.
	extent geom.Rect
	rows   []*layerRow
}

// LayersPanel lists the layer groups. Within a group the top row is the
// highest data index.
type LayersPanel struct {
	Groups   *[]LayerGroup
	Selected LayerKey
	Scroll   *widget.Scrollbar

	app      actions
	rowCtx   *overlay.ContextMenu
	groupCtx *overlay.ContextMenu
	addLayer *widget.Button
	addGroup *widget.Button

	bounds  geom.Rect
	list    geom.Rect
	content float64
	groups  []*groupRow

	indicator     float64
	showIndicator bool
	dropGroup     int
}

func newLayersPanel(groups *[]LayerGroup, ctx *overlay.Group, app actions) *LayersPanel {
	l := &LayersPanel{
		Groups:    groups,
		Scroll:    widget.NewScrollbar(),
		app:       app,
		addLayer:  widget.NewButton("+ Layer"),
		addGroup:  widget.NewButton("+ Group"),
		dropGroup: -1,
	}
	l.rowCtx = overlay.NewContextMenu(ctx,
		overlay.Item{Label: "Rename..."},
		overlay.Item{Label: "Toggle Visible"},
		overlay.Sep,
		overlay.Item{Label: "Delete"},
	)
	l.rowCtx.SetAlive(func() bool {
		k, ok := l.rowCtx.Target().(LayerKey)
		return ok && l.exists(k)
	})
	l.groupCtx = overlay.NewContextMenu(ctx,
		overlay.Item{Label: "Rename Group..."},
		overlay.Item{Label: "Add Layer"},
		overlay.Sep,
		overlay.Item{Label: "Delete Group"},
	)
	return l
}

func (l *LayersPanel) group(name string) int {
	for i, g := range *l.Groups {
		if g.Name == name {
			return i
		}
	}
	return -1
}

func (l *LayersPanel) find(k LayerKey) (gi, li int) {
	gi = l.group(k.Group)
	if gi < 0 {
		return -1, -1
	}
	return gi, (*l.Groups)[gi].layer(k.Layer)
}

func (l *LayersPanel) exists(k LayerKey) bool {
	_, li := l.find(k)
	return li >= 0
}

// HeaderRect returns group name's header from the last layout.
func (l *LayersPanel) HeaderRect(name string) geom.Rect {
	for _, g := range l.groups {
		if g.name == name {
			return g.header
		}
	}
	return geom.Rect{}
}

// RowRect returns a layer row from the last layout.
func (l *LayersPanel) RowRect(k LayerKey) geom.Rect {
	for _, g := range l.groups {
		for _, r := range g.rows {
			if r.key == k {
				return r.rect
			}
		}
	}
	return geom.Rect{}
}

// CheckRect returns the visibility checkbox of a layer row.
func (l *LayersPanel) CheckRect(k LayerKey) geom.Rect {
	r := l.RowRect(k)
	if r.Empty() {
		return r
	}
	return geom.R(r.X+render.PadX, r.Y, checkW, r.H)
}

// ListRect is the scrolling area.
func (l *LayersPanel) ListRect() geom.Rect {
	return l.list
}

func (l *LayersPanel) frame(bounds geom.Rect) (list, track, layerBtn, groupBtn geom.Rect) {
	top := bounds.Y + render.HeaderH
	footer := bounds.Bottom() - render.RowH - render.PadY
	list = geom.R(bounds.X, top, bounds.W-scrollW, footer-render.PadY-top)
	track = geom.R(list.Right(), list.Y, scrollW, list.H)
	layerBtn = geom.R(bounds.X+render.PadX, footer, 90, render.RowH)
	groupBtn = layerBtn.Translate(geom.V(90+render.PadX, 0))
	return
}

// layout rebuilds the row geometry for the current scroll offset.
func (l *LayersPanel) layout() {
	l.groups = l.groups[:0]
	y := l.list.Y - l.Scroll.Offset
	for _, g := range *l.Groups {
		gr := &groupRow{name: g.Name, header: geom.R(l.list.X, y, l.list.W, render.RowH)}
		y += render.RowH
		if !g.Collapsed {
			n := len(g.Layers)
			for v := 0; v < n; v++ {
				layer := g.Layers[drag.VisualToData(v, n, true)]
				r := geom.R(l.list.X, y, l.list.W, render.RowH)
				check := geom.R(r.X+render.PadX, r.Y, checkW, r.H)
				gr.rows = append(gr.rows, &layerRow{
					key:    LayerKey{g.Name, layer.Name},
					rect:   r,
					handle: geom.R(check.Right(), r.Y, r.Right()-check.Right(), r.H),
					check:  widget.Checkbox{Checked: layer.Visible},
				})
				y += render.RowH
			}
		}
		gr.extent = geom.R(l.list.X, gr.header.Y, l.list.W, y-gr.header.Y)
		l.groups = append(l.groups, gr)
	}
	l.content = y - (l.list.Y - l.Scroll.Offset)
}

func (l *LayersPanel) headers() []geom.Rect {
	hs := make([]geom.Rect, len(l.groups))
	for i, g := range l.groups {
		hs[i] = g.header
	}
	return hs
}

func (l *LayersPanel) extents() []geom.Rect {
	es := make([]geom.Rect, len(l.groups))
	for i, g := range l.groups {
		es[i] = g.extent
	}
	return es
}

func (l *LayersPanel) rowRects(gi int) []geom.Rect {
	if gi < 0 || gi >= len(l.groups) {
		return nil
	}
	rs := make([]geom.Rect, len(l.groups[gi].rows))
	for i, r := range l.groups[gi].rows {
		rs[i] = r.rect
	}
	return rs
}

// Update handles the panel for one frame.
func (l *LayersPanel) Update(f *input.Frame, c *drag.Controller, bounds geom.Rect) {
	l.bounds = bounds
	p := f.Pointer
	l.takeContext()

	list, track, lb, gb := l.frame(bounds)
	l.list = list
	if l.addLayer.Update(f, lb) {
		l.AddLayer(l.Selected.Group)
	}
	if l.addGroup.Update(f, gb) {
		l.AddGroup()
	}
	l.layout()
	l.Scroll.Update(f, c, track, list, l.content, list.H)
	l.layout()

	if c.Active() {
		return
	}
	for _, g := range l.groups {
		for _, r := range g.rows {
			vis := r.rect.Intersect(list)
			if vis.Empty() {
				continue
			}
			if r.check.Update(f, geom.R(r.rect.X+render.PadX, r.rect.Y, checkW, r.rect.H).Intersect(list)) {
				l.setVisible(r.key, r.check.Checked)
			}
			if p.TryConsumePress(input.ButtonPrimary, r.handle.Intersect(list)) {
				l.beginLayerDrag(p, c, r.key)
				return
			}
			if p.TryConsumeSecondaryClick(vis) {
				l.Selected = r.key
				l.rowCtx.Show(p.Pos, r.key)
				return
			}
		}
		if p.TryConsumePress(input.ButtonPrimary, g.header.Intersect(list)) {
			l.beginGroupDrag(p, c, g.name)
			return
		}
		if p.TryConsumeSecondaryClick(g.header.Intersect(list)) {
			l.groupCtx.Menu.SetItemEnabled(groupDelete, len(*l.Groups) > 1)
			l.groupCtx.Show(p.Pos, groupKey(g.name))
			return
		}
	}
}

func (l *LayersPanel) setVisible(k LayerKey, v bool) {
	if gi, li := l.find(k); li >= 0 {
		(*l.Groups)[gi].Layers[li].Visible = v
	}
}

func (l *LayersPanel) beginGroupDrag(p *input.PointerFrame, c *drag.Controller, name string) {
	c.Begin(p, drag.Spec{
		Mode:     drag.ModeReorderPanel,
		ID:       groupKey(name),
		Button:   input.ButtonPrimary,
		Snapshot: l.group(name),
		Region:   l.list,
		Alive:    func(*drag.Session) bool { return l.group(name) >= 0 },
		Preview: func(s *drag.Session) {
			ext := l.extents()
			slot := drag.InsertionSlot(s.Pos.Y, ext)
			s.Target = drag.SlotToIndex(slot, len(ext), l.group(name), false)
			l.indicator = drag.IndicatorY(slot, ext)
			l.showIndicator = true
		},
		Commit: func(s *drag.Session) {
			l.showIndicator = false
			drag.Move(*l.Groups, l.group(name), s.Target.(int))
		},
		Revert: func(*drag.Session) { l.showIndicator = false },
		Click: func(*drag.Session) {
			g := &(*l.Groups)[l.group(name)]
			g.Collapsed = !g.Collapsed
		},
	})
}

func (l *LayersPanel) beginLayerDrag(p *input.PointerFrame, c *drag.Controller, k LayerKey) {
	_, src := l.find(k)
	c.Begin(p, drag.Spec{
		Mode:     drag.ModeReorderLayer,
		ID:       k,
		Button:   input.ButtonPrimary,
		Snapshot: src,
		Region:   l.list,
		Alive:    func(*drag.Session) bool { return l.exists(k) },
		Preview: func(s *drag.Session) {
			gi, li := l.find(k)
			if h := drag.GroupAt(s.Pos.Y, l.headers()); h >= 0 && h != gi {
				s.Mode = drag.ModeMoveBetweenLists
				s.Target = layerDrop{group: h, index: -1}
				l.dropGroup = h
				l.showIndicator = false
				return
			}
			s.Mode = drag.ModeReorderLayer
			l.dropGroup = -1
			rows := l.rowRects(gi)
			slot := drag.InsertionSlot(s.Pos.Y, rows)
			s.Target = layerDrop{group: gi, index: drag.SlotToIndex(slot, len(rows), li, true)}
			l.indicator = drag.IndicatorY(slot, rows)
			l.showIndicator = true
		},
		CanDrop: func(s *drag.Session) bool {
			d, ok := s.Target.(layerDrop)
			if !ok {
				return false
			}
			gi, _ := l.find(k)
			return d.group == gi || (*l.Groups)[d.group].layer(k.Layer) < 0
		},
		Commit: func(s *drag.Session) {
			l.clearDrop()
			l.moveLayer(k, s.Target.(layerDrop))
		},
		Revert: func(*drag.Session) { l.clearDrop() },
		Click:  func(*drag.Session) { l.Selected = k },
	})
}

func (l *LayersPanel) clearDrop() {
	l.showIndicator = false
	l.dropGroup = -1
}

func (l *LayersPanel) moveLayer(k LayerKey, d layerDrop) {
	gi, li := l.find(k)
	gs := *l.Groups
	if d.group == gi {
		drag.Move(gs[gi].Layers, li, d.index)
		l.Selected = k
		return
	}
	layer := gs[gi].Layers[li]
	gs[gi].Layers = append(gs[gi].Layers[:li], gs[gi].Layers[li+1:]...)
	gs[d.group].Layers = append(gs[d.group].Layers, layer)
	gs[d.group].Collapsed = false
	l.Selected = LayerKey{gs[d.group].Name, k.Layer}
	l.app.status("moved %s to %s", k.Layer, gs[d.group].Name)
}

// AddLayer adds a layer on top of group name, or of the first group.
func (l *LayersPanel) AddLayer(name string) {
	gs := *l.Groups
	if len(gs) == 0 {
		l.AddGroup()
		gs = *l.Groups
	}
	gi := l.group(name)
	if gi < 0 {
		gi = 0
	}
	g := &gs[gi]
	layer := fmt.Sprintf("Layer %d", len(g.Layers)+1)
	for n := len(g.Layers) + 2; g.layer(layer) >= 0; n++ {
		layer = fmt.Sprintf("Layer %d", n)
	}
	g.Layers = append(g.Layers, Layer{Name: layer, Visible: true})
	g.Collapsed = false
	l.Selected = LayerKey{g.Name, layer}
}

// AddGroup appends an empty group.
func (l *LayersPanel) AddGroup() {
	name := fmt.Sprintf("Group %d", len(*l.Groups)+1)
	for n := len(*l.Groups) + 2; l.group(name) >= 0; n++ {
		name = fmt.Sprintf("Group %d", n)
	}
	*l.Groups = append(*l.Groups, LayerGroup{Name: name})
}

// DeleteLayer removes a layer.
func (l *LayersPanel) DeleteLayer(k LayerKey) {
	gi, li := l.find(k)
	if li < 0 {
		return
	}
	g := &(*l.Groups)[gi]
	g.Layers = append(g.Layers[:li], g.Layers[li+1:]...)
	if l.Selected == k {
		l.Selected = LayerKey{}
	}
	l.app.status("deleted layer %s", k.Layer)
}

func (l *LayersPanel) takeContext() {
	if target, idx, ok := l.rowCtx.TakeResult(); ok {
		k := target.(LayerKey)
		switch idx {
		case layerRename:
			l.renameLayer(k)
		case layerToggle:
			if gi, li := l.find(k); li >= 0 {
				l.setVisible(k, !(*l.Groups)[gi].Layers[li].Visible)
			}
		case layerDelete:
			l.DeleteLayer(k)
		}
	}
	if target, idx, ok := l.groupCtx.TakeResult(); ok {
		name := string(target.(groupKey))
		switch idx {
		case groupRename:
			l.renameGroup(name)
		case groupAddLayer:
			l.AddLayer(name)
		case groupDelete:
			l.app.confirm("Delete Group", fmt.Sprintf("Delete %s and its layers?", name), "Delete", func() {
				if gi := l.group(name); gi >= 0 && len(*l.Groups) > 1 {
					*l.Groups = append((*l.Groups)[:gi], (*l.Groups)[gi+1:]...)
				}
			})
		}
	}
}

func (l *LayersPanel) renameLayer(k LayerKey) {
	l.app.prompt("Rename Layer", "Name", k.Layer, func(v string) string {
		if v != k.Layer && l.exists(LayerKey{k.Group, v}) {
			return "name already used in " + k.Group
		}
		return ""
	}, func(v string) {
		if gi, li := l.find(k); li >= 0 {
			(*l.Groups)[gi].Layers[li].Name = v
			if l.Selected == k {
				l.Selected = LayerKey{k.Group, v}
			}
		}
	})
}

func (l *LayersPanel) renameGroup(name string) {
	l.app.prompt("Rename Group", "Name", name, func(v string) string {
		if v != name && l.group(v) >= 0 {
			return "name already used"
		}
		return ""
	}, func(v string) {
		if gi := l.group(name); gi >= 0 {
			(*l.Groups)[gi].Name = v
			if l.Selected.Group == name {
				l.Selected.Group = v
			}
		}
	})
}

func (l *LayersPanel) Draw(s render.Surface, c *drag.Controller) {
	s.FillRect(l.bounds, render.ColorPanelBg)
	hr := geom.R(l.bounds.X, l.bounds.Y, l.bounds.W, render.HeaderH)
	s.FillRect(hr, render.ColorPanelHeader)
	render.TextLeft(s, "Layers", hr, render.InnerPad, render.ColorText)
	s.Line(geom.V(l.bounds.Right()-1, l.bounds.Y), geom.V(l.bounds.Right()-1, l.bounds.Bottom()), render.ColorPanelBorder, 1)

	s.PushClip(l.list)
	for i, g := range l.groups {
		bg := render.ColorPanelHeader
		if i == l.dropGroup {
			bg = render.ColorMenuHover
		}
		s.FillRect(g.header, bg)
		mark := "-"
		if gi := l.group(g.name); gi >= 0 && (*l.Groups)[gi].Collapsed {
			mark = "+"
		}
		render.TextLeft(s, mark+" "+g.name, g.header, render.InnerPad, render.ColorText)
		for _, r := range g.rows {
			switch {
			case c.Dragging(r.key):
				s.FillRect(r.rect, render.ColorButtonHover)
			case r.key == l.Selected:
				s.FillRect(r.rect, render.ColorSelection)
			}
			drawCheck(s, geom.R(r.rect.X+render.PadX, r.rect.Y, checkW, r.rect.H), r.check.Checked)
			fg := render.ColorText
			if !r.check.Checked {
				fg = render.ColorTextDim
			}
			render.TextLeft(s, r.key.Layer, r.handle, render.InnerPad, fg)
		}
	}
	if l.showIndicator {
		s.Line(geom.V(l.list.X, l.indicator), geom.V(l.list.Right(), l.indicator), render.ColorFocus, 2)
	}
	s.PopClip()
	l.Scroll.Draw(s)
	l.addLayer.Draw(s)
	l.addGroup.Draw(s)
}

// drawCheck draws a visibility box. Rows are rebuilt every frame, so the
// box is drawn from the row geometry rather than the checkbox's last bounds.
func drawCheck(s render.Surface, r geom.Rect, checked bool) {
	box := geom.R(r.X, r.Y+3, r.H-6, r.H-6)
	s.FillRect(box, render.ColorFieldBg)
	s.StrokeRect(box, render.ColorPanelBorder, 1)
	if checked {
		s.FillRect(box.Inset(3), render.ColorFocus)
	}
}
