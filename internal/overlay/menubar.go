package overlay

import (
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/render"
)

// MenuBar is a row of sibling triggers whose submenus share one group.
// While a submenu is open, hovering another trigger switches to it.
type MenuBar struct {
	Titles []string
	Menus  []*Menu

	group    *Group
	popups   []*Popup
	triggers []geom.Rect
	hover    int
}

// NewMenuBar returns an empty bar with its own group on stack.
func NewMenuBar(stack *Stack) *MenuBar {
	return &MenuBar{group: stack.NewGroup("menubar"), hover: -1}
}

// Add appends a submenu and returns its index.
func (b *MenuBar) Add(title string, items ...Item) int {
	m := NewMenu(items...)
	b.Titles = append(b.Titles, title)
	b.Menus = append(b.Menus, m)
	b.popups = append(b.popups, b.group.NewPopup(m))
	return len(b.Menus) - 1
}

// OpenIndex returns the index of the open submenu, or -1.
func (b *MenuBar) OpenIndex() int {
	for i, p := range b.popups {
		if p.IsOpen() {
			return i
		}
	}
	return -1
}

// Trigger returns the screen rectangle of trigger i from the last Update.
func (b *MenuBar) Trigger(i int) geom.Rect {
	if i < 0 || i >= len(b.triggers) {
		return geom.Rect{}
	}
	return b.triggers[i]
}

func (b *MenuBar) layout(bounds geom.Rect, measure MeasureFunc) {
	if measure == nil {
		measure = fixedMeasure
	}
	b.triggers = b.triggers[:0]
	x := bounds.X + render.PadX
	for _, t := range b.Titles {
		w := measure(t).X + 2*render.InnerPad + 4
		b.triggers = append(b.triggers, geom.R(x, bounds.Y, w, bounds.H))
		x += w
	}
}

// Update lays out the triggers inside bounds and handles trigger clicks and
// hover switching. It reports the selection made this frame, if any.
func (b *MenuBar) Update(f *input.Frame, bounds geom.Rect, measure MeasureFunc) (menu, item int, ok bool) {
	b.layout(bounds, measure)
	for i, p := range b.popups {
		if r, got := p.TakeResult(); got {
			return i, r.Index, true
		}
	}

	ptr := f.Pointer
	b.hover = -1
	for i, r := range b.triggers {
		if r.Contains(ptr.Pos) {
			b.hover = i
		}
	}

	open := b.OpenIndex()
	if open >= 0 && b.hover >= 0 && b.hover != open {
		b.popups[b.hover].Open(b.hover, b.triggers[b.hover])
		return -1, -1, false
	}
	for i, r := range b.triggers {
		if !ptr.TryConsumeClick(r) {
			continue
		}
		if b.popups[i].IsOpen() {
			b.popups[i].Close()
		} else {
			b.popups[i].Open(i, r)
		}
		break
	}
	return -1, -1, false
}

// Draw renders the bar. Submenus are drawn by the stack.
func (b *MenuBar) Draw(s render.Surface, bounds geom.Rect) {
	s.FillRect(bounds, render.ColorPanelHeader)
	s.Line(geom.V(bounds.X, bounds.Bottom()-1), geom.V(bounds.Right(), bounds.Bottom()-1), render.ColorPanelBorder, 1)
	open := b.OpenIndex()
	for i, r := range b.triggers {
		if i == open {
			s.FillRect(r, render.ColorMenuHover)
		} else if i == b.hover {
			s.FillRect(r, render.ColorButtonHover)
		}
		render.TextCentered(s, b.Titles[i], r, render.ColorText)
	}
}

// ContextMenu is a menu opened at a point on behalf of an opaque target.
type ContextMenu struct {
	Menu *Menu

	popup *Popup
}

// NewContextMenu returns a context menu in group g. Context menus close on
// a secondary press anywhere.
func NewContextMenu(g *Group, items ...Item) *ContextMenu {
	m := NewMenu(items...)
	p := g.NewPopup(m)
	p.CloseOnSecondary = true
	return &ContextMenu{Menu: m, popup: p}
}

// Show opens the menu with its top-left corner at p.
func (c *ContextMenu) Show(p geom.Vec2, target any) {
	c.popup.Open(target, geom.RectAt(p, geom.Vec2{}))
}

// Hide closes the menu.
func (c *ContextMenu) Hide() {
	c.popup.Close()
}

// Visible reports whether the menu is open.
func (c *ContextMenu) Visible() bool {
	return c.popup.IsOpen()
}

// Target returns the token passed to the last Show.
func (c *ContextMenu) Target() any {
	return c.popup.Owner()
}

// SetAlive installs a validity check run every frame while open.
func (c *ContextMenu) SetAlive(fn func() bool) {
	c.popup.Alive = fn
}

// TakeResult returns the target and the chosen row of a selection made
// this frame.
func (c *ContextMenu) TakeResult() (target any, index int, ok bool) {
	r, ok := c.popup.TakeResult()
	if !ok {
		return nil, -1, false
	}
	return r.Owner, r.Index, true
}
