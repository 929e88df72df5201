// Package overlay manages transient surfaces drawn above everything else:
// dropdown lists, context menus and menu-bar submenus.
//
// Overlays are evaluated in two phases. Stack.Update runs before any other
// widget so an open popup gets first refusal on the frame's clicks, and
// Stack.Draw runs after every other widget so popups render on top.
package overlay

import (
	"image/color"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/render"
)

// Item is one row of a menu.
type Item struct {
	Label    string
	Shortcut string
	// Separator rows are shorter, drawn as a rule and never hoverable.
	Separator bool
	Disabled  bool
}

// Sep is a separator row.
var Sep = Item{Separator: true}

// Items builds enabled rows from labels.
func Items(labels ...string) []Item {
	out := make([]Item, len(labels))
	for i, l := range labels {
		out[i] = Item{Label: l}
	}
	return out
}

// MeasureFunc returns the pixel size of a string.
type MeasureFunc func(string) geom.Vec2

// fixedMeasure measures with the fallback font's 7x13 cells.
func fixedMeasure(s string) geom.Vec2 {
	return geom.V(float64(len([]rune(s)))*7, 13)
}

// Menu is a vertical list of items and the geometry to hit-test it.
type Menu struct {
	Items []Item
	RowH  float64
	SepH  float64
	MinW  float64

	// Bounds is the screen rectangle from the last Layout.
	Bounds geom.Rect
}

// NewMenu returns a menu with the default row metrics.
func NewMenu(items ...Item) *Menu {
	return &Menu{Items: items, RowH: render.RowH, SepH: 7, MinW: 120}
}

func (m *Menu) rowH(i int) float64 {
	if m.Items[i].Separator {
		return m.SepH
	}
	return m.RowH
}

// Size returns the menu's content size including padding.
func (m *Menu) Size(measure MeasureFunc) geom.Vec2 {
	if measure == nil {
		measure = fixedMeasure
	}
	w := m.MinW
	h := 2.0 * render.PadY
	for i, it := range m.Items {
		h += m.rowH(i)
		if it.Separator {
			continue
		}
		rw := measure(it.Label).X + 2*render.InnerPad
		if it.Shortcut != "" {
			rw += measure(it.Shortcut).X + 3*render.InnerPad
		}
		if rw > w {
			w = rw
		}
	}
	return geom.V(w, h)
}

// Layout places the menu below anchor, or above it when there is no room
// below and there is room above, then clamps it into viewport. A context
// menu passes a zero-size anchor at the pointer.
func (m *Menu) Layout(anchor, viewport geom.Rect, measure MeasureFunc) geom.Rect {
	size := m.Size(measure)
	x, y := anchor.X, anchor.Bottom()
	if y+size.Y > viewport.Bottom() && anchor.Y-size.Y >= viewport.Y {
		y = anchor.Y - size.Y
	}
	x = geom.Clamp(x, viewport.X, viewport.Right()-size.X)
	y = geom.Clamp(y, viewport.Y, viewport.Bottom()-size.Y)
	m.Bounds = geom.RectAt(geom.V(x, y), size)
	return m.Bounds
}

// ItemRect returns the screen rectangle of row i, or an empty rect when i
// is out of range.
func (m *Menu) ItemRect(i int) geom.Rect {
	if i < 0 || i >= len(m.Items) {
		return geom.Rect{}
	}
	y := m.Bounds.Y + render.PadY
	for j := 0; j < i; j++ {
		y += m.rowH(j)
	}
	return geom.R(m.Bounds.X, y, m.Bounds.W, m.rowH(i))
}

// ItemAt returns the index of the row under p, or -1 for none. Separators
// are never returned.
func (m *Menu) ItemAt(p geom.Vec2) int {
	if !m.Bounds.Contains(p) {
		return -1
	}
	y := m.Bounds.Y + render.PadY
	for i := range m.Items {
		h := m.rowH(i)
		if p.Y >= y && p.Y < y+h {
			if m.Items[i].Separator {
				return -1
			}
			return i
		}
		y += h
	}
	return -1
}

// SetItemEnabled enables or disables row i. Stale indices are ignored.
func (m *Menu) SetItemEnabled(i int, enabled bool) {
	if i < 0 || i >= len(m.Items) {
		return
	}
	m.Items[i].Disabled = !enabled
}

// Enabled reports whether row i exists and is selectable.
func (m *Menu) Enabled(i int) bool {
	return i >= 0 && i < len(m.Items) && !m.Items[i].Separator && !m.Items[i].Disabled
}

// Draw renders the menu at its Bounds with row hovered highlighted.
func (m *Menu) Draw(s render.Surface, hovered int) {
	render.Panel(s, m.Bounds.Inset(-render.BorderWidth), render.ColorMenuBg, render.ColorMenuBorder)
	for i, it := range m.Items {
		r := m.ItemRect(i)
		if it.Separator {
			y := r.MidY()
			s.Line(geom.V(r.X+render.InnerPad, y), geom.V(r.Right()-render.InnerPad, y), render.ColorMenuBorder, 1)
			continue
		}
		var c color.Color = render.ColorText
		switch {
		case it.Disabled:
			c = render.ColorTextDim
		case i == hovered:
			s.FillRect(r, render.ColorMenuHover)
		}
		render.TextLeft(s, it.Label, r, render.InnerPad, c)
		if it.Shortcut != "" {
			w := s.Measure(it.Shortcut).X
			render.TextLeft(s, it.Shortcut, r, r.W-w-render.InnerPad, render.ColorTextDim)
		}
	}
}
