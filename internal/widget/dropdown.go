package widget

import (
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/overlay"
	"github.com/example/gridsmith/internal/render"
)

// Dropdown shows its selected item and opens a list popup on click.
type Dropdown struct {
	Items    []string
	Selected int

	popup  *overlay.Popup
	bounds geom.Rect
	hover  bool
}

// NewDropdown returns a dropdown whose list opens in group g. Dropdowns
// that must not be open together share a group.
func NewDropdown(g *overlay.Group, items ...string) *Dropdown {
	return &Dropdown{
		Items: items,
		popup: g.NewPopup(overlay.NewMenu(overlay.Items(items...)...)),
	}
}

// SetItems replaces the list. An open list closes, since its rows no
// longer mean what they did.
func (d *Dropdown) SetItems(items ...string) {
	d.Items = items
	d.popup.Menu.Items = overlay.Items(items...)
	d.popup.Close()
	if d.Selected >= len(items) {
		d.Selected = len(items) - 1
	}
	if d.Selected < 0 {
		d.Selected = 0
	}
}

// IsOpen reports whether the list is showing.
func (d *Dropdown) IsOpen() bool {
	return d.popup.IsOpen()
}

// Close hides the list.
func (d *Dropdown) Close() {
	d.popup.Close()
}

// Value returns the selected item's text, or "" when there is none.
func (d *Dropdown) Value() string {
	if d.Selected < 0 || d.Selected >= len(d.Items) {
		return ""
	}
	return d.Items[d.Selected]
}

// Update picks up a selection made in the list this frame and opens the
// list on a click on the trigger. It reports whether Selected changed.
func (d *Dropdown) Update(f *input.Frame, bounds geom.Rect) bool {
	d.bounds = bounds
	d.hover = bounds.Contains(f.Pointer.Pos)
	if r, ok := d.popup.TakeResult(); ok {
		changed := r.Index != d.Selected
		d.Selected = r.Index
		return changed
	}
	if d.popup.IsOpen() {
		d.popup.SetAnchor(bounds)
		return false
	}
	if len(d.Items) > 0 && f.Pointer.TryConsumeClick(bounds) {
		d.popup.Open(d, bounds)
	}
	return false
}

func (d *Dropdown) Draw(s render.Surface) {
	bg := render.ColorFieldBg
	if d.hover || d.IsOpen() {
		bg = render.ColorButton
	}
	border := render.ColorPanelBorder
	if d.IsOpen() {
		border = render.ColorFocus
	}
	render.Panel(s, d.bounds, bg, border)
	render.TextLeft(s, d.Value(), d.bounds, render.InnerPad, render.ColorText)
	// caret arrow
	cx := d.bounds.Right() - 12
	cy := d.bounds.MidY()
	s.Line(geom.V(cx-4, cy-2), geom.V(cx, cy+2), render.ColorTextDim, 1)
	s.Line(geom.V(cx, cy+2), geom.V(cx+4, cy-2), render.ColorTextDim, 1)
}
