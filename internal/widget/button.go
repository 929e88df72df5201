// Package widget holds the immediate-mode controls the editor is built
// from. Each control is updated and drawn every frame with its current
// bounds; none of them keeps a reference to a parent.
package widget

import (
	"image/color"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/render"
)

// Button is a push button. It fires on the release edge.
type Button struct {
	Label    string
	Disabled bool

	bounds  geom.Rect
	hover   bool
	pressed bool
}

// NewButton returns a button with the given label.
func NewButton(label string) *Button {
	return &Button{Label: label}
}

// Bounds returns the rectangle from the last Update.
func (b *Button) Bounds() geom.Rect {
	return b.bounds
}

// Update reports whether the button was clicked this frame.
func (b *Button) Update(f *input.Frame, bounds geom.Rect) bool {
	b.bounds = bounds
	p := f.Pointer
	b.hover = bounds.Contains(p.Pos)
	b.pressed = b.hover && p.Down(input.ButtonPrimary)
	if b.Disabled {
		return false
	}
	return p.TryConsumeClick(bounds)
}

func (b *Button) Draw(s render.Surface) {
	var bg color.Color = render.ColorButton
	switch {
	case b.Disabled:
		bg = render.ColorPanelHeader
	case b.pressed:
		bg = render.ColorMenuHover
	case b.hover:
		bg = render.ColorButtonHover
	}
	render.Panel(s, b.bounds, bg, render.ColorPanelBorder)
	fg := render.ColorText
	if b.Disabled {
		fg = render.ColorTextDim
	}
	render.TextCentered(s, b.Label, b.bounds, fg)
}

// Checkbox toggles on click anywhere in its bounds, box or label.
type Checkbox struct {
	Label   string
	Checked bool

	bounds geom.Rect
	hover  bool
}

// Update reports whether Checked changed this frame.
func (c *Checkbox) Update(f *input.Frame, bounds geom.Rect) bool {
	c.bounds = bounds
	c.hover = bounds.Contains(f.Pointer.Pos)
	if !f.Pointer.TryConsumeClick(bounds) {
		return false
	}
	c.Checked = !c.Checked
	return true
}

// Box returns the square drawn at the left of the bounds.
func (c *Checkbox) Box() geom.Rect {
	side := c.bounds.H - 6
	if side < 4 {
		side = 4
	}
	return geom.R(c.bounds.X, c.bounds.Y+(c.bounds.H-side)/2, side, side)
}

func (c *Checkbox) Draw(s render.Surface) {
	box := c.Box()
	border := render.ColorPanelBorder
	if c.hover {
		border = render.ColorFocus
	}
	s.FillRect(box, render.ColorFieldBg)
	s.StrokeRect(box, border, 1)
	if c.Checked {
		s.FillRect(box.Inset(3), render.ColorFocus)
	}
	if c.Label != "" {
		lr := geom.R(box.Right(), c.bounds.Y, c.bounds.Right()-box.Right(), c.bounds.H)
		render.TextLeft(s, c.Label, lr, render.InnerPad, render.ColorText)
	}
}
