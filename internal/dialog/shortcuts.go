package dialog

import (
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/render"
	"github.com/example/gridsmith/internal/widget"
)

// Shortcut is one row of the shortcuts list.
type Shortcut struct {
	Keys   string
	Action string
}

// Shortcuts lists key bindings in a scrollable table.
type Shortcuts struct {
	base
	Entries []Shortcut

	scroll *widget.Scrollbar
	view   geom.Rect
}

// NewShortcuts returns the shortcuts reference.
func NewShortcuts(entries []Shortcut) *Shortcuts {
	return &Shortcuts{
		base:    newBase("Keyboard Shortcuts", geom.V(420, 260), "Close", ""),
		Entries: entries,
		scroll:  widget.NewScrollbar(),
	}
}

// Scroll returns the list's scrollbar.
func (d *Shortcuts) Scroll() *widget.Scrollbar {
	return d.scroll
}

func (d *Shortcuts) Update(env *Env) {
	c := d.begin(env)
	d.view = geom.R(c.X, c.Y, c.W-12, c.H)
	track := geom.R(c.Right()-10, c.Y, 10, c.H)
	d.scroll.Update(env.Frame, env.Drag, track, c, float64(len(d.Entries))*render.RowH, c.H)
	d.end(env, true, false)
}

func (d *Shortcuts) Draw(s render.Surface) {
	d.drawFrame(s)
	s.PushClip(d.view)
	y := d.view.Y - d.scroll.Offset
	for _, e := range d.Entries {
		row := geom.R(d.view.X, y, d.view.W, render.RowH)
		if row.Bottom() > d.view.Y && row.Y < d.view.Bottom() {
			render.TextLeft(s, e.Keys, row, 0, render.ColorFocus)
			render.TextLeft(s, e.Action, row, labelW, render.ColorText)
		}
		y += render.RowH
	}
	s.PopClip()
	d.scroll.Draw(s)
	d.drawButtons(s)
}
