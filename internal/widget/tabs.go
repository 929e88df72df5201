package widget

import (
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/overlay"
	"github.com/example/gridsmith/internal/render"
)

// Tabs is a row of mutually exclusive tab headers.
type Tabs struct {
	Labels []string
	Active int

	rects []geom.Rect
	hover int
}

// NewTabs returns tabs with the first one active.
func NewTabs(labels ...string) *Tabs {
	return &Tabs{Labels: labels, hover: -1}
}

// Rect returns header i's rectangle from the last Update.
func (t *Tabs) Rect(i int) geom.Rect {
	if i < 0 || i >= len(t.rects) {
		return geom.Rect{}
	}
	return t.rects[i]
}

// Update lays the headers out from the left of bounds and switches on a
// click. It reports whether Active changed.
func (t *Tabs) Update(f *input.Frame, bounds geom.Rect, measure overlay.MeasureFunc) bool {
	t.rects = t.rects[:0]
	x := bounds.X
	for _, l := range t.Labels {
		w := 80.0
		if measure != nil {
			w = measure(l).X + 4*render.InnerPad
		}
		t.rects = append(t.rects, geom.R(x, bounds.Y, w, bounds.H))
		x += w + 2
	}
	t.hover = -1
	for i, r := range t.rects {
		if r.Contains(f.Pointer.Pos) {
			t.hover = i
		}
		if f.Pointer.TryConsumeClick(r) && i != t.Active {
			t.Active = i
			return true
		}
	}
	return false
}

func (t *Tabs) Draw(s render.Surface) {
	for i, r := range t.rects {
		bg := render.ColorPanelHeader
		switch {
		case i == t.Active:
			bg = render.ColorPanelBg
		case i == t.hover:
			bg = render.ColorButtonHover
		}
		s.FillRect(r, bg)
		if i == t.Active {
			s.FillRect(geom.R(r.X, r.Bottom()-2, r.W, 2), render.ColorFocus)
		}
		render.TextCentered(s, t.Labels[i], r, render.ColorText)
	}
}
