package widget

import (
	"github.com/example/gridsmith/internal/drag"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/render"
)

// ThumbRatio is the fraction of the track the thumb covers: view over
// content, at most 1. Empty content has no thumb.
func ThumbRatio(content, view float64) float64 {
	if content <= 0 || view <= 0 {
		return 0
	}
	if view >= content {
		return 1
	}
	return view / content
}

// Scrollbar is a vertical scrollbar over content taller than its view.
type Scrollbar struct {
	// Offset is how far the content is scrolled, in content pixels.
	Offset float64
	// WheelStep is the content distance of one wheel notch.
	WheelStep float64

	content float64
	view    float64
	track   geom.Rect
}

// NewScrollbar returns a scrollbar at the top.
func NewScrollbar() *Scrollbar {
	return &Scrollbar{WheelStep: 3 * render.RowH}
}

// MaxOffset is the largest valid Offset.
func (s *Scrollbar) MaxOffset() float64 {
	if s.content <= s.view {
		return 0
	}
	return s.content - s.view
}

// Visible reports whether the content overflows its view.
func (s *Scrollbar) Visible() bool {
	r := ThumbRatio(s.content, s.view)
	return r > 0 && r < 1
}

// Thumb returns the thumb rectangle inside the track.
func (s *Scrollbar) Thumb() geom.Rect {
	r := ThumbRatio(s.content, s.view)
	if r == 0 {
		return geom.Rect{}
	}
	h := s.track.H * r
	if h < 12 {
		h = 12
	}
	y := s.track.Y
	if m := s.MaxOffset(); m > 0 {
		y += (s.track.H - h) * s.Offset / m
	}
	return geom.R(s.track.X, y, s.track.W, h)
}

// ScrollBy moves the offset by d content pixels, clamped.
func (s *Scrollbar) ScrollBy(d float64) {
	s.Offset = geom.Clamp(s.Offset+d, 0, s.MaxOffset())
}

// Update sets the content and view heights, applies the wheel when the
// pointer is over region, and lets the thumb be dragged through c. A press
// on the track outside the thumb pages toward the pointer.
func (s *Scrollbar) Update(f *input.Frame, c *drag.Controller, track, region geom.Rect, content, view float64) {
	s.track = track
	s.content = content
	s.view = view
	s.Offset = geom.Clamp(s.Offset, 0, s.MaxOffset())
	if !s.Visible() {
		return
	}
	p := f.Pointer
	if w := p.ConsumeScroll(region); w.Y != 0 {
		s.ScrollBy(-w.Y * s.WheelStep)
	}
	if c.Active() {
		return
	}
	thumb := s.Thumb()
	if p.TryConsumePress(input.ButtonPrimary, thumb) {
		scale := 0.0
		if free := s.track.H - thumb.H; free > 0 {
			scale = s.MaxOffset() / free
		}
		c.Begin(p, drag.Spec{
			ID:        s,
			Button:    input.ButtonPrimary,
			Snapshot:  s.Offset,
			Immediate: true,
			Preview: func(d *drag.Session) {
				s.Offset = geom.Clamp(d.Snapshot.(float64)+d.Delta().Y*scale, 0, s.MaxOffset())
			},
			Revert: func(d *drag.Session) {
				s.Offset = geom.Clamp(d.Snapshot.(float64), 0, s.MaxOffset())
			},
		})
		return
	}
	if p.TryConsumePress(input.ButtonPrimary, track) {
		if p.Pos.Y < thumb.Y {
			s.ScrollBy(-view)
		} else {
			s.ScrollBy(view)
		}
	}
}

func (s *Scrollbar) Draw(sf render.Surface) {
	if !s.Visible() {
		return
	}
	sf.FillRect(s.track, render.ColorFieldBg)
	sf.FillRect(s.Thumb().Inset(1), render.ColorResizeHandle)
}
