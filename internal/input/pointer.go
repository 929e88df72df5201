// Package input holds the per-frame input snapshot handed to every widget.
//
// A Frame is built once per tick by the host from the current and previous
// raw device samples and discarded at the end of the tick. The only mutable
// state it carries is the per-button claim flag that arbitrates which widget
// owns a click.
package input

import "github.com/example/gridsmith/internal/geom"

// Button identifies a pointer button.
type Button uint8

const (
	ButtonPrimary   Button = iota // left
	ButtonSecondary               // right
	ButtonMiddle                  // wheel click
	buttonCount
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	}
	return "unknown"
}

// Sample is one raw pointer reading from the host.
type Sample struct {
	Pos  geom.Vec2
	Down [buttonCount]bool
}

// PointerFrame is one frame's pointer state. Position and transition flags
// are fixed at construction; the claim flags start false and are set at most
// once per button.
type PointerFrame struct {
	Pos     geom.Vec2
	PrevPos geom.Vec2
	// Scroll is the wheel delta this frame; positive Y scrolls up.
	Scroll geom.Vec2

	down     [buttonCount]bool
	prevDown [buttonCount]bool
	claimed  [buttonCount]bool
}

// NewPointerFrame builds a frame from the current and previous samples.
func NewPointerFrame(cur, prev Sample, scroll geom.Vec2) *PointerFrame {
	return &PointerFrame{
		Pos:      cur.Pos,
		PrevPos:  prev.Pos,
		Scroll:   scroll,
		down:     cur.Down,
		prevDown: prev.Down,
	}
}

// Delta is the pointer movement since the previous frame.
func (f *PointerFrame) Delta() geom.Vec2 {
	return f.Pos.Sub(f.PrevPos)
}

// Down reports whether b is held this frame.
func (f *PointerFrame) Down(b Button) bool {
	return b < buttonCount && f.down[b]
}

// Pressed reports whether b went down this frame.
func (f *PointerFrame) Pressed(b Button) bool {
	return b < buttonCount && f.down[b] && !f.prevDown[b]
}

// Released reports whether b went up this frame.
func (f *PointerFrame) Released(b Button) bool {
	return b < buttonCount && !f.down[b] && f.prevDown[b]
}

// Claimed reports whether b has been claimed this frame.
func (f *PointerFrame) Claimed(b Button) bool {
	return b < buttonCount && f.claimed[b]
}

// TryConsumeClick claims the primary click if one happened this frame
// inside bounds and nobody claimed it first. Widgets must call it in
// z-order, topmost first.
func (f *PointerFrame) TryConsumeClick(bounds geom.Rect) bool {
	return f.tryConsume(ButtonPrimary, bounds)
}

// TryConsumeSecondaryClick is TryConsumeClick for the secondary button. Its
// claim is independent of the primary one.
func (f *PointerFrame) TryConsumeSecondaryClick(bounds geom.Rect) bool {
	return f.tryConsume(ButtonSecondary, bounds)
}

// TryConsumeButtonClick is TryConsumeClick for any button.
func (f *PointerFrame) TryConsumeButtonClick(b Button, bounds geom.Rect) bool {
	return f.tryConsume(b, bounds)
}

func (f *PointerFrame) tryConsume(b Button, bounds geom.Rect) bool {
	if b >= buttonCount || f.claimed[b] || !f.Released(b) || !bounds.Contains(f.Pos) {
		return false
	}
	f.claimed[b] = true
	return true
}

// TryConsumePress claims the press edge of b inside bounds. It shares the
// claim flag with clicks of the same button: a button can only change edge
// once per frame.
func (f *PointerFrame) TryConsumePress(b Button, bounds geom.Rect) bool {
	if b >= buttonCount || f.claimed[b] || !f.Pressed(b) || !bounds.Contains(f.Pos) {
		return false
	}
	f.claimed[b] = true
	return true
}

// HasUnclaimedClick reports whether a primary click happened this frame and
// is still unclaimed. It never claims.
func (f *PointerFrame) HasUnclaimedClick() bool {
	return f.Released(ButtonPrimary) && !f.claimed[ButtonPrimary]
}

// HasUnclaimedPress reports whether b was pressed this frame and is still
// unclaimed.
func (f *PointerFrame) HasUnclaimedPress(b Button) bool {
	return f.Pressed(b) && !f.Claimed(b)
}

// Claim marks b claimed regardless of position or edge.
func (f *PointerFrame) Claim(b Button) {
	if b < buttonCount {
		f.claimed[b] = true
	}
}

// ForceClaim marks every button claimed and drops the wheel delta. An open
// modal uses it so nothing beneath sees this frame's pointer.
func (f *PointerFrame) ForceClaim() {
	for b := range f.claimed {
		f.claimed[b] = true
	}
	f.Scroll = geom.Vec2{}
}

// ConsumeScroll returns the wheel delta and zeroes it so only one widget
// scrolls per frame. It returns zero when the pointer is outside bounds.
func (f *PointerFrame) ConsumeScroll(bounds geom.Rect) geom.Vec2 {
	if !bounds.Contains(f.Pos) {
		return geom.Vec2{}
	}
	s := f.Scroll
	f.Scroll = geom.Vec2{}
	return s
}
