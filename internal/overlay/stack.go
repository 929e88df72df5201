package overlay

import (
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/logging"
	"github.com/example/gridsmith/internal/render"
)

var log = logging.For("overlay")

// Result is a selection made in a popup.
type Result struct {
	Owner any
	Index int
}

// Popup is one overlay instance: a menu that is either closed or open on
// behalf of an owner.
type Popup struct {
	Menu *Menu
	// Alive, when set, is checked every frame while open. False closes the
	// popup without a selection, e.g. after its source list changed.
	Alive func() bool
	// CloseOnSecondary makes a secondary press anywhere close the popup and
	// swallow every button for the frame. Context menus set it.
	CloseOnSecondary bool

	group   *Group
	open    bool
	owner   any
	anchor  geom.Rect
	hovered int
	result  *Result
}

// IsOpen reports whether the popup is open.
func (p *Popup) IsOpen() bool {
	return p.open
}

// Owner returns the token passed to the last Open.
func (p *Popup) Owner() any {
	return p.owner
}

// Hovered returns the hovered row as of the last update, or -1.
func (p *Popup) Hovered() int {
	if !p.open {
		return -1
	}
	return p.hovered
}

// Anchor returns the rectangle the popup is attached to.
func (p *Popup) Anchor() geom.Rect {
	return p.anchor
}

// SetAnchor moves an open popup, e.g. when its trigger scrolled.
func (p *Popup) SetAnchor(r geom.Rect) {
	p.anchor = r
}

// Open opens the popup below anchor on behalf of owner, closing whatever
// else is open in the same group first.
func (p *Popup) Open(owner any, anchor geom.Rect) {
	g := p.group
	if g.current != nil && g.current != p {
		g.current.Close()
	}
	p.owner = owner
	p.anchor = anchor
	p.hovered = -1
	p.result = nil
	if !p.open {
		p.open = true
		g.current = p
		g.stack.push(p)
		log.Debug("open", "group", g.name, "owner", owner)
	}
}

// Close closes the popup without a selection. Closing a closed popup does
// nothing.
func (p *Popup) Close() {
	if !p.open {
		return
	}
	p.open = false
	p.hovered = -1
	if p.group.current == p {
		p.group.current = nil
	}
	p.group.stack.remove(p)
	log.Debug("close", "group", p.group.name, "owner", p.owner)
}

// TakeResult returns and clears a selection recorded this frame.
func (p *Popup) TakeResult() (Result, bool) {
	if p.result == nil {
		return Result{}, false
	}
	r := *p.result
	p.result = nil
	return r, true
}

func (p *Popup) update(f *input.Frame, measure MeasureFunc) {
	if p.Alive != nil && !p.Alive() {
		p.Close()
		return
	}
	ptr := f.Pointer
	p.Menu.Layout(p.anchor, f.Viewport, measure)
	p.hovered = p.Menu.ItemAt(ptr.Pos)

	if f.Keys.Consume(input.KeyEscape) {
		p.Close()
		return
	}
	if p.CloseOnSecondary && ptr.HasUnclaimedPress(input.ButtonSecondary) {
		p.Close()
		ptr.ForceClaim()
		return
	}
	// The press under an open popup belongs to the popup, never to a
	// widget beneath it.
	if ptr.HasUnclaimedPress(input.ButtonPrimary) {
		ptr.Claim(input.ButtonPrimary)
		return
	}
	if !ptr.HasUnclaimedClick() {
		return
	}
	ptr.Claim(input.ButtonPrimary)
	switch {
	case p.hovered < 0:
		p.Close()
	case !p.Menu.Enabled(p.hovered):
		// disabled rows swallow the click and stay open
	default:
		res := Result{Owner: p.owner, Index: p.hovered}
		p.Close()
		p.result = &res
		log.Debug("select", "group", p.group.name, "owner", res.Owner, "index", res.Index)
	}
}

// Group is a set of popups of which at most one is open.
type Group struct {
	name    string
	stack   *Stack
	current *Popup
}

// NewPopup returns a closed popup in the group showing m.
func (g *Group) NewPopup(m *Menu) *Popup {
	return &Popup{Menu: m, group: g, hovered: -1}
}

// Current returns the open popup, or nil.
func (g *Group) Current() *Popup {
	return g.current
}

// Close closes the group's open popup, if any.
func (g *Group) Close() {
	if g.current != nil {
		g.current.Close()
	}
}

// Stack orders every open popup across groups.
type Stack struct {
	// Measure sizes menu text. The host sets it to its font's measurement;
	// nil measures with fixed 7x13 cells.
	Measure MeasureFunc

	open []*Popup // oldest first
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// NewGroup returns a new independent group on the stack.
func (s *Stack) NewGroup(name string) *Group {
	return &Group{name: name, stack: s}
}

func (s *Stack) push(p *Popup) {
	s.open = append(s.open, p)
}

func (s *Stack) remove(p *Popup) {
	for i, q := range s.open {
		if q == p {
			s.open = append(s.open[:i], s.open[i+1:]...)
			return
		}
	}
}

// AnyOpen reports whether any popup is open.
func (s *Stack) AnyOpen() bool {
	return len(s.open) > 0
}

// Open returns the open popups, oldest first.
func (s *Stack) Open() []*Popup {
	return s.open
}

// CloseAll closes every open popup.
func (s *Stack) CloseAll() {
	for len(s.open) > 0 {
		s.open[len(s.open)-1].Close()
	}
}

// Update gives open popups first refusal on the frame's input, most
// recently opened first. Call it before any other widget.
func (s *Stack) Update(f *input.Frame) {
	if len(s.open) == 0 {
		return
	}
	snapshot := make([]*Popup, len(s.open))
	copy(snapshot, s.open)
	for i := len(snapshot) - 1; i >= 0; i-- {
		if p := snapshot[i]; p.open {
			p.update(f, s.Measure)
		}
	}
}

// Draw renders open popups, oldest first. Call it after every other draw
// so popups end up on top. Layout is recomputed so a popup opened after
// this frame's Update is placed correctly.
func (s *Stack) Draw(sf render.Surface, viewport geom.Rect) {
	for _, p := range s.open {
		p.Menu.Layout(p.anchor, viewport, sf.Measure)
		p.Menu.Draw(sf, p.hovered)
	}
}
