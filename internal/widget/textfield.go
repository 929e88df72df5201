package widget

import (
	"unicode"

	"github.com/example/gridsmith/internal/focus"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/render"
)

// TextField is a single-line text entry. It only accepts characters and
// edit keys while it owns focus in its chain.
type TextField struct {
	Text        string
	Placeholder string
	// MaxLen limits the text in runes. Zero means unlimited.
	MaxLen int
	// Accept filters typed characters. Nil accepts any printable rune.
	Accept func(r rune) bool

	chain  *focus.Chain
	self   focus.Focusable
	caret  int
	bounds geom.Rect
}

// NewTextField returns an empty field registered in chain's cycle order.
func NewTextField(chain *focus.Chain) *TextField {
	t := &TextField{chain: chain}
	t.self = t
	chain.Add(t)
	return t
}

func (t *TextField) OnFocus() {
	t.caret = len([]rune(t.Text))
}

func (t *TextField) OnBlur() {}

// Focused reports whether the field owns the keyboard.
func (t *TextField) Focused() bool {
	return t.chain.IsFocused(t.self)
}

// Focus gives the field the keyboard.
func (t *TextField) Focus() {
	t.chain.Focus(t.self)
}

// Caret returns the caret position in runes.
func (t *TextField) Caret() int {
	return t.caret
}

// SetText replaces the text and moves the caret to its end.
func (t *TextField) SetText(s string) {
	t.Text = s
	t.caret = len([]rune(s))
}

// Update focuses the field on a click inside bounds and applies typing
// while focused. changed reports an edit, submitted an Enter press.
func (t *TextField) Update(f *input.Frame, bounds geom.Rect) (changed, submitted bool) {
	t.bounds = bounds
	if f.Pointer.TryConsumeClick(bounds) {
		t.chain.Focus(t.self)
	}
	if !t.Focused() {
		return false, false
	}
	rs := []rune(t.Text)
	t.caret = geom.ClampInt(t.caret, 0, len(rs))
	edited := false
	k := f.Keys

	for _, r := range k.Chars {
		if !unicode.IsPrint(r) || (t.Accept != nil && !t.Accept(r)) {
			continue
		}
		if t.MaxLen > 0 && len(rs) >= t.MaxLen {
			break
		}
		rs = append(rs[:t.caret], append([]rune{r}, rs[t.caret:]...)...)
		t.caret++
		edited = true
	}
	if k.Consume(input.KeyBackspace) && t.caret > 0 {
		rs = append(rs[:t.caret-1], rs[t.caret:]...)
		t.caret--
		edited = true
	}
	if k.Consume(input.KeyDelete) && t.caret < len(rs) {
		rs = append(rs[:t.caret], rs[t.caret+1:]...)
		edited = true
	}
	moved := false
	if k.Consume(input.KeyLeft) && t.caret > 0 {
		t.caret--
		moved = true
	}
	if k.Consume(input.KeyRight) && t.caret < len(rs) {
		t.caret++
		moved = true
	}
	if k.Consume(input.KeyHome) {
		t.caret = 0
		moved = true
	}
	if k.Consume(input.KeyEnd) {
		t.caret = len(rs)
		moved = true
	}
	if edited {
		t.Text = string(rs)
	}
	if edited || moved {
		t.chain.Blink.Reset()
	}
	return edited, k.Consume(input.KeyEnter)
}

func (t *TextField) Draw(s render.Surface) {
	border := render.ColorPanelBorder
	if t.Focused() {
		border = render.ColorFocus
	}
	render.Panel(s, t.bounds, render.ColorFieldBg, border)
	s.PushClip(t.bounds.Inset(render.BorderWidth))
	defer s.PopClip()
	if t.Text == "" && !t.Focused() {
		render.TextLeft(s, t.Placeholder, t.bounds, render.InnerPad, render.ColorTextDim)
		return
	}
	render.TextLeft(s, t.Text, t.bounds, render.InnerPad, render.ColorText)
	if t.Focused() && t.chain.Blink.Visible() {
		rs := []rune(t.Text)
		c := geom.ClampInt(t.caret, 0, len(rs))
		x := t.bounds.X + render.InnerPad + s.Measure(string(rs[:c])).X
		s.FillRect(geom.R(x, t.bounds.Y+4, render.CaretW, t.bounds.H-8), render.ColorText)
	}
}
