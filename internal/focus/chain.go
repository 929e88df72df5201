// Package focus tracks which single entry field owns the keyboard.
package focus

import (
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/logging"
)

var log = logging.For("focus")

// Focusable is a field that can own keyboard input. OnBlur is where a
// field flushes pending validation.
type Focusable interface {
	OnFocus()
	OnBlur()
}

// Chain is an ordered set of fields of which at most one is focused.
type Chain struct {
	Blink Blink

	fields []Focusable
	active Focusable
}

// NewChain returns an empty chain with the default caret blink.
func NewChain() *Chain {
	return &Chain{Blink: NewBlink(DefaultBlinkInterval)}
}

// Add appends fields to the cycle order.
func (c *Chain) Add(fs ...Focusable) {
	c.fields = append(c.fields, fs...)
}

// Remove drops f from the order, blurring it first if it is focused.
func (c *Chain) Remove(f Focusable) {
	if c.active == f {
		c.Focus(nil)
	}
	for i, x := range c.fields {
		if x == f {
			c.fields = append(c.fields[:i], c.fields[i+1:]...)
			return
		}
	}
}

// Len returns the number of fields in the order.
func (c *Chain) Len() int {
	return len(c.fields)
}

// Focused returns the focused field, or nil.
func (c *Chain) Focused() Focusable {
	return c.active
}

// IsFocused reports whether f owns the keyboard.
func (c *Chain) IsFocused(f Focusable) bool {
	return f != nil && c.active == f
}

// Focus blurs the current field, then focuses f. Nil only blurs.
// Refocusing the focused field does nothing.
func (c *Chain) Focus(f Focusable) {
	if c.active == f {
		return
	}
	if prev := c.active; prev != nil {
		c.active = nil
		prev.OnBlur()
	}
	if f == nil {
		log.Debug("blur")
		return
	}
	c.active = f
	c.Blink.Reset()
	f.OnFocus()
	log.Debug("focus", "index", c.indexOf(f))
}

func (c *Chain) indexOf(f Focusable) int {
	for i, x := range c.fields {
		if x == f {
			return i
		}
	}
	return -1
}

// Cycle moves focus to the next field in order. From the last field, or
// from a focused field no longer in the order, focus moves to none. From
// none it moves to the first field.
func (c *Chain) Cycle() {
	if len(c.fields) == 0 {
		c.Focus(nil)
		return
	}
	if c.active == nil {
		c.Focus(c.fields[0])
		return
	}
	i := c.indexOf(c.active)
	if i < 0 || i == len(c.fields)-1 {
		c.Focus(nil)
		return
	}
	c.Focus(c.fields[i+1])
}

// CycleBack is Cycle in reverse: from the first field focus moves to none,
// and from none to the last field.
func (c *Chain) CycleBack() {
	if len(c.fields) == 0 {
		c.Focus(nil)
		return
	}
	if c.active == nil {
		c.Focus(c.fields[len(c.fields)-1])
		return
	}
	i := c.indexOf(c.active)
	if i <= 0 {
		c.Focus(nil)
		return
	}
	c.Focus(c.fields[i-1])
}

// Update handles chain-level keys and advances the caret blink. Tab cycles
// (Shift+Tab backwards) and Escape blurs. Call it before the fields are
// updated so a field never sees the Tab that moved focus away from it.
func (c *Chain) Update(f *input.Frame) {
	if f.Keys.Consume(input.KeyTab) {
		if f.Keys.Down(input.KeyShift) {
			c.CycleBack()
		} else {
			c.Cycle()
		}
	}
	if c.active != nil && f.Keys.Consume(input.KeyEscape) {
		c.Focus(nil)
	}
	if c.active != nil {
		c.Blink.Update(f.Dt)
	}
}

// EndFrame blurs the focused field when the frame's click went unclaimed,
// i.e. the user clicked somewhere that is not a field. Call it after every
// widget has been updated.
func (c *Chain) EndFrame(f *input.Frame) {
	if c.active != nil && f.Pointer.HasUnclaimedClick() {
		c.Focus(nil)
	}
}
