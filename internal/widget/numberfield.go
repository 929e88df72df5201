package widget

import (
	"math"
	"strconv"
	"strings"

	"github.com/example/gridsmith/internal/focus"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/render"
)

// NumberField is a text field holding a number in [Min, Max]. The text may
// be out of range or unparsable while typing; the value is clamped on blur
// or on Clamp.
type NumberField struct {
	TextField

	Value    float64
	Min, Max float64
	// Step is applied by the Up and Down keys.
	Step float64
	// Integer rounds values toward zero and formats without a fraction.
	Integer bool
}

// NewNumberField returns a field registered in chain holding v clamped to
// [lo, hi].
func NewNumberField(chain *focus.Chain, v, lo, hi float64) *NumberField {
	n := &NumberField{Min: lo, Max: hi, Step: 1}
	n.chain = chain
	n.self = n
	n.Accept = func(r rune) bool {
		return (r >= '0' && r <= '9') || r == '-' || (r == '.' && !n.Integer)
	}
	chain.Add(n)
	n.SetValue(v)
	return n
}

func (n *NumberField) OnBlur() {
	n.Clamp()
}

func (n *NumberField) norm(v float64) float64 {
	v = geom.Clamp(v, n.Min, n.Max)
	if n.Integer {
		v = math.Trunc(v)
	}
	return v
}

func (n *NumberField) format(v float64) string {
	if n.Integer {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SetValue stores v clamped and rewrites the text.
func (n *NumberField) SetValue(v float64) {
	n.Value = n.norm(v)
	n.SetText(n.format(n.Value))
}

// Int returns the value as an int.
func (n *NumberField) Int() int {
	return int(n.Value)
}

// Clamp parses the text into Value, clamped to [Min, Max]. Unparsable text
// restores the last valid value. It reports whether Value changed.
func (n *NumberField) Clamp() bool {
	prev := n.Value
	v, err := strconv.ParseFloat(strings.TrimSpace(n.Text), 64)
	if err != nil {
		n.SetValue(prev)
		return false
	}
	n.SetValue(v)
	return n.Value != prev
}

// Update edits the text while focused. Enter clamps and Up/Down step the
// value. It reports whether Value changed this frame.
func (n *NumberField) Update(f *input.Frame, bounds geom.Rect) bool {
	prev := n.Value
	_, submitted := n.TextField.Update(f, bounds)
	if n.Focused() {
		switch {
		case f.Keys.Consume(input.KeyUp):
			n.Clamp()
			n.SetValue(n.Value + n.Step)
		case f.Keys.Consume(input.KeyDown):
			n.Clamp()
			n.SetValue(n.Value - n.Step)
		}
	}
	if submitted {
		n.Clamp()
	}
	return n.Value != prev
}

func (n *NumberField) Draw(s render.Surface) {
	n.TextField.Draw(s)
	if _, err := strconv.ParseFloat(strings.TrimSpace(n.Text), 64); err != nil && n.Text != "" {
		s.StrokeRect(n.bounds, render.ColorInvalid, 1)
	}
}
