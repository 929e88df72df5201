package dialog

import (
	"strings"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/render"
	"github.com/example/gridsmith/internal/widget"
)

// TextPrompt asks for one line of text, e.g. a new name.
type TextPrompt struct {
	base
	Prompt string
	Field  *widget.TextField
	// Validate rejects a value with a message. Nil accepts any non-blank
	// text.
	Validate func(string) string

	problem string
	labels  labels
}

// NewTextPrompt returns a prompt prefilled with value. The field is
// focused so the user can type at once.
func NewTextPrompt(title, prompt, value string) *TextPrompt {
	p := &TextPrompt{base: newBase(title, geom.V(380, 150), "OK", "Cancel"), Prompt: prompt}
	p.Field = widget.NewTextField(p.chain)
	p.Field.SetText(value)
	p.Field.MaxLen = 64
	p.Field.Focus()
	return p
}

// Value returns the trimmed text.
func (p *TextPrompt) Value() string {
	return strings.TrimSpace(p.Field.Text)
}

func (p *TextPrompt) check() string {
	v := p.Value()
	if v == "" {
		return "name cannot be empty"
	}
	if p.Validate != nil {
		return p.Validate(v)
	}
	return ""
}

func (p *TextPrompt) Update(env *Env) {
	rs := newRows(p.begin(env))
	p.labels.reset()
	lr, fr := rs.field()
	p.labels.add(p.Prompt, lr)
	_, submit := p.Field.Update(env.Frame, fr)
	p.problem = p.check()
	p.end(env, p.problem == "", submit)
}

func (p *TextPrompt) Draw(s render.Surface) {
	p.drawFrame(s)
	p.labels.draw(s)
	p.Field.Draw(s)
	if p.problem != "" && p.Field.Text != "" {
		c := p.content()
		s.Text(p.problem, geom.V(c.X, c.Y+render.RowH+rowGap), render.ColorInvalid)
	}
	p.drawButtons(s)
}
