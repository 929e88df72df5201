package dialog

import (
	"strings"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/render"
)

// Confirm asks a yes/no question.
type Confirm struct {
	base
	Message string
}

// NewConfirm returns a confirmation with the given question.
func NewConfirm(title, message, okLabel string) *Confirm {
	if okLabel == "" {
		okLabel = "OK"
	}
	return &Confirm{base: newBase(title, geom.V(360, 150), okLabel, "Cancel"), Message: message}
}

func (c *Confirm) Update(env *Env) {
	c.begin(env)
	c.end(env, true, false)
}

func (c *Confirm) Draw(s render.Surface) {
	c.drawFrame(s)
	drawLines(s, strings.Split(c.Message, "\n"), c.content())
	c.drawButtons(s)
}

// About shows static text with a single Close button.
type About struct {
	base
	Lines []string
}

// NewAbout returns the About box.
func NewAbout(lines ...string) *About {
	return &About{base: newBase("About", geom.V(360, 200), "Close", ""), Lines: lines}
}

func (a *About) Update(env *Env) {
	a.begin(env)
	a.end(env, true, false)
}

func (a *About) Draw(s render.Surface) {
	a.drawFrame(s)
	drawLines(s, a.Lines, a.content())
	a.drawButtons(s)
}

func drawLines(s render.Surface, lines []string, r geom.Rect) {
	s.PushClip(r)
	defer s.PopClip()
	y := r.Y
	for _, l := range lines {
		s.Text(l, geom.V(r.X, y), render.ColorText)
		y += s.Measure(l).Y + 4
	}
}
