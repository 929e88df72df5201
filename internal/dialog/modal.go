// Package dialog holds the editor's modal dialogs. Every variant
// satisfies Modal, so the host drives whichever one is open without
// knowing its concrete type.
package dialog

import (
	"errors"

	"github.com/example/gridsmith/internal/drag"
	"github.com/example/gridsmith/internal/focus"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/logging"
	"github.com/example/gridsmith/internal/overlay"
	"github.com/example/gridsmith/internal/render"
	"github.com/example/gridsmith/internal/widget"
)

var log = logging.For("dialog")

// ErrCancelled is returned by pickers and prompts the user backed out of.
var ErrCancelled = errors.New("cancelled")

// Modal is the lifecycle every dialog shares. Update is called once per
// frame after the overlays and the drag controller; Draw is called after
// every widget beneath the modal. Complete becomes true once the dialog
// closed, and Cancelled tells a dismissal from a confirmation.
type Modal interface {
	Title() string
	Update(env *Env)
	Draw(s render.Surface)
	Complete() bool
	Cancelled() bool
}

// Env is what a modal needs from the host each frame.
type Env struct {
	Frame *input.Frame
	Drag  *drag.Controller
}

const (
	buttonW   = 80
	buttonH   = 24
	labelW    = 120
	rowGap    = 6
	footerH   = buttonH + 2*render.InnerPad
	modalGrip = 6
)

// base is the frame shared by every variant: a centered, edge-resizable
// panel with a title, a focus chain for its fields and OK/Cancel buttons.
type base struct {
	title     string
	rz        *drag.Resizer
	chain     *focus.Chain
	ok        *widget.Button
	cancel    *widget.Button
	bounds    geom.Rect
	complete  bool
	cancelled bool
}

func newBase(title string, size geom.Vec2, okLabel, cancelLabel string) base {
	b := base{
		title: title,
		rz:    drag.NewResizer(size, size.Scale(0.75), size.Scale(2)),
		chain: focus.NewChain(),
		ok:    widget.NewButton(okLabel),
	}
	b.rz.Grip = modalGrip
	if cancelLabel != "" {
		b.cancel = widget.NewButton(cancelLabel)
	}
	return b
}

func (b *base) Title() string   { return b.title }
func (b *base) Complete() bool  { return b.complete }
func (b *base) Cancelled() bool { return b.cancelled }

// Bounds returns the panel rectangle from the last update.
func (b *base) Bounds() geom.Rect {
	return b.bounds
}

// Size returns the current panel size.
func (b *base) Size() geom.Vec2 {
	return b.rz.Size
}

func (b *base) close(cancelled bool) {
	if b.complete {
		return
	}
	b.chain.Focus(nil)
	b.complete = true
	b.cancelled = cancelled
	log.Debug("close", "title", b.title, "cancelled", cancelled)
}

// begin lays the panel out, handles edge resizing and chain keys, and
// returns the content rectangle between the title bar and the buttons.
func (b *base) begin(env *Env) geom.Rect {
	f := env.Frame
	size := b.rz.Size
	vp := f.Viewport
	b.bounds = geom.RectAt(vp.Center().Sub(size.Scale(0.5)).Floor(), size)
	b.rz.Update(f, env.Drag, b.bounds, b)
	b.chain.Update(f)
	return b.content()
}

func (b *base) content() geom.Rect {
	r := b.bounds
	return geom.R(r.X+render.InnerPad, r.Y+render.HeaderH+render.InnerPad,
		r.W-2*render.InnerPad, r.H-render.HeaderH-footerH-2*render.InnerPad)
}

func (b *base) okRect() geom.Rect {
	r := b.bounds
	return geom.R(r.Right()-render.InnerPad-buttonW, r.Bottom()-render.InnerPad-buttonH, buttonW, buttonH)
}

func (b *base) cancelRect() geom.Rect {
	return b.okRect().Translate(geom.V(-buttonW-render.InnerPad, 0))
}

// end runs the buttons and Escape, then lets an unclaimed click blur the
// focused field. valid gates the OK button; submit is an Enter from a
// field.
func (b *base) end(env *Env, valid, submit bool) {
	f := env.Frame
	b.ok.Disabled = !valid
	if b.ok.Update(f, b.okRect()) || (submit && valid) {
		b.close(false)
	}
	if b.cancel != nil && b.cancel.Update(f, b.cancelRect()) {
		b.close(true)
	}
	if f.Keys.Consume(input.KeyEscape) {
		b.close(b.cancel != nil)
	}
	// A click outside the panel is swallowed and keeps the field focused.
	if !b.bounds.Contains(f.Pointer.Pos) {
		f.Pointer.TryConsumeClick(f.Viewport)
	}
	b.chain.EndFrame(f)
}

func (b *base) drawFrame(s render.Surface) {
	s.FillRect(geom.R(-1e4, -1e4, 2e4, 2e4), render.ColorModalShade)
	render.Panel(s, b.bounds, render.ColorPanelBg, render.ColorPanelBorder)
	hr := geom.R(b.bounds.X, b.bounds.Y, b.bounds.W, render.HeaderH)
	s.FillRect(hr, render.ColorPanelHeader)
	render.TextLeft(s, b.title, hr, render.InnerPad, render.ColorText)
	if e := b.rz.Hover() | b.rz.Grabbed(); e != 0 {
		drawEdges(s, b.bounds, e)
	}
}

func (b *base) drawButtons(s render.Surface) {
	b.ok.Draw(s)
	if b.cancel != nil {
		b.cancel.Draw(s)
	}
}

func drawEdges(s render.Surface, r geom.Rect, e drag.Edges) {
	c := render.ColorFocus
	if e.Has(drag.EdgeLeft) {
		s.Line(geom.V(r.X, r.Y), geom.V(r.X, r.Bottom()), c, 2)
	}
	if e.Has(drag.EdgeRight) {
		s.Line(geom.V(r.Right(), r.Y), geom.V(r.Right(), r.Bottom()), c, 2)
	}
	if e.Has(drag.EdgeTop) {
		s.Line(geom.V(r.X, r.Y), geom.V(r.Right(), r.Y), c, 2)
	}
	if e.Has(drag.EdgeBottom) {
		s.Line(geom.V(r.X, r.Bottom()), geom.V(r.Right(), r.Bottom()), c, 2)
	}
}

// rows hands out successive form rows from the top of a content rect.
type rows struct {
	r geom.Rect
	y float64
}

func newRows(content geom.Rect) *rows {
	return &rows{r: content, y: content.Y}
}

// next returns the next full-width row.
func (rs *rows) next() geom.Rect {
	row := geom.R(rs.r.X, rs.y, rs.r.W, render.RowH)
	rs.y += render.RowH + rowGap
	return row
}

// field returns the next row split into a label cell and a field cell.
func (rs *rows) field() (label, field geom.Rect) {
	row := rs.next()
	return geom.R(row.X, row.Y, labelW, row.H), geom.R(row.X+labelW, row.Y, row.W-labelW, row.H)
}

// labels remembers what to draw next to each field.
type labels struct {
	text  []string
	rects []geom.Rect
}

func (l *labels) reset() {
	l.text = l.text[:0]
	l.rects = l.rects[:0]
}

func (l *labels) add(text string, r geom.Rect) {
	l.text = append(l.text, text)
	l.rects = append(l.rects, r)
}

func (l *labels) draw(s render.Surface) {
	for i, t := range l.text {
		render.TextLeft(s, t, l.rects[i], 0, render.ColorTextDim)
	}
}

// groups creates the dropdown group a dialog's dropdowns share.
func groups(stack *overlay.Stack, title string) *overlay.Group {
	return stack.NewGroup("dialog:" + title)
}
