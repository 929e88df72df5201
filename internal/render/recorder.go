package render

import (
	"fmt"
	"image/color"

	"github.com/example/gridsmith/internal/geom"
)

// Op is one recorded draw call.
type Op struct {
	Kind  string // fill, stroke, line, curve, text, clip, unclip
	Rect  geom.Rect
	A, B  geom.Vec2
	Text  string
	Color color.Color
}

func (o Op) String() string {
	switch o.Kind {
	case "text":
		return fmt.Sprintf("text %q at %v", o.Text, o.A)
	case "line", "curve":
		return fmt.Sprintf("%s %v-%v", o.Kind, o.A, o.B)
	}
	return fmt.Sprintf("%s %v", o.Kind, o.Rect)
}

// Recorder is a Surface that remembers every call instead of drawing. Text
// is measured with fixed-width glyphs of CharW by LineH pixels.
type Recorder struct {
	Ops   []Op
	CharW float64
	LineH float64

	clips []geom.Rect
}

// NewRecorder returns a recorder measuring 7x13 glyphs, the size of the
// fallback bitmap font.
func NewRecorder() *Recorder {
	return &Recorder{CharW: 7, LineH: 13}
}

func (r *Recorder) FillRect(rect geom.Rect, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "fill", Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect geom.Rect, c color.Color, _ float64) {
	r.Ops = append(r.Ops, Op{Kind: "stroke", Rect: rect, Color: c})
}

func (r *Recorder) Line(a, b geom.Vec2, c color.Color, _ float64) {
	r.Ops = append(r.Ops, Op{Kind: "line", A: a, B: b, Color: c})
}

func (r *Recorder) Curve(p0, _, _, p3 geom.Vec2, c color.Color, _ float64, _ int) {
	r.Ops = append(r.Ops, Op{Kind: "curve", A: p0, B: p3, Color: c})
}

func (r *Recorder) Text(s string, pos geom.Vec2, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", A: pos, Text: s, Color: c})
}

func (r *Recorder) Measure(s string) geom.Vec2 {
	return geom.V(float64(len([]rune(s)))*r.CharW, r.LineH)
}

func (r *Recorder) PushClip(rect geom.Rect) {
	if n := len(r.clips); n > 0 {
		rect = rect.Intersect(r.clips[n-1])
	}
	r.clips = append(r.clips, rect)
	r.Ops = append(r.Ops, Op{Kind: "clip", Rect: rect})
}

func (r *Recorder) PopClip() {
	if len(r.clips) == 0 {
		return
	}
	r.clips = r.clips[:len(r.clips)-1]
	r.Ops = append(r.Ops, Op{Kind: "unclip"})
}

// ClipDepth returns the number of pushed clips.
func (r *Recorder) ClipDepth() int {
	return len(r.clips)
}

// Texts returns the strings drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, o := range r.Ops {
		if o.Kind == "text" {
			out = append(out, o.Text)
		}
	}
	return out
}

// IndexOfText returns the op index of the first text draw of s, or -1.
func (r *Recorder) IndexOfText(s string) int {
	for i, o := range r.Ops {
		if o.Kind == "text" && o.Text == s {
			return i
		}
	}
	return -1
}

// Reset forgets every recorded op.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.clips = r.clips[:0]
}
