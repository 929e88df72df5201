package host

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/render"
)

// The debug font ebitenutil falls back to.
const (
	debugCharW = 6
	debugLineH = 16
)

// Screen implements render.Surface on an *ebiten.Image.
type Screen struct {
	face font.Face

	root   *ebiten.Image
	dst    *ebiten.Image
	clips  []geom.Rect
	hidden bool
}

// NewScreen returns a surface drawing text with face. A nil face uses
// Ebitengine's debug font.
func NewScreen(face font.Face) *Screen {
	return &Screen{face: face}
}

var _ render.Surface = (*Screen)(nil)

// Begin targets img for the frame and resets the clip stack.
func (s *Screen) Begin(img *ebiten.Image) {
	s.root = img
	s.dst = img
	s.clips = s.clips[:0]
	s.hidden = false
}

func (s *Screen) FillRect(r geom.Rect, c color.Color) {
	if s.hidden || r.Empty() {
		return
	}
	vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func (s *Screen) StrokeRect(r geom.Rect, c color.Color, thickness float64) {
	if s.hidden || r.Empty() {
		return
	}
	vector.StrokeRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), float32(thickness), c, false)
}

func (s *Screen) Line(a, b geom.Vec2, c color.Color, thickness float64) {
	if s.hidden {
		return
	}
	vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(thickness), c, true)
}

func (s *Screen) Curve(p0, p1, p2, p3 geom.Vec2, c color.Color, thickness float64, segments int) {
	pts := render.CurvePoints(p0, p1, p2, p3, segments)
	for i := 1; i < len(pts); i++ {
		s.Line(pts[i-1], pts[i], c, thickness)
	}
}

// Text draws str with its top-left corner at pos. text.Draw positions the
// baseline, so the face ascent is added.
func (s *Screen) Text(str string, pos geom.Vec2, c color.Color) {
	if s.hidden || str == "" {
		return
	}
	x, y := int(math.Round(pos.X)), int(math.Round(pos.Y))
	if s.face == nil {
		ebitenutil.DebugPrintAt(s.dst, str, x, y)
		return
	}
	ascent := s.face.Metrics().Ascent.Ceil()
	text.Draw(s.dst, str, s.face, x, y+ascent, c)
}

func (s *Screen) Measure(str string) geom.Vec2 {
	if s.face == nil {
		return geom.V(float64(len(str)*debugCharW), debugLineH)
	}
	w := font.MeasureString(s.face, str).Ceil()
	return geom.V(float64(w), float64(s.face.Metrics().Height.Ceil()))
}

func (s *Screen) PushClip(r geom.Rect) {
	if len(s.clips) > 0 {
		r = r.Intersect(s.clips[len(s.clips)-1])
	}
	s.clips = append(s.clips, r)
	s.apply()
}

func (s *Screen) PopClip() {
	if len(s.clips) == 0 {
		return
	}
	s.clips = s.clips[:len(s.clips)-1]
	s.apply()
}

func (s *Screen) apply() {
	s.hidden = false
	if len(s.clips) == 0 {
		s.dst = s.root
		return
	}
	r := s.clips[len(s.clips)-1]
	rect := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	).Intersect(s.root.Bounds())
	if rect.Empty() {
		s.hidden = true
		return
	}
	s.dst = s.root.SubImage(rect).(*ebiten.Image)
}
