// Package camera implements the 2D view transform shared by every pannable,
// zoomable canvas.
package camera

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/example/gridsmith/internal/geom"
)

// DefaultLevels are the discrete zoom levels used by pixel-grid views.
var DefaultLevels = []float64{1, 2, 3, 4, 6, 8, 12, 16}

// glide holds the active offset tweens.
type glide struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// View maps world space to screen space:
//
//	screen = world*zoom + Offset
//
// A View is either continuous (zoom clamped to [MinZoom, MaxZoom] and scaled
// by Step per unit of delta) or discrete (zoom is one of an ordered list of
// levels). Offset is mutated only by Pan, zoom changes and glides.
type View struct {
	Offset geom.Vec2

	// MinZoom, MaxZoom and Step apply to continuous views.
	MinZoom float64
	MaxZoom float64
	Step    float64

	zoom   float64
	levels []float64
	level  int

	glide *glide
}

// NewContinuous creates a continuous view at zoom 1 (clamped into range).
func NewContinuous(minZoom, maxZoom, step float64) *View {
	if minZoom <= 0 {
		minZoom = 0.1
	}
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	if step <= 1 {
		step = 1.1
	}
	return &View{
		MinZoom: minZoom,
		MaxZoom: maxZoom,
		Step:    step,
		zoom:    geom.Clamp(1, minZoom, maxZoom),
	}
}

// NewDiscrete creates a view that steps through levels, starting at index.
// An empty level list behaves as the single level 1.
func NewDiscrete(levels []float64, index int) *View {
	if len(levels) == 0 {
		levels = []float64{1}
	}
	v := &View{levels: append([]float64(nil), levels...)}
	v.SetZoomIndex(index)
	return v
}

// Discrete reports whether v steps through a fixed level list.
func (v *View) Discrete() bool {
	return v.levels != nil
}

// Zoom returns the current scale factor.
func (v *View) Zoom() float64 {
	return v.zoom
}

// Levels returns the discrete levels. The slice must not be mutated.
func (v *View) Levels() []float64 {
	return v.levels
}

// ZoomIndex returns the current level index of a discrete view, or -1.
func (v *View) ZoomIndex() int {
	if !v.Discrete() {
		return -1
	}
	return v.level
}

// SetZoomIndex selects a level, clamped to the valid range. Offset is left
// alone. No-op on continuous views.
func (v *View) SetZoomIndex(i int) {
	if !v.Discrete() {
		return
	}
	v.level = geom.ClampInt(i, 0, len(v.levels)-1)
	v.zoom = v.levels[v.level]
}

// WorldToScreen converts a world point to screen space.
func (v *View) WorldToScreen(p geom.Vec2) geom.Vec2 {
	return p.Scale(v.zoom).Add(v.Offset)
}

// ScreenToWorld converts a screen point to world space. It is the exact
// inverse of WorldToScreen.
func (v *View) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	return p.Sub(v.Offset).Scale(1 / v.zoom)
}

// WorldRectToScreen converts a world rectangle to screen space.
func (v *View) WorldRectToScreen(r geom.Rect) geom.Rect {
	p := v.WorldToScreen(r.Pos())
	return geom.Rect{X: p.X, Y: p.Y, W: r.W * v.zoom, H: r.H * v.zoom}
}

// Pan moves the view by a screen-space delta and cancels any glide.
func (v *View) Pan(delta geom.Vec2) {
	v.glide = nil
	v.Offset = v.Offset.Add(delta)
}

// AdjustZoom changes the zoom while keeping the world point under anchor
// fixed on screen. Continuous views scale by Step^delta; discrete views move
// one level in the direction of delta's sign. Zero delta is a no-op.
func (v *View) AdjustZoom(delta float64, anchor geom.Vec2) {
	if delta == 0 || math.IsNaN(delta) {
		return
	}
	if v.Discrete() {
		step := 1
		if delta < 0 {
			step = -1
		}
		v.zoomAbout(anchor, func() { v.SetZoomIndex(v.level + step) })
		return
	}
	// Huge deltas overflow to +Inf or underflow to 0; both pin to a limit.
	v.SetZoom(geom.Clamp(v.zoom*math.Pow(v.Step, delta), v.MinZoom, v.MaxZoom), anchor)
}

// SetZoom sets an absolute zoom on a continuous view, clamped to range,
// keeping the world point under anchor fixed. Non-positive values are
// ignored. On discrete views it selects the nearest level.
func (v *View) SetZoom(z float64, anchor geom.Vec2) {
	if z <= 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return
	}
	if v.Discrete() {
		v.zoomAbout(anchor, func() { v.SetZoomIndex(nearestLevel(v.levels, z)) })
		return
	}
	v.zoomAbout(anchor, func() { v.zoom = geom.Clamp(z, v.MinZoom, v.MaxZoom) })
}

// zoomAbout applies change and then recomputes Offset so that the world
// point that was under anchor maps back onto anchor.
func (v *View) zoomAbout(anchor geom.Vec2, change func()) {
	before := v.ScreenToWorld(anchor)
	change()
	v.glide = nil
	v.Offset = anchor.Sub(before.Scale(v.zoom))
}

func nearestLevel(levels []float64, z float64) int {
	best := 0
	for i, l := range levels {
		if math.Abs(l-z) < math.Abs(levels[best]-z) {
			best = i
		}
	}
	return best
}

// CenterOn positions the world rectangle [0,worldW]x[0,worldH] in the
// middle of a viewport of the given size at the current zoom.
func (v *View) CenterOn(worldW, worldH, viewportW, viewportH float64) {
	v.glide = nil
	v.Offset = centeredOffset(v.zoom, geom.V(worldW, worldH), geom.R(0, 0, viewportW, viewportH))
}

// CenterOnRect is CenterOn for a viewport that does not start at the
// screen origin.
func (v *View) CenterOnRect(world geom.Vec2, viewport geom.Rect) {
	v.glide = nil
	v.Offset = centeredOffset(v.zoom, world, viewport)
}

func centeredOffset(zoom float64, world geom.Vec2, viewport geom.Rect) geom.Vec2 {
	return geom.V(
		viewport.X+(viewport.W-world.X*zoom)/2,
		viewport.Y+(viewport.H-world.Y*zoom)/2,
	)
}

// OffsetCentering returns the offset that puts the world point p at the
// center of viewport at the current zoom.
func (v *View) OffsetCentering(p geom.Vec2, viewport geom.Rect) geom.Vec2 {
	return viewport.Center().Sub(p.Scale(v.zoom))
}

// VisibleBounds returns the world-space rectangle seen through viewport.
func (v *View) VisibleBounds(viewport geom.Rect) geom.Rect {
	tl := v.ScreenToWorld(viewport.Pos())
	return geom.Rect{X: tl.X, Y: tl.Y, W: viewport.W / v.zoom, H: viewport.H / v.zoom}
}

// GlideTo animates Offset to target over seconds. A non-positive duration
// jumps immediately.
func (v *View) GlideTo(target geom.Vec2, seconds float64) {
	if seconds <= 0 {
		v.glide = nil
		v.Offset = target
		return
	}
	v.glide = &glide{
		tweenX: gween.New(float32(v.Offset.X), float32(target.X), float32(seconds), ease.OutCubic),
		tweenY: gween.New(float32(v.Offset.Y), float32(target.Y), float32(seconds), ease.OutCubic),
	}
}

// Gliding reports whether a glide is in progress.
func (v *View) Gliding() bool {
	return v.glide != nil
}

// Update advances an active glide by dt seconds.
func (v *View) Update(dt float64) {
	g := v.glide
	if g == nil {
		return
	}
	if !g.doneX {
		val, done := g.tweenX.Update(float32(dt))
		v.Offset.X = float64(val)
		g.doneX = done
	}
	if !g.doneY {
		val, done := g.tweenY.Update(float32(dt))
		v.Offset.Y = float64(val)
		g.doneY = done
	}
	if g.doneX && g.doneY {
		v.glide = nil
	}
}
