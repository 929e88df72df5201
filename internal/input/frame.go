package input

import "github.com/example/gridsmith/internal/geom"

// Frame is the context value threaded through every update and draw call.
// It replaces ad hoc device queries: widgets read pointer and keyboard state
// only from here.
type Frame struct {
	Pointer *PointerFrame
	Keys    *KeyFrame
	// Viewport is the full screen rectangle.
	Viewport geom.Rect
	// Dt is the time since the previous frame in seconds.
	Dt float64
	// Elapsed is the total running time in seconds.
	Elapsed float64
}

// NewFrame assembles a frame. Nil key frames are replaced with an empty one.
func NewFrame(p *PointerFrame, k *KeyFrame, viewport geom.Rect, dt, elapsed float64) *Frame {
	if k == nil {
		k = &KeyFrame{}
	}
	return &Frame{Pointer: p, Keys: k, Viewport: viewport, Dt: dt, Elapsed: elapsed}
}

// Recorder builds successive frames from scripted samples, carrying the
// previous sample forward the way the host does. Tests and the headless
// replay use it.
type Recorder struct {
	Viewport geom.Rect
	Dt       float64

	prev     Sample
	prevKeys KeySample
	elapsed  float64
}

// NewRecorder returns a recorder for an 800x600 viewport at 60 ticks per second.
func NewRecorder() *Recorder {
	return &Recorder{Viewport: geom.R(0, 0, 800, 600), Dt: 1.0 / 60}
}

// Next produces the frame for the given pointer sample with no keys.
func (r *Recorder) Next(cur Sample) *Frame {
	return r.NextWith(cur, r.prevKeys, nil, geom.Vec2{})
}

// NextWith produces a frame with explicit keys, typed characters and scroll.
func (r *Recorder) NextWith(cur Sample, keys KeySample, chars []rune, scroll geom.Vec2) *Frame {
	p := NewPointerFrame(cur, r.prev, scroll)
	k := NewKeyFrame(keys, r.prevKeys, chars)
	r.prev = cur
	r.prevKeys = keys
	r.elapsed += r.Dt
	return NewFrame(p, k, r.Viewport, r.Dt, r.elapsed)
}

// Move is a sample at pos with no buttons held.
func Move(pos geom.Vec2) Sample {
	return Sample{Pos: pos}
}

// Hold is a sample at pos with b held.
func Hold(pos geom.Vec2, b Button) Sample {
	s := Sample{Pos: pos}
	s.Down[b] = true
	return s
}
