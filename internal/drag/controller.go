// Package drag implements the grab, preview, commit-or-revert state machine
// shared by every drag-based interaction in the editor: modal resizing,
// list reordering, cross-list reassignment, node placement, connection
// drawing and camera panning.
package drag

import (
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/logging"
)

// DefaultThreshold is the pointer travel, in screen pixels summed over both
// axes, that turns a press into a drag.
const DefaultThreshold = 4.0

var log = logging.For("drag")

// State is the controller's state.
type State uint8

const (
	Idle State = iota
	Armed
	Dragging
	Committing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	}
	return "unknown"
}

// Mode names what a session is manipulating.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeResizeEdge
	ModeReorderPanel
	ModeReorderLayer
	ModeMoveBetweenLists
	ModeNode
	ModeConnection
	ModePan
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeResizeEdge:
		return "resize-edge"
	case ModeReorderPanel:
		return "reorder-panel"
	case ModeReorderLayer:
		return "reorder-layer"
	case ModeMoveBetweenLists:
		return "move-between-lists"
	case ModeNode:
		return "node"
	case ModeConnection:
		return "connection"
	case ModePan:
		return "pan"
	}
	return "unknown"
}

// Outcome reports what Update did this frame.
type Outcome uint8

const (
	None      Outcome = iota // no session, or armed and below threshold
	Started                  // crossed the threshold this frame
	Moved                    // preview recomputed
	Clicked                  // released below threshold
	Committed                // released on a valid target
	Reverted                 // released on an invalid target, or cancelled
)

// Spec describes a session to Begin. Every callback is optional.
type Spec struct {
	Mode   Mode
	ID     any
	Button input.Button
	// Snapshot is the value being mutated as it was before the grab. Revert
	// restores it.
	Snapshot any
	// Immediate sessions preview from the first frame without waiting for
	// the threshold. Panning uses it.
	Immediate bool
	// Region, when non-empty, is the tracked surface: releasing outside it
	// reverts.
	Region geom.Rect

	// Preview recomputes and applies the live value from the snapshot and
	// the pointer. Called every frame while dragging.
	Preview func(s *Session)
	// Alive reports whether the session's precondition still holds, e.g.
	// that the grabbed list entry still exists. False cancels and reverts.
	Alive func(s *Session) bool
	// CanDrop reports whether releasing now is a valid drop.
	CanDrop func(s *Session) bool
	Commit  func(s *Session)
	Revert  func(s *Session)
	// Click fires when the button is released without crossing the
	// threshold. A drag never also clicks.
	Click func(s *Session)
}

// Session is the live state of one grab.
type Session struct {
	Mode     Mode
	ID       any
	Button   input.Button
	GrabPos  geom.Vec2
	Pos      geom.Vec2
	PrevPos  geom.Vec2
	Snapshot any
	// Target is scratch space for Preview to hand a resolved drop target to
	// Commit.
	Target any

	crossed bool
	spec    Spec
}

// Delta is the pointer travel since the grab.
func (s *Session) Delta() geom.Vec2 {
	return s.Pos.Sub(s.GrabPos)
}

// FrameDelta is the pointer travel since the previous frame.
func (s *Session) FrameDelta() geom.Vec2 {
	return s.Pos.Sub(s.PrevPos)
}

// Crossed reports whether the pointer has passed the threshold.
func (s *Session) Crossed() bool {
	return s.crossed
}

// Controller runs at most one drag session at a time.
type Controller struct {
	Threshold float64

	state   State
	session *Session
}

// NewController returns a controller with the given threshold. A
// non-positive threshold selects DefaultThreshold.
func NewController(threshold float64) *Controller {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Controller{Threshold: threshold}
}

// State returns the controller's state.
func (c *Controller) State() State {
	return c.state
}

// Session returns the active session, or nil.
func (c *Controller) Session() *Session {
	return c.session
}

// Active reports whether a session exists.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Dragging reports whether id is being dragged past the threshold.
func (c *Controller) Dragging(id any) bool {
	return c.state == Dragging && c.session != nil && c.session.ID == id
}

// Holding reports whether id is grabbed, armed or dragging.
func (c *Controller) Holding(id any) bool {
	return c.session != nil && c.session.ID == id
}

// Begin starts a session at the pointer's position. It fails while another
// session is active.
func (c *Controller) Begin(p *input.PointerFrame, spec Spec) bool {
	if c.session != nil {
		return false
	}
	c.session = &Session{
		Mode:     spec.Mode,
		ID:       spec.ID,
		Button:   spec.Button,
		GrabPos:  p.Pos,
		Pos:      p.Pos,
		PrevPos:  p.Pos,
		Snapshot: spec.Snapshot,
		spec:     spec,
	}
	if spec.Immediate {
		c.state = Dragging
	} else {
		c.state = Armed
	}
	log.Debug("begin", "mode", spec.Mode, "id", spec.ID, "button", spec.Button)
	return true
}

// Update advances the active session. Call it once per frame after the
// overlays had first refusal and before widgets are evaluated, so that a
// release ending a drag is claimed before any widget can treat it as a
// click.
func (c *Controller) Update(p *input.PointerFrame) Outcome {
	s := c.session
	if s == nil {
		return None
	}
	s.PrevPos = s.Pos
	s.Pos = p.Pos

	if s.spec.Alive != nil && !s.spec.Alive(s) {
		c.revert("source gone")
		return Reverted
	}

	released := p.Released(s.Button)
	if !released && !p.Down(s.Button) {
		// The release happened where we could not see it.
		c.revert("button lost")
		return Reverted
	}

	out := None
	if !s.crossed && s.Delta().Manhattan() > c.Threshold {
		s.crossed = true
		if c.state == Armed {
			c.state = Dragging
			out = Started
			log.Debug("dragging", "mode", s.Mode, "id", s.ID)
		}
	}

	if c.state == Dragging && s.spec.Preview != nil {
		s.spec.Preview(s)
		if out == None {
			out = Moved
		}
	}

	if !released {
		return out
	}

	p.Claim(s.Button)
	if c.state == Armed || (s.spec.Immediate && !s.crossed && s.spec.Click != nil) {
		c.finish()
		if s.spec.Click != nil {
			s.spec.Click(s)
		}
		log.Debug("click", "mode", s.Mode, "id", s.ID)
		return Clicked
	}

	c.state = Committing
	if c.dropOK(s) {
		c.finish()
		if s.spec.Commit != nil {
			s.spec.Commit(s)
		}
		log.Debug("commit", "mode", s.Mode, "id", s.ID)
		return Committed
	}
	c.revert("invalid drop")
	return Reverted
}

func (c *Controller) dropOK(s *Session) bool {
	if !s.spec.Region.Empty() && !s.spec.Region.Contains(s.Pos) {
		return false
	}
	return s.spec.CanDrop == nil || s.spec.CanDrop(s)
}

// Cancel reverts and ends the active session, if any.
func (c *Controller) Cancel() {
	if c.session != nil {
		c.revert("cancelled")
	}
}

func (c *Controller) revert(reason string) {
	s := c.session
	c.finish()
	if s.spec.Revert != nil {
		s.spec.Revert(s)
	}
	log.Debug("revert", "mode", s.Mode, "id", s.ID, "reason", reason)
}

func (c *Controller) finish() {
	c.session = nil
	c.state = Idle
}
