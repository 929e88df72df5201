package drag

import (
	"testing"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
)

// harness drives a controller through scripted frames the way the editor
// does: Update first, then the widget gets its turn.
type harness struct {
	rec *input.Recorder
	c   *Controller
}

func newHarness() *harness {
	return &harness{rec: input.NewRecorder(), c: NewController(DefaultThreshold)}
}

func (h *harness) frame(s input.Sample) (*input.Frame, Outcome) {
	f := h.rec.Next(s)
	return f, h.c.Update(f.Pointer)
}

type collapsible struct {
	collapsed bool
	pos       geom.Vec2
	commits   int
	reverts   int
}

func (h *harness) grab(at geom.Vec2, item *collapsible) {
	f, _ := h.frame(input.Hold(at, input.ButtonPrimary))
	ok := h.c.Begin(f.Pointer, Spec{
		Mode:     ModeNode,
		ID:       item,
		Button:   input.ButtonPrimary,
		Snapshot: item.pos,
		Preview: func(s *Session) {
			item.pos = s.Snapshot.(geom.Vec2).Add(s.Delta())
		},
		Commit: func(*Session) { item.commits++ },
		Revert: func(s *Session) {
			item.reverts++
			item.pos = s.Snapshot.(geom.Vec2)
		},
		Click: func(*Session) { item.collapsed = !item.collapsed },
	})
	if !ok {
		panic("Begin failed")
	}
}

func TestBelowThresholdResolvesAsClick(t *testing.T) {
	h := newHarness()
	h.rec.Next(input.Move(geom.V(10, 10)))
	item := &collapsible{pos: geom.V(100, 100)}
	h.grab(geom.V(10, 10), item)

	if _, out := h.frame(input.Hold(geom.V(12, 11), input.ButtonPrimary)); out != None {
		t.Fatalf("small move outcome = %d, want None", out)
	}
	if h.c.State() != Armed {
		t.Fatalf("State = %v, want armed", h.c.State())
	}
	f, out := h.frame(input.Move(geom.V(12, 11)))
	if out != Clicked {
		t.Fatalf("release outcome = %d, want Clicked", out)
	}
	if !item.collapsed {
		t.Error("click behavior did not fire")
	}
	if item.pos != geom.V(100, 100) {
		t.Errorf("pos = %v, a click must not move the item", item.pos)
	}
	if f.Pointer.TryConsumeClick(geom.R(0, 0, 100, 100)) {
		t.Error("release that resolved the click leaked to widgets")
	}
	if h.c.Active() || h.c.State() != Idle {
		t.Error("controller not idle after click")
	}
}

func TestPastThresholdResolvesAsDragOnly(t *testing.T) {
	h := newHarness()
	h.rec.Next(input.Move(geom.V(10, 10)))
	item := &collapsible{pos: geom.V(100, 100)}
	h.grab(geom.V(10, 10), item)

	// 3 + 2 = 5 > 4 crosses the combined-axis threshold.
	if _, out := h.frame(input.Hold(geom.V(13, 12), input.ButtonPrimary)); out != Started {
		t.Fatalf("outcome = %d, want Started", out)
	}
	if item.pos != geom.V(103, 102) {
		t.Errorf("live preview pos = %v, want (103,102)", item.pos)
	}
	h.frame(input.Hold(geom.V(30, 40), input.ButtonPrimary))
	f, out := h.frame(input.Move(geom.V(30, 40)))
	if out != Committed {
		t.Fatalf("release outcome = %d, want Committed", out)
	}
	if item.collapsed {
		t.Error("drag also fired the click behavior")
	}
	if item.pos != geom.V(120, 130) || item.commits != 1 {
		t.Errorf("pos = %v commits = %d, want (120,130) and 1", item.pos, item.commits)
	}
	if f.Pointer.HasUnclaimedClick() {
		t.Error("release ending a drag must be claimed")
	}
}

func TestThresholdIsExclusive(t *testing.T) {
	h := newHarness()
	item := &collapsible{}
	h.grab(geom.V(0, 0), item)
	// Exactly 4 combined pixels stays armed.
	if _, out := h.frame(input.Hold(geom.V(2, 2), input.ButtonPrimary)); out != None {
		t.Fatalf("outcome at threshold = %d, want None", out)
	}
}

func TestInvalidDropReverts(t *testing.T) {
	h := newHarness()
	item := &collapsible{pos: geom.V(5, 5)}
	f, _ := h.frame(input.Hold(geom.V(50, 50), input.ButtonPrimary))
	h.c.Begin(f.Pointer, Spec{
		Mode:     ModeNode,
		ID:       item,
		Snapshot: item.pos,
		Region:   geom.R(0, 0, 100, 100),
		Preview:  func(s *Session) { item.pos = s.Snapshot.(geom.Vec2).Add(s.Delta()) },
		Revert:   func(s *Session) { item.pos = s.Snapshot.(geom.Vec2); item.reverts++ },
		Commit:   func(*Session) { item.commits++ },
	})
	h.frame(input.Hold(geom.V(150, 50), input.ButtonPrimary))
	if item.pos != geom.V(105, 5) {
		t.Fatalf("preview pos = %v, want (105,5)", item.pos)
	}
	if _, out := h.frame(input.Move(geom.V(150, 50))); out != Reverted {
		t.Fatalf("outcome = %d, want Reverted", out)
	}
	if item.pos != geom.V(5, 5) || item.reverts != 1 || item.commits != 0 {
		t.Errorf("pos = %v reverts = %d commits = %d, want snapshot restored", item.pos, item.reverts, item.commits)
	}
}

func TestCanDropFalseReverts(t *testing.T) {
	h := newHarness()
	var reverted, committed bool
	f, _ := h.frame(input.Hold(geom.V(0, 0), input.ButtonPrimary))
	h.c.Begin(f.Pointer, Spec{
		Mode:    ModeConnection,
		CanDrop: func(*Session) bool { return false },
		Commit:  func(*Session) { committed = true },
		Revert:  func(*Session) { reverted = true },
	})
	h.frame(input.Hold(geom.V(20, 0), input.ButtonPrimary))
	h.frame(input.Move(geom.V(20, 0)))
	if committed || !reverted {
		t.Errorf("committed = %v reverted = %v, want false/true", committed, reverted)
	}
}

func TestAliveFalseCancelsMidDrag(t *testing.T) {
	h := newHarness()
	list := []string{"a", "b"}
	item := &collapsible{pos: geom.V(1, 1)}
	f, _ := h.frame(input.Hold(geom.V(0, 0), input.ButtonPrimary))
	h.c.Begin(f.Pointer, Spec{
		Mode:     ModeReorderLayer,
		ID:       "b",
		Snapshot: item.pos,
		Alive:    func(*Session) bool { return len(list) == 2 },
		Preview:  func(s *Session) { item.pos = s.Snapshot.(geom.Vec2).Add(s.Delta()) },
		Revert:   func(s *Session) { item.pos = s.Snapshot.(geom.Vec2) },
	})
	h.frame(input.Hold(geom.V(30, 0), input.ButtonPrimary))
	list = list[:1]
	if _, out := h.frame(input.Hold(geom.V(40, 0), input.ButtonPrimary)); out != Reverted {
		t.Fatalf("outcome = %d, want Reverted", out)
	}
	if item.pos != geom.V(1, 1) {
		t.Errorf("pos = %v, want snapshot (1,1)", item.pos)
	}
	if h.c.Active() {
		t.Error("session still active after cancel")
	}
}

func TestButtonLostWithoutReleaseEdgeReverts(t *testing.T) {
	h := newHarness()
	reverted := false
	f, _ := h.frame(input.Hold(geom.V(0, 0), input.ButtonPrimary))
	h.c.Begin(f.Pointer, Spec{Revert: func(*Session) { reverted = true }})
	// Simulate the host missing the release: two idle samples in a row.
	h.rec.Next(input.Move(geom.V(0, 0)))
	if out := h.c.Update(h.rec.Next(input.Move(geom.V(0, 0))).Pointer); out != Reverted {
		t.Fatalf("outcome = %d, want Reverted", out)
	}
	if !reverted {
		t.Error("Revert not called")
	}
}

func TestOnlyOneSession(t *testing.T) {
	h := newHarness()
	f, _ := h.frame(input.Hold(geom.V(0, 0), input.ButtonPrimary))
	if !h.c.Begin(f.Pointer, Spec{ID: 1}) {
		t.Fatal("first Begin failed")
	}
	if h.c.Begin(f.Pointer, Spec{ID: 2}) {
		t.Error("second Begin succeeded while a session is active")
	}
	if !h.c.Holding(1) || h.c.Holding(2) {
		t.Error("wrong session held")
	}
}

func TestImmediatePan(t *testing.T) {
	h := newHarness()
	var offset geom.Vec2
	clicked := false
	f, _ := h.frame(input.Hold(geom.V(100, 100), input.ButtonSecondary))
	h.c.Begin(f.Pointer, Spec{
		Mode:      ModePan,
		Button:    input.ButtonSecondary,
		Immediate: true,
		Preview:   func(s *Session) { offset = offset.Add(s.FrameDelta()) },
		Click:     func(*Session) { clicked = true },
	})
	if h.c.State() != Dragging {
		t.Fatalf("immediate session state = %v, want dragging", h.c.State())
	}
	h.frame(input.Hold(geom.V(102, 100), input.ButtonSecondary))
	if offset != geom.V(2, 0) {
		t.Fatalf("offset after 2px = %v, want (2,0); panning has no threshold", offset)
	}
	h.frame(input.Hold(geom.V(120, 90), input.ButtonSecondary))
	if _, out := h.frame(input.Move(geom.V(120, 90))); out != Committed {
		t.Fatalf("outcome = %d, want Committed", out)
	}
	if offset != geom.V(20, -10) {
		t.Errorf("offset = %v, want (20,-10)", offset)
	}
	if clicked {
		t.Error("pan past the threshold also clicked")
	}
}

func TestImmediateClickWithoutMovement(t *testing.T) {
	h := newHarness()
	clicked := false
	f, _ := h.frame(input.Hold(geom.V(100, 100), input.ButtonSecondary))
	h.c.Begin(f.Pointer, Spec{
		Mode:      ModePan,
		Button:    input.ButtonSecondary,
		Immediate: true,
		Click:     func(*Session) { clicked = true },
	})
	if _, out := h.frame(input.Move(geom.V(101, 100))); out != Clicked {
		t.Fatalf("outcome = %d, want Clicked", out)
	}
	if !clicked {
		t.Error("Click not called")
	}
}

func TestCancel(t *testing.T) {
	h := newHarness()
	reverted := false
	f, _ := h.frame(input.Hold(geom.V(0, 0), input.ButtonPrimary))
	h.c.Begin(f.Pointer, Spec{Revert: func(*Session) { reverted = true }})
	h.c.Cancel()
	if !reverted || h.c.Active() {
		t.Errorf("reverted = %v active = %v after Cancel", reverted, h.c.Active())
	}
	h.c.Cancel() // no session: no-op
}
