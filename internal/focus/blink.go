package focus

// DefaultBlinkInterval is the caret's on and off period in seconds.
const DefaultBlinkInterval = 0.5

// Blink is a caret visibility timer.
type Blink struct {
	Interval float64

	elapsed float64
	hidden  bool
}

// NewBlink returns a visible caret flipping every interval seconds. A
// non-positive interval selects DefaultBlinkInterval.
func NewBlink(interval float64) Blink {
	if interval <= 0 {
		interval = DefaultBlinkInterval
	}
	return Blink{Interval: interval}
}

// Update advances the timer by dt seconds.
func (b *Blink) Update(dt float64) {
	if b.Interval <= 0 {
		b.Interval = DefaultBlinkInterval
	}
	b.elapsed += dt
	for b.elapsed >= b.Interval {
		b.elapsed -= b.Interval
		b.hidden = !b.hidden
	}
}

// Visible reports whether the caret should be drawn.
func (b *Blink) Visible() bool {
	return !b.hidden
}

// Reset makes the caret visible and restarts the interval. Fields call it
// on every edit.
func (b *Blink) Reset() {
	b.elapsed = 0
	b.hidden = false
}
