package drag

import "github.com/example/gridsmith/internal/geom"

// InsertionSlot returns the visual slot a dragged item would be inserted
// into: the first item, top to bottom, whose vertical midpoint lies below
// pointerY, or len(visual) when there is none.
func InsertionSlot(pointerY float64, visual []geom.Rect) int {
	for i, r := range visual {
		if r.MidY() > pointerY {
			return i
		}
	}
	return len(visual)
}

// SlotToIndex converts a visual insertion slot into the data index the
// dragged item should occupy after it is removed from src. With reversed
// set, visual slot 0 shows the highest data index.
func SlotToIndex(slot, n, src int, reversed bool) int {
	if n <= 0 {
		return 0
	}
	if src < 0 || src >= n {
		return src
	}
	slot = geom.ClampInt(slot, 0, n)
	// gap is the data-order position between elements gap-1 and gap.
	gap := slot
	if reversed {
		gap = n - slot
	}
	if gap > src {
		gap--
	}
	return gap
}

// InsertionIndex is the reorder solver: given the pointer's Y, the items'
// screen rectangles in visual top-to-bottom order, and the dragged item's
// data index, it returns the data index to move the item to. Returning src
// means no change.
func InsertionIndex(pointerY float64, visual []geom.Rect, src int, reversed bool) int {
	return SlotToIndex(InsertionSlot(pointerY, visual), len(visual), src, reversed)
}

// IndicatorY is the screen Y of the insertion line for a visual slot.
func IndicatorY(slot int, visual []geom.Rect) float64 {
	switch {
	case len(visual) == 0:
		return 0
	case slot <= 0:
		return visual[0].Y
	case slot >= len(visual):
		return visual[len(visual)-1].Bottom()
	}
	return visual[slot].Y
}

// VisualToData maps a visual position to a data index.
func VisualToData(v, n int, reversed bool) int {
	if reversed {
		return n - 1 - v
	}
	return v
}

// Move relocates s[from] to index to, shifting the elements between. Out of
// range indices leave s untouched.
func Move[T any](s []T, from, to int) {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) || from == to {
		return
	}
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
}

// GroupAt returns the index of the first header whose vertical span
// contains y, or -1.
func GroupAt(y float64, headers []geom.Rect) int {
	for i, h := range headers {
		if y >= h.Y && y < h.Bottom() {
			return i
		}
	}
	return -1
}
