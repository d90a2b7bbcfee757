package cards

import "github.com/go-drift/cardscroller/pkg/graphics"

// IndexWindow is an inclusive, contiguous range of card indexes.
// A window with Last < First is empty.
type IndexWindow struct {
	First int
	Last  int
}

// EmptyWindow returns a window containing no indexes.
func EmptyWindow() IndexWindow {
	return IndexWindow{First: 0, Last: -1}
}

// Empty reports whether the window contains no indexes.
func (w IndexWindow) Empty() bool {
	return w.Last < w.First
}

// Len returns the number of indexes in the window.
func (w IndexWindow) Len() int {
	if w.Empty() {
		return 0
	}
	return w.Last - w.First + 1
}

// Contains reports whether index lies in the window.
func (w IndexWindow) Contains(index int) bool {
	return !w.Empty() && index >= w.First && index <= w.Last
}

// Indexes lists the window's indexes in ascending order.
func (w IndexWindow) Indexes() []int {
	out := make([]int, 0, w.Len())
	for i := w.First; i <= w.Last && !w.Empty(); i++ {
		out = append(out, i)
	}
	return out
}

// Within reports whether every index of w is also in other.
func (w IndexWindow) Within(other IndexWindow) bool {
	if w.Empty() {
		return true
	}
	return other.Contains(w.First) && other.Contains(w.Last)
}

// VisibleWindow computes the cards intersecting the viewport at scrollOffset.
//
// Loose mode tests each card's resting frame and pads the result by pad cards
// on each side, clamped to the card set. Strict mode tests only the exposed
// bottom slice of each card (the part no later card can cover), moved by the
// card's current displacement, and adds no padding. geometry supplies the
// displacements and the card count; it must come from the same scroll event.
func VisibleWindow(scrollOffset float64, viewport graphics.Size, layout Layout, geometry []Geometry, strict bool, pad int) IndexWindow {
	if len(geometry) == 0 || !layout.Ready() {
		return EmptyWindow()
	}
	visible := graphics.RectFromLTWH(0, scrollOffset, viewport.Width, viewport.Height)
	covered := layout.CardHeight - layout.Pitch()

	first, last := NoCard, NoCard
	for i, g := range geometry {
		frame := graphics.RectFromLTWH(layout.SidePadding, g.BaseY, layout.CardWidth, layout.CardHeight)
		if strict {
			_, frame = frame.Translate(0, g.Displacement).SplitTop(covered)
		}
		if !frame.Intersects(visible) {
			continue
		}
		if first == NoCard {
			first = i
		}
		last = i
	}
	if first == NoCard {
		return EmptyWindow()
	}
	if strict {
		return IndexWindow{First: first, Last: last}
	}
	return IndexWindow{
		First: max(first-pad, 0),
		Last:  min(last+pad, len(geometry)-1),
	}
}
