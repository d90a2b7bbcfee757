package cards

// PulseDirection says which way a card crossed the off-screen threshold.
type PulseDirection int

const (
	// PulseExit means the card's raw offset rose to 1 or more.
	PulseExit PulseDirection = iota
	// PulseEnter means the card's raw offset fell back below 1.
	PulseEnter
)

func (d PulseDirection) String() string {
	if d == PulseEnter {
		return "enter"
	}
	return "exit"
}

// Pulse is a discrete feedback event: a card crossed raw offset 1.0.
type Pulse struct {
	Index     int
	RawOffset float64
	Direction PulseDirection
}

// FeedbackTracker remembers the last raw offset of each card index and
// reports threshold crossings.
type FeedbackTracker struct {
	last map[int]float64
}

// NewFeedbackTracker returns an empty tracker.
func NewFeedbackTracker() *FeedbackTracker {
	return &FeedbackTracker{last: make(map[int]float64)}
}

// Observe records raw for index and reports whether it crossed 1.0 since the
// previous observation, in either direction. Unknown indexes start at 0.
func (f *FeedbackTracker) Observe(index int, raw float64) (Pulse, bool) {
	if f.last == nil {
		f.last = make(map[int]float64)
	}
	prev := f.last[index]
	f.last[index] = raw

	switch {
	case prev < 1 && raw >= 1:
		return Pulse{Index: index, RawOffset: raw, Direction: PulseExit}, true
	case prev >= 1 && raw < 1:
		return Pulse{Index: index, RawOffset: raw, Direction: PulseEnter}, true
	}
	return Pulse{}, false
}

// Last returns the last observed raw offset for index, or 0.
func (f *FeedbackTracker) Last(index int) float64 {
	return f.last[index]
}

// Reset forgets every card. Call it when the card set is replaced.
func (f *FeedbackTracker) Reset() {
	clear(f.last)
}
