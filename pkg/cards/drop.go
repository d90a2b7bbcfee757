package cards

import "time"

// TransitionStep is one card's part of a staggered transition. The host
// animates the card's extra vertical displacement from From to To, starting
// Delay after the plan begins.
type TransitionStep struct {
	Index    int
	Delay    time.Duration
	Duration time.Duration
	From     float64
	To       float64
}

// TransitionPlan is a set of steps plus the cards to hide meanwhile.
type TransitionPlan struct {
	Steps []TransitionStep
	// Hidden lists cards that take no part and must be hidden outright.
	Hidden []int
	// Window is the participating index range.
	Window IndexWindow
}

// Last returns the step that finishes last, which the host uses to signal
// completion. ok is false for an empty plan.
func (p TransitionPlan) Last() (step TransitionStep, ok bool) {
	for i, s := range p.Steps {
		if i == 0 || s.Delay+s.Duration > step.Delay+step.Duration {
			step = s
		}
	}
	return step, len(p.Steps) > 0
}

// DropState is the lifecycle of a drop/restore pair.
type DropState int

const (
	// DropResting means cards are on screen.
	DropResting DropState = iota
	// DropDropping means a drop plan is executing.
	DropDropping
	// DropDropped means cards are off the bottom edge.
	DropDropped
	// DropRestoring means a restore plan is executing.
	DropRestoring
)

func (s DropState) String() string {
	switch s {
	case DropDropping:
		return "dropping"
	case DropDropped:
		return "dropped"
	case DropRestoring:
		return "restoring"
	default:
		return "resting"
	}
}

// DropSequencer plans the drop (visible cards fall off the bottom, bottom card
// first) and the matching restore (top card first).
//
// The participating window is captured at drop time and reused verbatim by
// Restore, even if the card set changed in between. A host that replaces the
// card set while dropped must call Reset.
type DropSequencer struct {
	Duration       time.Duration
	InterCardDelay time.Duration

	state    DropState
	window   IndexWindow
	distance float64
}

// NewDropSequencer returns a sequencer using timing's drop parameters.
func NewDropSequencer(timing Timing) *DropSequencer {
	return &DropSequencer{
		Duration:       timing.DropDuration,
		InterCardDelay: timing.DropInterCardDelay,
		window:         EmptyWindow(),
	}
}

// State returns the current lifecycle state.
func (d *DropSequencer) State() DropState { return d.state }

// IsDropped reports whether cards are off screen or on their way there or back.
func (d *DropSequencer) IsDropped() bool { return d.state != DropResting }

// Window returns the captured participating window.
func (d *DropSequencer) Window() IndexWindow { return d.window }

// Drop plans moving the cards in window down by distance. It is a no-op,
// returning false, unless cards are resting and window is non-empty.
func (d *DropSequencer) Drop(window IndexWindow, count int, distance float64) (TransitionPlan, bool) {
	if d.state != DropResting || window.Empty() {
		return TransitionPlan{}, false
	}
	plan := TransitionPlan{Window: window}
	n := window.Len()
	for i := 0; i < count; i++ {
		if !window.Contains(i) {
			plan.Hidden = append(plan.Hidden, i)
			continue
		}
		order := (n - 1) - (i - window.First)
		plan.Steps = append(plan.Steps, TransitionStep{
			Index:    i,
			Delay:    time.Duration(order) * d.InterCardDelay,
			Duration: d.Duration,
			From:     0,
			To:       distance,
		})
	}
	d.state = DropDropping
	d.window = window
	d.distance = distance
	return plan, true
}

// DropCompleted marks the drop plan as finished.
func (d *DropSequencer) DropCompleted() {
	if d.state == DropDropping {
		d.state = DropDropped
	}
}

// Restore plans returning the captured window to rest. It is a no-op,
// returning false, unless a drop has completed.
func (d *DropSequencer) Restore() (TransitionPlan, bool) {
	if d.state != DropDropped {
		return TransitionPlan{}, false
	}
	plan := TransitionPlan{Window: d.window}
	for _, i := range d.window.Indexes() {
		plan.Steps = append(plan.Steps, TransitionStep{
			Index:    i,
			Delay:    time.Duration(i-d.window.First) * d.InterCardDelay,
			Duration: d.Duration,
			From:     d.distance,
			To:       0,
		})
	}
	d.state = DropRestoring
	return plan, true
}

// RestoreCompleted marks the restore as finished. The host unhides every card.
func (d *DropSequencer) RestoreCompleted() {
	if d.state == DropRestoring {
		d.Reset()
	}
}

// Reset abandons any drop state. Hosts call it after interrupting a plan.
func (d *DropSequencer) Reset() {
	d.state = DropResting
	d.window = EmptyWindow()
	d.distance = 0
}
