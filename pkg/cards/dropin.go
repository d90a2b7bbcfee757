package cards

import "time"

// DropInState is the lifecycle of the one-time entrance animation.
type DropInState int

const (
	// DropInNotYetShown means no card set has been shown yet.
	DropInNotYetShown DropInState = iota
	// DropInShowing means a drop-in plan was emitted and is executing.
	DropInShowing
	// DropInShown means the entrance has happened; later card sets appear
	// without it.
	DropInShown
)

func (s DropInState) String() string {
	switch s {
	case DropInShowing:
		return "showing"
	case DropInShown:
		return "shown"
	default:
		return "not-yet-shown"
	}
}

// DropInStep animates one card from From (a negative displacement above its
// resting frame) down to rest with a spring.
type DropInStep struct {
	Index    int
	Delay    time.Duration
	Duration time.Duration
	From     float64
	Damping  float64
	Velocity float64
}

// planDropIn builds steps for every card up to the last loosely visible one.
// Each card starts just above the top of the viewport; farther cards travel
// longer and start later.
func planDropIn(layout Layout, window IndexWindow, viewportHeight float64, timing Timing) []DropInStep {
	if window.Empty() || viewportHeight <= 0 {
		return nil
	}
	steps := make([]DropInStep, 0, window.Last+1)
	for i := 0; i <= window.Last; i++ {
		travel := layout.BaseY(i) + layout.CardHeight
		steps = append(steps, DropInStep{
			Index:    i,
			Delay:    time.Duration(i) * timing.DropInInterCardDelay,
			Duration: time.Duration(float64(timing.DropInBaseDuration) * (1 + travel/viewportHeight)),
			From:     -travel,
			Damping:  timing.DropInDamping,
			Velocity: timing.DropInVelocity * viewportHeight / travel,
		})
	}
	return steps
}
