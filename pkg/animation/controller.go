package animation

import (
	"fmt"
	"time"
)

// AnimationStatus represents the current state of an animation.
type AnimationStatus int

const (
	// AnimationIdle means the animation has not started.
	AnimationIdle AnimationStatus = iota
	// AnimationWaiting means the animation has started but its delay has not elapsed.
	AnimationWaiting
	// AnimationRunning means the value is moving toward End.
	AnimationRunning
	// AnimationCompleted means the value reached End.
	AnimationCompleted
	// AnimationStopped means the animation was interrupted before completing.
	AnimationStopped
)

// String returns a human-readable representation of the animation status.
func (s AnimationStatus) String() string {
	switch s {
	case AnimationIdle:
		return "idle"
	case AnimationWaiting:
		return "waiting"
	case AnimationRunning:
		return "running"
	case AnimationCompleted:
		return "completed"
	case AnimationStopped:
		return "stopped"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// AnimationController animates Value from Begin to End over Duration, after
// waiting Delay. Curve eases the progress; it may overshoot (springs).
//
// A host executes one controller per card for the engine's drop, restore and
// drop-in plans and reads Value each frame.
type AnimationController struct {
	// Value is the current animated value.
	Value float64
	// Begin is the value before and at the start of the animation.
	Begin float64
	// End is the value at completion.
	End float64
	// Delay postpones the start after Start is called.
	Delay time.Duration
	// Duration is the length of the animation after Delay.
	Duration time.Duration
	// Curve transforms linear progress (optional).
	Curve func(float64) float64
	// OnComplete runs once when the animation reaches End.
	OnComplete func()

	status    AnimationStatus
	ticker    *Ticker
	listeners map[int]func()
	nextID    int
}

// NewAnimationController creates a controller animating from begin to end.
func NewAnimationController(begin, end float64, duration time.Duration) *AnimationController {
	return &AnimationController{
		Value:     begin,
		Begin:     begin,
		End:       end,
		Duration:  duration,
		Curve:     LinearCurve,
		listeners: make(map[int]func()),
	}
}

// Start resets Value to Begin and begins the animation.
func (c *AnimationController) Start() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	c.Value = c.Begin
	c.status = AnimationWaiting
	c.ticker = NewTicker(c.tick)
	c.ticker.Start()
}

func (c *AnimationController) tick(elapsed time.Duration) {
	if elapsed < c.Delay {
		return
	}
	c.status = AnimationRunning
	active := elapsed - c.Delay

	progress := 1.0
	if c.Duration > 0 {
		progress = float64(active) / float64(c.Duration)
		if progress > 1 {
			progress = 1
		}
	}
	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	c.Value = c.Begin + (c.End-c.Begin)*eased
	c.notifyListeners()

	if progress >= 1 {
		c.Value = c.End
		c.halt(AnimationCompleted)
		if c.OnComplete != nil {
			c.OnComplete()
		}
	}
}

func (c *AnimationController) halt(status AnimationStatus) {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	c.status = status
}

// Stop interrupts the animation at its current value.
func (c *AnimationController) Stop() {
	if c.IsAnimating() {
		c.halt(AnimationStopped)
	}
}

// Status returns the current animation status.
func (c *AnimationController) Status() AnimationStatus {
	return c.status
}

// IsAnimating returns true while waiting on the delay or running.
func (c *AnimationController) IsAnimating() bool {
	return c.status == AnimationWaiting || c.status == AnimationRunning
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (c *AnimationController) AddListener(fn func()) func() {
	if c.listeners == nil {
		c.listeners = make(map[int]func())
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

func (c *AnimationController) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}
