package term

import (
	"github.com/go-drift/cardscroller/pkg/animation"
	"github.com/go-drift/cardscroller/pkg/cards"
)

// toggleDrop drops the visible cards, or restores them once dropped.
func (h *Host) toggleDrop() {
	switch h.scroller.DropState() {
	case cards.DropResting:
		h.stopSettle()
		if _, err := h.scroller.StopImmediately(); err != nil {
			h.report("term.Host.toggleDrop", err)
			return
		}
		plan, ok := h.scroller.Drop()
		if !ok {
			return
		}
		for _, i := range plan.Hidden {
			h.hidden[i] = true
		}
		h.runPlan(plan, h.scroller.DropCompleted)
		h.status = "dropped"
	case cards.DropDropped:
		plan, ok := h.scroller.Restore()
		if !ok {
			return
		}
		h.runPlan(plan, func() {
			h.scroller.RestoreCompleted()
			clear(h.hidden)
		})
		h.status = "restored"
	}
}

// runPlan starts one controller per step and calls done when the last one
// finishes.
func (h *Host) runPlan(plan cards.TransitionPlan, done func()) {
	last, ok := plan.Last()
	if !ok {
		done()
		return
	}
	for _, step := range plan.Steps {
		c := h.startExtra(step.Index, step.From, step.To)
		c.Delay = step.Delay
		c.Duration = step.Duration
		c.Curve = animation.EaseInOut
		if step.Index == last.Index {
			c.OnComplete = done
		}
		c.Start()
	}
}

func (h *Host) runDropIn(steps []cards.DropInStep) {
	var last cards.DropInStep
	for i, step := range steps {
		if i == 0 || step.Delay+step.Duration > last.Delay+last.Duration {
			last = step
		}
	}
	for _, step := range steps {
		c := h.startExtra(step.Index, step.From, 0)
		c.Delay = step.Delay
		c.Duration = step.Duration
		c.Curve = animation.SpringCurve(step.Damping, step.Velocity)
		if step.Index == last.Index {
			c.OnComplete = h.scroller.DropInCompleted
		}
		c.Start()
	}
}

// startExtra replaces any running transition of a card with a new
// controller holding it at from.
func (h *Host) startExtra(index int, from, to float64) *animation.AnimationController {
	if prev, ok := h.extra[index]; ok {
		prev.Stop()
	}
	c := animation.NewAnimationController(from, to, 0)
	h.extra[index] = c
	return c
}

// extraOffset is the transition displacement of a card. Completed restores
// and drop-ins settle at zero; completed drops hold the card off screen.
func (h *Host) extraOffset(index int) float64 {
	c, ok := h.extra[index]
	if !ok {
		return 0
	}
	if !c.IsAnimating() && c.Value == 0 {
		delete(h.extra, index)
	}
	return c.Value
}
