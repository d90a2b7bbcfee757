package cards

import (
	"math"
	"time"

	"github.com/go-drift/cardscroller/pkg/animation"
	"github.com/go-drift/cardscroller/pkg/errors"
)

// Default dimensions of the non-overlapping card footer.
const (
	DefaultFooterHeight    = 74.0
	DefaultSeparatorHeight = 1.0
	// DefaultVisibilityPad is the number of cards added on each side of the
	// loose visible window.
	DefaultVisibilityPad = 3
	// DefaultVelocityThreshold is the release speed at or below which a
	// dragged top card snaps back to its resting position.
	DefaultVelocityThreshold = 0.2
)

// Timing holds the durations of the transition plans the engine emits.
type Timing struct {
	// DropDuration is the per-card duration of drop and restore.
	DropDuration time.Duration
	// DropInterCardDelay staggers drop and restore between adjacent cards.
	DropInterCardDelay time.Duration
	// DropInBaseDuration is scaled by distance for the initial drop-in.
	DropInBaseDuration time.Duration
	// DropInInterCardDelay staggers the drop-in between adjacent cards.
	DropInInterCardDelay time.Duration
	// DropInDamping is the spring damping ratio of the drop-in (1 = no bounce).
	DropInDamping float64
	// DropInVelocity is the initial spring velocity, scaled by viewport height
	// over travel distance.
	DropInVelocity float64
}

// DefaultTiming returns the stock transition timing.
func DefaultTiming() Timing {
	return Timing{
		DropDuration:         500 * time.Millisecond,
		DropInterCardDelay:   60 * time.Millisecond,
		DropInBaseDuration:   700 * time.Millisecond,
		DropInInterCardDelay: 100 * time.Millisecond,
		DropInDamping:        0.75,
		DropInVelocity:       12,
	}
}

// Config holds the tunable parameters of a Scroller.
type Config struct {
	Layout LayoutMode

	RolloffPower    float64
	RolloffConstant float64

	// TopPadding is the gap above the first card; cards start rolling off
	// when their top edge passes it.
	TopPadding float64
	// SidePadding is the horizontal inset on each side of a card.
	SidePadding float64

	FooterHeight    float64
	SeparatorHeight float64

	// VisibilityPad expands the loose visible window on each side.
	VisibilityPad int
	// VelocityThreshold bounds the snap-back release speed.
	VelocityThreshold float64

	// Continuous disables snap-to-card stopping after a drag release.
	Continuous bool
	// SelectAnyPosition lets a tap select any card; otherwise only the top
	// card selects and other taps request a scroll to the tapped card.
	SelectAnyPosition bool
	// FadeWithScroll fades cards out as they roll off.
	FadeWithScroll bool
	// AnimateDropIn emits a drop-in plan on the first configured card set.
	AnimateDropIn bool

	Timing Timing
}

// DefaultConfig returns the stock configuration: stacked layout, power 4,
// constant 3, snapping enabled and a one-time drop-in.
func DefaultConfig() Config {
	return Config{
		Layout:            Stacked,
		RolloffPower:      animation.DefaultRolloffPower,
		RolloffConstant:   animation.DefaultRolloffConstant,
		FooterHeight:      DefaultFooterHeight,
		SeparatorHeight:   DefaultSeparatorHeight,
		VisibilityPad:     DefaultVisibilityPad,
		VelocityThreshold: DefaultVelocityThreshold,
		AnimateDropIn:     true,
		Timing:            DefaultTiming(),
	}
}

// Validate checks the parameters that would otherwise yield NaN geometry.
func (c Config) Validate() error {
	const op = "cards.Config.Validate"
	if c.Layout != Stacked && c.Layout != Sequential {
		return errors.Newf(op, errors.KindConfig, "layout %d: %w", int(c.Layout), errors.ErrInvalidParameter)
	}
	checks := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"rolloff power", c.RolloffPower, true},
		{"rolloff constant", c.RolloffConstant, true},
		{"top padding", c.TopPadding, false},
		{"side padding", c.SidePadding, false},
		{"footer height", c.FooterHeight, false},
		{"separator height", c.SeparatorHeight, false},
		{"velocity threshold", c.VelocityThreshold, false},
	}
	for _, check := range checks {
		if math.IsNaN(check.value) || math.IsInf(check.value, 0) || check.value < 0 || (check.positive && check.value == 0) {
			return errors.Newf(op, errors.KindConfig, "%s %v: %w", check.name, check.value, errors.ErrInvalidParameter)
		}
	}
	if c.FooterHeight+c.SeparatorHeight <= 0 {
		return errors.Newf(op, errors.KindConfig, "stacked pitch must be positive: %w", errors.ErrInvalidParameter)
	}
	if c.VisibilityPad < 0 {
		return errors.Newf(op, errors.KindConfig, "visibility pad %d: %w", c.VisibilityPad, errors.ErrInvalidParameter)
	}
	return nil
}
