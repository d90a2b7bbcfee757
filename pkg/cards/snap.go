package cards

import "math"

// StopInput gathers everything ResolveStop needs about a drag release.
type StopInput struct {
	// CurrentOffset is the scroll offset at release.
	CurrentOffset float64
	// TargetOffset is where the host's deceleration would come to rest.
	TargetOffset float64
	// Velocity is the release velocity; positive scrolls content up.
	Velocity float64
	// Dragged is the card tracking the touch, or NoCard.
	Dragged int
	// TopCard is the topmost card on screen, or NoCard.
	TopCard int
	// Pitch is the distance between resting cards.
	Pitch float64
	// LastIndex is the index of the final card.
	LastIndex int
	// TopPadding is the gap above the first card.
	TopPadding float64
	// VelocityThreshold bounds the snap-back release speed.
	VelocityThreshold float64
}

// ResolveStop returns the offset a released scroll should settle at. The first
// matching rule wins:
//
//  1. Pulled down past the top (offset and velocity not positive), or a
//     target at or above the top: stop at 0.
//  2. The dragged card is the top card and the release is slow: return it to
//     its own resting offset.
//  3. Otherwise round the target to the nearest multiple of pitch, never past
//     the last card's resting offset.
//
// Ties in rule 3 round to the even multiple. ResolveStop is pure, and feeding
// its result back as the target returns the same value.
func ResolveStop(in StopInput) float64 {
	if (in.CurrentOffset <= 0 && in.Velocity <= 0) || in.TargetOffset <= 0 {
		return 0
	}

	if in.TopCard != NoCard && in.TopCard == in.Dragged && math.Abs(in.Velocity) <= in.VelocityThreshold {
		baseY := in.TopPadding + float64(in.TopCard)*in.Pitch
		return baseY - in.TopPadding
	}

	if in.Pitch <= 0 {
		return in.TargetOffset
	}
	step := math.RoundToEven(in.TargetOffset/in.Pitch) * in.Pitch
	lastCard := float64(max(in.LastIndex, 0)) * in.Pitch
	return math.Min(step, lastCard)
}
