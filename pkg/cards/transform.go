package cards

import (
	"github.com/go-drift/cardscroller/pkg/animation"
	"github.com/go-drift/cardscroller/pkg/errors"
)

// NoCard marks the absence of a card index (no drag, no hit).
const NoCard = -1

// Geometry is the per-card output of one transform pass.
type Geometry struct {
	// BaseY is the resting top edge in content coordinates.
	BaseY float64
	// Displacement is added to BaseY by the renderer; zero or negative.
	Displacement float64
	// Opacity is in [0,1] for cards inside the rolloff zone.
	Opacity float64
	// RawOffset is the rolloff curve value: 0 at rest, 1 fully off-screen.
	// It is not clamped and exceeds 1 for cards far past the zone.
	RawOffset float64
}

// Identity reports whether the geometry applies no transform.
func (g Geometry) Identity() bool {
	return g.Displacement == 0 && g.Opacity == 1
}

func restingGeometry(baseY float64) Geometry {
	return Geometry{BaseY: baseY, Opacity: 1}
}

// Transformer maps a card's resting position and the scroll offset to its
// displacement and opacity.
type Transformer struct {
	Curve          *animation.RolloffCurve
	Layout         Layout
	FadeWithScroll bool
}

// Transform computes the geometry of a card resting at baseY.
//
// Cards whose top edge (relative to the viewport) is below TopPadding are at
// rest. Above it, the distance past TopPadding is normalized by the pitch and
// fed through the rolloff curve without clamping.
func (t Transformer) Transform(baseY, scrollOffset float64) (Geometry, error) {
	if !t.Layout.Ready() {
		return Geometry{}, errors.New("cards.Transformer.Transform", errors.KindLayout, errors.ErrNotLaidOut)
	}
	g := restingGeometry(baseY)

	yPosition := baseY - scrollOffset
	accelStartY := t.Layout.TopPadding
	if yPosition > accelStartY {
		return g, nil
	}

	rolloffDistance := t.Layout.Pitch()
	normalized := (accelStartY - yPosition) / rolloffDistance
	raw := t.curve().Value(normalized)

	// raw == 1 moves the card exactly off the top.
	g.Displacement = -raw * ((t.Layout.CardHeight - rolloffDistance) + 2*t.Layout.TopPadding)
	if t.FadeWithScroll {
		g.Opacity = 1 - raw
	}
	g.RawOffset = raw
	return g, nil
}

// TransformAll computes geometry for count cards. Iteration stops at the
// dragged card: it and every card after it keep the resting geometry, so only
// the cards above the finger roll off. The second result is the number of
// cards actually transformed.
func (t Transformer) TransformAll(count int, scrollOffset float64, dragged int) ([]Geometry, int, error) {
	if !t.Layout.Ready() {
		return nil, 0, errors.New("cards.Transformer.TransformAll", errors.KindLayout, errors.ErrNotLaidOut)
	}
	out := make([]Geometry, count)
	for i := range out {
		out[i] = restingGeometry(t.Layout.BaseY(i))
	}
	computed := 0
	for i := range out {
		if i == dragged {
			break
		}
		g, err := t.Transform(out[i].BaseY, scrollOffset)
		if err != nil {
			return nil, 0, err
		}
		out[i] = g
		computed++
	}
	return out, computed, nil
}

// defaultCurve serves Transformers without a Curve. It is never mutated.
var defaultCurve = animation.DefaultRolloffCurve()

func (t Transformer) curve() *animation.RolloffCurve {
	if t.Curve == nil {
		return defaultCurve
	}
	return t.Curve
}
