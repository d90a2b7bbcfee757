package animation

import (
	"math"

	"github.com/go-drift/cardscroller/pkg/errors"
)

const (
	// DefaultRolloffPower is the default exponent of the rolloff curve.
	DefaultRolloffPower = 4.0
	// DefaultRolloffConstant is the default multiplier of the rolloff curve.
	DefaultRolloffConstant = 3.0
)

// RolloffCurve is the easing law that accelerates a card off the top of the
// viewport:
//
//	value = (x * max)^power * constant
//
// where max = (1/constant)^(1/power) rescales the input so that Value(1) == 1.
// The scale factor is recomputed whenever a parameter changes, never per call.
//
// The input is not clamped. Inputs above 1 produce values above 1, which is
// how cards far past the rolloff zone end up beyond fully off-screen.
type RolloffCurve struct {
	power    float64
	constant float64
	max      float64
}

// NewRolloffCurve returns a curve with the given parameters.
func NewRolloffCurve(power, constant float64) (*RolloffCurve, error) {
	c := &RolloffCurve{}
	if err := c.SetParams(power, constant); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultRolloffCurve returns a curve with power 4 and constant 3.
func DefaultRolloffCurve() *RolloffCurve {
	c := &RolloffCurve{power: DefaultRolloffPower, constant: DefaultRolloffConstant}
	c.recompute()
	return c
}

// Power returns the curve exponent.
func (c *RolloffCurve) Power() float64 { return c.power }

// Constant returns the curve multiplier.
func (c *RolloffCurve) Constant() float64 { return c.constant }

// Max returns the input scale factor that makes Value(1) == 1.
func (c *RolloffCurve) Max() float64 { return c.max }

// SetPower changes the exponent and recomputes the scale factor.
func (c *RolloffCurve) SetPower(power float64) error {
	return c.SetParams(power, c.constant)
}

// SetConstant changes the multiplier and recomputes the scale factor.
func (c *RolloffCurve) SetConstant(constant float64) error {
	return c.SetParams(c.power, constant)
}

// SetParams changes both parameters at once. Both must be finite and positive;
// on error the curve is left unchanged.
func (c *RolloffCurve) SetParams(power, constant float64) error {
	if !validParam(power) {
		return errors.Newf("animation.RolloffCurve.SetParams", errors.KindConfig,
			"power %v: %w", power, errors.ErrInvalidParameter)
	}
	if !validParam(constant) {
		return errors.Newf("animation.RolloffCurve.SetParams", errors.KindConfig,
			"constant %v: %w", constant, errors.ErrInvalidParameter)
	}
	c.power = power
	c.constant = constant
	c.recompute()
	return nil
}

func (c *RolloffCurve) recompute() {
	c.max = math.Pow(1/c.constant, 1/c.power)
}

// Value evaluates the curve at x, where x is how far (normalized) a card has
// penetrated the rolloff zone.
func (c *RolloffCurve) Value(x float64) float64 {
	return math.Pow(x*c.max, c.power) * c.constant
}

func validParam(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
