package curve

import (
	"math"

	"github.com/meenmo/molibsim/engine/line"
	molibcurve "github.com/meenmo/molibsim/swap/curve"
)

// FromSwapCurve adapts molib's bootstrapped par-swap-quote curve
// (*molibcurve.Curve) into a line.Line indexed by years since the swap
// curve's settlement date, so a molibsim scenario can bootstrap a real
// curve with molib's own bootstrapper and then drive a StaticCurve,
// Hull-White calibrator, or Shifted curve off it (SPEC_FULL.md §6.2).
type FromSwapCurve struct {
	c *molibcurve.Curve
}

// NewFromSwapCurve wraps c as a line.Line.
func NewFromSwapCurve(c *molibcurve.Curve) *FromSwapCurve {
	return &FromSwapCurve{c: c}
}

// Value returns the discount factor at years years past the wrapped
// curve's settlement date.
func (f *FromSwapCurve) Value(years float64) float64 {
	days := int(math.Round(years * 365))
	t := f.c.Settlement().AddDate(0, 0, days)
	return f.c.DF(t)
}

// Integral approximates ∫[x0,x1] f (optionally weighted) via composite
// Simpson's rule, matching line.PiecewiseLogLinear's fixed-grid fallback —
// the math-line contract is a black box (spec §6); no retrieved example
// implements adaptive quadrature over a swap curve.
func (f *FromSwapCurve) Integral(x0, x1 float64, weight line.Line) float64 {
	const steps = 64
	if x1 == x0 {
		return 0
	}
	h := (x1 - x0) / steps
	eval := func(x float64) float64 {
		v := f.Value(x)
		if weight != nil {
			v *= weight.Value(x)
		}
		return v
	}
	sum := eval(x0) + eval(x1)
	for i := 1; i < steps; i++ {
		x := x0 + float64(i)*h
		if i%2 == 0 {
			sum += 2 * eval(x)
		} else {
			sum += 4 * eval(x)
		}
	}
	return sum * h / 3
}
