// Package line defines the math-line black-box contract spec §6 calls out
// as an external collaborator ("the core invokes it but does not define
// it") plus one concrete piecewise log-linear implementation, generalised
// from molib's discount-factor interpolation (swap/curve/curve.go's
// interpolateDF) to an arbitrary x/y pillar table rather than a fixed
// date/discount-factor pair.
package line

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidState is returned when an interpolation table is empty,
// mismatched in length, or holds a non-positive pillar value (spec §7
// "empty interpolation table in a cached line agent"). Declared here rather
// than in engine/agent because engine/agent already imports engine/line for
// basic.go's line.Line usage; engine/agent/errors.go aliases its own
// ErrInvalidState to this one so callers see a single sentinel.
var ErrInvalidState = errors.New("invalid state")

// Line is a black-box real function with an optional weighted integral,
// consumed by CurveAgent and by the yield-curve family but never defined
// by them (spec §6 "Math-line").
type Line interface {
	// Value returns the line's value at x.
	Value(x float64) float64
	// Integral returns ∫[x0,x1] f, optionally weighted by another Line;
	// weight may be nil for an unweighted integral.
	Integral(x0, x1 float64, weight Line) float64
}

// Constant is a Line that returns the same value everywhere.
type Constant float64

func (c Constant) Value(float64) float64 { return float64(c) }

func (c Constant) Integral(x0, x1 float64, weight Line) float64 {
	if weight == nil {
		return float64(c) * (x1 - x0)
	}
	return float64(c) * weight.Integral(x0, x1, nil)
}

// PiecewiseLogLinear interpolates a pillar table {x, y} with y > 0 using
// log-linear interpolation between bracketing pillars — the same technique
// as molib's interpolateDF, generalised from (date, discount factor) pairs
// to arbitrary (x, y) pillars so engine/curve's Static curve variant can
// drive its self-state off any externally supplied discount-factor table.
// Outside the pillar range the nearest segment's instantaneous rate is
// extrapolated flat.
type PiecewiseLogLinear struct {
	xs []float64
	ys []float64
}

// NewPiecewiseLogLinear builds a PiecewiseLogLinear from parallel, x-sorted
// slices. Returns ErrInvalidState if the slices are empty, mismatched in
// length, or any y is non-positive, rather than panicking: an empty or
// malformed pillar table is exactly the "empty interpolation table" case
// spec §7 names as an InvalidState trigger, not a programming error.
func NewPiecewiseLogLinear(xs, ys []float64) (*PiecewiseLogLinear, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil, fmt.Errorf("NewPiecewiseLogLinear: mismatched or empty pillar slices: %w", ErrInvalidState)
	}
	for _, y := range ys {
		if y <= 0 {
			return nil, fmt.Errorf("NewPiecewiseLogLinear: non-positive pillar value: %w", ErrInvalidState)
		}
	}
	return &PiecewiseLogLinear{xs: xs, ys: ys}, nil
}

func (p *PiecewiseLogLinear) bracket(x float64) (i0, i1 int) {
	n := len(p.xs)
	if n == 1 {
		return 0, 0
	}
	if x <= p.xs[0] {
		return 0, 1
	}
	if x >= p.xs[n-1] {
		return n - 2, n - 1
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if p.xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, hi
}

// Value implements Line via log-linear interpolation of the pillar table.
func (p *PiecewiseLogLinear) Value(x float64) float64 {
	i0, i1 := p.bracket(x)
	if i0 == i1 {
		return p.ys[i0]
	}
	x0, x1 := p.xs[i0], p.xs[i1]
	y0, y1 := p.ys[i0], p.ys[i1]
	if x1 == x0 {
		return y0
	}
	if x == x1 {
		return y1
	}
	rate := math.Log(y0/y1) / (x1 - x0)
	return y0 * math.Exp(-rate*(x-x0))
}

// Integral implements Line via composite Simpson's rule over a fixed grid —
// sufficient for the line's supporting role in cached-agent and curve code
// (spec §6 treats Integral as a black box; no example in the corpus
// implements adaptive quadrature, so a fixed-grid rule is the appropriate
// level of fidelity here).
func (p *PiecewiseLogLinear) Integral(x0, x1 float64, weight Line) float64 {
	const steps = 64
	if x1 == x0 {
		return 0
	}
	h := (x1 - x0) / steps
	f := func(x float64) float64 {
		v := p.Value(x)
		if weight != nil {
			v *= weight.Value(x)
		}
		return v
	}
	sum := f(x0) + f(x1)
	for i := 1; i < steps; i++ {
		x := x0 + float64(i)*h
		if i%2 == 0 {
			sum += 2 * f(x)
		} else {
			sum += 4 * f(x)
		}
	}
	return sum * h / 3
}
