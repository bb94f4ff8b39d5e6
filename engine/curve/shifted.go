package curve

import (
	"fmt"
	"math"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/line"
)

// ShiftMode selects how Shifted composes its base curve with the shift
// line (spec §4.7 "Shifted: additive or multiplicative curve composition").
type ShiftMode int

const (
	// Additive adds the shift (expressed as a short-rate spread) to the
	// base curve's short rate before discounting.
	Additive ShiftMode = iota
	// Multiplicative scales the base curve's discount factor by the
	// shift line's value directly.
	Multiplicative
)

// Shifted composes a base curve with an interpolated shift function (spec
// §4.7). Additive mode adds shift(years) to the base's implied short rate;
// Multiplicative mode multiplies the base's discount factor by
// shift(years) directly. Discount() (the rolling numéraire) is unsupported
// under Additive mode — the spec's own §4.7 design note ("Unsupported:
// e.g. additive-rate shift combined with a discount query") — since an
// additive short-rate spread has no closed-form effect on a
// path-accumulated numéraire without re-deriving it step by step, which
// the spec does not specify; Multiplicative mode supports it directly.
type Shifted struct {
	*core
	base  Curve
	shift line.Line
	mode  ShiftMode
}

// NewShifted constructs a Shifted curve over base, composed with shift
// under mode.
func NewShifted(base Curve, shift line.Line, mode ShiftMode) *Shifted {
	a := &Shifted{base: base, shift: shift, mode: mode}
	deps := []agent.Agent{base}
	stateFn := func(b *agent.Base[float64]) float64 {
		baseState := stateOf(base)
		yrs := b.Config().Years(b.Start(), b.Time())
		switch mode {
		case Additive:
			return baseState + shift.Value(yrs)
		default:
			return baseState
		}
	}
	basev := agent.NewBase[float64]("ShiftedCurve", deps,
		func(b *agent.Base[float64]) error {
			b.SetState(stateFn(b))
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(stateFn(b))
		},
		func(b *agent.Base[float64], t clock.Time) {
			b.SetState(stateFn(b))
		},
	)
	a.core = &core{Base: basev}
	a.core.numeraire = func() float64 {
		switch mode {
		case Multiplicative:
			yrs := basev.Config().Years(basev.Start(), basev.Time())
			return base.Discount() * shift.Value(yrs)
		default:
			panic(fmt.Errorf("Shifted.Discount: %w", agent.ErrUnsupported))
		}
	}
	a.core.discountAt = func(t clock.Time) float64 {
		switch mode {
		case Multiplicative:
			yrsT := basev.Config().Years(basev.Start(), t)
			return base.DiscountAt(t) * shift.Value(yrsT)
		default:
			yrsNow := basev.Config().Years(basev.Start(), basev.Time())
			tau := basev.Config().Years(basev.Time(), t)
			return base.DiscountAt(t) * math.Exp(-shift.Value(yrsNow)*tau)
		}
	}
	return a
}
