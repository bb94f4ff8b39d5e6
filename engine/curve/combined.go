package curve

import (
	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
)

// Combined multiplies two curves' discount factors together; its
// self-state is the sum of the two components' short rates (spec §4.7
// "Combined: product of two curves' discount factors; self-state = sum of
// component short rates"). Used e.g. to stack a base rates curve with a
// credit-spread curve.
type Combined struct {
	*core
	a, b Curve
}

// NewCombined constructs a Combined curve over a and b.
func NewCombined(a, b Curve) *Combined {
	c := &Combined{a: a, b: b}
	deps := []agent.Agent{a, b}
	basev := agent.NewBase[float64]("CombinedCurve", deps,
		func(bb *agent.Base[float64]) error {
			bb.SetState(stateOf(a) + stateOf(b))
			return nil
		},
		func(bb *agent.Base[float64]) {
			bb.SetState(stateOf(a) + stateOf(b))
		},
		func(bb *agent.Base[float64], t clock.Time) {
			bb.SetState(stateOf(a) + stateOf(b))
		},
	)
	c.core = &core{Base: basev}
	c.core.numeraire = func() float64 { return a.Discount() * b.Discount() }
	c.core.discountAt = func(t clock.Time) float64 { return a.DiscountAt(t) * b.DiscountAt(t) }
	return c
}
