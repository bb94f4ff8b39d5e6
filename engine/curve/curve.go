// Package curve implements the yield-curve family of spec §4.7: a common
// Discount()/DiscountAt(t) observable plus constant-rate, static, LIBOR
// market, swap-rate market, Hull-White, shifted, and combined variants, and
// the term/rolling/spot bond sub-agents derived from any of them.
//
// Every variant is adapted from molib's swap/curve bootstrap-then-query
// discipline: log-linear discount-factor interpolation
// (math.Log(df1/df2)/(t2-t1)), pillar-date bracketing, and the
// "compute once, serve many reads" split between bootstrap and DF lookup
// (DESIGN.md ledger, "Yield-curve family").
package curve

import (
	"math"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/line"
)

// Curve is the common observable every yield-curve variant exposes (spec
// §3 "Yield curve"): Discount is the rolling money-market numéraire (1.0 at
// reset, path-dependent); DiscountAt(t) prices a zero-coupon bond paying 1
// at t, valued at the curve's current time.
type Curve interface {
	agent.Agent
	Discount() float64
	DiscountAt(t clock.Time) float64
}

// core bundles the *agent.Base[float64] every curve variant embeds with
// the two closures that implement Discount/DiscountAt, following the same
// function-field injection used throughout engine/agent.
type core struct {
	*agent.Base[float64]
	numeraire  func() float64
	discountAt func(t clock.Time) float64
}

func (c *core) Discount() float64                  { return c.numeraire() }
func (c *core) DiscountAt(t clock.Time) float64 { return c.discountAt(t) }

// ConstantRate implements discount(t) = exp(-r*Δyears) with a constant
// short rate r (spec §4.7 "Constant-rate").
type ConstantRate struct {
	*core
	rate       float64
	n          float64
}

// NewConstantRate constructs a ConstantRate curve with the given constant
// short rate.
func NewConstantRate(rate float64) *ConstantRate {
	a := &ConstantRate{rate: rate}
	base := agent.NewBase[float64]("ConstantRateCurve", agent.Independent(),
		func(b *agent.Base[float64]) error {
			a.n = 1
			b.SetState(rate)
			return nil
		},
		func(b *agent.Base[float64]) {
			a.n = 1
			b.SetState(rate)
		},
		func(b *agent.Base[float64], t clock.Time) {
			yrs := b.Config().YearsSince(b.DTime())
			a.n *= math.Exp(rate * yrs)
			b.SetState(rate)
		},
	)
	a.core = &core{Base: base}
	a.core.numeraire = func() float64 { return a.n }
	a.core.discountAt = func(t clock.Time) float64 {
		yrs := base.Config().Years(base.Time(), t)
		return math.Exp(-rate * yrs)
	}
	return a
}

// StaticCurve is driven by a supplied discount-factor line interpolated
// externally; self-state is the instantaneous short rate implied by the
// line, log(df(t)/df(t+1))*ratio (spec §4.7 "Static").
type StaticCurve struct {
	*core
	ln line.Line
}

// NewStaticCurve constructs a StaticCurve over ln, a black-box discount
// factor line indexed by years-since-start. See FromSwapCurve for an
// adaptor wrapping molib's bootstrapped swap curve as such a line.
func NewStaticCurve(ln line.Line) *StaticCurve {
	a := &StaticCurve{ln: ln}
	shortRate := func(b *agent.Base[float64]) float64 {
		ratio := b.Config().YearFractionRatio
		if ratio == 0 {
			ratio = 365
		}
		t0 := b.Config().Years(b.Start(), b.Time())
		t1 := t0 + 1/ratio
		df0 := ln.Value(t0)
		df1 := ln.Value(t1)
		return math.Log(df0/df1) * ratio
	}
	base := agent.NewBase[float64]("StaticCurve", agent.Independent(),
		func(b *agent.Base[float64]) error {
			b.SetState(shortRate(b))
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(shortRate(b))
		},
		func(b *agent.Base[float64], t clock.Time) {
			b.SetState(shortRate(b))
		},
	)
	a.core = &core{Base: base}
	a.core.numeraire = func() float64 {
		return 1 / ln.Value(base.Config().Years(base.Start(), base.Time()))
	}
	a.core.discountAt = func(t clock.Time) float64 {
		dfNow := ln.Value(base.Config().Years(base.Start(), base.Time()))
		dfT := ln.Value(base.Config().Years(base.Start(), t))
		return dfT / dfNow
	}
	return a
}

// Bond sub-agents derived from any Curve (spec §4.7).

// TermBond is the value at current time of a bond maturing at a fixed T;
// becomes 1 (if redemption) or 0, and non-live, past maturity.
type TermBond struct {
	*agent.Base[float64]
}

// NewTermBond constructs a TermBond off c maturing at maturity. If
// redeem is true the bond pays 1 at maturity; otherwise it expires
// worthless (used to isolate a discount factor without a redemption
// cashflow).
func NewTermBond(c Curve, maturity clock.Time, redeem bool) *TermBond {
	a := &TermBond{}
	a.Base = agent.NewBase[float64]("TermBond", agent.Single(c),
		func(b *agent.Base[float64]) error {
			b.SetState(c.DiscountAt(maturity))
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(c.DiscountAt(maturity))
		},
		func(b *agent.Base[float64], t clock.Time) {
			if !t.Before(maturity) {
				if redeem {
					b.SetState(1)
				} else {
					b.SetState(0)
				}
				b.SetLive(false)
				return
			}
			b.SetState(c.DiscountAt(maturity))
		},
	)
	a.RequireSingleDep()
	return a
}

// RollingBond exposes discount(time + tenor) at every step (spec §4.7
// "Rolling bond").
type RollingBond struct {
	*agent.Base[float64]
}

// NewRollingBond constructs a RollingBond off c with a constant rolling
// tenor.
func NewRollingBond(c Curve, tenor clock.Duration) *RollingBond {
	a := &RollingBond{}
	a.Base = agent.NewBase[float64]("RollingBond", agent.Single(c),
		func(b *agent.Base[float64]) error {
			b.SetState(c.DiscountAt(b.Start().Add(tenor)))
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(c.DiscountAt(b.Start().Add(tenor)))
		},
		func(b *agent.Base[float64], t clock.Time) {
			b.SetState(c.DiscountAt(t.Add(tenor)))
		},
	)
	a.RequireSingleDep()
	return a
}

// SpotBond exposes the rolling numéraire Discount() at every step (spec
// §4.7 "Spot bond").
type SpotBond struct {
	*agent.Base[float64]
}

// NewSpotBond constructs a SpotBond off c.
func NewSpotBond(c Curve) *SpotBond {
	a := &SpotBond{}
	a.Base = agent.NewBase[float64]("SpotBond", agent.Single(c),
		func(b *agent.Base[float64]) error {
			b.SetState(c.Discount())
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(c.Discount())
		},
		func(b *agent.Base[float64], t clock.Time) {
			b.SetState(c.Discount())
		},
	)
	a.RequireSingleDep()
	return a
}
