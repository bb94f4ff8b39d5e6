package instrument

import (
	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
)

// FixedCoupon is a single coupon paying notional*rate*yearFrac at pay,
// valued like FixedPayment before then (spec §4.8 "Fixed... coupon").
type FixedCoupon struct {
	*agent.Base[State]
}

// NewFixedCoupon constructs a FixedCoupon over [start, end], paying at pay
// off curve c.
func NewFixedCoupon(c curve.Curve, notional, rate float64, start, end, pay clock.Time) *FixedCoupon {
	var amount float64
	a := &FixedCoupon{}
	valueAt := func(b *agent.Base[State]) State {
		if !b.Time().Before(pay) {
			return State{Flow: amount, Matured: true}
		}
		return State{Value: amount * c.DiscountAt(pay)}
	}
	a.Base = agent.NewBase[State]("FixedCoupon", agent.Single(c),
		func(b *agent.Base[State]) error {
			amount = notional * rate * b.Config().Years(start, end)
			b.SetState(valueAt(b))
			return nil
		},
		func(b *agent.Base[State]) {
			b.SetState(valueAt(b))
		},
		func(b *agent.Base[State], t clock.Time) {
			s := valueAt(b)
			b.SetState(s)
			if s.Matured {
				b.SetLive(false)
			}
		},
	)
	a.RequireSingleDep()
	return a
}

// VanillaFloatCoupon fixes its forward rate at fix as df(start)/df(end)-1
// read off curve c, then pays notional*rate*yearFrac at pay (spec §4.8
// "vanilla fixing reads forward df(start)/df(end)-1 at fixing time").
type VanillaFloatCoupon struct {
	*agent.Base[State]
	fixedRate float64
	hasFixed  bool
}

// NewVanillaFloatCoupon constructs a VanillaFloatCoupon accruing over
// [start, end], fixing at fix, paying margin-adjusted notional*(rate+
// margin)*yearFrac at pay, off curve c.
func NewVanillaFloatCoupon(c curve.Curve, notional, margin float64, fix, start, end, pay clock.Time) *VanillaFloatCoupon {
	a := &VanillaFloatCoupon{}
	fixRate := func(b *agent.Base[State]) float64 {
		if !a.hasFixed && !b.Time().Before(fix) {
			yrs := b.Config().Years(start, end)
			df0, df1 := c.DiscountAt(start), c.DiscountAt(end)
			a.fixedRate = (df0/df1 - 1) / yrs
			a.hasFixed = true
		}
		return a.fixedRate
	}
	valueAt := func(b *agent.Base[State]) State {
		if !b.Time().Before(pay) {
			yrs := b.Config().Years(start, end)
			amount := notional * (a.fixedRate + margin) * yrs
			return State{Flow: amount, Matured: true}
		}
		if !a.hasFixed {
			// not yet fixed: project the forward as of today.
			yrs := b.Config().Years(start, end)
			df0, df1 := c.DiscountAt(start), c.DiscountAt(end)
			proj := (df0/df1 - 1) / yrs
			amount := notional * (proj + margin) * yrs
			return State{Value: amount * c.DiscountAt(pay)}
		}
		yrs := b.Config().Years(start, end)
		amount := notional * (a.fixedRate + margin) * yrs
		return State{Value: amount * c.DiscountAt(pay)}
	}
	a.Base = agent.NewBase[State]("VanillaFloatCoupon", agent.Single(c),
		func(b *agent.Base[State]) error {
			a.hasFixed = false
			fixRate(b)
			b.SetState(valueAt(b))
			return nil
		},
		func(b *agent.Base[State]) {
			a.hasFixed = false
			fixRate(b)
			b.SetState(valueAt(b))
		},
		func(b *agent.Base[State], t clock.Time) {
			fixRate(b)
			s := valueAt(b)
			b.SetState(s)
			if s.Matured {
				b.SetLive(false)
			}
		},
	)
	a.RequireSingleDep()
	return a
}

// RateSource is the external index contract an IndexedFloatCoupon reads
// its fixing from (spec §4.8 "indexed reads an external index process'
// state"). Anything exposing a scalar-state agent view satisfies it; see
// SPEC_FULL.md §6.3 for marketdata/krx.MapReferenceRateFeed adapted to
// this shape.
type RateSource interface {
	agent.Agent
	Rate() float64
}

// IndexedFloatCoupon reads its fixing from an external index process
// (spec §4.8), rather than computing a forward off the discounting curve
// itself — used when the coupon's index (e.g. an overnight-rate compound,
// or a market-data feed wrapped in an agent) differs from the discounting
// curve.
type IndexedFloatCoupon struct {
	*agent.Base[State]
	fixedRate float64
	hasFixed  bool
}

// NewIndexedFloatCoupon constructs an IndexedFloatCoupon over [start, end],
// fixing off index at fix, paying at pay, discounted by c.
func NewIndexedFloatCoupon(c curve.Curve, index RateSource, notional, margin float64, fix, start, end, pay clock.Time) *IndexedFloatCoupon {
	a := &IndexedFloatCoupon{}
	deps := []agent.Agent{c, index}
	valueAt := func(b *agent.Base[State]) State {
		if !a.hasFixed && !b.Time().Before(fix) {
			a.fixedRate = index.Rate()
			a.hasFixed = true
		}
		yrs := b.Config().Years(start, end)
		if !b.Time().Before(pay) {
			amount := notional * (a.fixedRate + margin) * yrs
			return State{Flow: amount, Matured: true}
		}
		rate := a.fixedRate
		if !a.hasFixed {
			rate = index.Rate()
		}
		amount := notional * (rate + margin) * yrs
		return State{Value: amount * c.DiscountAt(pay)}
	}
	a.Base = agent.NewBase[State]("IndexedFloatCoupon", deps,
		func(b *agent.Base[State]) error {
			a.hasFixed = false
			b.SetState(valueAt(b))
			return nil
		},
		func(b *agent.Base[State]) {
			a.hasFixed = false
			b.SetState(valueAt(b))
		},
		func(b *agent.Base[State], t clock.Time) {
			s := valueAt(b)
			b.SetState(s)
			if s.Matured {
				b.SetLive(false)
			}
		},
	)
	return a
}
