package curve

import (
	"math"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
)

func stateOf(a agent.Agent) float64 {
	v, ok := a.State().(float64)
	if !ok {
		panic("curve: dependency state is not float64")
	}
	return v
}

// activeIndex returns the index i such that tenors[i] <= t < tenors[i+1],
// clamped to the grid's ends.
func activeIndex(tenors []clock.Time, t clock.Time) int {
	i := 0
	for i+1 < len(tenors) && tenors[i+1].AtOrBefore(t) {
		i++
	}
	return i
}

// LIBORMarket is a tenor grid with one forward-rate agent per interval
// (spec §4.7 "LIBOR market"): Discount rolls the numéraire by the
// currently-active forward rate; DiscountAt composes piecewise-flat
// forwards across every sub-interval between the curve's current time and
// t.
type LIBORMarket struct {
	*core
	tenors []clock.Time
	rates  []agent.Agent
	n      float64
}

// NewLIBORMarket constructs a LIBORMarket curve. tenors must be strictly
// increasing and len(tenors) == len(rateAgents); rateAgents[i] is the
// forward rate applicable on [tenors[i], tenors[i+1]), with the last entry
// extending indefinitely past the final tenor.
func NewLIBORMarket(tenors []clock.Time, rateAgents []agent.Agent) *LIBORMarket {
	deps := append([]agent.Agent{}, rateAgents...)
	a := &LIBORMarket{tenors: tenors, rates: rateAgents}
	activeRate := func(t clock.Time) float64 {
		return stateOf(a.rates[activeIndex(a.tenors, t)])
	}
	base := agent.NewBase[float64]("LIBORMarketCurve", agent.Multiple(deps...),
		func(b *agent.Base[float64]) error {
			if len(tenors) == 0 || len(tenors) != len(rateAgents) {
				return agent.ErrInvalidSchedule
			}
			for i := 1; i < len(tenors); i++ {
				if !tenors[i-1].Before(tenors[i]) {
					return agent.ErrInvalidSchedule
				}
			}
			a.n = 1
			b.SetState(activeRate(b.Start()))
			return nil
		},
		func(b *agent.Base[float64]) {
			a.n = 1
			b.SetState(activeRate(b.Start()))
		},
		func(b *agent.Base[float64], t clock.Time) {
			rate := activeRate(b.Time())
			yrs := b.Config().YearsSince(b.DTime())
			a.n *= math.Exp(rate * yrs)
			b.SetState(activeRate(t))
		},
	)
	a.core = &core{Base: base}
	a.core.numeraire = func() float64 { return a.n }
	a.core.discountAt = func(t clock.Time) float64 {
		cur := base.Time()
		if !cur.Before(t) {
			return 1
		}
		total := 0.0
		idx := activeIndex(a.tenors, cur)
		segStart := cur
		for segStart.Before(t) {
			segEnd := t
			if idx+1 < len(a.tenors) && a.tenors[idx+1].Before(t) {
				segEnd = a.tenors[idx+1]
			}
			total += stateOf(a.rates[idx]) * base.Config().Years(segStart, segEnd)
			segStart = segEnd
			if idx+1 < len(a.tenors) {
				idx++
			}
		}
		return math.Exp(-total)
	}
	return a
}

// SwapRateMarket holds one rate agent per listed maturity tenor (spec §4.7
// "Swap-rate market"): DiscountAt(t) = exp(-r(T*)*years(t)) where T* is the
// largest listed tenor <= t (the first tenor if t precedes every listed
// maturity).
type SwapRateMarket struct {
	*core
	tenors []clock.Time
	rates  []agent.Agent
	n      float64
}

// NewSwapRateMarket constructs a SwapRateMarket curve over strictly
// increasing tenors, one rate agent per tenor.
func NewSwapRateMarket(tenors []clock.Time, rateAgents []agent.Agent) *SwapRateMarket {
	deps := append([]agent.Agent{}, rateAgents...)
	a := &SwapRateMarket{tenors: tenors, rates: rateAgents}
	anchorIndex := func(t clock.Time) int {
		idx := 0
		for i, tenor := range a.tenors {
			if tenor.AtOrBefore(t) {
				idx = i
			}
		}
		return idx
	}
	base := agent.NewBase[float64]("SwapRateMarketCurve", agent.Multiple(deps...),
		func(b *agent.Base[float64]) error {
			if len(tenors) == 0 || len(tenors) != len(rateAgents) {
				return agent.ErrInvalidSchedule
			}
			for i := 1; i < len(tenors); i++ {
				if !tenors[i-1].Before(tenors[i]) {
					return agent.ErrInvalidSchedule
				}
			}
			a.n = 1
			b.SetState(stateOf(a.rates[anchorIndex(b.Start())]))
			return nil
		},
		func(b *agent.Base[float64]) {
			a.n = 1
			b.SetState(stateOf(a.rates[anchorIndex(b.Start())]))
		},
		func(b *agent.Base[float64], t clock.Time) {
			rate := stateOf(a.rates[anchorIndex(b.Time())])
			yrs := b.Config().YearsSince(b.DTime())
			a.n *= math.Exp(rate * yrs)
			b.SetState(stateOf(a.rates[anchorIndex(t)]))
		},
	)
	a.core = &core{Base: base}
	a.core.numeraire = func() float64 { return a.n }
	a.core.discountAt = func(t clock.Time) float64 {
		r := stateOf(a.rates[anchorIndex(t)])
		yrs := base.Config().Years(base.Time(), t)
		return math.Exp(-r * yrs)
	}
	return a
}
