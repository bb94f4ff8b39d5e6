package instrument

import (
	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
)

func asState(a agent.Agent) State {
	v, ok := a.State().(State)
	if !ok {
		panic("instrument: dependency state is not instrument.State")
	}
	return v
}

// PortfolioFixedLeg scales a per-unit fixed leg by the number of surviving
// pool members, averaged over the step's start/end counts (spec §4.8
// "Portfolio fixed leg... scales leg by number of surviving members...
// averaged over step endpoints; applies recovery rate to defaults").
type PortfolioFixedLeg struct {
	*agent.Base[State]
	prevCount float64
}

// NewPortfolioFixedLeg constructs a PortfolioFixedLeg wrapping leg (a
// per-unit-notional fixed or flows leg), tracking survivors via counter,
// paying recoveryRate*unitNotional per default realised by events this
// step.
func NewPortfolioFixedLeg(leg agent.Agent, counter *Counter, events *PortfolioEvents, recoveryRate, unitNotional float64) *PortfolioFixedLeg {
	a := &PortfolioFixedLeg{}
	a.Base = agent.NewBase[State]("PortfolioFixedLeg", agent.Multiple(leg, counter, events),
		func(b *agent.Base[State]) error {
			a.prevCount = counter.TypedState()
			b.SetState(asState(leg).Scale(a.prevCount))
			return nil
		},
		func(b *agent.Base[State]) {
			a.prevCount = counter.TypedState()
			b.SetState(asState(leg).Scale(a.prevCount))
		},
		func(b *agent.Base[State], t clock.Time) {
			endCount := counter.TypedState()
			avg := (a.prevCount + endCount) / 2
			scaled := asState(leg).Scale(avg)
			scaled.Flow += events.TypedState() * recoveryRate * unitNotional
			b.SetState(scaled)
			a.prevCount = endCount
			if endCount <= 0 {
				b.SetLive(false)
			}
		},
	)
	return a
}

// PortfolioEventLeg pays unitPay per default realised by the shared event
// process, and values expected future payments via trapezoidal integration
// of df(u)*(-dS/du) across the remaining life up to horizon (spec §4.8
// "Portfolio event leg... values future expected payments via trapezoidal
// integration of df · dS across the remaining life").
type PortfolioEventLeg struct {
	*agent.Base[State]
}

// NewPortfolioEventLeg constructs a PortfolioEventLeg off discount curve c
// and survival curve s, integrating out to horizon over the given number
// of grid steps (at least 2).
func NewPortfolioEventLeg(c curve.Curve, s curve.Curve, counter *Counter, events *PortfolioEvents, unitPay float64, horizon clock.Time, steps int) *PortfolioEventLeg {
	if steps < 2 {
		steps = 32
	}
	expectedFuture := func(b *agent.Base[State]) float64 {
		t0 := b.Time()
		if !t0.Before(horizon) {
			return 0
		}
		totalDays := horizon.Sub(t0)
		stepDays := clock.Duration(float64(totalDays) / float64(steps))
		if stepDays <= 0 {
			stepDays = 1
		}
		prevS, prevDF := 1.0, c.DiscountAt(t0)
		var total float64
		for i := 1; i <= steps; i++ {
			next := t0.Add(clock.Duration(i) * stepDays)
			if i == steps || !next.Before(horizon) {
				next = horizon
			}
			sNext := s.DiscountAt(next)
			dfNext := c.DiscountAt(next)
			density := prevS - sNext
			total += 0.5 * (prevDF + dfNext) * density
			prevS, prevDF = sNext, dfNext
			if !next.Before(horizon) {
				break
			}
		}
		return total
	}
	valueAt := func(b *agent.Base[State]) State {
		survivors := counter.TypedState()
		return State{
			Value:   survivors * unitPay * expectedFuture(b),
			Flow:    events.TypedState() * unitPay,
			Matured: !b.Time().Before(horizon),
		}
	}
	a := &PortfolioEventLeg{}
	a.Base = agent.NewBase[State]("PortfolioEventLeg", agent.Multiple(c, s, counter, events),
		func(b *agent.Base[State]) error {
			b.SetState(valueAt(b))
			return nil
		},
		func(b *agent.Base[State]) {
			b.SetState(valueAt(b))
		},
		func(b *agent.Base[State], t clock.Time) {
			st := valueAt(b)
			b.SetState(st)
			if st.Matured {
				b.SetLive(false)
			}
		},
	)
	return a
}
