package instrument

import (
	"math"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
)

// RiskyLeg wraps a fixed leg with a default draw against a survival curve
// S (spec §4.8 "Risky leg"). Each step draws U ~ U(0,1); if U > exp(-h*dt)
// (where h is S's own self-state — the curve family's §4.7 convention of
// exposing an implied short rate as state, reused here as the hazard rate
// when S is built from a survival-probability line), the leg defaults:
// it emits notional*recoveryRate as Flow and transitions Matured/non-live
// for the remainder of the path.
type RiskyLeg struct {
	*agent.Base[State]
}

// NewRiskyLeg constructs a RiskyLeg wrapping leg (typically a *FixedLeg),
// drawing defaults off survival curve s, paying recoveryRate*notional on
// default via the shared uniform variate agent u.
func NewRiskyLeg(leg agent.Agent, s curve.Curve, u agent.Agent, notional, recoveryRate float64) *RiskyLeg {
	legState := func() State {
		st, ok := leg.State().(State)
		if !ok {
			panic("instrument.RiskyLeg: wrapped leg state is not instrument.State")
		}
		return st
	}
	hazard := func() float64 {
		v, ok := s.State().(float64)
		if !ok {
			panic("instrument.RiskyLeg: survival curve state is not float64")
		}
		return v
	}
	draw := func() float64 {
		v, ok := u.State().(float64)
		if !ok {
			panic("instrument.RiskyLeg: uniform variate state is not float64")
		}
		return v
	}
	a := &RiskyLeg{}
	a.Base = agent.NewBase[State]("RiskyLeg", agent.Multiple(leg, s, u),
		func(b *agent.Base[State]) error {
			b.SetState(legState())
			return nil
		},
		func(b *agent.Base[State]) {
			b.SetState(legState())
		},
		func(b *agent.Base[State], t clock.Time) {
			h := hazard()
			dt := b.Config().YearsSince(b.DTime())
			if draw() > math.Exp(-h*dt) {
				b.SetState(State{Flow: notional * recoveryRate, Matured: true})
				b.SetLive(false)
				return
			}
			s := legState()
			b.SetState(s)
			if s.Matured || !leg.IsLive() {
				b.SetLive(false)
			}
		},
	)
	return a
}
