package instrument

import (
	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
)

// Forward is the linear payoff notional*(S-K) at expiry, discounted before
// then (spec §4.8 "Forward"). The strike latches from the underlying
// agent's state at strikeTime, which is typically the instrument's
// configured start; notional is the fixed constructor argument and does
// not latch from any agent.
type Forward struct {
	*agent.Base[State]
	strike    float64
	hasStrike bool
}

// NewForward constructs a Forward off underlying (a scalar-state agent),
// latching the strike at strikeTime, discounting via c, paying at expiry.
func NewForward(c curve.Curve, underlying agent.Agent, notional float64, strikeTime, expiry clock.Time) *Forward {
	a := &Forward{}
	spotOf := func() float64 {
		v, ok := underlying.State().(float64)
		if !ok {
			panic("instrument.Forward: underlying state is not float64")
		}
		return v
	}
	latch := func(b *agent.Base[State]) {
		if !a.hasStrike && !b.Time().Before(strikeTime) {
			a.strike = spotOf()
			a.hasStrike = true
		}
	}
	valueAt := func(b *agent.Base[State]) State {
		if !b.Time().Before(expiry) {
			return State{Flow: notional * (spotOf() - a.strike), Matured: true}
		}
		return State{Value: notional * (spotOf() - a.strike) * c.DiscountAt(expiry)}
	}
	a.Base = agent.NewBase[State]("Forward", agent.Multiple(c, underlying),
		func(b *agent.Base[State]) error {
			latch(b)
			b.SetState(valueAt(b))
			return nil
		},
		func(b *agent.Base[State]) {
			a.hasStrike = false
			latch(b)
			b.SetState(valueAt(b))
		},
		func(b *agent.Base[State], t clock.Time) {
			latch(b)
			st := valueAt(b)
			b.SetState(st)
			if st.Matured {
				b.SetLive(false)
			}
		},
	)
	return a
}
