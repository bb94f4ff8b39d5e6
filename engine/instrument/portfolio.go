package instrument

import (
	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
)

func weightOf(w agent.Agent) float64 {
	if w == nil {
		return 1
	}
	v, ok := w.State().(float64)
	if !ok {
		panic("instrument.Portfolio: weight state is not float64")
	}
	return v
}

// Portfolio is the weighted sum of instrument states (spec §4.8
// "Portfolio — weighted sum of instrument states; if a cash account is
// attached, instrument flows are routed to the account and the
// portfolio's own flow is zeroed (self-financing)"). Weights may
// themselves be agents (e.g. a notional schedule), not just constants.
type Portfolio struct {
	*agent.Base[State]
}

// NewPortfolio constructs a Portfolio over instruments, each scaled by the
// parallel weights entry (nil entries default to weight 1). If cash is
// non-nil, it must already have every instrument wired as a synchronous
// flow (via NewCashAccount's syncFlows) or fed asynchronously (via a
// FlowConnector); the portfolio itself only zeroes its own Flow and adds
// cash.Value to its aggregate Value in that case, matching the
// self-financing invariant (spec §8 "Portfolio linearity").
func NewPortfolio(instruments []agent.Agent, weights []agent.Agent, cash *CashAccount) *Portfolio {
	deps := append([]agent.Agent{}, instruments...)
	deps = append(deps, weights...)
	if cash != nil {
		deps = append(deps, cash)
	}
	valueAt := func() State {
		var value, flow float64
		allMatured := len(instruments) > 0
		for i, instr := range instruments {
			var w agent.Agent
			if i < len(weights) {
				w = weights[i]
			}
			st := asState(instr)
			value += weightOf(w) * st.Value
			flow += weightOf(w) * st.Flow
			if !st.Matured {
				allMatured = false
			}
		}
		if cash != nil {
			value += cash.TypedState().Value
			flow = 0
		}
		return State{Value: value, Flow: flow, Matured: allMatured}
	}
	a := &Portfolio{}
	a.Base = agent.NewBase[State]("Portfolio", deps,
		func(b *agent.Base[State]) error {
			if len(instruments) == 0 {
				return ErrNotConfigured
			}
			b.SetState(valueAt())
			return nil
		},
		func(b *agent.Base[State]) {
			b.SetState(valueAt())
		},
		func(b *agent.Base[State], t clock.Time) {
			st := valueAt()
			b.SetState(st)
			if st.Matured {
				b.SetLive(false)
			}
		},
	)
	return a
}
