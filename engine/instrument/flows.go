package instrument

import (
	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
)

// flowState is the per-row bookkeeping a Flows agent carries: whether the
// row's fixing has been captured yet, and the captured value.
type flowState struct {
	row      FlowRow
	fixed    bool
	fixing   float64
}

// Flows is the richer leg variant of spec §4.8: each row pays
// (Multiplier*fixing + Margin) * YearFrac at Pay, where fixing is sampled
// from index's scalar state once the accrual period closes (time reaches
// row.End) — an arrears fixing, matching the concrete scenario in spec §8
// item 4 where a Time-agent-driven rate r(90) is read at the row's End
// (90), not its Fix (30). index may be nil for rows carrying an explicit
// Fixing value already baked into FlowRow.Fixing instead.
type Flows struct {
	*agent.Base[State]
}

// NewFlows constructs a Flows leg off curve c, optionally reading
// per-row fixings from index (nil if every row already carries an
// explicit FlowRow.Fixing).
func NewFlows(c curve.Curve, index agent.Agent, rows CashflowList) *Flows {
	states := make([]*flowState, len(rows))
	for i, r := range rows {
		states[i] = &flowState{row: r}
	}
	deps := []agent.Agent{c}
	if index != nil {
		deps = append(deps, index)
	}
	readIndex := func() float64 {
		v, ok := index.State().(float64)
		if !ok {
			panic("instrument.Flows: index state is not float64")
		}
		return v
	}
	amountOf := func(fs *flowState) float64 {
		return fs.row.Multiplier*fs.fixing + fs.row.Margin
	}
	valueAt := func(b *agent.Base[State]) State {
		var value, flow float64
		allDone := true
		for _, fs := range states {
			if !fs.fixed && index != nil && !b.Time().Before(fs.row.End) {
				fs.fixing = readIndex()
				fs.fixed = true
			}
			if fs.row.Pay.AtOrBefore(b.Time()) {
				if fs.row.Pay == b.Time() {
					if !fs.fixed {
						fs.fixing = fs.row.Fixing
						fs.fixed = true
					}
					flow += amountOf(fs) * fs.row.YearFrac
				}
				continue
			}
			allDone = false
			fixing := fs.fixing
			if !fs.fixed {
				if index != nil {
					fixing = readIndex()
				} else {
					fixing = fs.row.Fixing
				}
			}
			amount := fs.row.Multiplier*fixing + fs.row.Margin
			value += amount * fs.row.YearFrac * c.DiscountAt(fs.row.Pay)
		}
		return State{Value: value, Flow: flow, Matured: allDone}
	}
	a := &Flows{}
	a.Base = agent.NewBase[State]("Flows", deps,
		func(b *agent.Base[State]) error {
			if len(states) == 0 {
				return ErrNotConfigured
			}
			b.SetState(valueAt(b))
			return nil
		},
		func(b *agent.Base[State]) {
			for _, fs := range states {
				fs.fixed = false
				fs.fixing = 0
			}
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
