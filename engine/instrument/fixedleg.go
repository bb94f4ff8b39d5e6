package instrument

import (
	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
)

// FixedLeg is an ordered list of dated fixed amounts (spec §4.8 "Fixed
// leg"): on update it emits the sum of amounts with Pay <= t not yet paid
// (Pay in (previous time, t]) as Flow, and values the remainder under the
// discounting curve.
type FixedLeg struct {
	*agent.Base[State]
}

// LegRow pairs a dated amount with its pay date for FixedLeg.
type LegRow struct {
	Pay    clock.Time
	Amount float64
}

// NewFixedLeg constructs a FixedLeg off curve c, paying rows in order. Rows
// need not be pre-sorted; the constructor sorts by Pay.
func NewFixedLeg(c curve.Curve, rows []LegRow) *FixedLeg {
	sorted := append([]LegRow{}, rows...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Pay.Before(sorted[j-1].Pay); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	valueAt := func(b *agent.Base[State]) State {
		var value, flow float64
		allPaid := true
		for _, r := range sorted {
			if r.Pay.AtOrBefore(b.Time()) {
				if r.Pay == b.Time() || b.Time().Sub(r.Pay) < b.DTime() {
					flow += r.Amount
				}
				continue
			}
			value += r.Amount * c.DiscountAt(r.Pay)
			allPaid = false
		}
		return State{Value: value, Flow: flow, Matured: allPaid}
	}
	a := &FixedLeg{}
	a.Base = agent.NewBase[State]("FixedLeg", agent.Single(c),
		func(b *agent.Base[State]) error {
			if len(sorted) == 0 {
				return ErrNotConfigured
			}
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
