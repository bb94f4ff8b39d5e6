package instrument

import (
	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
)

// FixedPayment is a single dated payment (spec §4.8 "Fixed payment"):
// before the pay date, Value = amount*df(pay); at the pay date, Flow =
// amount, Value = 0, Matured = true.
type FixedPayment struct {
	*agent.Base[State]
}

// NewFixedPayment constructs a FixedPayment of amount, settling at pay,
// discounted off curve c.
func NewFixedPayment(c curve.Curve, amount float64, pay clock.Time) *FixedPayment {
	a := &FixedPayment{}
	valueAt := func(b *agent.Base[State]) State {
		if !b.Time().Before(pay) {
			return State{Flow: amount, Matured: true}
		}
		return State{Value: amount * c.DiscountAt(pay)}
	}
	a.Base = agent.NewBase[State]("FixedPayment", agent.Single(c),
		func(b *agent.Base[State]) error {
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
