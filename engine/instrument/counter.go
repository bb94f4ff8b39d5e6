package instrument

import (
	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
)

// Counter is the shared-ownership survivor count every member of a
// portfolio construct reads and PortfolioEvents decrements (spec §4.8
// "Portfolio fixed leg... using a shared counter agent", "Portfolio
// events... decrements the shared counter"). It is a plain Independent
// agent so the simulator's DAG traversal advances it exactly once per
// time point no matter how many legs cite it (spec §5 "Graph idempotence").
type Counter struct {
	*agent.Base[float64]
}

// NewCounter constructs a Counter starting at n survivors.
func NewCounter(n float64) *Counter {
	a := &Counter{}
	a.Base = agent.NewBase[float64]("Counter", agent.Independent(),
		func(b *agent.Base[float64]) error {
			b.SetState(n)
			return nil
		},
		nil,
		func(b *agent.Base[float64], t clock.Time) {
			// decremented out-of-band by PortfolioEvents' Update, which
			// runs before this node is read by any leg in the same step
			// (both are driven by the same simulator tick).
		},
	)
	return a
}

// Decrement reduces the counter's state by k survivors, floored at zero.
func (c *Counter) Decrement(k float64) {
	v := c.TypedState() - k
	if v < 0 {
		v = 0
	}
	c.SetState(v)
}
