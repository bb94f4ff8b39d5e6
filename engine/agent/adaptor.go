package agent

import "github.com/meenmo/molibsim/engine/clock"

// StateAdaptor wraps a composite-state parent agent and a lens function,
// presenting a scalar-state view that forwards every lifecycle call to the
// parent (spec §4.11). Used to attach scalar observers to instrument
// states, e.g. projecting an instrument's {value, flow, matured} composite
// down to just its value.
//
// Grounded on instruments/bonds/cashflow.go's CashflowCents.ToCashflow
// projection-method pattern: one small conversion function standing in for
// a dedicated adaptor type per field.
type StateAdaptor struct {
	*Base[float64]
	parent Agent
}

// NewStateAdaptor constructs a StateAdaptor over parent using lens to
// project parent's type-erased state to a float64.
func NewStateAdaptor(parent Agent, lens func(any) float64) *StateAdaptor {
	a := &StateAdaptor{parent: parent}
	a.Base = NewBase[float64]("StateAdaptor", Single(parent),
		func(b *Base[float64]) error {
			b.SetState(lens(parent.State()))
			return nil
		},
		func(b *Base[float64]) {
			b.SetState(lens(parent.State()))
		},
		func(b *Base[float64], t clock.Time) {
			b.SetState(lens(parent.State()))
			b.SetLive(parent.IsLive())
		},
	)
	a.RequireSingleDep()
	return a
}

// Parent returns the wrapped composite-state agent.
func (a *StateAdaptor) Parent() Agent { return a.parent }
