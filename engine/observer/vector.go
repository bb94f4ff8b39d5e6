package observer

import "github.com/meenmo/molibsim/engine/agent"

// ObserverVector is a sequence of sub-observers tracked in lock-step
// (spec §4.10 "ObserverVector"): every member is bound to the same root
// and receives the same Observe/End calls, letting one fix in a
// simulator's per-fix observer slice carry, say, a Statistics and a
// Histogram over the same underlying state at once.
type ObserverVector struct {
	Members []interface {
		Init(root agent.Agent) error
		Observe(weight float64) error
		End() error
	}
}

// NewObserverVector constructs an ObserverVector wrapping members.
func NewObserverVector(members ...interface {
	Init(root agent.Agent) error
	Observe(weight float64) error
	End() error
}) *ObserverVector {
	return &ObserverVector{Members: members}
}

func (v *ObserverVector) Init(root agent.Agent) error {
	for _, m := range v.Members {
		if err := m.Init(root); err != nil {
			return err
		}
	}
	return nil
}

func (v *ObserverVector) Observe(weight float64) error {
	for _, m := range v.Members {
		if err := m.Observe(weight); err != nil {
			return err
		}
	}
	return nil
}

func (v *ObserverVector) End() error {
	for _, m := range v.Members {
		if err := m.End(); err != nil {
			return err
		}
	}
	return nil
}
