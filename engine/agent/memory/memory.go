// Package memory implements the memory and lookback agents (spec §4.5):
// trigger-list memory, ramp-triggered memory, and a sliding-window
// lookback with a reducer. molib has no streaming/window code of its own;
// the FIFO-of-pairs-plus-lookup-map bookkeeping style here follows
// swap/curve.go's paymentDates/map-of-date discipline — an ordered slice
// maintained alongside the data it indexes (DESIGN.md ledger entry).
package memory

import (
	"math"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
)

func stateOf(a agent.Agent) float64 {
	v, ok := a.State().(float64)
	if !ok {
		panic("memory: dependency state is not float64")
	}
	return v
}

// Trigger memory (spec §4.5 "Memory"): configured with a strictly
// increasing list of trigger times. On Update(t), if t has reached the
// next trigger, the child's state is snapped into self-state and the
// trigger cursor advances past every trigger <= t.
type Trigger struct {
	*agent.Base[float64]
	triggers      []clock.Time
	cursor        int
	driveAlways   bool
}

// NewTrigger constructs a Trigger memory agent over child, firing at each
// time in triggers (which must be strictly increasing). child is an
// ordinary dependency, so Base.Update advances it on every Update, trigger
// time or not, whatever driveAlways says; driveAlways is stored but does
// not change what the agent does.
func NewTrigger(child agent.Agent, triggers []clock.Time, driveAlways bool) *Trigger {
	a := &Trigger{triggers: triggers, driveAlways: driveAlways}
	a.Base = agent.NewBase[float64]("TriggerMemory", agent.Single(child),
		func(b *agent.Base[float64]) error {
			if len(triggers) == 0 {
				return agent.ErrNotConfigured
			}
			for i := 1; i < len(triggers); i++ {
				if !triggers[i-1].Before(triggers[i]) {
					return agent.ErrInvalidSchedule
				}
			}
			b.SetState(stateOf(child))
			return nil
		},
		func(b *agent.Base[float64]) {
			a.cursor = 0
			b.SetState(stateOf(child))
		},
		func(b *agent.Base[float64], t clock.Time) {
			fired := false
			for a.cursor < len(a.triggers) && a.triggers[a.cursor].AtOrBefore(t) {
				a.cursor++
				fired = true
			}
			if !fired && a.driveAlways {
				// child already advanced by Base.Update's dependency pass;
				// nothing further to do besides leaving self-state as-is.
				return
			}
			if fired {
				b.SetState(stateOf(child))
			}
		},
	)
	a.RequireSingleDep()
	return a
}

// Ramp memory (spec §4.5 "Ramp memory"): fires whenever the signal agent's
// state has increased since the previous step, rather than on a pre-set
// time list.
type Ramp struct {
	*agent.Base[float64]
	prevSignal float64
}

// NewRamp constructs a Ramp memory agent: value is snapped from valueAgent
// whenever signalAgent's state increases relative to its previous value.
func NewRamp(valueAgent, signalAgent agent.Agent) *Ramp {
	a := &Ramp{}
	a.Base = agent.NewBase[float64]("RampMemory", agent.Multiple(valueAgent, signalAgent),
		func(b *agent.Base[float64]) error {
			a.prevSignal = stateOf(signalAgent)
			b.SetState(stateOf(valueAgent))
			return nil
		},
		func(b *agent.Base[float64]) {
			a.prevSignal = stateOf(signalAgent)
			b.SetState(stateOf(valueAgent))
		},
		func(b *agent.Base[float64], t clock.Time) {
			sig := stateOf(signalAgent)
			if sig > a.prevSignal {
				b.SetState(stateOf(valueAgent))
			}
			a.prevSignal = sig
		},
	)
	return a
}

// Reducer summarises the values currently held in a Lookback window (spec
// §4.5 "first, sum, mean, stddev").
type Reducer func([]float64) float64

// First returns the oldest value still in the window.
func First(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return vs[0]
}

// Sum returns the sum of values in the window.
func Sum(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}

// Mean returns the arithmetic mean of values in the window.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return Sum(vs) / float64(len(vs))
}

// Stddev returns the population standard deviation of values in the
// window.
func Stddev(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := Mean(vs)
	var acc float64
	for _, v := range vs {
		d := v - m
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(vs)))
}

type lookbackEntry struct {
	expiry clock.Time
	value  float64
}

// Lookback maintains a FIFO of (time, value) pairs: on each update it
// pushes the current child value timestamped time+period, drains entries
// whose timestamp is <= time, and exposes a reducer over what remains
// (spec §4.5 "Lookback").
type Lookback struct {
	*agent.Base[float64]
	period  clock.Duration
	queue   []lookbackEntry
	reduce  Reducer
}

// NewLookback constructs a Lookback window of the given period over child,
// summarised by reduce.
func NewLookback(child agent.Agent, period clock.Duration, reduce Reducer) *Lookback {
	a := &Lookback{period: period, reduce: reduce}
	push := func(b *agent.Base[float64], t clock.Time) {
		a.queue = append(a.queue, lookbackEntry{expiry: t.Add(period), value: stateOf(child)})
		drained := a.queue[:0]
		for _, e := range a.queue {
			if e.expiry.AtOrBefore(t) {
				continue
			}
			drained = append(drained, e)
		}
		a.queue = drained
		vals := make([]float64, len(a.queue))
		for i, e := range a.queue {
			vals[i] = e.value
		}
		b.SetState(a.reduce(vals))
	}
	a.Base = agent.NewBase[float64]("Lookback", agent.Single(child),
		func(b *agent.Base[float64]) error {
			a.queue = nil
			push(b, b.Start())
			return nil
		},
		func(b *agent.Base[float64]) {
			a.queue = nil
			push(b, b.Start())
		},
		func(b *agent.Base[float64], t clock.Time) {
			push(b, t)
		},
	)
	a.RequireSingleDep()
	return a
}
