// Package simulator implements the driver of spec §4.9: a fixing
// schedule, step size, sample count and seed, and the sample loop that
// advances the root agent from fix to fix in step-sized increments,
// calling an observer at each fix and reporting across samples.
//
// Grounded on swap/api.go's InterestRateSwap(params) constructor
// (validate-then-build) and SwapTrade's NPV()/PVByLeg() method style for
// Simulate itself; error sentinels are named directly from spec §7 and
// wrapped in molib's fmt.Errorf("Simulate: ...") style.
package simulator

import (
	"fmt"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/rng"
)

// Observer is the interface a simulator drives at every fix (spec §4.10):
// Init binds it to the root agent, Observe records one sample's outcome
// weighted by the driver's current path weight, End finalises reporting.
type Observer interface {
	Init(root agent.Agent) error
	Observe(weight float64) error
	End() error
}

// Simulator owns the fixing schedule, step size, sample count, and seed
// (spec §4.9). Fixes must be added in strictly increasing order via
// AddFix.
type Simulator struct {
	Start   clock.Time
	Fixes   []clock.Time
	Step    clock.Duration
	Samples int
	Seed    uint64
	Config  clock.Config
}

// New constructs a Simulator with the given start time, step size, sample
// count, and seed, using cfg's year-fraction ratio (clock.DefaultConfig()
// if cfg is the zero value).
func New(start clock.Time, step clock.Duration, samples int, seed uint64, cfg clock.Config) *Simulator {
	if cfg.YearFractionRatio == 0 {
		cfg = clock.DefaultConfig()
	}
	return &Simulator{Start: start, Step: step, Samples: samples, Seed: seed, Config: cfg}
}

// AddFix appends t to the fixing schedule. Returns ErrInvalidSchedule if t
// is not strictly after the last fix already added.
func (s *Simulator) AddFix(t clock.Time) error {
	if len(s.Fixes) > 0 && !s.Fixes[len(s.Fixes)-1].Before(t) {
		return fmt.Errorf("AddFix: %w", agent.ErrInvalidSchedule)
	}
	s.Fixes = append(s.Fixes, t)
	return nil
}

// Simulate runs the sample loop over root with one Observer per fix (spec
// §4.9):
//  1. bind every observer to root through its Init;
//  2. if initRoot, seed the driver and call root.Init;
//  3. for each sample, reset the driver and root, then for each fix step
//     from the previous fix to it in Step-sized increments (always
//     finishing exactly at the fix), and call that fix's observer;
//  4. call every observer's End;
//  5. if resetAtEnd, final driver.Reset and root.Reset.
//
// observers must have the same length as s.Fixes. Returns
// ErrNotConfigured if the schedule is empty.
func (s *Simulator) Simulate(root agent.Agent, source rng.VariateSource, observers []Observer, initRoot, resetAtEnd bool) error {
	if len(s.Fixes) == 0 {
		return fmt.Errorf("Simulate: %w", agent.ErrNotConfigured)
	}
	if len(observers) != len(s.Fixes) {
		return fmt.Errorf("Simulate: %w", agent.ErrInvalidArgument)
	}
	driver := rng.NewDriver(source)

	if err := checkAcyclic(root); err != nil {
		return fmt.Errorf("Simulate: %w", err)
	}

	for _, obs := range observers {
		if err := obs.Init(root); err != nil {
			return fmt.Errorf("Simulate: %w", err)
		}
	}
	if initRoot {
		driver.Seed(s.Seed)
		end := s.Fixes[len(s.Fixes)-1]
		if err := root.Init(s.Start, end, driver, s.Config); err != nil {
			return fmt.Errorf("Simulate: %w", err)
		}
	}

	for sample := 0; sample < s.Samples; sample++ {
		driver.Reset()
		root.Reset()
		prev := s.Start
		for i, fix := range s.Fixes {
			stepTo(root, prev, fix, s.Step)
			prev = fix
			if err := observers[i].Observe(driver.Weight()); err != nil {
				return fmt.Errorf("Simulate: %w", err)
			}
		}
	}

	for _, obs := range observers {
		if err := obs.End(); err != nil {
			return fmt.Errorf("Simulate: %w", err)
		}
	}
	if resetAtEnd {
		driver.Reset()
		root.Reset()
	}
	return nil
}

// stepTo advances root from prev to fix in step-sized increments, always
// finishing exactly at fix (spec §4.9 "step from previous fix to fixes[i]
// in increments of step, always finishing exactly at fixes[i]").
func stepTo(root agent.Agent, prev, fix clock.Time, step clock.Duration) {
	if step <= 0 {
		root.Update(fix)
		return
	}
	t := prev
	for {
		next := t.Add(step)
		if !next.Before(fix) {
			root.Update(fix)
			return
		}
		root.Update(next)
		t = next
	}
}

// checkAcyclic performs a coloured-DFS over root's dependency graph,
// returning ErrCycleDetected if a cycle is found (spec §9 "Shared-ownership
// graph... no cycles are permitted; implementers may assert this at init
// by a coloured-DFS check"). Shared dependencies reached through multiple
// parents are visited once each time they're encountered but never
// re-entered while still on the current DFS path, which is exactly what
// distinguishes a legitimate DAG fan-in from a cycle.
func checkAcyclic(root agent.Agent) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	colour := make(map[agent.Agent]int)
	var visit func(a agent.Agent) error
	visit = func(a agent.Agent) error {
		if a == nil {
			return nil
		}
		switch colour[a] {
		case gray:
			return agent.ErrCycleDetected
		case black:
			return nil
		}
		colour[a] = gray
		if dd, ok := a.(interface{ Deps() []agent.Agent }); ok {
			for _, d := range dd.Deps() {
				if err := visit(d); err != nil {
					return err
				}
			}
		}
		colour[a] = black
		return nil
	}
	return visit(root)
}
