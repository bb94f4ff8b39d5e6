// Package agent implements the evaluation framework's core: the agent
// lifecycle contract, dependency linkage, the caching wrapper, a handful of
// basic agents (time, constant, curve, gearbox, uniform/Gaussian variate),
// and the state adaptor. It is the from-scratch heart of molibsim; molib
// contributes no analogue of a node graph, so the shapes here are original,
// built in molib's idiom: constructor-validates-then-builds, small
// interface seams, fmt.Errorf("Func: %w", err) wrapping (SPEC_FULL.md §3.2,
// DESIGN.md "Core: agent base + linkage").
package agent

import (
	"fmt"
	"io"

	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/rng"
)

// Agent is the non-generic lifecycle contract every node in the dependency
// graph satisfies (spec §4.2). It is deliberately state-type-erased (State
// returns any) so that a []Agent can hold a heterogeneous mix of nodes; the
// generic Base[S] below recovers a typed accessor for concrete agents.
type Agent interface {
	// Init is called exactly once per simulation run; re-entry through
	// recursion on a shared child is a no-op (idempotence flag).
	Init(start, end clock.Time, rnd *rng.Driver, cfg clock.Config) error
	// Reset restores state to the snapshot captured at the end of Init.
	Reset()
	// Update advances the agent to t. A no-op if t is not strictly after
	// the agent's current time, or if the agent is no longer live.
	Update(t clock.Time)
	// State returns the post-update state, type-erased.
	State() any
	// IsLive reports whether the agent still produces contributions.
	IsLive() bool
	// Time returns the agent's current time coordinate.
	Time() clock.Time
	// DTime returns the most recent update interval.
	DTime() clock.Duration
	// UsesRandomStream reports whether this agent (or a dependency)
	// consumes the random driver, used by Cached.Init's refusal check.
	UsesRandomStream() bool
}

// Dumper is the best-effort XML introspection interface (spec §6 "XML
// emit"). The format is explicitly not stable (spec §9 "Weakly-typed XML
// dump"); it exists for debugging a composed graph, not for serialization.
type Dumper interface {
	Dump(w io.Writer) error
}

// Base is the generic lifecycle skeleton shared by every concrete agent.
// Concrete agents embed a *Base[S] and supply behaviour via three function
// fields (onInit, onReset, onUpdate) rather than virtual dispatch, since Go
// has no base-class method overriding — this is the "tagged union / small
// capability interface" re-architecture spec §9 calls for.
type Base[S any] struct {
	name string
	deps []Agent

	// requireSingle marks a Single-linkage agent; Init refuses with
	// ErrNotConfigured unless deps holds exactly one non-nil entry.
	requireSingle bool
	usesRandom    bool

	start, end, time clock.Time
	dtime             clock.Duration
	state, state0     S
	live              bool
	initDone          bool

	rnd *rng.Driver
	cfg clock.Config

	onInit   func(b *Base[S]) error
	onReset  func(b *Base[S])
	onUpdate func(b *Base[S], t clock.Time)
}

// NewBase constructs a Base with the given name, dependency list, and
// lifecycle hooks. Any of the hooks may be nil.
func NewBase[S any](name string, deps []Agent, onInit func(*Base[S]) error, onReset func(*Base[S]), onUpdate func(*Base[S], clock.Time)) *Base[S] {
	return &Base[S]{
		name:     name,
		deps:     deps,
		live:     true,
		onInit:   onInit,
		onReset:  onReset,
		onUpdate: onUpdate,
	}
}

// RequireSingleDep marks this Base as a Single-linkage node: Init will
// refuse with ErrNotConfigured unless exactly one non-nil dependency was
// supplied.
func (b *Base[S]) RequireSingleDep() { b.requireSingle = true }

// MarkUsesRandomStream records that this agent itself draws from the random
// driver (as opposed to merely holding a dependency that does). Variate and
// measure-twister agents call this from their onInit hook.
func (b *Base[S]) MarkUsesRandomStream() { b.usesRandom = true }

// Init implements Agent.
func (b *Base[S]) Init(start, end clock.Time, rnd *rng.Driver, cfg clock.Config) error {
	if b.initDone {
		return nil
	}
	if b.requireSingle && (len(b.deps) != 1 || b.deps[0] == nil) {
		return fmt.Errorf("%s: %w", b.name, ErrNotConfigured)
	}
	b.start, b.end, b.rnd, b.cfg = start, end, rnd, cfg
	for _, d := range b.deps {
		if d == nil {
			continue
		}
		if err := d.Init(start, end, rnd, cfg); err != nil {
			return fmt.Errorf("%s: %w", b.name, err)
		}
		if d.UsesRandomStream() {
			b.usesRandom = true
		}
	}
	if b.onInit != nil {
		if err := b.onInit(b); err != nil {
			return fmt.Errorf("%s: %w", b.name, err)
		}
	}
	b.time = start
	b.dtime = 0
	b.live = true
	b.state0 = b.state
	b.initDone = true
	return nil
}

// Reset implements Agent.
func (b *Base[S]) Reset() {
	for _, d := range b.deps {
		if d != nil {
			d.Reset()
		}
	}
	b.time = b.start
	b.dtime = 0
	b.state = b.state0
	b.live = true
	if b.onReset != nil {
		b.onReset(b)
	}
}

// Update implements Agent.
func (b *Base[S]) Update(t clock.Time) {
	if !b.live || !b.time.Before(t) {
		return
	}
	for _, d := range b.deps {
		if d != nil {
			d.Update(t)
		}
	}
	prev := b.time
	b.dtime = t.Sub(prev)
	b.time = t
	if b.onUpdate != nil {
		b.onUpdate(b, t)
	}
}

// TypedState returns the typed state.
func (b *Base[S]) TypedState() S { return b.state }

// State implements Agent (type-erased accessor).
func (b *Base[S]) State() any { return b.state }

// SetState sets the current state; used by onInit/onUpdate hooks.
func (b *Base[S]) SetState(s S) { b.state = s }

// IsLive implements Agent.
func (b *Base[S]) IsLive() bool { return b.live }

// SetLive marks the agent as matured/non-live; used by onUpdate hooks.
func (b *Base[S]) SetLive(live bool) { b.live = live }

// Time implements Agent.
func (b *Base[S]) Time() clock.Time { return b.time }

// DTime implements Agent.
func (b *Base[S]) DTime() clock.Duration { return b.dtime }

// UsesRandomStream implements Agent.
func (b *Base[S]) UsesRandomStream() bool { return b.usesRandom }

// Start returns the configured run start.
func (b *Base[S]) Start() clock.Time { return b.start }

// End returns the configured run end.
func (b *Base[S]) End() clock.Time { return b.end }

// Config returns the per-simulation configuration captured at Init.
func (b *Base[S]) Config() clock.Config { return b.cfg }

// Driver returns the non-owning random driver reference captured at Init.
func (b *Base[S]) Driver() *rng.Driver { return b.rnd }

// Deps returns the ordered dependency list.
func (b *Base[S]) Deps() []Agent { return b.deps }

// Dep returns the i'th dependency, or nil if out of range.
func (b *Base[S]) Dep(i int) Agent {
	if i < 0 || i >= len(b.deps) {
		return nil
	}
	return b.deps[i]
}

// Name returns the agent's introspective name.
func (b *Base[S]) Name() string { return b.name }

// SetDeps replaces the dependency list; used by agents whose single child
// is wired after construction.
func (b *Base[S]) SetDeps(deps []Agent) { b.deps = deps }
