package agent

import (
	"fmt"

	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/rng"
)

// cacheRecord is one entry in a Cached agent's replay list (spec §3
// "Cached agent").
type cacheRecord struct {
	time  clock.Time
	state any
	live  bool
}

// Cached wraps any Agent and memoises its (time, state, live) sequence on
// the first path, replaying it on every subsequent path instead of
// recomputing (spec §4.3). It is the grounding for Hull-White's calibrator
// sub-agent and for static/deterministic curve adaptors — anything whose
// evolution depends only on the fix schedule, not on a per-path draw.
//
// Cached.Init refuses (DESIGN.md Open Question decision) to wrap a subtree
// that consumes the random driver: replaying a cached random draw across
// paths would silently collapse Monte Carlo variance to zero, the pitfall
// spec §9 flags without resolving. ErrCachedRandomStream surfaces that from
// Init rather than producing a quietly wrong answer.
type Cached struct {
	name  string
	child Agent

	start, end, time clock.Time
	dtime            clock.Duration
	state            any
	live             bool
	initDone         bool
	hasReset         bool

	records []cacheRecord
	cursor  int
}

// NewCached constructs a Cached wrapper around child.
func NewCached(name string, child Agent) *Cached {
	return &Cached{name: name, child: child, live: true}
}

// Init implements Agent.
func (c *Cached) Init(start, end clock.Time, rnd *rng.Driver, cfg clock.Config) error {
	if c.initDone {
		return nil
	}
	if c.child == nil {
		return fmt.Errorf("%s: %w", c.name, ErrNotConfigured)
	}
	if err := c.child.Init(start, end, rnd, cfg); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	if c.child.UsesRandomStream() {
		return fmt.Errorf("%s: %w", c.name, ErrCachedRandomStream)
	}
	c.start, c.end = start, end
	c.time = start
	c.dtime = 0
	c.live = true
	c.initDone = true
	return nil
}

// Reset implements Agent, per the cached-replay contract in spec §4.3: the
// first Reset falls through to the child and appends a record; every
// subsequent Reset rewinds the cursor to that record without touching the
// child again.
func (c *Cached) Reset() {
	if !c.hasReset {
		c.child.Reset()
		c.time = c.start
		c.dtime = 0
		c.state = c.child.State()
		c.live = c.child.IsLive()
		c.records = append(c.records[:0], cacheRecord{time: c.start, state: c.state, live: c.live})
		c.cursor = 0
		c.hasReset = true
		return
	}
	c.cursor = 0
	c.time = c.start
	c.dtime = 0
	rec := c.records[0]
	c.state = rec.state
	c.live = rec.live
}

// Update implements Agent: advance the cursor to the last record at or
// before t; replay it if its time equals t exactly, otherwise fall through
// to the child and insert a fresh record right after the cursor (spec §4.3).
// If the child already stands at or past t from an earlier path, it is
// reset and brought up to the cursor record's time before stepping to t.
func (c *Cached) Update(t clock.Time) {
	if !c.live || !c.time.Before(t) {
		return
	}
	for c.cursor+1 < len(c.records) && c.records[c.cursor+1].time.AtOrBefore(t) {
		c.cursor++
	}
	if c.cursor < len(c.records) && c.records[c.cursor].time == t {
		rec := c.records[c.cursor]
		c.dtime = t.Sub(c.time)
		c.time = t
		c.state = rec.state
		c.live = rec.live
		return
	}
	if !c.child.Time().Before(t) {
		c.child.Reset()
		if prev := c.records[c.cursor].time; c.start.Before(prev) {
			c.child.Update(prev)
		}
	}
	c.child.Update(t)
	c.dtime = t.Sub(c.time)
	c.time = t
	c.state = c.child.State()
	c.live = c.child.IsLive()

	insertAt := c.cursor + 1
	rec := cacheRecord{time: t, state: c.state, live: c.live}
	c.records = append(c.records, cacheRecord{})
	copy(c.records[insertAt+1:], c.records[insertAt:])
	c.records[insertAt] = rec
	c.cursor = insertAt
}

// State implements Agent. Panics with ErrInvalidState if called before the
// first Reset (spec §7): there is no cached record yet to answer from, and
// the zero value would silently masquerade as a real state.
func (c *Cached) State() any {
	if !c.hasReset {
		panic(fmt.Errorf("%s.State: %w", c.name, ErrInvalidState))
	}
	return c.state
}

// IsLive implements Agent. Panics with ErrInvalidState if called before the
// first Reset, for the same reason as State.
func (c *Cached) IsLive() bool {
	if !c.hasReset {
		panic(fmt.Errorf("%s.IsLive: %w", c.name, ErrInvalidState))
	}
	return c.live
}

// Time implements Agent.
func (c *Cached) Time() clock.Time { return c.time }

// DTime implements Agent.
func (c *Cached) DTime() clock.Duration { return c.dtime }

// UsesRandomStream implements Agent. Cached always reports false: Init
// already refused to wrap a random-consuming subtree, so a Cached node
// never itself needs to propagate that flag upward.
func (c *Cached) UsesRandomStream() bool { return false }

// Deps returns the wrapped child as a one-element dependency list, letting
// graph-walking code (e.g. the simulator's coloured-DFS cycle check) see
// through a Cached wrapper.
func (c *Cached) Deps() []Agent { return []Agent{c.child} }
