package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/agent/memory"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/rng"
)

func newDriver(seed uint64) *rng.Driver {
	return rng.NewDriver(rng.NewDefaultSource(seed))
}

func initReset(t *testing.T, a agent.Agent, start, end clock.Time) {
	t.Helper()
	d := newDriver(1)
	require.NoError(t, a.Init(start, end, d, clock.DefaultConfig()))
	a.Reset()
}

func TestTriggerSnapsChildStateOnlyAtTriggerTimes(t *testing.T) {
	child := agent.NewTimeAgent()
	trig := memory.NewTrigger(child, []clock.Time{100, 200, 300}, false)
	initReset(t, trig, clock.Time(0), clock.Time(400))

	trig.Update(clock.Time(50))
	assert.Equal(t, float64(0), trig.TypedState())

	trig.Update(clock.Time(150))
	assert.Equal(t, float64(150), trig.TypedState())

	trig.Update(clock.Time(180))
	assert.Equal(t, float64(150), trig.TypedState())

	trig.Update(clock.Time(300))
	assert.Equal(t, float64(300), trig.TypedState())
}

func TestTriggerRejectsNonIncreasingSchedule(t *testing.T) {
	child := agent.NewTimeAgent()
	trig := memory.NewTrigger(child, []clock.Time{100, 100}, false)
	d := newDriver(1)
	err := trig.Init(clock.Time(0), clock.Time(400), d, clock.DefaultConfig())
	require.Error(t, err)
	require.ErrorIs(t, err, agent.ErrInvalidSchedule)
}

func TestTriggerRejectsEmptySchedule(t *testing.T) {
	child := agent.NewTimeAgent()
	trig := memory.NewTrigger(child, nil, false)
	d := newDriver(1)
	err := trig.Init(clock.Time(0), clock.Time(400), d, clock.DefaultConfig())
	require.Error(t, err)
	require.ErrorIs(t, err, agent.ErrNotConfigured)
}

func TestTriggerDriveAlwaysStillSnapsAtTrigger(t *testing.T) {
	child := agent.NewTimeAgent()
	trig := memory.NewTrigger(child, []clock.Time{200}, true)
	initReset(t, trig, clock.Time(0), clock.Time(400))

	trig.Update(clock.Time(50))
	assert.Equal(t, float64(0), trig.TypedState())
	assert.Equal(t, clock.Time(50), child.Time())

	trig.Update(clock.Time(200))
	assert.Equal(t, float64(200), trig.TypedState())
}

func TestRampFiresOnlyWhenSignalIncreases(t *testing.T) {
	value := agent.NewTimeAgent()
	signal := &constantThenRising{threshold: clock.Time(100)}
	ramp := memory.NewRamp(value, signal)

	d := newDriver(1)
	require.NoError(t, ramp.Init(clock.Time(0), clock.Time(200), d, clock.DefaultConfig()))
	ramp.Reset()

	ramp.Update(clock.Time(50))
	assert.Equal(t, float64(0), ramp.TypedState())

	ramp.Update(clock.Time(150))
	assert.Equal(t, float64(150), ramp.TypedState())

	ramp.Update(clock.Time(160))
	assert.Equal(t, float64(160), ramp.TypedState())
}

func TestLookbackMeanOverSlidingWindow(t *testing.T) {
	child := agent.NewTimeAgent()
	lb := memory.NewLookback(child, clock.Duration(100), memory.Mean)
	initReset(t, lb, clock.Time(0), clock.Time(500))

	lb.Update(clock.Time(10))
	assert.InDelta(t, 5, lb.TypedState(), 1e-9) // window holds {0@100, 10@110}

	lb.Update(clock.Time(120))
	// both earlier entries (expiry 100, 110) have drained by t=120; only
	// the fresh 120@220 entry remains
	assert.InDelta(t, 120, lb.TypedState(), 1e-9)
}

func TestLookbackSumAndFirstAndStddev(t *testing.T) {
	child := agent.NewConstantAgent(4)
	sum := memory.NewLookback(child, clock.Duration(50), memory.Sum)
	first := memory.NewLookback(child, clock.Duration(50), memory.First)
	std := memory.NewLookback(child, clock.Duration(50), memory.Stddev)

	for _, a := range []agent.Agent{sum, first, std} {
		initReset(t, a, clock.Time(0), clock.Time(100))
		a.Update(clock.Time(10))
		a.Update(clock.Time(20))
	}
	assert.InDelta(t, 12, sum.TypedState(), 1e-9)
	assert.InDelta(t, 4, first.TypedState(), 1e-9)
	assert.InDelta(t, 0, std.TypedState(), 1e-9)
}

// constantThenRising is a minimal float64-state Agent whose state is 0
// until t reaches threshold, then rises linearly, for exercising Ramp's
// "fires on increase" contract without depending on a second package.
type constantThenRising struct {
	threshold clock.Time
	t         clock.Time
	state     float64
}

func (c *constantThenRising) Init(start, end clock.Time, rnd *rng.Driver, cfg clock.Config) error {
	c.t = start
	return nil
}
func (c *constantThenRising) Reset()         { c.t = 0; c.state = 0 }
func (c *constantThenRising) State() any     { return c.state }
func (c *constantThenRising) IsLive() bool   { return true }
func (c *constantThenRising) Time() clock.Time     { return c.t }
func (c *constantThenRising) DTime() clock.Duration { return 0 }
func (c *constantThenRising) UsesRandomStream() bool { return false }
func (c *constantThenRising) Update(t clock.Time) {
	c.t = t
	if t >= c.threshold {
		c.state = float64(t - c.threshold)
	}
}
