package simulator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/observer"
	"github.com/meenmo/molibsim/engine/rng"
	"github.com/meenmo/molibsim/engine/simulator"
)

func newObservers(n int, ctor func() simulator.Observer) []simulator.Observer {
	out := make([]simulator.Observer, n)
	for i := range out {
		out[i] = ctor()
	}
	return out
}

// TestTimeAgentExpectationMatchesFixExactly is spec §8 scenario 1: the root
// is the time agent itself, so every fix's expectation should equal the fix
// with zero variance regardless of sample count.
func TestTimeAgentExpectationMatchesFixExactly(t *testing.T) {
	fixes := []clock.Time{0, 180, 365, 545, 730}
	sim := simulator.New(clock.Time(0), clock.Duration(1), 10, 1, clock.DefaultConfig())
	for _, f := range fixes {
		require.NoError(t, sim.AddFix(f))
	}

	root := agent.NewTimeAgent()
	observers := newObservers(len(fixes), func() simulator.Observer { return observer.NewStatistics(nil) })
	source := rng.NewDefaultSource(1)

	require.NoError(t, sim.Simulate(root, source, observers, true, true))

	for i, f := range fixes {
		st := observers[i].(*observer.Statistics)
		assert.Equal(t, float64(f), st.Mean(), "fix=%d", f)
		assert.InDelta(t, 0, st.Variance(), 1e-12, "fix=%d", f)
	}
}

// TestGaussianVariateSampleMomentsConverge is spec §8 scenario 2: 100,000
// samples of a standard-normal draw should have mean near 0 and stddev
// near 1.
func TestGaussianVariateSampleMomentsConverge(t *testing.T) {
	sim := simulator.New(clock.Time(0), clock.Duration(1), 100000, 7, clock.DefaultConfig())
	require.NoError(t, sim.AddFix(clock.Time(365)))

	root := agent.NewGaussianVariateAgent()
	observers := []simulator.Observer{observer.NewStatistics(nil)}
	source := rng.NewDefaultSource(7)

	require.NoError(t, sim.Simulate(root, source, observers, true, true))

	st := observers[0].(*observer.Statistics)
	assert.Less(t, math.Abs(st.Mean()), 1e-2)
	assert.InDelta(t, 1, st.StdDev(), 0.05)
}

// TestSharedDependencyAdvancesOnceAcrossTwoParents is spec §5's "graph
// idempotence": a child reached through two parents in the same tick is
// updated exactly once, not twice.
func TestSharedDependencyAdvancesOnceAcrossTwoParents(t *testing.T) {
	var calls int
	child := newCountingAgent(&calls)
	left := agent.NewGearboxAgent(child, 1, 0)
	right := agent.NewGearboxAgent(child, 2, 0)
	root := &countingRoot{}
	root.Base = agent.NewBase[float64]("root", agent.Multiple(left, right),
		func(b *agent.Base[float64]) error { b.SetState(0); return nil },
		nil,
		func(b *agent.Base[float64], t clock.Time) {},
	)

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, root.Init(clock.Time(0), clock.Time(100), d, clock.DefaultConfig()))
	root.Reset()

	root.Update(clock.Time(10))
	assert.Equal(t, 1, calls)

	root.Update(clock.Time(20))
	assert.Equal(t, 2, calls)
}

// countingAgent increments a shared counter once per live Update call.
type countingAgent struct {
	*agent.Base[float64]
	calls *int
}

func newCountingAgent(calls *int) *countingAgent {
	a := &countingAgent{calls: calls}
	a.Base = agent.NewBase[float64]("countingAgent", agent.Independent(),
		func(b *agent.Base[float64]) error {
			b.SetState(0)
			return nil
		},
		nil,
		func(b *agent.Base[float64], t clock.Time) {
			*calls++
			b.SetState(float64(t))
		},
	)
	return a
}

// countingRoot is a plain two-child fan-in node used only to exercise the
// dependency-first traversal's idempotence.
type countingRoot struct {
	*agent.Base[float64]
}

// cyclicAgent lets a test wire a dependency after construction, forming a
// deliberate cycle to exercise the simulator's acyclicity check.
type cyclicAgent struct {
	*agent.Base[float64]
}

func newCyclicAgent(name string) *cyclicAgent {
	a := &cyclicAgent{}
	a.Base = agent.NewBase[float64](name, agent.Independent(),
		func(b *agent.Base[float64]) error { b.SetState(0); return nil },
		nil,
		func(b *agent.Base[float64], t clock.Time) {},
	)
	return a
}

func TestSimulateDetectsCycle(t *testing.T) {
	a := newCyclicAgent("a")
	b := newCyclicAgent("b")
	a.SetDeps(agent.Multiple(b))
	b.SetDeps(agent.Multiple(a))

	sim := simulator.New(clock.Time(0), clock.Duration(1), 1, 1, clock.DefaultConfig())
	require.NoError(t, sim.AddFix(clock.Time(10)))
	observers := []simulator.Observer{observer.NewExpectation(nil)}

	err := sim.Simulate(a, rng.NewDefaultSource(1), observers, true, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, agent.ErrCycleDetected)
}

func TestSimulateRejectsFixCountMismatch(t *testing.T) {
	sim := simulator.New(clock.Time(0), clock.Duration(1), 1, 1, clock.DefaultConfig())
	require.NoError(t, sim.AddFix(clock.Time(10)))
	require.NoError(t, sim.AddFix(clock.Time(20)))

	root := agent.NewTimeAgent()
	observers := []simulator.Observer{observer.NewExpectation(nil)}
	err := sim.Simulate(root, rng.NewDefaultSource(1), observers, true, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, agent.ErrInvalidArgument)
}

func TestAddFixRejectsNonIncreasingSchedule(t *testing.T) {
	sim := simulator.New(clock.Time(0), clock.Duration(1), 1, 1, clock.DefaultConfig())
	require.NoError(t, sim.AddFix(clock.Time(10)))
	err := sim.AddFix(clock.Time(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, agent.ErrInvalidSchedule)
}

// TestSimulatePropagatesCachedRandomRefusal checks that wrapping a
// random-consuming subtree in a Cached agent surfaces ErrCachedRandomStream
// through Simulate, not just through a direct Init call.
func TestSimulatePropagatesCachedRandomRefusal(t *testing.T) {
	child := agent.NewGaussianVariateAgent()
	cached := agent.NewCached("cached", child)

	sim := simulator.New(clock.Time(0), clock.Duration(1), 1, 1, clock.DefaultConfig())
	require.NoError(t, sim.AddFix(clock.Time(10)))
	observers := []simulator.Observer{observer.NewExpectation(nil)}

	err := sim.Simulate(cached, rng.NewDefaultSource(1), observers, true, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, agent.ErrCachedRandomStream)
}
