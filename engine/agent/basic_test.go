package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/line"
	"github.com/meenmo/molibsim/engine/rng"
)

func newDriver(seed uint64) *rng.Driver {
	return rng.NewDriver(rng.NewDefaultSource(seed))
}

func TestTimeAgentTracksSimulationTime(t *testing.T) {
	a := agent.NewTimeAgent()
	d := newDriver(1)
	require.NoError(t, a.Init(clock.Time(0), clock.Time(730), d, clock.DefaultConfig()))
	a.Reset()
	assert.Equal(t, float64(0), a.State())

	a.Update(clock.Time(180))
	assert.Equal(t, float64(180), a.State())

	a.Update(clock.Time(365))
	assert.Equal(t, float64(365), a.State())
}

func TestInitIsIdempotent(t *testing.T) {
	a := agent.NewConstantAgent(7)
	d := newDriver(1)
	require.NoError(t, a.Init(clock.Time(0), clock.Time(100), d, clock.DefaultConfig()))
	require.NoError(t, a.Init(clock.Time(50), clock.Time(200), d, clock.DefaultConfig()))
	a.Reset()
	assert.Equal(t, float64(7), a.State())
	assert.Equal(t, clock.Time(0), a.Start())
}

func TestUpdateAtOrBeforeCurrentTimeIsNoOp(t *testing.T) {
	a := agent.NewTimeAgent()
	d := newDriver(1)
	require.NoError(t, a.Init(clock.Time(0), clock.Time(100), d, clock.DefaultConfig()))
	a.Reset()

	a.Update(clock.Time(50))
	assert.Equal(t, float64(50), a.State())

	a.Update(clock.Time(50))
	assert.Equal(t, float64(50), a.State())

	a.Update(clock.Time(10))
	assert.Equal(t, float64(50), a.State())
}

func TestResetRestoresInitialState(t *testing.T) {
	a := agent.NewTimeAgent()
	d := newDriver(1)
	require.NoError(t, a.Init(clock.Time(0), clock.Time(100), d, clock.DefaultConfig()))
	a.Reset()
	a.Update(clock.Time(90))
	assert.Equal(t, float64(90), a.State())

	a.Reset()
	assert.Equal(t, float64(0), a.State())
	a.Update(clock.Time(40))
	assert.Equal(t, float64(40), a.State())
}

func TestTimeMonotoneAfterResets(t *testing.T) {
	a := agent.NewTimeAgent()
	d := newDriver(1)
	require.NoError(t, a.Init(clock.Time(0), clock.Time(100), d, clock.DefaultConfig()))
	var last clock.Time
	for sample := 0; sample < 3; sample++ {
		a.Reset()
		last = a.Time()
		for _, t2 := range []clock.Time{10, 40, 90} {
			a.Update(t2)
			assert.True(t, last.Before(a.Time()) || last == a.Time())
			last = a.Time()
		}
	}
}

func TestDriverWeightStaysNeutralWithoutTwister(t *testing.T) {
	a := agent.NewGaussianVariateAgent()
	d := newDriver(1)
	require.NoError(t, a.Init(clock.Time(0), clock.Time(10), d, clock.DefaultConfig()))
	a.Reset()
	for _, t2 := range []clock.Time{1, 2, 3, 4, 5} {
		a.Update(t2)
	}
	assert.Equal(t, float64(1), d.Weight())
}

func TestGaussianTwisterShiftsWeight(t *testing.T) {
	base := agent.NewGaussianVariateAgent()
	twisted := agent.NewGaussianTwister(base, 0.5)
	d := newDriver(1)
	require.NoError(t, twisted.Init(clock.Time(0), clock.Time(10), d, clock.DefaultConfig()))
	twisted.Reset()
	twisted.Update(clock.Time(1))
	assert.NotEqual(t, float64(1), d.Weight())
}

func TestGearboxRescalesDependency(t *testing.T) {
	child := agent.NewConstantAgent(4)
	gear := agent.NewGearboxAgent(child, 2, 1)
	d := newDriver(1)
	require.NoError(t, gear.Init(clock.Time(0), clock.Time(10), d, clock.DefaultConfig()))
	gear.Reset()
	assert.Equal(t, float64(9), gear.State())
}

func TestUniformVariateDrawsWithinUnitIntervalAndMarksRandomStream(t *testing.T) {
	a := agent.NewUniformVariateAgent()
	d := newDriver(7)
	require.NoError(t, a.Init(clock.Time(0), clock.Time(100), d, clock.DefaultConfig()))
	a.Reset()
	assert.True(t, a.UsesRandomStream())

	for _, t2 := range []clock.Time{1, 2, 3, 4, 5} {
		a.Update(t2)
		v := a.TypedState()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestUniformVariateIsDeterministicForAGivenSeed(t *testing.T) {
	run := func(seed uint64) []float64 {
		a := agent.NewUniformVariateAgent()
		d := newDriver(seed)
		require.NoError(t, a.Init(clock.Time(0), clock.Time(10), d, clock.DefaultConfig()))
		a.Reset()
		var draws []float64
		for _, t2 := range []clock.Time{1, 2, 3} {
			a.Update(t2)
			draws = append(draws, a.TypedState())
		}
		return draws
	}
	assert.Equal(t, run(42), run(42))
}

func TestCurveAgentReadsLineAtElapsedYears(t *testing.T) {
	ln, err := line.NewPiecewiseLogLinear([]float64{0, 1, 2}, []float64{1.0, 0.98, 0.95})
	require.NoError(t, err)
	a := agent.NewCurveAgent(ln)
	d := newDriver(1)
	require.NoError(t, a.Init(clock.Time(0), clock.Time(1000), d, clock.DefaultConfig()))
	a.Reset()
	assert.Equal(t, ln.Value(0), a.TypedState())

	cfg := clock.DefaultConfig()
	yearDays := clock.Time(int64(cfg.YearFractionRatio))
	a.Update(yearDays)
	assert.InDelta(t, ln.Value(1), a.TypedState(), 1e-9)
}
