package instrument_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/instrument"
	"github.com/meenmo/molibsim/engine/rng"
)

func TestPortfolioEventsDecrementsCounterByDrawnCount(t *testing.T) {
	counter := instrument.NewCounter(10)
	hazard := agent.NewConstantAgent(1.0) // near-certain default hazard
	draw := agent.NewConstantAgent(0.01)  // deep in the survival tail
	events := instrument.NewPortfolioEvents(counter, hazard, draw)

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, events.Init(clock.Time(0), clock.Time(365), d, clock.DefaultConfig()))
	events.Reset()

	events.Update(clock.Time(365))
	k := events.TypedState()
	assert.GreaterOrEqual(t, k, float64(0))
	assert.LessOrEqual(t, k, float64(10))
	assert.InDelta(t, 10-k, counter.TypedState(), 1e-12)
}

func TestPortfolioEventsNoHazardLeavesCounterUntouched(t *testing.T) {
	counter := instrument.NewCounter(10)
	hazard := agent.NewConstantAgent(0)
	draw := agent.NewConstantAgent(0.5)
	events := instrument.NewPortfolioEvents(counter, hazard, draw)

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, events.Init(clock.Time(0), clock.Time(365), d, clock.DefaultConfig()))
	events.Reset()

	events.Update(clock.Time(365))
	assert.Equal(t, float64(0), events.TypedState())
	assert.Equal(t, float64(10), counter.TypedState())
}
