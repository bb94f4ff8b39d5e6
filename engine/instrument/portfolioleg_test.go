package instrument_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
	"github.com/meenmo/molibsim/engine/instrument"
)

func TestPortfolioFixedLegScalesByAverageSurvivorCount(t *testing.T) {
	c := curve.NewConstantRate(0.0)
	rows := []instrument.LegRow{{Pay: clock.Time(365), Amount: 1}}
	unitLeg := instrument.NewFixedLeg(c, rows)
	counter := instrument.NewCounter(100)
	survival := curve.NewConstantRate(0) // zero hazard: no defaults this step, counter unchanged
	u := agent.NewConstantAgent(0.5)
	events := instrument.NewPortfolioEvents(counter, survival, u)
	pfLeg := instrument.NewPortfolioFixedLeg(unitLeg, counter, events, 0.4, 1)

	d := newDriver(1)
	require.NoError(t, pfLeg.Init(clock.Time(0), clock.Time(400), d, clock.DefaultConfig()))
	pfLeg.Reset()

	before := counter.TypedState()
	pfLeg.Update(clock.Time(100))
	after := counter.TypedState()
	avg := (before + after) / 2

	want := unitLeg.TypedState().Value * avg
	assert.InDelta(t, want, pfLeg.TypedState().Value, 1e-6)
}

func TestPortfolioFixedLegGoesNonLiveWhenPoolExhausted(t *testing.T) {
	c := curve.NewConstantRate(0.0)
	rows := []instrument.LegRow{{Pay: clock.Time(365), Amount: 1}}
	unitLeg := instrument.NewFixedLeg(c, rows)
	counter := instrument.NewCounter(0)
	survival := curve.NewConstantRate(0.01)
	u := agent.NewConstantAgent(0.0)
	events := instrument.NewPortfolioEvents(counter, survival, u)
	pfLeg := instrument.NewPortfolioFixedLeg(unitLeg, counter, events, 0.4, 1)

	d := newDriver(1)
	require.NoError(t, pfLeg.Init(clock.Time(0), clock.Time(400), d, clock.DefaultConfig()))
	pfLeg.Reset()
	pfLeg.Update(clock.Time(100))
	assert.False(t, pfLeg.IsLive())
}

func TestPortfolioEventLegIntegratesExpectedFuturePayments(t *testing.T) {
	disc := curve.NewConstantRate(0.0)
	survival := curve.NewConstantRate(0.05)
	counter := instrument.NewCounter(50)
	u := agent.NewConstantAgent(1.0)
	events := instrument.NewPortfolioEvents(counter, survival, u)
	leg := instrument.NewPortfolioEventLeg(disc, survival, counter, events, 1, clock.Time(365), 8)

	d := newDriver(1)
	require.NoError(t, leg.Init(clock.Time(0), clock.Time(400), d, clock.DefaultConfig()))
	leg.Reset()

	st := leg.TypedState()
	assert.Greater(t, st.Value, 0.0)
	assert.False(t, st.Matured)

	leg.Update(clock.Time(365))
	assert.True(t, leg.TypedState().Matured)
	assert.False(t, leg.IsLive())
}
