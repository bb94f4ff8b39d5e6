package instrument_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
	"github.com/meenmo/molibsim/engine/instrument"
	"github.com/meenmo/molibsim/engine/rng"
)

func TestPortfolioIsWeightedSumOfInstrumentStates(t *testing.T) {
	c := curve.NewConstantRate(0.04)
	leg1 := instrument.NewFixedLeg(c, []instrument.LegRow{{Pay: clock.Time(365), Amount: 10}})
	leg2 := instrument.NewFixedLeg(c, []instrument.LegRow{{Pay: clock.Time(365), Amount: 20}})
	w1 := agent.NewConstantAgent(2)
	w2 := agent.NewConstantAgent(3)

	p := instrument.NewPortfolio([]agent.Agent{leg1, leg2}, []agent.Agent{w1, w2}, nil)

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, p.Init(clock.Time(0), clock.Time(365), d, clock.DefaultConfig()))
	p.Reset()

	p.Update(clock.Time(100))
	want := 2*leg1.TypedState().Value + 3*leg2.TypedState().Value
	assert.InDelta(t, want, p.TypedState().Value, 1e-9)
	wantFlow := 2*leg1.TypedState().Flow + 3*leg2.TypedState().Flow
	assert.InDelta(t, wantFlow, p.TypedState().Flow, 1e-9)
}

func TestPortfolioWithCashAccountIsSelfFinancing(t *testing.T) {
	c := curve.NewConstantRate(0)
	leg1 := instrument.NewFixedLeg(c, []instrument.LegRow{{Pay: clock.Time(180), Amount: 4}})
	leg2 := instrument.NewFixedLeg(c, []instrument.LegRow{{Pay: clock.Time(180), Amount: 6}})
	rate := agent.NewConstantAgent(0)
	cash := instrument.NewCashAccount(rate, []agent.Agent{leg1, leg2}, 0, 0, 0)

	p := instrument.NewPortfolio([]agent.Agent{leg1, leg2}, nil, cash)

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, p.Init(clock.Time(0), clock.Time(365), d, clock.DefaultConfig()))
	p.Reset()

	for _, tm := range []clock.Time{0, 90, 180} {
		p.Update(tm)
		assert.Equal(t, float64(0), p.TypedState().Flow, "t=%d", tm)
		want := leg1.TypedState().Value + leg2.TypedState().Value + cash.TypedState().Value
		assert.InDelta(t, want, p.TypedState().Value, 1e-9, "t=%d", tm)
	}

	// At the pay date both legs hand their flow to the account, so the
	// account balance captures exactly what the legs paid out.
	p.Reset()
	p.Update(clock.Time(180))
	assert.InDelta(t, 10, cash.TypedState().Value, 1e-9)
}
