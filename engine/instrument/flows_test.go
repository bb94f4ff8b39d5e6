package instrument_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
	"github.com/meenmo/molibsim/engine/instrument"
	"github.com/meenmo/molibsim/engine/rng"
	"github.com/meenmo/molibsim/utils"
)

// TestFlowsBucketsArrearsFixingsAtRowEnd exercises spec §8's flow-bucketing
// scenario: an index agent's own scalar state is read as the fixing once the
// accrual period closes (row.End), not at row.Fix, and every flow is zero
// except at its own pay date.
func TestFlowsBucketsArrearsFixingsAtRowEnd(t *testing.T) {
	c := curve.NewConstantRate(0)
	index := agent.NewTimeAgent()
	rows, err := instrument.NewCashflowList([]instrument.FlowRow{
		{Fix: 30, Start: 40, End: 90, Pay: 93, Multiplier: 1, Margin: 0, YearFrac: (90.0 - 40.0) / 365},
		{Fix: 90, Start: 90, End: 180, Pay: 180, Multiplier: 1, Margin: 2, YearFrac: (180.0 - 90.0) / 250},
	})
	require.NoError(t, err)
	flows := instrument.NewFlows(c, index, rows)

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, flows.Init(clock.Time(0), clock.Time(180), d, clock.DefaultConfig()))
	flows.Reset()

	for _, tm := range []clock.Time{10, 40, 60, 90, 91, 92} {
		flows.Update(tm)
		assert.Equal(t, float64(0), flows.TypedState().Flow, "t=%d", tm)
	}

	flows.Update(clock.Time(93))
	wantFirst := 90.0 * (90.0 - 40.0) / 365
	assert.InDelta(t, wantFirst, flows.TypedState().Flow, 1e-12)

	for _, tm := range []clock.Time{100, 150, 179} {
		flows.Update(tm)
		assert.Equal(t, float64(0), flows.TypedState().Flow, "t=%d", tm)
	}

	flows.Update(clock.Time(180))
	wantSecond := (180.0 + 2) * (180.0 - 90.0) / 250
	assert.InDelta(t, wantSecond, flows.TypedState().Flow, 1e-12)
	assert.True(t, flows.TypedState().Matured)
	assert.False(t, flows.IsLive())
}

func TestFlowsWithExplicitFixingIgnoresIndex(t *testing.T) {
	c := curve.NewConstantRate(0)
	rows, err := instrument.NewCashflowList([]instrument.FlowRow{
		{Fix: 0, Start: 0, End: 365, Pay: 365, Multiplier: 1, Margin: 0, YearFrac: 1, Fixing: 0.02},
	})
	require.NoError(t, err)
	flows := instrument.NewFlows(c, nil, rows)

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, flows.Init(clock.Time(0), clock.Time(365), d, clock.DefaultConfig()))
	flows.Reset()

	flows.Update(clock.Time(365))
	assert.InDelta(t, 0.02, flows.TypedState().Flow, 1e-12)
}

// TestFlowsDayCountFidelity exercises SPEC_FULL.md §6.1: a row's YearFrac
// is an opaque field the caller fills in, so a Flows leg priced with
// utils.YearFraction's ACT/360 convention diverges from one priced with
// the same period under the engine's default 365-day global ratio, while
// both stay internally consistent (same period, proportional YearFracs).
func TestFlowsDayCountFidelity(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 6, 0)
	days := clock.Time(int64(end.Sub(start).Hours() / 24))

	act360 := utils.YearFraction(start, end, "ACT/360")
	globalRatio := float64(days) / clock.DefaultConfig().YearFractionRatio

	require.NotEqual(t, act360, globalRatio)
	require.InDelta(t, act360, globalRatio*365.0/360.0, 1e-12)

	c := curve.NewConstantRate(0.05)
	build := func(yearFrac float64) *instrument.Flows {
		rows, err := instrument.NewCashflowList([]instrument.FlowRow{
			{Fix: 0, Start: 0, End: days, Pay: days, Multiplier: 0, Margin: 1, YearFrac: yearFrac},
		})
		require.NoError(t, err)
		return instrument.NewFlows(c, nil, rows)
	}

	d := rng.NewDriver(rng.NewDefaultSource(1))
	act360Leg := build(act360)
	require.NoError(t, act360Leg.Init(clock.Time(0), days, d, clock.DefaultConfig()))
	act360Leg.Reset()

	ratioLeg := build(globalRatio)
	require.NoError(t, ratioLeg.Init(clock.Time(0), days, d, clock.DefaultConfig()))
	ratioLeg.Reset()

	act360Leg.Update(days)
	ratioLeg.Update(days)

	assert.InDelta(t, act360, act360Leg.TypedState().Flow, 1e-12)
	assert.InDelta(t, globalRatio, ratioLeg.TypedState().Flow, 1e-12)
	assert.NotEqual(t, act360Leg.TypedState().Flow, ratioLeg.TypedState().Flow)
}

func TestNewCashflowListRejectsInvalidRows(t *testing.T) {
	_, err := instrument.NewCashflowList([]instrument.FlowRow{
		{Start: clock.Time(10), End: clock.Time(5), Fix: clock.Time(0), Pay: clock.Time(20)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, instrument.ErrInvalidSchedule)

	_, err = instrument.NewCashflowList([]instrument.FlowRow{
		{Start: clock.Time(0), End: clock.Time(5), Fix: clock.Time(20), Pay: clock.Time(10)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, instrument.ErrInvalidSchedule)
}
