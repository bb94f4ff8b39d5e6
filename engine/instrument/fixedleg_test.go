package instrument_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
	"github.com/meenmo/molibsim/engine/instrument"
	"github.com/meenmo/molibsim/engine/rng"
)

func TestFixedLegPricesAnnualCouponsAndRedemption(t *testing.T) {
	c := curve.NewConstantRate(0.05)
	rows := []instrument.LegRow{
		{Pay: clock.Time(365), Amount: 5},
		{Pay: clock.Time(730), Amount: 5},
		{Pay: clock.Time(1095), Amount: 5},
		{Pay: clock.Time(1460), Amount: 5},
		{Pay: clock.Time(1825), Amount: 5},
		{Pay: clock.Time(2190), Amount: 5},
		{Pay: clock.Time(2555), Amount: 5},
		{Pay: clock.Time(2920), Amount: 5},
		{Pay: clock.Time(3285), Amount: 5},
		{Pay: clock.Time(3650), Amount: 5},
		{Pay: clock.Time(3650), Amount: 100},
	}
	leg := instrument.NewFixedLeg(c, rows)
	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, leg.Init(clock.Time(0), clock.Time(3650), d, clock.DefaultConfig()))
	leg.Reset()

	want := 0.0
	for k := 1; k <= 10; k++ {
		want += 5 * c.DiscountAt(clock.Time(int64(k)*365))
	}
	want += 100 * c.DiscountAt(clock.Time(3650))

	got := leg.TypedState().Value
	assert.InEpsilon(t, want, got, 1e-4)
}

func TestFixedLegEmitsFlowOnlyAtPayDate(t *testing.T) {
	c := curve.NewConstantRate(0.03)
	rows := []instrument.LegRow{
		{Pay: clock.Time(180), Amount: 3},
		{Pay: clock.Time(365), Amount: 103},
	}
	leg := instrument.NewFixedLeg(c, rows)
	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, leg.Init(clock.Time(0), clock.Time(365), d, clock.DefaultConfig()))
	leg.Reset()

	leg.Update(clock.Time(90))
	assert.Equal(t, float64(0), leg.TypedState().Flow)
	assert.False(t, leg.TypedState().Matured)

	leg.Update(clock.Time(180))
	assert.Equal(t, float64(3), leg.TypedState().Flow)
	assert.False(t, leg.TypedState().Matured)

	leg.Update(clock.Time(365))
	assert.Equal(t, float64(103), leg.TypedState().Flow)
	assert.True(t, leg.TypedState().Matured)
	assert.False(t, leg.IsLive())
	assert.True(t, math.Abs(leg.TypedState().Value) < 1e-12)
}

func TestFixedLegRejectsEmptySchedule(t *testing.T) {
	c := curve.NewConstantRate(0.03)
	leg := instrument.NewFixedLeg(c, nil)
	d := rng.NewDriver(rng.NewDefaultSource(1))
	err := leg.Init(clock.Time(0), clock.Time(365), d, clock.DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, instrument.ErrNotConfigured)
}
