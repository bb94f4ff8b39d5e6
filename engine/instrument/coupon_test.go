package instrument_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
	"github.com/meenmo/molibsim/engine/instrument"
	"github.com/meenmo/molibsim/engine/rng"
	"github.com/meenmo/molibsim/marketdata/krx"
)

func TestFixedCouponValuesThenPaysAtMaturity(t *testing.T) {
	c := curve.NewConstantRate(0.04)
	coupon := instrument.NewFixedCoupon(c, 100, 0.04, clock.Time(0), clock.Time(365), clock.Time(365))

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, coupon.Init(clock.Time(0), clock.Time(365), d, clock.DefaultConfig()))
	coupon.Reset()

	want := 100 * 0.04 * c.DiscountAt(clock.Time(365))
	assert.InEpsilon(t, want, coupon.TypedState().Value, 1e-9)
	assert.Equal(t, float64(0), coupon.TypedState().Flow)

	coupon.Update(clock.Time(365))
	assert.InDelta(t, 4.0, coupon.TypedState().Flow, 1e-9)
	assert.True(t, coupon.TypedState().Matured)
	assert.False(t, coupon.IsLive())
}

func TestVanillaFloatCouponFixesForwardAtFixTime(t *testing.T) {
	c := curve.NewConstantRate(0.05)
	coupon := instrument.NewVanillaFloatCoupon(c, 100, 0.001, clock.Time(0), clock.Time(0), clock.Time(365), clock.Time(365))

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, coupon.Init(clock.Time(0), clock.Time(365), d, clock.DefaultConfig()))
	coupon.Reset()

	fwd := c.DiscountAt(clock.Time(0))/c.DiscountAt(clock.Time(365)) - 1

	coupon.Update(clock.Time(365))
	want := 100 * (fwd + 0.001)
	assert.InEpsilon(t, want, coupon.TypedState().Flow, 1e-9)
	assert.True(t, coupon.TypedState().Matured)
}

// TestIndexedFloatCouponReadsKRXFeed exercises SPEC_FULL.md §6.3: a
// marketdata/krx.ReferenceRateFeed wrapped in a krx.FeedAgent stands in for
// the spec's "external index process" an IndexedFloatCoupon fixes off.
func TestIndexedFloatCouponReadsKRXFeed(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fixDate := epoch.AddDate(0, 0, 90)
	feed := krx.NewMapReferenceRateFeed(map[string]float64{
		fixDate.Format("2006-01-02"): 0.035,
	})
	index := krx.NewFeedAgent(feed, epoch, 0)

	c := curve.NewConstantRate(0.03)
	coupon := instrument.NewIndexedFloatCoupon(c, index, 100, 0.0025,
		clock.Time(90), clock.Time(90), clock.Time(180), clock.Time(180))

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, coupon.Init(clock.Time(0), clock.Time(180), d, clock.DefaultConfig()))
	coupon.Reset()

	coupon.Update(clock.Time(90))
	assert.False(t, coupon.TypedState().Matured)

	coupon.Update(clock.Time(180))
	yrs := clock.DefaultConfig().Years(clock.Time(90), clock.Time(180))
	want := 100 * (0.035 + 0.0025) * yrs
	assert.InEpsilon(t, want, coupon.TypedState().Flow, 1e-9)
	assert.True(t, coupon.TypedState().Matured)
	assert.False(t, coupon.IsLive())
}

func TestIndexedFloatCouponFallsBackWhenFeedHasNoQuote(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feed := krx.NewMapReferenceRateFeed(nil)
	index := krx.NewFeedAgent(feed, epoch, 0.02)

	c := curve.NewConstantRate(0.03)
	coupon := instrument.NewIndexedFloatCoupon(c, index, 100, 0,
		clock.Time(0), clock.Time(0), clock.Time(365), clock.Time(365))

	d := rng.NewDriver(rng.NewDefaultSource(1))
	require.NoError(t, coupon.Init(clock.Time(0), clock.Time(365), d, clock.DefaultConfig()))
	coupon.Reset()

	coupon.Update(clock.Time(365))
	assert.InEpsilon(t, 100*0.02, coupon.TypedState().Flow, 1e-9)
}
