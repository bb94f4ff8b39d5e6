package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/molibsim/engine/clock"
)

func TestTimeOrdering(t *testing.T) {
	assert.True(t, clock.Time(1).Before(clock.Time(2)))
	assert.False(t, clock.Time(2).Before(clock.Time(2)))
	assert.True(t, clock.Time(2).AtOrBefore(clock.Time(2)))
	assert.False(t, clock.Time(3).AtOrBefore(clock.Time(2)))
}

func TestTimeAddAndSubRoundTrip(t *testing.T) {
	start := clock.Time(100)
	d := clock.Duration(30)
	end := start.Add(d)
	assert.Equal(t, clock.Time(130), end)
	assert.Equal(t, d, end.Sub(start))
}

func TestConfigYearsUsesRatio(t *testing.T) {
	cfg := clock.Config{YearFractionRatio: 360}
	assert.InDelta(t, 1, cfg.Years(clock.Time(0), clock.Time(360)), 1e-12)
	assert.InDelta(t, 0.5, cfg.YearsSince(clock.Duration(180)), 1e-12)
}

func TestDefaultConfigFallsBackTo365(t *testing.T) {
	cfg := clock.Config{}
	assert.InDelta(t, 1, cfg.Years(clock.Time(0), clock.Time(365)), 1e-12)
	assert.Equal(t, float64(365), clock.DefaultConfig().YearFractionRatio)
}
