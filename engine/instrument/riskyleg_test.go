package instrument_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
	"github.com/meenmo/molibsim/engine/instrument"
)

func TestRiskyLegSurvivesWhenDrawBeatsHazard(t *testing.T) {
	c := curve.NewConstantRate(0.03)
	rows := []instrument.LegRow{{Pay: clock.Time(365), Amount: 100}}
	leg := instrument.NewFixedLeg(c, rows)
	survival := curve.NewConstantRate(0.01) // hazard rate self-state
	u := agent.NewConstantAgent(0.99)        // draw never beats a tiny hazard
	risky := instrument.NewRiskyLeg(leg, survival, u, 100, 0.4)
	initReset(t, risky, clock.Time(0), clock.Time(400))

	risky.Update(clock.Time(100))
	assert.True(t, risky.IsLive())
	assert.False(t, risky.TypedState().Matured)
}

func TestRiskyLegDefaultsWhenDrawExceedsSurvival(t *testing.T) {
	c := curve.NewConstantRate(0.03)
	rows := []instrument.LegRow{{Pay: clock.Time(365), Amount: 100}}
	leg := instrument.NewFixedLeg(c, rows)
	survival := curve.NewConstantRate(5) // huge hazard -> exp(-h*dt) tiny
	u := agent.NewConstantAgent(0.5)
	risky := instrument.NewRiskyLeg(leg, survival, u, 100, 0.4)
	initReset(t, risky, clock.Time(0), clock.Time(400))

	risky.Update(clock.Time(100))
	st := risky.TypedState()
	assert.True(t, st.Matured)
	assert.InDelta(t, 100*0.4, st.Flow, 1e-9)
	assert.False(t, risky.IsLive())
}

func TestRiskyLegMaturesWhenWrappedLegMatures(t *testing.T) {
	c := curve.NewConstantRate(0.0)
	rows := []instrument.LegRow{{Pay: clock.Time(100), Amount: 100}}
	leg := instrument.NewFixedLeg(c, rows)
	survival := curve.NewConstantRate(0.0001)
	u := agent.NewConstantAgent(0.0)
	risky := instrument.NewRiskyLeg(leg, survival, u, 100, 0.4)
	initReset(t, risky, clock.Time(0), clock.Time(200))

	risky.Update(clock.Time(100))
	assert.False(t, risky.IsLive())
}
