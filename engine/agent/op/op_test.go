package op_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/agent/op"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
	"github.com/meenmo/molibsim/engine/rng"
)

func newDriver(seed uint64) *rng.Driver {
	return rng.NewDriver(rng.NewDefaultSource(seed))
}

func initReset(t *testing.T, a agent.Agent, start, end clock.Time) {
	t.Helper()
	d := newDriver(1)
	require.NoError(t, a.Init(start, end, d, clock.DefaultConfig()))
	a.Reset()
}

func TestUnaryAppliesFuncToChildState(t *testing.T) {
	child := agent.NewConstantAgent(4)
	u := op.NewUnary("Doubled", child, op.Affine(2, 1))
	initReset(t, u, clock.Time(0), clock.Time(10))
	assert.Equal(t, float64(9), u.TypedState())
	u.Update(clock.Time(5))
	assert.Equal(t, float64(9), u.TypedState())
}

func TestUnaryLivenessFollowsChild(t *testing.T) {
	c := curve.NewConstantRate(0.05)
	bond := curve.NewTermBond(c, clock.Time(5), true)
	u := op.NewUnary("Negated", bond, op.Negate)
	initReset(t, u, clock.Time(0), clock.Time(10))
	u.Update(clock.Time(5))
	assert.False(t, u.IsLive())
}

func TestBinaryReducesLeftToRight(t *testing.T) {
	a := agent.NewConstantAgent(10)
	b := agent.NewConstantAgent(3)
	c := agent.NewConstantAgent(2)
	bin := op.NewBinary("Chain", []agent.Agent{a, b, c}, op.Difference)
	initReset(t, bin, clock.Time(0), clock.Time(10))
	assert.Equal(t, float64(5), bin.TypedState()) // (10-3)-2
}

func TestBinaryRefusesFewerThanTwoChildren(t *testing.T) {
	a := agent.NewConstantAgent(1)
	bin := op.NewBinary("Solo", []agent.Agent{a}, op.Sum)
	d := newDriver(1)
	err := bin.Init(clock.Time(0), clock.Time(10), d, clock.DefaultConfig())
	require.Error(t, err)
	require.ErrorIs(t, err, agent.ErrNotConfigured)
}

func TestCumulativeFoldsAcrossUpdates(t *testing.T) {
	child := agent.NewConstantAgent(3)
	cum := op.NewCumulative("RunningSum", child, op.Sum)
	initReset(t, cum, clock.Time(0), clock.Time(100))
	assert.Equal(t, float64(3), cum.TypedState())
	cum.Update(clock.Time(1))
	assert.Equal(t, float64(6), cum.TypedState())
	cum.Update(clock.Time(2))
	assert.Equal(t, float64(9), cum.TypedState())
}

func TestSequentialUsesX0OverrideOnFirstStep(t *testing.T) {
	child := agent.NewTimeAgent()
	seq := op.NewSequential("Delta", child, op.Difference, true, -10)
	initReset(t, seq, clock.Time(0), clock.Time(100))
	seq.Update(clock.Time(10))
	assert.Equal(t, float64(20), seq.TypedState()) // 10 - (-10)
	seq.Update(clock.Time(25))
	assert.Equal(t, float64(15), seq.TypedState()) // 25 - 10
}

func TestSequentialDefaultsPrevToResetState(t *testing.T) {
	child := agent.NewTimeAgent()
	seq := op.NewSequential("Delta", child, op.Difference, false, 0)
	initReset(t, seq, clock.Time(5), clock.Time(100))
	seq.Update(clock.Time(20))
	assert.Equal(t, float64(15), seq.TypedState()) // 20 - 5
}

func TestScalarOpLibrary(t *testing.T) {
	assert.Equal(t, 4.0, op.Identity(4))
	assert.Equal(t, 0.25, op.Reciprocal(4))
	assert.Equal(t, -4.0, op.Negate(4))
	assert.Equal(t, 4.0, op.Abs(-4))
	assert.Equal(t, 2.0, op.Sqrt(4))
	assert.InDelta(t, 1.0, op.Log(op.Exp(1)), 1e-12)

	assert.Equal(t, 7.0, op.Sum(3, 4))
	assert.Equal(t, 12.0, op.Product(3, 4))
	assert.Equal(t, -1.0, op.Difference(3, 4))
	assert.Equal(t, 2.0, op.Quotient(8, 4))
	assert.Equal(t, 8.0, op.Power(2, 3))
	assert.Equal(t, 3.0, op.Min(3, 4))
	assert.Equal(t, 4.0, op.Max(3, 4))
	assert.Equal(t, 1.0, op.Modulus(7, 3))

	eq := op.EqualWithin(0.01)
	assert.Equal(t, 1.0, eq(1.0, 1.005))
	assert.Equal(t, 0.0, eq(1.0, 1.1))

	lt := op.LessWithin(0.01)
	assert.Equal(t, 1.0, lt(1.0, 1.02))
	assert.Equal(t, 0.0, lt(1.0, 1.0))

	gt := op.GreaterWithin(0.01)
	assert.Equal(t, 1.0, gt(1.02, 1.0))
	assert.Equal(t, 0.0, gt(1.0, 1.0))

	assert.Equal(t, 1.0, op.And(1, 1))
	assert.Equal(t, 0.0, op.And(1, 0))
	assert.Equal(t, 1.0, op.Or(0, 1))
	assert.Equal(t, 0.0, op.Or(0, 0))
	assert.Equal(t, 1.0, op.Not(0))
	assert.Equal(t, 0.0, op.Not(1))
	assert.Equal(t, 1.0, op.Xor(1, 0))
	assert.Equal(t, 0.0, op.Xor(1, 1))
}
