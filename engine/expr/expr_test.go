package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/expr"
	"github.com/meenmo/molibsim/engine/rng"
)

func newDriver(seed uint64) *rng.Driver {
	return rng.NewDriver(rng.NewDefaultSource(seed))
}

func TestConstAlwaysReturnsItsValue(t *testing.T) {
	c := expr.Const(3.5)
	assert.Equal(t, 3.5, c.Value())
	assert.Equal(t, 3.5, c.Value())
}

func TestUnaryAppliesFuncToChildValue(t *testing.T) {
	u := expr.Unary(func(x float64) float64 { return x * x }, expr.Const(4))
	assert.Equal(t, 16.0, u.Value())
}

func TestBinaryAppliesFuncToBothOperands(t *testing.T) {
	b := expr.Binary(func(a, b float64) float64 { return a - b }, expr.Const(10), expr.Const(3))
	assert.Equal(t, 7.0, b.Value())
}

func TestTernaryPicksBranchByCondition(t *testing.T) {
	tru := expr.Ternary(expr.Const(1), expr.Const(100), expr.Const(-100))
	fls := expr.Ternary(expr.Const(0), expr.Const(100), expr.Const(-100))
	assert.Equal(t, 100.0, tru.Value())
	assert.Equal(t, -100.0, fls.Value())
}

func TestTimeOfAndDTimeOfTrackBoundAgent(t *testing.T) {
	child := agent.NewTimeAgent()
	d := newDriver(1)
	require.NoError(t, child.Init(clock.Time(0), clock.Time(100), d, clock.DefaultConfig()))
	child.Reset()
	child.Update(clock.Time(30))

	assert.Equal(t, 30.0, expr.TimeOf(child).Value())
	assert.Equal(t, 30.0, expr.DTimeOf(child).Value())

	child.Update(clock.Time(45))
	assert.Equal(t, 45.0, expr.TimeOf(child).Value())
	assert.Equal(t, 15.0, expr.DTimeOf(child).Value())
}

func TestStateOfReadsBoundAgentsFloatState(t *testing.T) {
	child := agent.NewConstantAgent(9)
	d := newDriver(1)
	require.NoError(t, child.Init(clock.Time(0), clock.Time(100), d, clock.DefaultConfig()))
	child.Reset()
	assert.Equal(t, 9.0, expr.StateOf(child).Value())
}

func TestIndexedStateOfAppliesLensToCompositeState(t *testing.T) {
	child := compositeAgent{fields: map[string]float64{"value": 12, "flow": 2}}
	e := expr.IndexedStateOf(&child, func(s any) float64 {
		m := s.(map[string]float64)
		return m["flow"]
	})
	assert.Equal(t, 2.0, e.Value())
}

func TestExpressionAgentEvaluatesBoundHooks(t *testing.T) {
	child := agent.NewTimeAgent()
	formula := expr.NewExpressionAgent(
		[]agent.Agent{child},
		expr.Const(-1),
		expr.Const(0),
		expr.Binary(func(a, b float64) float64 { return a + b }, expr.TimeOf(child), expr.Const(100)),
	)
	d := newDriver(1)
	require.NoError(t, formula.Init(clock.Time(0), clock.Time(100), d, clock.DefaultConfig()))
	assert.Equal(t, -1.0, formula.TypedState())

	formula.Reset()
	assert.Equal(t, 0.0, formula.TypedState())

	formula.Update(clock.Time(20))
	assert.Equal(t, 120.0, formula.TypedState())
}

func TestExpressionAgentLeavesStateUnchangedWhenHookIsNil(t *testing.T) {
	formula := expr.NewExpressionAgent(nil, expr.Const(5), nil, nil)
	d := newDriver(1)
	require.NoError(t, formula.Init(clock.Time(0), clock.Time(100), d, clock.DefaultConfig()))
	formula.Reset()
	assert.Equal(t, 5.0, formula.TypedState())
	formula.Update(clock.Time(10))
	assert.Equal(t, 5.0, formula.TypedState())
}

// compositeAgent is a minimal agent.Agent whose State() returns a
// map[string]float64, for exercising IndexedStateOf without a dependency on
// engine/instrument.
type compositeAgent struct {
	fields map[string]float64
}

func (c *compositeAgent) Init(start, end clock.Time, rnd *rng.Driver, cfg clock.Config) error {
	return nil
}
func (c *compositeAgent) Reset()                  {}
func (c *compositeAgent) Update(t clock.Time)     {}
func (c *compositeAgent) State() any              { return c.fields }
func (c *compositeAgent) IsLive() bool            { return true }
func (c *compositeAgent) Time() clock.Time        { return 0 }
func (c *compositeAgent) DTime() clock.Duration   { return 0 }
func (c *compositeAgent) UsesRandomStream() bool  { return false }
