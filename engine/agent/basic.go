package agent

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/line"
)

// Basic agents (spec §2 item 5): time process, constant, curve, gearbox,
// uniform variate, Gaussian variate, Gaussian measure-twister. Each is a
// thin wrapper around *Base[float64] supplying behaviour via the three
// lifecycle hooks instead of a virtual method.

// TimeAgent exposes the running simulation time itself as a float64 state
// (in day-count units), used as the canonical "root = Time" scenario in
// spec §8's concrete end-to-end tests.
type TimeAgent struct {
	*Base[float64]
}

// NewTimeAgent constructs a TimeAgent.
func NewTimeAgent() *TimeAgent {
	a := &TimeAgent{}
	a.Base = NewBase[float64]("TimeAgent", Independent(),
		func(b *Base[float64]) error {
			b.SetState(float64(b.Start()))
			return nil
		},
		nil,
		func(b *Base[float64], t clock.Time) {
			b.SetState(float64(t))
		},
	)
	return a
}

// ConstantAgent holds a fixed scalar for the life of the path.
type ConstantAgent struct {
	*Base[float64]
}

// NewConstantAgent constructs a ConstantAgent with value c.
func NewConstantAgent(c float64) *ConstantAgent {
	a := &ConstantAgent{}
	a.Base = NewBase[float64]("ConstantAgent", Independent(),
		func(b *Base[float64]) error {
			b.SetState(c)
			return nil
		},
		nil,
		func(b *Base[float64], t clock.Time) {
			// state never changes; dtime/time already advanced by Base.Update.
		},
	)
	return a
}

// CurveAgent is a state-adaptor over an externally supplied math-line
// (spec §6 "Math-line"): its state at time t is ln.Value(years-since-start),
// letting any black-box line drive an agent's observable without a new
// agent subclass per curve shape.
type CurveAgent struct {
	*Base[float64]
}

// NewCurveAgent constructs a CurveAgent reading ln at the simulation's
// elapsed years under cfg (captured at Init).
func NewCurveAgent(ln line.Line) *CurveAgent {
	a := &CurveAgent{}
	a.Base = NewBase[float64]("CurveAgent", Independent(),
		func(b *Base[float64]) error {
			b.SetState(ln.Value(0))
			return nil
		},
		nil,
		func(b *Base[float64], t clock.Time) {
			b.SetState(ln.Value(b.Config().Years(b.Start(), t)))
		},
	)
	return a
}

// GearboxAgent applies an affine rescale state = scale*child.state + offset
// to a single float64-state dependency.
type GearboxAgent struct {
	*Base[float64]
}

// NewGearboxAgent constructs a GearboxAgent over child with the given
// scale/offset.
func NewGearboxAgent(child Agent, scale, offset float64) *GearboxAgent {
	a := &GearboxAgent{}
	a.Base = NewBase[float64]("GearboxAgent", Single(child),
		func(b *Base[float64]) error {
			b.SetState(scale*stateAsFloat(b.Dep(0)) + offset)
			return nil
		},
		nil,
		func(b *Base[float64], t clock.Time) {
			b.SetState(scale*stateAsFloat(b.Dep(0)) + offset)
		},
	)
	a.RequireSingleDep()
	return a
}

// UniformVariateAgent draws directly from the shared random driver, one
// draw per Update call (spec §2 item 5 "uniform variate").
type UniformVariateAgent struct {
	*Base[float64]
}

// NewUniformVariateAgent constructs a UniformVariateAgent.
func NewUniformVariateAgent() *UniformVariateAgent {
	a := &UniformVariateAgent{}
	a.Base = NewBase[float64]("UniformVariateAgent", Independent(),
		func(b *Base[float64]) error {
			b.MarkUsesRandomStream()
			b.SetState(0)
			return nil
		},
		nil,
		func(b *Base[float64], t clock.Time) {
			b.SetState(b.Driver().Draw())
		},
	)
	return a
}

// GaussianVariateAgent draws a standard-normal variate per Update by
// inverse-CDF transforming one uniform draw from the shared driver,
// keeping the engine's notion of "one random event per step" intact while
// delegating the normal quantile function to gonum rather than hand-rolling
// an inverse-erf approximation (DESIGN.md ledger, "Basic agents").
type GaussianVariateAgent struct {
	*Base[float64]
}

// NewGaussianVariateAgent constructs a GaussianVariateAgent.
func NewGaussianVariateAgent() *GaussianVariateAgent {
	a := &GaussianVariateAgent{}
	a.Base = NewBase[float64]("GaussianVariateAgent", Independent(),
		func(b *Base[float64]) error {
			b.MarkUsesRandomStream()
			b.SetState(0)
			return nil
		},
		nil,
		func(b *Base[float64], t clock.Time) {
			u := b.Driver().Draw()
			b.SetState(distuv.UnitNormal.Quantile(u))
		},
	)
	return a
}

// GaussianTwister implements the importance-sampling "measure-twister":
// it shifts a Gaussian child's variate by theta and feeds the
// corresponding Girsanov likelihood ratio into the shared driver's weight
// (spec §9 "Importance sampling" — update_weight documented as part of the
// random-driver contract, consumed here rather than in the driver itself).
type GaussianTwister struct {
	*Base[float64]
}

// NewGaussianTwister constructs a GaussianTwister shifting child (a
// standard-normal-state agent) by theta under the new measure.
func NewGaussianTwister(child Agent, theta float64) *GaussianTwister {
	a := &GaussianTwister{}
	a.Base = NewBase[float64]("GaussianTwister", Single(child),
		func(b *Base[float64]) error {
			b.MarkUsesRandomStream()
			b.SetState(stateAsFloat(b.Dep(0)) + theta)
			return nil
		},
		nil,
		func(b *Base[float64], t clock.Time) {
			z := stateAsFloat(b.Dep(0))
			b.SetState(z + theta)
			likelihoodRatio := math.Exp(-theta*z - 0.5*theta*theta)
			b.Driver().UpdateWeight(likelihoodRatio)
		},
	)
	a.RequireSingleDep()
	return a
}

// stateAsFloat extracts a float64 from an Agent's type-erased state,
// panicking on a type mismatch — basic agents are only ever wired to other
// float64-state agents, so this is a programmer error, not a runtime one.
func stateAsFloat(a Agent) float64 {
	v, ok := a.State().(float64)
	if !ok {
		panic("stateAsFloat: dependency state is not float64")
	}
	return v
}
