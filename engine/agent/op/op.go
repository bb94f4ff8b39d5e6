// Package op implements the operator agents (spec §4.4): unary, binary,
// cumulative (fold), and sequential (pairwise) combinators, plus the
// library of scalar operations they're typically parameterised with.
// Grounded on swap/common.go's small pure-function helpers (forwardRate,
// legPV) as the model for tiny named float64 closures, generalised here
// into a reusable combinator set instead of one-off package functions.
package op

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
)

func stateOf(a agent.Agent) float64 {
	v, ok := a.State().(float64)
	if !ok {
		panic("op: dependency state is not float64")
	}
	return v
}

// Unary computes state = f(child.state) on every update; live follows the
// child (spec §4.4 "Unary").
type Unary struct {
	*agent.Base[float64]
}

// NewUnary constructs a Unary operator agent.
func NewUnary(name string, child agent.Agent, f func(float64) float64) *Unary {
	a := &Unary{}
	a.Base = agent.NewBase[float64](name, agent.Single(child),
		func(b *agent.Base[float64]) error {
			b.SetState(f(stateOf(child)))
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(f(stateOf(child)))
		},
		func(b *agent.Base[float64], t clock.Time) {
			b.SetState(f(stateOf(child)))
			b.SetLive(child.IsLive())
		},
	)
	a.RequireSingleDep()
	return a
}

// Binary reduces two or more children left-to-right with f (spec §4.4
// "Binary").
type Binary struct {
	*agent.Base[float64]
}

// NewBinary constructs a Binary operator agent over children (at least
// two), reducing left-to-right with f.
func NewBinary(name string, children []agent.Agent, f func(acc, next float64) float64) *Binary {
	reduce := func() float64 {
		acc := stateOf(children[0])
		for _, c := range children[1:] {
			acc = f(acc, stateOf(c))
		}
		return acc
	}
	allLive := func() bool {
		for _, c := range children {
			if !c.IsLive() {
				return false
			}
		}
		return true
	}
	a := &Binary{}
	a.Base = agent.NewBase[float64](name, agent.Multiple(children...),
		func(b *agent.Base[float64]) error {
			if len(children) < 2 {
				return agent.ErrNotConfigured
			}
			b.SetState(reduce())
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(reduce())
		},
		func(b *agent.Base[float64], t clock.Time) {
			b.SetState(reduce())
			b.SetLive(allLive())
		},
	)
	return a
}

// Cumulative folds the child's state into a running accumulator: after
// reset, state = child.state; on each update, state = f(child.state,
// state) (spec §4.4 "Cumulative").
type Cumulative struct {
	*agent.Base[float64]
}

// NewCumulative constructs a Cumulative (fold) operator agent.
func NewCumulative(name string, child agent.Agent, f func(childState, acc float64) float64) *Cumulative {
	a := &Cumulative{}
	a.Base = agent.NewBase[float64](name, agent.Single(child),
		func(b *agent.Base[float64]) error {
			b.SetState(stateOf(child))
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(stateOf(child))
		},
		func(b *agent.Base[float64], t clock.Time) {
			b.SetState(f(stateOf(child), b.TypedState()))
			b.SetLive(child.IsLive())
		},
	)
	a.RequireSingleDep()
	return a
}

// Sequential remembers the child's previous state and computes state =
// f(child.state, previous) on each update; previous starts as the optional
// x0 override, else the child's state at reset (spec §4.4 "Sequential").
type Sequential struct {
	*agent.Base[float64]
	prev float64
}

// NewSequential constructs a Sequential (pairwise) operator agent.
// Pass hasX0=true with x0 set to override the first step's "previous"
// value; otherwise the child's reset-time state is used.
func NewSequential(name string, child agent.Agent, f func(childState, prev float64) float64, hasX0 bool, x0 float64) *Sequential {
	a := &Sequential{}
	a.Base = agent.NewBase[float64](name, agent.Single(child),
		func(b *agent.Base[float64]) error {
			if hasX0 {
				a.prev = x0
			} else {
				a.prev = stateOf(child)
			}
			b.SetState(stateOf(child))
			return nil
		},
		func(b *agent.Base[float64]) {
			if hasX0 {
				a.prev = x0
			} else {
				a.prev = stateOf(child)
			}
			b.SetState(stateOf(child))
		},
		func(b *agent.Base[float64], t clock.Time) {
			cur := stateOf(child)
			b.SetState(f(cur, a.prev))
			a.prev = cur
			b.SetLive(child.IsLive())
		},
	)
	a.RequireSingleDep()
	return a
}

// Scalar operation library (spec §4.4): identity, reciprocal, negate, abs,
// sqrt, exp, log, cdf/quantile, affine, sum/product/difference/quotient/
// power, min/max, modulus, tolerant comparisons, boolean and/or/not/xor.
// Each is a plain func(float64) float64 (or two-arg) suitable for passing
// straight into NewUnary/NewBinary.

func Identity(x float64) float64  { return x }
func Reciprocal(x float64) float64 { return 1 / x }
func Negate(x float64) float64    { return -x }
func Abs(x float64) float64       { return math.Abs(x) }
func Sqrt(x float64) float64      { return math.Sqrt(x) }
func Exp(x float64) float64       { return math.Exp(x) }
func Log(x float64) float64       { return math.Log(x) }

// CDF returns a unary func evaluating dist's cumulative distribution at x.
func CDF(dist distuv.Normal) func(float64) float64 {
	return func(x float64) float64 { return dist.CDF(x) }
}

// Quantile returns a unary func evaluating dist's quantile (inverse CDF) at
// p.
func Quantile(dist distuv.Normal) func(float64) float64 {
	return func(p float64) float64 { return dist.Quantile(p) }
}

// Affine returns a unary func computing scale*x + offset.
func Affine(scale, offset float64) func(float64) float64 {
	return func(x float64) float64 { return scale*x + offset }
}

func Sum(a, b float64) float64        { return a + b }
func Product(a, b float64) float64     { return a * b }
func Difference(a, b float64) float64  { return a - b }
func Quotient(a, b float64) float64    { return a / b }
func Power(a, b float64) float64       { return math.Pow(a, b) }
func Min(a, b float64) float64         { return math.Min(a, b) }
func Max(a, b float64) float64         { return math.Max(a, b) }
func Modulus(a, b float64) float64     { return math.Mod(a, b) }

// Tolerant comparisons (spec §4.4 "comparisons (with tolerance ε)") return
// 1 for true, 0 for false, matching the engine's scalar-state convention.

// EqualWithin returns a binary comparator treating a, b as equal when
// |a-b| <= eps.
func EqualWithin(eps float64) func(a, b float64) float64 {
	return func(a, b float64) float64 {
		if math.Abs(a-b) <= eps {
			return 1
		}
		return 0
	}
}

// LessWithin returns a binary comparator: a < b - eps.
func LessWithin(eps float64) func(a, b float64) float64 {
	return func(a, b float64) float64 {
		if a < b-eps {
			return 1
		}
		return 0
	}
}

// GreaterWithin returns a binary comparator: a > b + eps.
func GreaterWithin(eps float64) func(a, b float64) float64 {
	return func(a, b float64) float64 {
		if a > b+eps {
			return 1
		}
		return 0
	}
}

// Boolean ops over the 0/1 scalar-state convention.
func And(a, b float64) float64 { return boolToFloat(a != 0 && b != 0) }
func Or(a, b float64) float64  { return boolToFloat(a != 0 || b != 0) }
func Not(x float64) float64    { return boolToFloat(x == 0) }
func Xor(a, b float64) float64 { return boolToFloat((a != 0) != (b != 0)) }

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
