// Package expr implements the lazy expression trees of spec §4.6: nullary,
// unary, binary, and ternary combinators over a Value() accessor, plus
// linked-expression constructors that bind a node to an agent's observable
// time, dtime, or state. The ExpressionAgent evaluates three such bound
// expressions at the corresponding lifecycle hook, letting a scenario
// compose a new formula declaratively instead of writing a new agent
// subclass per formula (spec §4.6 rationale). Nothing in molib models a
// lazy expression tree; this is kept deliberately minimal — a
// closure-returning tree, not a parser — matching that rationale.
package expr

import (
	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
)

// Expr is a lazy scalar expression node.
type Expr interface {
	Value() float64
}

type exprFunc func() float64

func (f exprFunc) Value() float64 { return f() }

// Const returns a nullary expression with a fixed value.
func Const(v float64) Expr {
	return exprFunc(func() float64 { return v })
}

// Unary returns a unary combinator applying f to child's value.
func Unary(f func(float64) float64, child Expr) Expr {
	return exprFunc(func() float64 { return f(child.Value()) })
}

// Binary returns a binary combinator applying f to left and right's
// values.
func Binary(f func(a, b float64) float64, left, right Expr) Expr {
	return exprFunc(func() float64 { return f(left.Value(), right.Value()) })
}

// Ternary returns cond.Value() != 0 ? then.Value() : els.Value().
func Ternary(cond, then, els Expr) Expr {
	return exprFunc(func() float64 {
		if cond.Value() != 0 {
			return then.Value()
		}
		return els.Value()
	})
}

// Linked expressions bind a node to an agent's observable (spec §4.6 "A
// linked expression binds a node to an agent's observable").

// TimeOf returns an expression reading a's current time coordinate.
func TimeOf(a agent.Agent) Expr {
	return exprFunc(func() float64 { return float64(a.Time()) })
}

// DTimeOf returns an expression reading a's most recent update interval.
func DTimeOf(a agent.Agent) Expr {
	return exprFunc(func() float64 { return float64(a.DTime()) })
}

// StateOf returns an expression reading a's float64-typed state.
func StateOf(a agent.Agent) Expr {
	return exprFunc(func() float64 {
		v, ok := a.State().(float64)
		if !ok {
			panic("expr.StateOf: agent state is not float64")
		}
		return v
	})
}

// IndexedStateOf returns an expression reading a field of a composite
// (map[string]float64-typed) state via lens.
func IndexedStateOf(a agent.Agent, lens func(any) float64) Expr {
	return exprFunc(func() float64 { return lens(a.State()) })
}

// ExpressionAgent evaluates one of three bound Exprs at the matching
// lifecycle hook (spec §4.6 "expression agent"): onInit at Init, onReset at
// Reset, onUpdate at Update. Any of the three may be nil, in which case
// that hook leaves state unchanged. deps lists every agent referenced by
// the bound expressions, so Base.Update advances them before the
// expression evaluates.
type ExpressionAgent struct {
	*agent.Base[float64]
}

// NewExpressionAgent constructs an ExpressionAgent bound to initExpr,
// resetExpr, updateExpr, with deps listing every agent the expressions
// reference.
func NewExpressionAgent(deps []agent.Agent, initExpr, resetExpr, updateExpr Expr) *ExpressionAgent {
	a := &ExpressionAgent{}
	a.Base = agent.NewBase[float64]("ExpressionAgent", deps,
		func(b *agent.Base[float64]) error {
			if initExpr != nil {
				b.SetState(initExpr.Value())
			}
			return nil
		},
		func(b *agent.Base[float64]) {
			if resetExpr != nil {
				b.SetState(resetExpr.Value())
			}
		},
		func(b *agent.Base[float64], t clock.Time) {
			if updateExpr != nil {
				b.SetState(updateExpr.Value())
			}
		},
	)
	return a
}
