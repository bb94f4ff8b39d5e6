// Package observer implements the observer set of spec §4.10: Expectation,
// Statistics, Bounds, Scenarios, Histogram, CrossMoments, and
// ObserverVector. Every observer (bar CrossMoments, which watches several
// agents at once) is bound to a single scalar value read off the root
// agent's state via a lens — a plain type assertion for a root exposing a
// float64 state directly (the Gaussian-variate and Time-agent scenarios in
// spec §8), or a field projection for a composite-State root (an
// instrument's .Value, as in the fixed-leg pricing scenario).
//
// Grounded on swap/curve.go's buildZeroCurve map-accumulation style for
// the running-statistics accumulator pattern, and utils.RoundTo's explicit
// round-half-up (not banker's) rounding, preserved here for histogram
// bucket assignment per spec §9 ("sig_digits... rounding ambiguities at
// .5").
package observer

import (
	"math"

	"github.com/meenmo/molibsim/engine/agent"
)

// Lens projects an agent's type-erased state down to the scalar value an
// observer accumulates. DefaultLens asserts the state is already a
// float64; instrument-state roots should pass a lens reading .Value (or
// .Flow) instead.
type Lens func(any) float64

// DefaultLens type-asserts state as a float64, panicking on mismatch —
// appropriate for any basic/curve/operator agent, whose state already is
// a float64.
func DefaultLens(state any) float64 {
	v, ok := state.(float64)
	if !ok {
		panic("observer: state is not float64; supply an explicit Lens")
	}
	return v
}

// source is the shared binding every single-agent observer embeds.
type source struct {
	agent agent.Agent
	lens  Lens
}

func (s *source) bind(root agent.Agent) {
	s.agent = root
	if s.lens == nil {
		s.lens = DefaultLens
	}
}

func (s *source) value() float64 { return s.lens(s.agent.State()) }

// Expectation accumulates the weighted mean across observations (spec
// §4.10 "Expectation — weighted mean").
type Expectation struct {
	source
	sumWeight float64
	sumWX     float64
}

// NewExpectation constructs an Expectation observer reading lens(root's
// state) each Observe call. lens may be nil to use DefaultLens.
func NewExpectation(lens Lens) *Expectation {
	return &Expectation{source: source{lens: lens}}
}

func (e *Expectation) Init(root agent.Agent) error { e.bind(root); return nil }

func (e *Expectation) Observe(weight float64) error {
	e.sumWeight += weight
	e.sumWX += weight * e.value()
	return nil
}

func (e *Expectation) End() error { return nil }

// Mean returns the weighted mean accumulated so far.
func (e *Expectation) Mean() float64 {
	if e.sumWeight == 0 {
		return 0
	}
	return e.sumWX / e.sumWeight
}

// Statistics accumulates mean, population variance, standard deviation,
// the Monte-Carlo standard error, and min/max (spec §4.10 "Statistics").
type Statistics struct {
	source
	n                 int
	sumWeight         float64
	sumWX, sumWX2     float64
	min, max          float64
	seenAny           bool
}

// NewStatistics constructs a Statistics observer.
func NewStatistics(lens Lens) *Statistics {
	return &Statistics{source: source{lens: lens}}
}

func (s *Statistics) Init(root agent.Agent) error { s.bind(root); return nil }

func (s *Statistics) Observe(weight float64) error {
	x := s.value()
	s.n++
	s.sumWeight += weight
	s.sumWX += weight * x
	s.sumWX2 += weight * x * x
	if !s.seenAny || x < s.min {
		s.min = x
	}
	if !s.seenAny || x > s.max {
		s.max = x
	}
	s.seenAny = true
	return nil
}

func (s *Statistics) End() error { return nil }

// Mean returns the weighted mean.
func (s *Statistics) Mean() float64 {
	if s.sumWeight == 0 {
		return 0
	}
	return s.sumWX / s.sumWeight
}

// Variance returns the (weighted) population variance — biased by the
// population, per spec §4.10.
func (s *Statistics) Variance() float64 {
	if s.sumWeight == 0 {
		return 0
	}
	m := s.Mean()
	return s.sumWX2/s.sumWeight - m*m
}

// StdDev returns the population standard deviation.
func (s *Statistics) StdDev() float64 { return math.Sqrt(s.Variance()) }

// StdError returns the Monte-Carlo standard error sqrt(variance/samples).
func (s *Statistics) StdError() float64 {
	if s.n == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

// Min returns the smallest observed value.
func (s *Statistics) Min() float64 { return s.min }

// Max returns the largest observed value.
func (s *Statistics) Max() float64 { return s.max }

// N returns the number of observations recorded.
func (s *Statistics) N() int { return s.n }

// Bounds tracks only (min, max) (spec §4.10 "Bounds").
type Bounds struct {
	source
	min, max float64
	seenAny  bool
}

// NewBounds constructs a Bounds observer.
func NewBounds(lens Lens) *Bounds { return &Bounds{source: source{lens: lens}} }

func (b *Bounds) Init(root agent.Agent) error { b.bind(root); return nil }

func (b *Bounds) Observe(weight float64) error {
	x := b.value()
	if !b.seenAny || x < b.min {
		b.min = x
	}
	if !b.seenAny || x > b.max {
		b.max = x
	}
	b.seenAny = true
	return nil
}

func (b *Bounds) End() error { return nil }

// Min returns the smallest observed value.
func (b *Bounds) Min() float64 { return b.min }

// Max returns the largest observed value.
func (b *Bounds) Max() float64 { return b.max }

// Outcome is one (value, weight) pair recorded by Scenarios.
type Outcome struct {
	Value  float64
	Weight float64
}

// Scenarios records every raw (outcome, weight) pair observed (spec §4.10
// "Scenarios — raw (outcome, weight) lists").
type Scenarios struct {
	source
	Outcomes []Outcome
}

// NewScenarios constructs a Scenarios observer.
func NewScenarios(lens Lens) *Scenarios { return &Scenarios{source: source{lens: lens}} }

func (s *Scenarios) Init(root agent.Agent) error { s.bind(root); return nil }

func (s *Scenarios) Observe(weight float64) error {
	s.Outcomes = append(s.Outcomes, Outcome{Value: s.value(), Weight: weight})
	return nil
}

func (s *Scenarios) End() error { return nil }
