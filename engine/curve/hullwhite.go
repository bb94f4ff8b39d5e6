package curve

import (
	"math"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/line"
)

// hwCalibrator is the cached sub-agent that supplies Hull-White's drift
// term mu(t) so the model reprices the input discount curve exactly (spec
// §4.7 "Hull-White... mu(t) supplied by a cached calibrator sub-agent
// ensuring the model reprices input discount factors"). It is wrapped in
// agent.Cached since the drift depends only on the fix schedule and the
// input curve, not on any draw (§4.3's "static curves, gearboxes, some
// curve adaptors" rationale).
type hwCalibrator struct {
	*agent.Base[float64]
	ln   line.Line
	mean float64 // mean-reversion speed m
	vol  float64 // volatility sigma
}

// f(t) is the instantaneous forward rate implied by ln at years-since-start
// t, via a centred finite difference on log(df). ln is expected to
// extrapolate below its first pillar (PiecewiseLogLinear and the test
// fixtures' constant-rate lines both do), so the lower sample is taken at
// t-bump even when t < bump rather than clamped to 0 — clamping would
// shrink the numerator to a one-sided difference while leaving the
// denominator at the two-sided 2*bump, halving the result near t=0.
func (h *hwCalibrator) forward(t float64) float64 {
	const bump = 1e-4
	df0 := h.ln.Value(t - bump)
	df1 := h.ln.Value(t + bump)
	return -(math.Log(df1) - math.Log(df0)) / (2 * bump)
}

// mu(t) = df/dt f(t) + m*f(t) + sigma^2/(2m)*(1-exp(-2mt)), the standard
// extended-Vasicek drift that makes E[r(t)] match the input curve's forward
// rate (spec §4.7).
func (h *hwCalibrator) driftAt(t float64) float64 {
	const bump = 1e-4
	f0 := h.forward(t - bump)
	f1 := h.forward(t + bump)
	dfdt := (f1 - f0) / (2 * bump)
	if h.mean == 0 {
		return dfdt
	}
	return dfdt + h.mean*h.forward(t) + h.vol*h.vol/(2*h.mean)*(1-math.Exp(-2*h.mean*t))
}

func newHWCalibrator(ln line.Line, mean, vol float64) *agent.Cached {
	h := &hwCalibrator{ln: ln, mean: mean, vol: vol}
	h.Base = agent.NewBase[float64]("HullWhiteCalibrator", agent.Independent(),
		func(b *agent.Base[float64]) error {
			b.SetState(h.driftAt(0))
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(h.driftAt(0))
		},
		func(b *agent.Base[float64], t clock.Time) {
			yrs := b.Config().Years(b.Start(), t)
			b.SetState(h.driftAt(yrs))
		},
	)
	return agent.NewCached("HullWhiteCalibratorCache", h)
}

// HullWhite implements the extended-Vasicek (Hull-White) short-rate model
// (spec §4.7): each reset restores r = f(start); each update advances
// r = r*exp(-m*dt) + mu(t)*(1-exp(-m*dt))/m + sqrt(v)*Z (mu(t)*dt when
// m = 0) with v the discretisation variance and mu(t) the calibrator's
// drift, held constant over the step. DiscountAt(t) uses the
// closed-form affine term structure A(t,T)*exp(-B(t,T)*r).
type HullWhite struct {
	*core
	ln         line.Line
	mean, vol  float64
	calibrator *agent.Cached
	z          agent.Agent
}

// NewHullWhite constructs a HullWhite curve driven by z (a standard-normal
// variate agent), mean-reverting to the forward curve implied by ln with
// speed mean and volatility vol. Pass vol=0 for the deterministic (zero
// volatility) drift-neutrality check in spec §8 scenario 6.
func NewHullWhite(ln line.Line, mean, vol float64, z agent.Agent) *HullWhite {
	a := &HullWhite{ln: ln, mean: mean, vol: vol, z: z}
	a.calibrator = newHWCalibrator(ln, mean, vol)
	deps := []agent.Agent{a.calibrator}
	if z != nil {
		deps = append(deps, z)
	}
	var n float64
	forward0 := func(b *agent.Base[float64]) float64 {
		const bump = 1e-4
		t0 := b.Config().Years(b.Start(), b.Start())
		df0 := ln.Value(t0 - bump)
		df1 := ln.Value(t0 + bump)
		return -(math.Log(df1) - math.Log(df0)) / (2 * bump)
	}
	base := agent.NewBase[float64]("HullWhiteCurve", deps,
		func(b *agent.Base[float64]) error {
			n = 1
			b.SetState(forward0(b))
			return nil
		},
		func(b *agent.Base[float64]) {
			n = 1
			b.SetState(forward0(b))
		},
		func(b *agent.Base[float64], t clock.Time) {
			dt := b.Config().YearsSince(b.DTime())
			rPrev := b.TypedState()
			m := mean
			driftMu := stateOf(a.calibrator)
			var zDraw float64
			if z != nil {
				zDraw = stateOf(z)
			}
			var rNext float64
			if m == 0 {
				rNext = rPrev + driftMu*dt
			} else {
				rNext = rPrev*math.Exp(-m*dt) + driftMu*(1-math.Exp(-m*dt))/m
			}
			v := hwVariance(m, vol, dt)
			rNext += math.Sqrt(v) * zDraw
			n *= math.Exp(rPrev * dt)
			b.SetState(rNext)
		},
	)
	a.core = &core{Base: base}
	a.core.numeraire = func() float64 { return n }
	a.core.discountAt = func(t clock.Time) float64 {
		cur := base.Time()
		yrs := base.Config().Years(base.Start(), cur)
		tYrs := base.Config().Years(base.Start(), t)
		if !cur.Before(t) {
			return 1
		}
		dfNow := ln.Value(yrs)
		dfT := ln.Value(tYrs)
		tau := base.Config().Years(cur, t)
		b := hwB(mean, tau)
		aT := (dfT / dfNow) * math.Exp(b*a.forwardAt(yrs) - b*b*hwVariance(mean, vol, tau)/4)
		r := base.TypedState()
		return aT * math.Exp(-b*r)
	}
	return a
}

func (a *HullWhite) forwardAt(yrs float64) float64 {
	const bump = 1e-4
	df0 := a.ln.Value(yrs - bump)
	df1 := a.ln.Value(yrs + bump)
	return -(math.Log(df1) - math.Log(df0)) / (2 * bump)
}

// hwB implements the extended-Vasicek B(t,T) = (1-exp(-m*tau))/m, with the
// zero-mean-reversion limit B(t,T) = tau.
func hwB(mean, tau float64) float64 {
	if mean == 0 {
		return tau
	}
	return (1 - math.Exp(-mean*tau)) / mean
}

// hwVariance is the discretisation/closed-form variance v =
// sigma^2*(1-exp(-2*m*dt))/(2*m), with the zero-mean-reversion limit
// v = sigma^2*dt (spec §4.7).
func hwVariance(mean, vol, dt float64) float64 {
	if vol == 0 {
		return 0
	}
	if mean == 0 {
		return vol * vol * dt
	}
	return vol * vol * (1 - math.Exp(-2*mean*dt)) / (2 * mean)
}
