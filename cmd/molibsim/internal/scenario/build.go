package scenario

import (
	"fmt"
	"math"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/agent/memory"
	"github.com/meenmo/molibsim/engine/agent/op"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
	"github.com/meenmo/molibsim/engine/expr"
	"github.com/meenmo/molibsim/engine/instrument"
	"github.com/meenmo/molibsim/engine/line"
	"github.com/meenmo/molibsim/engine/observer"
)

func param(p map[string]float64, key string, fallback float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return fallback
}

func valueLens(s any) float64 { return s.(instrument.State).Value }

// Build constructs the root agent and value lens a Config's kind
// describes, covering the six concrete end-to-end scenarios named in
// spec.md §8: "time", "gaussian", "fixedleg", "flows", "cashaccrual",
// and "hullwhite", plus three scenarios composing agent families spec.md
// §8 does not exercise on their own: "creditportfolio" (yield-curve
// family + portfolio legs), "forwardoption" (Forward/Option off a
// curve-driven underlying), and "derivedsignal" (operator/memory/
// expression combinators over a state adaptor).
func Build(cfg *Config) (agent.Agent, observer.Lens, error) {
	switch cfg.Kind {
	case "time":
		return agent.NewTimeAgent(), observer.DefaultLens, nil

	case "gaussian":
		return agent.NewGaussianVariateAgent(), observer.DefaultLens, nil

	case "fixedleg":
		rate := param(cfg.Params, "rate", 0.05)
		coupon := param(cfg.Params, "coupon", 5)
		redemption := param(cfg.Params, "redemption", 100)
		years := int(param(cfg.Params, "years", 10))
		c := curve.NewConstantRate(rate)
		rows := make([]instrument.LegRow, 0, years+1)
		for y := 1; y <= years; y++ {
			rows = append(rows, instrument.LegRow{Pay: clock.Time(int64(y) * 365), Amount: coupon})
		}
		rows = append(rows, instrument.LegRow{Pay: clock.Time(int64(years) * 365), Amount: redemption})
		leg := instrument.NewFixedLeg(c, rows)
		return leg, func(s any) float64 { return s.(instrument.State).Value }, nil

	case "flows":
		ratio := param(cfg.Params, "ratio", 250)
		margin := param(cfg.Params, "margin", 0)
		c := curve.NewConstantRate(0)
		index := agent.NewTimeAgent()
		rows, err := instrument.NewCashflowList([]instrument.FlowRow{
			{Fix: 30, Start: 40, End: 90, Pay: 93, Multiplier: 1, Margin: 0, YearFrac: (90.0 - 40.0) / 365},
			{Fix: 90, Start: 90, End: 180, Pay: 180, Multiplier: 1, Margin: margin, YearFrac: (180.0 - 90.0) / ratio},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("scenario.Build: flows: %w", err)
		}
		flows := instrument.NewFlows(c, index, rows)
		return flows, func(s any) float64 { return s.(instrument.State).Flow }, nil

	case "cashaccrual":
		rate := param(cfg.Params, "rate", 0.10)
		balance := param(cfg.Params, "balance", 1.0)
		rateAgent := agent.NewConstantAgent(rate)
		cash := instrument.NewCashAccount(rateAgent, nil, balance, 0, 0)
		return cash, func(s any) float64 { return s.(instrument.State).Value }, nil

	case "hullwhite":
		rate := param(cfg.Params, "rate", 0.05)
		mean := param(cfg.Params, "mean_reversion", 0.1)
		vol := param(cfg.Params, "volatility", 0)
		maturity := clock.Time(int64(param(cfg.Params, "maturity", 730)))
		df := constantShortRateLine{rate: rate}
		var z agent.Agent
		if vol != 0 {
			z = agent.NewGaussianVariateAgent()
		}
		hw := curve.NewHullWhite(df, mean, vol, z)
		bond := curve.NewTermBond(hw, maturity, true)
		return bond, observer.DefaultLens, nil

	case "creditportfolio":
		liborNear := param(cfg.Params, "libor_near", 0.02)
		liborFar := param(cfg.Params, "libor_far", 0.025)
		hazard := param(cfg.Params, "hazard", 0.015)
		poolSize := param(cfg.Params, "pool_size", 100)
		unitNotional := param(cfg.Params, "unit_notional", 1)
		recoveryRate := param(cfg.Params, "recovery_rate", 0.4)
		maturity := clock.Time(int64(param(cfg.Params, "maturity", 1825)))
		mid := clock.Time(int64(maturity) / 2)

		discount := curve.NewLIBORMarket(
			[]clock.Time{0, mid},
			[]agent.Agent{agent.NewConstantAgent(liborNear), agent.NewConstantAgent(liborFar)},
		)
		survival := curve.NewSwapRateMarket([]clock.Time{maturity}, []agent.Agent{agent.NewConstantAgent(hazard)})
		counter := instrument.NewCounter(poolSize)
		u := agent.NewUniformVariateAgent()
		events := instrument.NewPortfolioEvents(counter, survival, u)

		unitLeg := instrument.NewFixedLeg(discount, []instrument.LegRow{{Pay: maturity, Amount: unitNotional}})
		pfLeg := instrument.NewPortfolioFixedLeg(unitLeg, counter, events, recoveryRate, unitNotional)
		eventLeg := instrument.NewPortfolioEventLeg(discount, survival, counter, events, unitNotional, maturity, 24)

		singleName := instrument.NewFixedLeg(discount, []instrument.LegRow{{Pay: maturity, Amount: unitNotional}})
		risky := instrument.NewRiskyLeg(singleName, survival, agent.NewUniformVariateAgent(), unitNotional, recoveryRate)

		portfolio := instrument.NewPortfolio([]agent.Agent{pfLeg, eventLeg, risky}, nil, nil)
		return portfolio, valueLens, nil

	case "forwardoption":
		rate := param(cfg.Params, "rate", 0.03)
		notional := param(cfg.Params, "notional", 1)
		sigma := param(cfg.Params, "volatility", 0.2)
		strikeTime := clock.Time(int64(param(cfg.Params, "strike_time", 0)))
		expiry := clock.Time(int64(param(cfg.Params, "expiry", 365)))
		spotRate := param(cfg.Params, "spot_growth_rate", 0.04)

		discount := curve.NewConstantRate(rate)
		underlying := agent.NewCurveAgent(spotGrowthLine{start: 100, rate: spotRate})

		fwd := instrument.NewForward(discount, underlying, notional, strikeTime, expiry)
		opt, err := instrument.NewOption(discount, underlying, notional, instrument.Call, instrument.BlackScholes, sigma, strikeTime, expiry)
		if err != nil {
			return nil, nil, fmt.Errorf("scenario.Build: forwardoption: %w", err)
		}

		portfolio := instrument.NewPortfolio([]agent.Agent{fwd, opt}, nil, nil)
		return portfolio, valueLens, nil

	case "derivedsignal":
		rate := param(cfg.Params, "rate", 0.04)
		coupon := param(cfg.Params, "coupon", 5)
		years := int(param(cfg.Params, "years", 5))
		lookbackDays := clock.Duration(int64(param(cfg.Params, "lookback_days", 90)))
		scale := param(cfg.Params, "scale", 1.0)
		offset := param(cfg.Params, "offset", 0.0)
		bias := param(cfg.Params, "bias", 0.0)

		c := curve.NewConstantRate(rate)
		rows := make([]instrument.LegRow, 0, years)
		for y := 1; y <= years; y++ {
			rows = append(rows, instrument.LegRow{Pay: clock.Time(int64(y) * 365), Amount: coupon})
		}
		leg := instrument.NewFixedLeg(c, rows)

		valueOf := agent.NewStateAdaptor(leg, valueLens)
		smoothed := memory.NewLookback(valueOf, lookbackDays, memory.Mean)
		scaled := op.NewUnary("ScaledSignal", smoothed, op.Affine(scale, offset))
		triggers := make([]clock.Time, years)
		for y := 1; y <= years; y++ {
			triggers[y-1] = clock.Time(int64(y) * 365)
		}
		snap := memory.NewTrigger(scaled, triggers, false)
		formula := expr.NewExpressionAgent(
			[]agent.Agent{snap},
			nil, nil,
			expr.Binary(op.Sum, expr.StateOf(snap), expr.Const(bias)),
		)
		return formula, observer.DefaultLens, nil

	default:
		return nil, nil, fmt.Errorf("scenario.Build: unknown kind %q", cfg.Kind)
	}
}

// constantShortRateLine implements line.Line as df(t) = exp(-rate*t), the
// input curve for spec §8 scenario 6's Hull-White drift-neutrality check.
type constantShortRateLine struct{ rate float64 }

func (c constantShortRateLine) Value(years float64) float64 {
	return math.Exp(-c.rate * years)
}

func (c constantShortRateLine) Integral(x0, x1 float64, weight line.Line) float64 {
	// Only Value is needed by HullWhite's finite-difference forward and by
	// StaticCurve/TermBond's DiscountAt; Integral is unused on this path.
	return 0
}

// spotGrowthLine drives "forwardoption"'s underlying: a deterministic
// exponential growth path start*exp(rate*years), read by a CurveAgent at
// the simulation's elapsed years.
type spotGrowthLine struct {
	start, rate float64
}

func (s spotGrowthLine) Value(years float64) float64 { return s.start * math.Exp(s.rate*years) }

func (s spotGrowthLine) Integral(x0, x1 float64, weight line.Line) float64 {
	return 0
}
