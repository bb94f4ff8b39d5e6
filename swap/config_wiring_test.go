package swap_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/molibsim/calendar"
	"github.com/meenmo/molibsim/swap"
	"github.com/meenmo/molibsim/swap/config"
	"github.com/meenmo/molibsim/swap/curve"
	"github.com/meenmo/molibsim/swap/market"
)

// TestSolveParSpreadHonoursMaxSpreadIterations confirms SolveParSpread reads
// its Newton-Raphson iteration cap from the active config.Config rather than
// a hardcoded constant: a single-iteration budget on a spread that starts
// far from par fails to converge.
func TestSolveParSpreadHonoursMaxSpreadIterations(t *testing.T) {
	orig := config.GetConfig()
	defer config.SetConfig(orig)

	effective := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	maturity := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	leg := market.LegConvention{
		LegType:               market.LegFloating,
		ReferenceRate:         market.TIBOR6M,
		DayCount:              market.Act365F,
		ResetFrequency:        market.FreqAnnual,
		PayFrequency:          market.FreqAnnual,
		BusinessDayAdjustment: market.ModifiedFollowing,
		RollConvention:        market.BackwardEOM,
		Calendar:              calendar.USD,
		ResetPosition:         market.ResetInAdvance,
	}

	disc := curve.NewCurveFromDFs(effective, map[time.Time]float64{
		effective: 1.0,
		maturity:  0.95,
	}, calendar.USD, 0)
	projPay := curve.NewCurveFromDFs(effective, map[time.Time]float64{
		effective: 1.0,
		maturity:  1.0 / 1.02,
	}, calendar.USD, 0)
	projRec := curve.NewCurveFromDFs(effective, map[time.Time]float64{
		effective: 1.0,
		maturity:  1.0 / 1.01,
	}, calendar.USD, 0)

	spec := market.SwapSpec{
		Notional:      100.0,
		EffectiveDate: effective,
		MaturityDate:  maturity,
		PayLeg:        leg,
		RecLeg:        leg,
	}

	cfg := orig
	cfg.MaxSpreadIterations = 1
	cfg.PVToleranceMultiplier = 1e-18
	config.SetConfig(cfg)

	_, err := swap.SolveParSpread(spec, projPay, projRec, disc, effective, swap.SpreadTargetRecLeg)
	if err == nil {
		t.Fatalf("SolveParSpread: expected a did-not-converge error with MaxSpreadIterations=1, got nil")
	}

	config.SetConfig(orig)
	spreadBP, err := swap.SolveParSpread(spec, projPay, projRec, disc, effective, swap.SpreadTargetRecLeg)
	if err != nil {
		t.Fatalf("SolveParSpread with default config: %v", err)
	}
	if math.Abs(spreadBP-100.0) > 1e-6 {
		t.Fatalf("spread mismatch: got %.12f want ~100.0", spreadBP)
	}
}
