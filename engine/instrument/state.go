// Package instrument implements the instrument and cashflow-leg family of
// spec §4.8: fixed/vanilla-float/indexed-float coupons, fixed/risky/
// portfolio legs, the richer "flows" leg variant, forward and option
// payoffs, the cash account (synchronous and asynchronous feeds), and the
// portfolio aggregator. Every instrument exposes the composite State{Value,
// Flow, Matured} and composes by element-wise addition/scaling (spec §4.8
// "All instruments expose a composite state... with element-wise addition/
// scaling").
//
// Grounded on swap/cashflow.go's legCashflows/discountCashflows/NPV for
// the fixed/float leg present-value pattern and swap/common.go's legPV
// multiplier*fixing+margin accrual formula, generalised into Flows.
package instrument

import "github.com/meenmo/molibsim/engine/clock"

// State is the composite value every instrument agent exposes (spec §4.8).
// Value is the instrument's present value excluding any flow paid at the
// current time; Flow is the amount paid/received at the current time;
// Matured marks an instrument that has delivered its final cashflow and
// will never again contribute.
type State struct {
	Value   float64
	Flow    float64
	Matured bool
}

// Add combines two states element-wise, used when summing instrument
// contributions in a portfolio.
func (s State) Add(o State) State {
	return State{Value: s.Value + o.Value, Flow: s.Flow + o.Flow, Matured: s.Matured || o.Matured}
}

// Scale multiplies Value and Flow by w, leaving Matured unchanged; used for
// the weighted sum in Portfolio and for scaling a leg by a survivor count.
func (s State) Scale(w float64) State {
	return State{Value: s.Value * w, Flow: s.Flow * w, Matured: s.Matured}
}

// FlowRow is one row of an instrument's cashflow list (spec §3 "Cashflow
// list"): Fix is when the flow's size is determined, Start/End bound the
// accrual period, Pay is the settlement date, and the remaining fields
// parameterise the per-row amount formula (Flows' multiplier*fixing+margin,
// or a fixed/vanilla coupon's simpler subset).
type FlowRow struct {
	Fix       clock.Time
	Start     clock.Time
	End       clock.Time
	Pay       clock.Time
	Multiplier float64
	Margin    float64
	Principal float64
	YearFrac  float64
	Fixing    float64
}

// CashflowList is the ordered sequence of FlowRows an instrument is
// configured with. NewCashflowList enforces the spec's invariant
// (Start <= End, Pay >= Fix) at construction.
type CashflowList []FlowRow

// NewCashflowList validates rows and returns them as a CashflowList, or
// ErrInvalidSchedule if any row violates Start <= End or Pay >= Fix.
func NewCashflowList(rows []FlowRow) (CashflowList, error) {
	for _, r := range rows {
		if r.End.Before(r.Start) {
			return nil, ErrInvalidSchedule
		}
		if r.Pay.Before(r.Fix) {
			return nil, ErrInvalidSchedule
		}
	}
	return CashflowList(rows), nil
}
