package swap

import "github.com/meenmo/molibsim/marketdata/krx"

// Position describes whether the swap receives or pays the fixed leg.
type Position string

const (
	PositionReceive Position = "REC"
	PositionPay     Position = "PAY"
)

// ParSwapQuotes maps year-based tenors (e.g., 0, 0.25, 1, 5) to quoted par swap rates.
type ParSwapQuotes map[float64]float64

// LegacyIRS captures the key economic terms for the single-curve CD91
// bootstrap pricer (Curve/BootstrapCurve in curve.go), kept alongside the
// dual-curve InterestRateSwap(...) constructor in api.go for the simple
// fixed-vs-CD91-float case that doesn't need separate discount/projection
// curves.
type LegacyIRS struct {
	EffectiveDate   string
	TerminationDate string
	SettlementDate  string
	FixedRate       float64
	Notional        float64
	Direction       Position
	SwapQuotes      ParSwapQuotes
	ReferenceRate   krx.ReferenceRateFeed
}
