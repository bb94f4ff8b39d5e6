package krx

import "github.com/meenmo/molibsim/calendar"

// Position describes whether the swap receives or pays the fixed leg.
type Position string

const (
	PositionReceive Position = "REC"
	PositionPay     Position = "PAY"
)

// ParSwapQuotes maps year-based tenors (e.g., 0, 0.25, 1, 5) to quoted par swap rates.
type ParSwapQuotes map[float64]float64

// InterestRateSwap captures the key economic terms of a KRX CD91-linked IRS.
type InterestRateSwap struct {
	EffectiveDate   string
	TerminationDate string
	SettlementDate  string
	FixedRate       float64
	Notional        float64
	Direction       Position
	SwapQuotes      ParSwapQuotes
	ReferenceIndex  calendar.ReferenceRateFeed
}
