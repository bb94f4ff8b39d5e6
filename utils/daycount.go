package utils

import (
	"time"

	"github.com/meenmo/molibsim/swap/market"
)

// YearFraction computes year fraction between two dates using the specified
// day count convention. convention is a plain string rather than
// market.DayCount so callers that only hold a raw curve-config string (e.g.
// a JSON fixture field) don't need to round-trip through the enum; the case
// labels below are still anchored to market.DayCount's constants so the two
// never drift apart.
// Supported conventions: ACT/360, ACT/365, ACT/365F, 30E/360, 30/360
func YearFraction(start, end time.Time, convention string) float64 {
	switch convention {
	case string(market.Act360):
		days := end.Sub(start).Hours() / 24
		return days / 360.0
	case string(market.Act365), string(market.Act365F):
		days := end.Sub(start).Hours() / 24
		return days / 365.0
	case "30E/360", string(market.Dc30360):
		// 30E/360 (Eurobond basis); 30/360 is computed the same way
		// D1 and D2 are capped at 30
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		days := end.Sub(start).Hours() / 24
		return days / 365.0
	}
}
