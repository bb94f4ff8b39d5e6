package curve

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/meenmo/molibsim/calendar"
	"github.com/meenmo/molibsim/swap/market"
)

// BuildProjectionCurve returns a projection curve for the given leg.
//
// For overnight indices (e.g., TONAR/ESTR/SOFR), the discount curve is also the projection curve.
// For IBOR indices, it builds a dual curve bootstrapped using OIS discounting.
func BuildProjectionCurve(curveDate time.Time, leg market.LegConvention, legQuotes map[string]float64, discount *Curve) *Curve {
	if market.IsOvernight(leg.ReferenceRate) {
		return discount
	}
	if discount == nil {
		panic("BuildProjectionCurve: nil discount curve")
	}
	if legQuotes == nil {
		panic(fmt.Sprintf("BuildProjectionCurve: nil quotes for %s", leg.ReferenceRate))
	}
	if want, ok := market.TermTenorMonths(leg.ReferenceRate); ok && int(leg.PayFrequency) != want {
		logrus.WithFields(logrus.Fields{
			"referenceRate": leg.ReferenceRate,
			"payFrequency":  int(leg.PayFrequency),
			"impliedTenor":  want,
		}).Warn("BuildProjectionCurve: leg pay frequency does not match reference index's natural fixing tenor")
	}
	return BuildDualCurve(curveDate, legQuotes, discount, leg.Calendar, int(leg.PayFrequency))
}

// BuildDualCurve creates an IBOR projection curve using dual-curve bootstrap:
// pseudo-discount factors are solved so the leg's quoted IBOR swap rates
// reprice to zero when discounted on oisCurve, rather than being read off a
// single-curve bootstrap the way BuildCurve builds discount curves.
func BuildDualCurve(settlement time.Time, iborQuotes map[string]float64, oisCurve *Curve, cal calendar.CalendarID, freqMonths int) *Curve {
	parsed := make(map[float64]float64, len(iborQuotes))
	for k, v := range iborQuotes {
		parsed[tenorToYears(k)] = v
	}
	c := &Curve{
		settlement:    settlement,
		parQuotes:     parsed,
		cal:           cal,
		freqMonths:    freqMonths,
		curveDayCount: defaultCurveDayCount(cal),
	}
	c.paymentDates = c.generatePaymentDates()
	c.parRates = c.buildParCurve()
	c.discountFactors = c.bootstrapDualCurve(oisCurve, freqMonths)
	c.zeros = c.buildZero()
	return c
}
