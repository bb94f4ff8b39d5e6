package krx

import (
	"math"
	"strings"
	"time"

	"github.com/meenmo/molibsim/calendar"
	"github.com/meenmo/molibsim/utils"
)

func (irs InterestRateSwap) legCashflows(curve *Curve) (map[time.Time]float64, map[time.Time]float64) {
	fixed := make(map[time.Time]float64)
	floating := make(map[time.Time]float64)

	isFirst := true
	var df, prevDf float64
	var floatRate float64
	var payDate, prevPayDate time.Time

	effective := utils.DateParser(irs.EffectiveDate)
	termination := utils.DateParser(irs.TerminationDate)
	settlement := utils.DateParser(irs.SettlementDate)

	if !(strings.ToUpper(string(irs.Direction)) == "REC" || strings.ToUpper(string(irs.Direction)) == "PAY") {
		panic("invalid direction: must be REC or PAY")
	}

	for i := 0; calendar.Adjust(calendar.KRW, utils.AddMonth(effective, 3*i)).Before(termination.AddDate(0, 0, 1)); i++ {
		if calendar.IsEndOfMonth(calendar.KRW, effective) {
			payDate = calendar.LastBusinessDayOfMonth(calendar.KRW, utils.AddMonth(effective, 3*i))
		} else {
			payDate = calendar.Adjust(calendar.KRW, utils.AddMonth(effective, 3*i))
		}

		if payDate.After(settlement) {
			df = utils.RoundTo(math.Exp(-(utils.Days(settlement, payDate)/365)*(curve.ZeroRateAt(payDate)/100)), 12)

			if isFirst {
				isFirst = false
				prevPayDate = priorPaymentDate(settlement, effective)
				fixingDate := calendar.AddBusinessDays(calendar.KRW, prevPayDate, -1)
				refRate, ok := referenceRateOnOrBefore(irs.ReferenceIndex, fixingDate, 5)
				if !ok {
					panic("missing reference rate fixing for first period")
				}
				floatRate = refRate / 100
			} else {
				floatRate = ((prevDf / df) - 1) / (utils.Days(prevPayDate, payDate) / 365)
			}

			dayCountFrac := utils.Days(prevPayDate, payDate) / 365
			fixed[payDate] = (irs.FixedRate / 100) * irs.Notional * dayCountFrac
			floating[payDate] = floatRate * irs.Notional * dayCountFrac

			prevDf = df
			prevPayDate = payDate
		}
	}
	return fixed, floating
}

// lookbackFeed is implemented by reference-rate feeds that can answer "what
// was the last published fixing on or before this date" instead of only an
// exact-date lookup. marketdata/krx.MapReferenceRateFeed and
// calendar.MapReferenceRateFeed both implement it; a feed that doesn't is
// still usable, just without the weekend/holiday fallback.
type lookbackFeed interface {
	RateOnOrBefore(date time.Time, lookbackDays int) (float64, time.Time, bool)
}

// referenceRateOnOrBefore resolves a fixing for date, falling back to the
// most recent published print within lookbackDays when feed supports it and
// the exact date has no fixing. CD91 isn't published on weekends or KRX
// holidays, and a fixing date that lands on one shouldn't be treated as
// "missing" outright.
func referenceRateOnOrBefore(feed calendar.ReferenceRateFeed, date time.Time, lookbackDays int) (float64, bool) {
	if lb, ok := feed.(lookbackFeed); ok {
		rate, _, found := lb.RateOnOrBefore(date, lookbackDays)
		return rate, found
	}
	return feed.RateOn(date)
}

func (irs InterestRateSwap) discountCashflows(cfs map[time.Time]float64, curve *Curve) map[time.Time]float64 {
	settlement := utils.DateParser(irs.SettlementDate)
	for payDate, cf := range cfs {
		df := utils.RoundTo(math.Exp(-(utils.Days(settlement, payDate)/365)*(curve.ZeroRateAt(payDate)/100)), 12)
		cfs[payDate] = df * cf
	}
	return cfs
}

func (irs InterestRateSwap) PVByLeg(curve *Curve) (float64, float64) {
	fixedCF, floatingCF := irs.legCashflows(curve)
	pvFixed := irs.discountCashflows(fixedCF, curve)
	pvFloating := irs.discountCashflows(floatingCF, curve)

	var sumFixed, sumFloating float64
	for _, pv := range pvFixed {
		sumFixed += pv
	}
	for _, pv := range pvFloating {
		sumFloating += pv
	}
	return sumFixed, sumFloating
}

func (irs InterestRateSwap) NPV(curve *Curve) float64 {
	sumFixed, sumFloating := irs.PVByLeg(curve)
	if strings.ToUpper(string(irs.Direction)) == "REC" {
		return sumFixed - sumFloating
	}
	return sumFloating - sumFixed
}
