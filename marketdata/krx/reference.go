package krx

import "time"

// ReferenceRateFeed supplies short-rate fixings (e.g., CD91) for discounting the first floating period.
type ReferenceRateFeed interface {
	RateOn(date time.Time) (float64, bool)
}

// MapReferenceRateFeed is a static map-backed implementation for development/testing.
type MapReferenceRateFeed struct {
	rates map[string]float64
}

func NewMapReferenceRateFeed(rates map[string]float64) *MapReferenceRateFeed {
	return &MapReferenceRateFeed{rates: rates}
}

func (m *MapReferenceRateFeed) RateOn(date time.Time) (float64, bool) {
	val, ok := m.rates[date.Format("2006-01-02")]
	return val, ok
}

// RateOnOrBefore walks backward from date, up to lookbackDays, until it finds
// a published fixing. CD91 isn't published on weekends/holidays, and a fixing
// date that lands on one should fall back to the last business day's print
// rather than report "no fixing" outright.
func (m *MapReferenceRateFeed) RateOnOrBefore(date time.Time, lookbackDays int) (float64, time.Time, bool) {
	for i := 0; i <= lookbackDays; i++ {
		d := date.AddDate(0, 0, -i)
		if val, ok := m.rates[d.Format("2006-01-02")]; ok {
			return val, d, true
		}
	}
	return 0, time.Time{}, false
}
