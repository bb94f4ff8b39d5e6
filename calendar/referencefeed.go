package calendar

import "time"

// ReferenceRateFeed supplies a short-rate fixing (e.g., CD91) for a given date.
// Mirrors marketdata/krx.ReferenceRateFeed's shape for callers that only
// depend on calendar and don't want the marketdata/krx import.
type ReferenceRateFeed interface {
	RateOn(date time.Time) (float64, bool)
}

// MapReferenceRateFeed is a static map-backed feed for development/testing,
// keyed by "2006-01-02" formatted dates.
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

// DefaultReferenceFeed returns an empty feed; callers fall back to curve-implied
// forwards when it has no fixing for the date requested.
func DefaultReferenceFeed() ReferenceRateFeed {
	return NewMapReferenceRateFeed(nil)
}

// RateOnOrBefore walks backward from date, up to lookbackDays, until it finds
// a published fixing. Mirrors marketdata/krx.MapReferenceRateFeed.RateOnOrBefore.
func (m *MapReferenceRateFeed) RateOnOrBefore(date time.Time, lookbackDays int) (float64, time.Time, bool) {
	for i := 0; i <= lookbackDays; i++ {
		d := date.AddDate(0, 0, -i)
		if val, ok := m.rates[d.Format("2006-01-02")]; ok {
			return val, d, true
		}
	}
	return 0, time.Time{}, false
}
