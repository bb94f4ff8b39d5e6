package krx

import "time"

// CD91Fixings is the bundled CD91 fixing table, keyed by "2006-01-02" date.
// Empty by default; a caller that needs real fixings should build its own
// feed with NewMapReferenceRateFeed instead of relying on the default.
var CD91Fixings = map[string]float64{}

// DefaultReferenceFeed builds a map-backed feed using the bundled CD91 fixings.
func DefaultReferenceFeed() ReferenceRateFeed {
	return &MapReferenceRateFeed{rates: CD91Fixings}
}

// RateOnDate is a convenience helper when you don't want to wire a feed.
func RateOnDate(feed ReferenceRateFeed, date time.Time) (float64, bool) {
	return feed.RateOn(date)
}
