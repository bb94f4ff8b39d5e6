package krx

import (
	"time"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
)

// FeedAgent adapts a ReferenceRateFeed into an engine/agent.Agent exposing
// Rate() float64, so a molib market-data feed can stand in for
// engine/instrument.RateSource's external index process (SPEC_FULL.md
// §6.3). epoch anchors clock.Time(0) to a calendar date; epoch.AddDate
// maps the simulation's current day count onto the feed's own date keys.
type FeedAgent struct {
	*agent.Base[float64]
}

// NewFeedAgent constructs a FeedAgent reading feed at epoch+t days, using
// fallback whenever the feed has no quote for that date (e.g. weekends).
func NewFeedAgent(feed ReferenceRateFeed, epoch time.Time, fallback float64) *FeedAgent {
	rateAt := func(t clock.Time) float64 {
		date := epoch.AddDate(0, 0, int(t))
		if v, ok := feed.RateOn(date); ok {
			return v
		}
		return fallback
	}
	a := &FeedAgent{}
	a.Base = agent.NewBase[float64]("FeedAgent", agent.Independent(),
		func(b *agent.Base[float64]) error {
			b.SetState(rateAt(b.Start()))
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(rateAt(b.Start()))
		},
		func(b *agent.Base[float64], t clock.Time) {
			b.SetState(rateAt(t))
		},
	)
	return a
}

// Rate implements instrument.RateSource.
func (f *FeedAgent) Rate() float64 { return f.TypedState() }
