package instrument

import (
	"math"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
)

// eventProbabilityThreshold bounds the recursion in numPortfolioEvents:
// once the accumulated tail probability is within this much of certainty,
// the search for "how many events this step" stops rather than walking
// every remaining k down to zero (spec §4.8 "up to a probability threshold
// (1e-5) or exhaustion").
const eventProbabilityThreshold = 1e-5

// binomCoeff returns C(n, k) via the symmetric log-gamma identity, stable
// for the pool sizes a credit portfolio realistically uses.
func binomCoeff(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	lg, _ := math.Lgamma(float64(n + 1))
	lk, _ := math.Lgamma(float64(k + 1))
	lnk, _ := math.Lgamma(float64(n - k + 1))
	return math.Exp(lg - lk - lnk)
}

func binomialPMF(n, k int, p float64) float64 {
	if n <= 0 {
		return 0
	}
	if k < 0 || k > n {
		return 0
	}
	if p <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	if p >= 1 {
		if k == n {
			return 1
		}
		return 0
	}
	return binomCoeff(n, k) * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
}

// numPortfolioEvents samples the number of defaults this step out of n
// surviving names, each independently defaulting with probability p, by
// walking the binomial tail P(X >= k) down from k = n against a single
// uniform draw u (spec §4.8 "Portfolio events... tests P(k or more events)
// against uniform draws").
//
// DESIGN.md records this as the literal, unresolved replication of the
// source's recurrence (spec §9's open question: "'+=' instead of '=' seems
// to work") — cum accumulates via += across the descent, it is never
// reassigned from scratch, matching the source exactly rather than the
// "obviously correct" single-PMF-lookup alternative.
func numPortfolioEvents(n int, p, u float64) int {
	if n <= 0 || p <= 0 {
		return 0
	}
	var cum float64
	for k := n; k >= 0; k-- {
		pmf := binomialPMF(n, k, p)
		cum += pmf
		if cum >= u {
			return k
		}
		if 1-cum < eventProbabilityThreshold {
			return k
		}
	}
	return 0
}

// PortfolioEvents drives a shared Counter's decrement each step, drawing
// the number of defaults out of the counter's current survivor count
// against the hazard rate exposed by a survival curve s (read the same
// way RiskyLeg reads its hazard: s's own float64 self-state). It exposes
// the number of events realised this step as its own State (spec §4.8
// "exposes number of events this step").
type PortfolioEvents struct {
	*agent.Base[float64]
}

// NewPortfolioEvents constructs a PortfolioEvents agent decrementing
// counter, drawing off the shared uniform variate u, with per-name hazard
// read from survival curve s.
func NewPortfolioEvents(counter *Counter, s agent.Agent, u agent.Agent) *PortfolioEvents {
	hazard := func() float64 {
		v, ok := s.State().(float64)
		if !ok {
			panic("instrument.PortfolioEvents: survival curve state is not float64")
		}
		return v
	}
	draw := func() float64 {
		v, ok := u.State().(float64)
		if !ok {
			panic("instrument.PortfolioEvents: uniform variate state is not float64")
		}
		return v
	}
	a := &PortfolioEvents{}
	a.Base = agent.NewBase[float64]("PortfolioEvents", agent.Multiple(counter, s, u),
		func(b *agent.Base[float64]) error {
			b.SetState(0)
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(0)
		},
		func(b *agent.Base[float64], t clock.Time) {
			n := int(math.Round(counter.TypedState()))
			dt := b.Config().YearsSince(b.DTime())
			h := hazard()
			p := 1 - math.Exp(-h*dt)
			k := numPortfolioEvents(n, p, draw())
			if k > 0 {
				counter.Decrement(float64(k))
			}
			b.SetState(float64(k))
		},
	)
	return a
}
