package instrument

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/curve"
)

// OptionType selects call or put payoff.
type OptionType int

const (
	Call OptionType = iota
	Put
)

// PricingModel selects the closed-form used to value an Option before
// expiry (spec §4.8 "Option — Black-Scholes or Bachelier").
type PricingModel int

const (
	BlackScholes PricingModel = iota
	Bachelier
)

func optionSign(t OptionType) float64 {
	if t == Put {
		return -1
	}
	return 1
}

// blackScholes76 prices a European option on forward F struck at K, time T
// to expiry (years), volatility sigma, discounted by df, using the
// Black-76 forward form with gonum's distuv.UnitNormal in place of a
// hand-rolled erf approximation (DESIGN.md ledger).
func blackScholes76(f, k, t, sigma, df float64, typ OptionType) float64 {
	if t <= 0 || sigma <= 0 {
		return df * math.Max(optionSign(typ)*(f-k), 0)
	}
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(f/k) + 0.5*sigma*sigma*t) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	phi1 := distuv.UnitNormal.CDF(optionSign(typ) * d1)
	phi2 := distuv.UnitNormal.CDF(optionSign(typ) * d2)
	return df * optionSign(typ) * (f*phi1 - k*phi2)
}

// bachelier prices a European option on forward F struck at K under the
// normal (Bachelier) model.
func bachelier(f, k, t, sigma, df float64, typ OptionType) float64 {
	if t <= 0 || sigma <= 0 {
		return df * math.Max(optionSign(typ)*(f-k), 0)
	}
	sqrtT := math.Sqrt(t)
	d := (f - k) / (sigma * sqrtT)
	pdf := distuv.UnitNormal.Prob(d)
	cdf := distuv.UnitNormal.CDF(optionSign(typ) * d)
	return df * (optionSign(typ)*(f-k)*cdf + sigma*sqrtT*pdf)
}

// Option is valued by a closed form before expiry and settles as a Forward
// payoff clamped at zero, at expiry (spec §4.8 "Option — Black-Scholes or
// Bachelier; otherwise as forward").
type Option struct {
	*agent.Base[State]
	strike    float64
	hasStrike bool
}

// NewOption constructs an Option off underlying, latching the strike at
// strikeTime, priced by model with volatility sigma, discounted via c,
// settling at expiry. Returns ErrInvalidArgument for any typ other than
// Call/Put.
func NewOption(c curve.Curve, underlying agent.Agent, notional float64, typ OptionType, model PricingModel, sigma float64, strikeTime, expiry clock.Time) (*Option, error) {
	if typ != Call && typ != Put {
		return nil, fmt.Errorf("NewOption: %w", ErrInvalidArgument)
	}
	a := &Option{}
	spotOf := func() float64 {
		v, ok := underlying.State().(float64)
		if !ok {
			panic("instrument.Option: underlying state is not float64")
		}
		return v
	}
	latch := func(b *agent.Base[State]) {
		if !a.hasStrike && !b.Time().Before(strikeTime) {
			a.strike = spotOf()
			a.hasStrike = true
		}
	}
	valueAt := func(b *agent.Base[State]) State {
		f := spotOf()
		if !b.Time().Before(expiry) {
			return State{Flow: notional * math.Max(optionSign(typ)*(f-a.strike), 0), Matured: true}
		}
		t := b.Config().Years(b.Time(), expiry)
		df := c.DiscountAt(expiry)
		var price float64
		switch model {
		case Bachelier:
			price = bachelier(f, a.strike, t, sigma, df, typ)
		default:
			price = blackScholes76(f, a.strike, t, sigma, df, typ)
		}
		return State{Value: notional * price}
	}
	a.Base = agent.NewBase[State]("Option", agent.Multiple(c, underlying),
		func(b *agent.Base[State]) error {
			latch(b)
			b.SetState(valueAt(b))
			return nil
		},
		func(b *agent.Base[State]) {
			a.hasStrike = false
			latch(b)
			b.SetState(valueAt(b))
		},
		func(b *agent.Base[State], t clock.Time) {
			latch(b)
			st := valueAt(b)
			b.SetState(st)
			if st.Matured {
				b.SetLive(false)
			}
		},
	)
	return a, nil
}
