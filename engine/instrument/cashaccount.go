package instrument

import (
	"math"

	"github.com/meenmo/molibsim/engine/agent"
	"github.com/meenmo/molibsim/engine/clock"
)

// CashAccount is an interest-accruing balance (spec §4.8 "Cash account").
// On update it applies the trapezoidal accrual balance*(exp(r*dt)+
// exp(rPrev*dt))/2, with a spread-adjusted rate: DepositSpread when the
// previous balance is non-negative, LoanSpread when it is negative. Its
// State.Value is the running balance; State.Flow is the net external
// cashflow folded in this step (synchronous leg flows plus any
// asynchronous FlowConnector reconciliation at the same tick).
//
// Two feed modes per spec §4.8: synchronous connected flows are ordinary
// dependencies, pulled during the account's own onUpdate; an asynchronous
// FlowConnector instead depends on the account (guaranteeing, by the
// framework's dependency-first Update traversal, that it always runs
// after the account has already computed this step's accrual) and calls
// Transaction to fold its own flow in afterward.
type CashAccount struct {
	*agent.Base[State]
	rate          agent.Agent
	syncFlows     []agent.Agent
	depositSpread float64
	loanSpread    float64
	prevAdjRate   float64
}

func adjustedRate(rate, balance, depositSpread, loanSpread float64) float64 {
	if balance < 0 {
		return rate + loanSpread
	}
	return rate + depositSpread
}

// NewCashAccount constructs a CashAccount reading its reference rate from
// rate (a scalar-state agent), starting at initialBalance, pulling
// syncFlows (each a composite-State agent whose Flow is added every step)
// synchronously during its own update.
func NewCashAccount(rate agent.Agent, syncFlows []agent.Agent, initialBalance, depositSpread, loanSpread float64) *CashAccount {
	a := &CashAccount{rate: rate, syncFlows: syncFlows, depositSpread: depositSpread, loanSpread: loanSpread}
	rateOf := func() float64 {
		v, ok := rate.State().(float64)
		if !ok {
			panic("instrument.CashAccount: rate state is not float64")
		}
		return v
	}
	deps := append([]agent.Agent{rate}, syncFlows...)
	a.Base = agent.NewBase[State]("CashAccount", deps,
		func(b *agent.Base[State]) error {
			a.prevAdjRate = adjustedRate(rateOf(), initialBalance, depositSpread, loanSpread)
			b.SetState(State{Value: initialBalance})
			return nil
		},
		func(b *agent.Base[State]) {
			a.prevAdjRate = adjustedRate(rateOf(), initialBalance, depositSpread, loanSpread)
			b.SetState(State{Value: initialBalance})
		},
		func(b *agent.Base[State], t clock.Time) {
			dt := b.Config().YearsSince(b.DTime())
			prevBalance := b.TypedState().Value
			rNow := adjustedRate(rateOf(), prevBalance, depositSpread, loanSpread)
			grown := prevBalance * (math.Exp(rNow*dt) + math.Exp(a.prevAdjRate*dt)) / 2
			var netFlow float64
			for _, f := range syncFlows {
				netFlow += asState(f).Flow
			}
			b.SetState(State{Value: grown + netFlow, Flow: netFlow})
			a.prevAdjRate = rNow
		},
	)
	return a
}

// Transaction folds an out-of-band amount into the account's currently
// exposed balance and flow, used by FlowConnector to reconcile an
// asynchronous feed after the account has already updated for this tick
// (spec §4.8 "reconciles any accumulated asynchronous delta into the
// account's exposed flow when both sit at the same time").
func (a *CashAccount) Transaction(x float64) {
	cur := a.TypedState()
	cur.Value += x
	cur.Flow += x
	a.SetState(cur)
}

// FlowConnector is the asynchronous feed sibling of CashAccount (spec
// §4.8 "cash account... flow_connector"): it depends directly on the
// account it feeds, so the framework's dependency-first traversal always
// advances the account before the connector computes its own step and
// calls Transaction — the Go-idiomatic form of the source's "the
// simulator's deterministic DAG traversal order must place the connector
// later than the account" requirement (spec §9).
type FlowConnector struct {
	*agent.Base[float64]
}

// NewFlowConnector constructs a FlowConnector feeding source's Flow into
// account every step.
func NewFlowConnector(account *CashAccount, source agent.Agent) *FlowConnector {
	a := &FlowConnector{}
	a.Base = agent.NewBase[float64]("FlowConnector", agent.Multiple(account, source),
		func(b *agent.Base[float64]) error {
			b.SetState(0)
			return nil
		},
		func(b *agent.Base[float64]) {
			b.SetState(0)
		},
		func(b *agent.Base[float64], t clock.Time) {
			x := asState(source).Flow
			account.Transaction(x)
			b.SetState(x)
		},
	)
	return a
}
