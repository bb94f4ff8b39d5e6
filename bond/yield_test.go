package bond_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/molibsim/bond"
)

func TestComputeForwardYield_AnnualBond(t *testing.T) {
	t.Parallel()

	settlement := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	cfs := []bond.Cashflow{
		{Date: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), Coupon: 2.5},
		{Date: time.Date(2027, 9, 10, 0, 0, 0, 0, time.UTC), Coupon: 2.5},
		{Date: time.Date(2028, 9, 10, 0, 0, 0, 0, time.UTC), Coupon: 2.5, Principal: 100},
	}

	res, err := bond.ComputeForwardYield(bond.ForwardYieldInput{
		SettlementDate:   settlement,
		FuturesPrice:     101.0,
		ConversionFactor: 0.95,
		CouponRate:       2.5,
		CouponFrequency:  1,
		Cashflows:        cfs,
	})
	if err != nil {
		t.Fatalf("ComputeForwardYield: %v", err)
	}

	if res.Iterations <= 0 || res.Iterations > 100 {
		t.Fatalf("unexpected iteration count: %d", res.Iterations)
	}
	if res.ForwardYield < -5 || res.ForwardYield > 50 {
		t.Fatalf("forward yield out of sane bound: %.6f", res.ForwardYield)
	}

	// Re-solving the dirty price at the solved yield should reproduce the
	// invoice price the solver targeted.
	y := res.ForwardYield / 100.0
	var price float64
	prevCoupon := cfs[0].Date.AddDate(0, -12, 0)
	t1 := float64(cfs[0].Date.Sub(settlement).Hours()/24) / float64(cfs[0].Date.Sub(prevCoupon).Hours()/24)
	for i, cf := range cfs {
		tk := t1 + float64(i)
		price += cf.Amount() / math.Pow(1+y, tk)
	}
	if math.Abs(price-res.InvoicePrice) > 1e-6 {
		t.Fatalf("dirty price at solved yield mismatch: got %.10f want %.10f", price, res.InvoicePrice)
	}
}

func TestComputeForwardYield_RequiresCashflows(t *testing.T) {
	t.Parallel()

	_, err := bond.ComputeForwardYield(bond.ForwardYieldInput{
		SettlementDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CouponFrequency: 1,
	})
	if err == nil {
		t.Fatalf("expected error for missing cashflows")
	}
}
