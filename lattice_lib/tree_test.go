package lattice

import (
	"math"
	"testing"
)

func TestStepCountClamped(t *testing.T) {
	for _, n := range []int{0, -5, 1} {
		option, err := NewStockOption(50, 52, 0.05, 2, n, 0, 0, 0, 0.3, "call", false)
		if err != nil {
			t.Fatalf("NewStockOption(n=%d): %v", n, err)
		}
		if option.N < 1 {
			t.Errorf("step count %d not clamped, got N=%d", n, option.N)
		}
	}
}

func TestDerivedQuantities(t *testing.T) {
	option, err := NewStockOption(50, 52, 0.05, 2, 4, 0, 0, 0.01, 0.3, "call", false)
	if err != nil {
		t.Fatalf("NewStockOption: %v", err)
	}

	if got, want := option.Dt(), 0.5; got != want {
		t.Errorf("Dt() = %v, want %v", got, want)
	}
	want := math.Exp(-(0.05 - 0.01) * 0.5)
	if got := option.Df(); math.Abs(got-want) > 1e-15 {
		t.Errorf("Df() = %v, want %v", got, want)
	}
}

func TestPriceTreeShapeAndRecombination(t *testing.T) {
	option, err := NewStockOption(100, 100, 0.05, 1, 5, 0.2, 0.2, 0, 0.2, "call", false)
	if err != nil {
		t.Fatalf("NewStockOption: %v", err)
	}

	tree := NewBinomialTreeOption(option)
	tree.SetupParameters()
	tree.InitPriceTree()

	if len(option.PriceTree) != option.N+1 {
		t.Fatalf("lattice has %d levels, want %d", len(option.PriceTree), option.N+1)
	}
	for i, level := range option.PriceTree {
		if len(level) != i+1 {
			t.Errorf("level %d has %d nodes, want %d", i, len(level), i+1)
		}
	}

	// Up-then-down must land on the same node as down-then-up.
	upDown := option.PriceTree[0][0] * tree.U * tree.D
	if got := option.PriceTree[2][1]; math.Abs(got-upDown) > 1e-9 {
		t.Errorf("lattice does not recombine: node %v, up*down %v", got, upDown)
	}
}

func TestLatticeRebuiltEachPass(t *testing.T) {
	option, err := NewStockOption(100, 100, 0.05, 1, 5, 0.2, 0.2, 0, 0.2, "call", false)
	if err != nil {
		t.Fatalf("NewStockOption: %v", err)
	}
	if option.PriceTree != nil {
		t.Fatal("lattice should be empty before the first pricing pass")
	}

	tree := NewBinomialTreeOption(option)
	first := tree.Price()
	second := tree.Price()

	if first != second {
		t.Errorf("repeated pricing passes disagree: %v vs %v", first, second)
	}
	if len(option.PriceTree) != option.N+1 {
		t.Errorf("rebuilt lattice has %d levels, want %d", len(option.PriceTree), option.N+1)
	}
}

func TestAmericanAtLeastEuropean(t *testing.T) {
	cases := []struct {
		name       string
		optionType string
	}{
		{"put", "put"},
		{"call", "call"},
	}

	for _, tc := range cases {
		european, err := NewStockOption(50, 52, 0.05, 2, 200, 0, 0, 0.03, 0.3, tc.optionType, false)
		if err != nil {
			t.Fatalf("NewStockOption: %v", err)
		}
		american, err := NewStockOption(50, 52, 0.05, 2, 200, 0, 0, 0.03, 0.3, tc.optionType, true)
		if err != nil {
			t.Fatalf("NewStockOption: %v", err)
		}

		euPrice := NewBinomialLROption(NewBinomialTreeOption(european)).Price()
		amPrice := NewBinomialLROption(NewBinomialTreeOption(american)).Price()

		t.Logf("%s: European %.6f, American %.6f", tc.name, euPrice, amPrice)
		if amPrice < euPrice-1e-9 {
			t.Errorf("%s: American price %.6f below European %.6f", tc.name, amPrice, euPrice)
		}
	}
}

func TestPutCallParity(t *testing.T) {
	s0, k, r, tt, div, sigma := 50.0, 52.0, 0.05, 2.0, 0.01, 0.3

	call, err := NewStockOption(s0, k, r, tt, 300, 0, 0, div, sigma, "call", false)
	if err != nil {
		t.Fatalf("NewStockOption: %v", err)
	}
	put, err := NewStockOption(s0, k, r, tt, 300, 0, 0, div, sigma, "put", false)
	if err != nil {
		t.Fatalf("NewStockOption: %v", err)
	}

	callPrice := NewBinomialLROption(NewBinomialTreeOption(call)).Price()
	putPrice := NewBinomialLROption(NewBinomialTreeOption(put)).Price()

	left := callPrice - putPrice
	right := s0*math.Exp(-div*tt) - k*math.Exp(-r*tt)

	t.Logf("C-P = %.6f, S0*e^-qT - K*e^-rT = %.6f", left, right)
	if math.Abs(left-right) > 0.02 {
		t.Errorf("put-call parity violated: %.6f vs %.6f", left, right)
	}
}

func TestEqualFactorsDegenerate(t *testing.T) {
	// pu = pd = 0 makes U == D == 1: the risk-neutral probability divides
	// by zero and the degeneracy propagates silently as NaN.
	option, err := NewStockOption(50, 52, 0.05, 2, 10, 0, 0, 0, 0.3, "put", false)
	if err != nil {
		t.Fatalf("NewStockOption: %v", err)
	}

	price := NewBinomialTreeOption(option).Price()
	if !math.IsNaN(price) {
		t.Errorf("expected NaN from equal up/down factors, got %v", price)
	}
}
