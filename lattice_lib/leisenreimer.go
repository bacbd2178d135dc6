package lattice

import "math"

// BinomialLROption calibrates the lattice engine with the Leisen-Reimer
// scheme: move factors and risk-neutral probabilities derived from a
// Peizer-Pratt inverse-normal approximation, so the lattice price converges
// to the continuous-time price quickly and without the odd/even oscillation
// of the naive calibration.
type BinomialLROption struct {
	Tree *BinomialTreeOption

	// P is the risk-neutral up probability produced by the inversion of d2.
	P float64
}

// NewBinomialLROption wraps a lattice engine in the LR calibrator.
func NewBinomialLROption(tree *BinomialTreeOption) *BinomialLROption {
	return &BinomialLROption{Tree: tree}
}

// SetupParameters replaces the engine's move factors and probabilities with
// Leisen-Reimer values. The lattice building and traversal logic is reused
// from the engine untouched.
func (lr *BinomialLROption) SetupParameters() {
	o := lr.Tree.Option

	// The Peizer-Pratt inversion is only well behaved for even period
	// counts, so the step count is rounded up to the nearest even value
	// for the inversion input. The contract's own N is left alone.
	evenN := o.N
	if evenN%2 != 0 {
		evenN++
	}

	volT := o.Sigma * math.Sqrt(o.T)
	d1 := (math.Log(o.S0/o.K) + (o.R-o.Div+0.5*o.Sigma*o.Sigma)*o.T) / volT
	d2 := (math.Log(o.S0/o.K) + (o.R-o.Div-0.5*o.Sigma*o.Sigma)*o.T) / volT

	pbar := peizerPrattInversion(d1, evenN)
	lr.P = peizerPrattInversion(d2, evenN)

	df := o.Df()
	lr.Tree.U = 1.0 / df * pbar / lr.P
	lr.Tree.D = (1.0/df - lr.P*lr.Tree.U) / (1.0 - lr.P)
	lr.Tree.Qu = lr.P
	lr.Tree.Qd = 1.0 - lr.P
}

// Price runs a full LR-calibrated pricing pass on the canonical single-root
// lattice and returns the root value.
func (lr *BinomialLROption) Price() float64 {
	lr.SetupParameters()
	lr.Tree.InitPriceTree()
	return lr.Tree.Traverse()[0]
}

// peizerPrattInversion approximates the cumulative normal probability for a
// standardized value z over n binomial periods (Peizer-Pratt method two
// inversion). It is monotonic non-decreasing in z and exactly 0.5 at z = 0.
//
// The square-root argument is non-negative in exact arithmetic; if a
// floating-point edge case still yields NaN, the result falls back to the
// distribution's limit: 0 for z < 0, 1 otherwise.
func peizerPrattInversion(z float64, n int) float64 {
	fn := float64(n)
	sign := 1.0
	if z < 0 {
		sign = -1.0
	}

	scaled := z / (fn + 1.0/3.0 + 0.1/(fn+1.0))
	p := 0.5 + sign*math.Sqrt(0.25-0.25*math.Exp(-scaled*scaled*(fn+1.0/6.0)))

	if math.IsNaN(p) {
		if z < 0 {
			return 0.0
		}
		return 1.0
	}
	return p
}
