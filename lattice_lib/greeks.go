package lattice

// Bump sizes for the finite-difference Greeks. Time is perturbed backward
// (shorter expiry), volatility and rate forward.
const (
	thetaTimeBump = -0.0001
	vegaVolBump   = 0.01
	rhoRateBump   = 0.01
)

// PricingResult carries the option price and its five standard sensitivities.
type PricingResult struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// BinomialLRWithGreeks derives price and Greeks from the LR-calibrated
// lattice. Delta and gamma come from a single pass over a lattice seeded
// three nodes wide at the root (an up/flat/down triple one step before time
// zero), so the traversal surfaces the price together with its immediate
// spot neighbors. Theta, vega and rho re-price under small parameter bumps.
type BinomialLRWithGreeks struct {
	LR *BinomialLROption
}

// NewBinomialLRWithGreeks wraps an LR calibrator in the Greeks orchestrator.
func NewBinomialLRWithGreeks(lr *BinomialLROption) *BinomialLRWithGreeks {
	return &BinomialLRWithGreeks{LR: lr}
}

// seedPriceTree rebuilds the price lattice with a three-node root
// [S0*U/D, S0, S0*D/U] and grows N further levels by the usual rule. After
// backward induction the surviving triple is [up, mid, down] with mid the
// option price at spot.
func (g *BinomialLRWithGreeks) seedPriceTree() {
	tree := g.LR.Tree
	o := tree.Option

	uOverD := tree.U / tree.D
	dOverU := tree.D / tree.U
	o.PriceTree = [][]float64{{o.S0 * uOverD, o.S0, o.S0 * dOverU}}

	for i := 0; i < o.N; i++ {
		prev := o.PriceTree[len(o.PriceTree)-1]
		level := make([]float64, 0, len(prev)+1)
		for _, s := range prev {
			level = append(level, s*tree.U)
		}
		level = append(level, prev[len(prev)-1]*tree.D)
		o.PriceTree = append(o.PriceTree, level)
	}
}

// repriceMid recalibrates, rebuilds the three-wide lattice and traverses it,
// returning the mid (at-spot) value. Each bumped parameter set recomputes
// the whole lattice; nothing is reused between bumps.
func (g *BinomialLRWithGreeks) repriceMid() float64 {
	g.LR.SetupParameters()
	g.seedPriceTree()
	payoffs := g.LR.Tree.Traverse()
	return payoffs[len(payoffs)/2]
}

// PriceAndGreeks prices the option and derives delta, gamma, theta, vega and
// rho. The contract's time, volatility and rate fields are bumped in place
// and restored before returning, on every exit path.
func (g *BinomialLRWithGreeks) PriceAndGreeks() *PricingResult {
	o := g.LR.Tree.Option

	g.LR.SetupParameters()
	g.seedPriceTree()
	payoffs := g.LR.Tree.Traverse()

	mid := payoffs[len(payoffs)/2]
	up := payoffs[0]
	down := payoffs[len(payoffs)-1]

	sUp := o.PriceTree[0][0]
	sDown := o.PriceTree[0][2]
	dsUp := sUp - o.S0
	dsDown := o.S0 - sDown

	delta := (up - down) / (sUp - sDown)
	gamma := ((up-mid)/dsUp - (mid-down)/dsDown) /
		((o.S0+sUp)/2.0 - (o.S0+sDown)/2.0)

	theta := -(g.bumpTime(thetaTimeBump) - mid) / thetaTimeBump
	vega := (g.bumpVol(vegaVolBump) - mid) / vegaVolBump
	rho := (g.bumpRate(rhoRateBump) - mid) / rhoRateBump

	// Leave the calibration in sync with the restored contract.
	g.LR.SetupParameters()

	return &PricingResult{
		Price: mid,
		Delta: delta,
		Gamma: gamma,
		Theta: theta,
		Vega:  vega,
		Rho:   rho,
	}
}

func (g *BinomialLRWithGreeks) bumpTime(dt float64) float64 {
	o := g.LR.Tree.Option
	saved := o.T
	defer func() { o.T = saved }()
	o.T += dt
	return g.repriceMid()
}

func (g *BinomialLRWithGreeks) bumpVol(dv float64) float64 {
	o := g.LR.Tree.Option
	saved := o.Sigma
	defer func() { o.Sigma = saved }()
	o.Sigma += dv
	return g.repriceMid()
}

func (g *BinomialLRWithGreeks) bumpRate(dr float64) float64 {
	o := g.LR.Tree.Option
	saved := o.R
	defer func() { o.R = saved }()
	o.R += dr
	return g.repriceMid()
}
