package lattice

import "math"

// BinomialTreeOption prices a StockOption on a recombining binomial lattice.
// Up/down factors and risk-neutral probabilities are lattice-wide constants
// for one pricing pass and are recomputed before each traversal.
type BinomialTreeOption struct {
	Option *StockOption

	U  float64 // up factor
	D  float64 // down factor
	Qu float64 // risk-neutral probability of an up move
	Qd float64 // 1 - Qu
}

// NewBinomialTreeOption wraps a contract in the generic lattice engine.
func NewBinomialTreeOption(option *StockOption) *BinomialTreeOption {
	return &BinomialTreeOption{Option: option}
}

// SetupParameters derives the move factors and risk-neutral probabilities
// from the contract's generic up/down move sizes. Volatility is not consumed
// here; the Leisen-Reimer calibration replaces this step when in use.
//
// If U equals D the probability formula divides by zero and the resulting
// Inf/NaN values propagate silently through the traversal.
func (b *BinomialTreeOption) SetupParameters() {
	b.U = 1.0 + b.Option.Pu
	b.D = 1.0 - b.Option.Pd
	b.Qu = (math.Exp((b.Option.R-b.Option.Div)*b.Option.Dt()) - b.D) / (b.U - b.D)
	b.Qd = 1.0 - b.Qu
}

// InitPriceTree rebuilds the stock price lattice from the spot price: level 0
// is [S0], and each next level multiplies every node by U then appends the
// previous last node times D, giving the canonical recombining shape of
// N+1 levels.
func (b *BinomialTreeOption) InitPriceTree() {
	o := b.Option
	o.PriceTree = [][]float64{{o.S0}}
	for i := 0; i < o.N; i++ {
		prev := o.PriceTree[len(o.PriceTree)-1]
		level := make([]float64, 0, len(prev)+1)
		for _, s := range prev {
			level = append(level, s*b.U)
		}
		level = append(level, prev[len(prev)-1]*b.D)
		o.PriceTree = append(o.PriceTree, level)
	}
}

// terminalPayoffs computes the exercise value at every node of the final
// lattice level.
func (b *BinomialTreeOption) terminalPayoffs() []float64 {
	o := b.Option
	last := o.PriceTree[len(o.PriceTree)-1]
	payoffs := make([]float64, len(last))
	for i, s := range last {
		if o.IsCall {
			payoffs[i] = math.Max(s-o.K, 0.0)
		} else {
			payoffs[i] = math.Max(o.K-s, 0.0)
		}
	}
	return payoffs
}

// earlyExercise floors each continuation value with the immediate intrinsic
// value at the given lattice level. Only called for American contracts.
func (b *BinomialTreeOption) earlyExercise(payoffs []float64, level int) []float64 {
	o := b.Option
	floored := make([]float64, len(payoffs))
	for i, p := range payoffs {
		s := o.PriceTree[level][i]
		if o.IsCall {
			floored[i] = math.Max(p, s-o.K)
		} else {
			floored[i] = math.Max(p, o.K-s)
		}
	}
	return floored
}

// traverseTree walks the payoffs back to the root: each step contracts the
// slice by one, combining adjacent pairs under the risk-neutral measure and
// discounting, with the early-exercise floor applied per level for American
// contracts.
func (b *BinomialTreeOption) traverseTree(payoffs []float64) []float64 {
	df := b.Option.Df()
	for i := b.Option.N - 1; i >= 0; i-- {
		contracted := make([]float64, len(payoffs)-1)
		for j := 0; j < len(contracted); j++ {
			contracted[j] = (payoffs[j]*b.Qu + payoffs[j+1]*b.Qd) * df
		}
		payoffs = contracted
		if !b.Option.IsEuropean {
			payoffs = b.earlyExercise(payoffs, i)
		}
	}
	return payoffs
}

// Traverse computes terminal payoffs and inducts them back to the first
// lattice level, returning the full contracted slice (length 1 for the
// canonical single-root lattice).
func (b *BinomialTreeOption) Traverse() []float64 {
	return b.traverseTree(b.terminalPayoffs())
}

// Price runs a full pricing pass with the generic calibration and returns
// the root value.
func (b *BinomialTreeOption) Price() float64 {
	b.SetupParameters()
	b.InitPriceTree()
	return b.Traverse()[0]
}
