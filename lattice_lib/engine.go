package lattice

import (
	"fmt"
	"math"
)

// DefaultSteps is the tree depth used when a contract does not specify one.
const DefaultSteps = 300

// OptionContract represents one options contract in a batch calculation.
// Input fields describe the contract; the Greeks and TheoreticalPrice fields
// are filled by the engine.
type OptionContract struct {
	Symbol           string
	StrikePrice      float64
	UnderlyingPrice  float64
	TimeToExpiration float64
	RiskFreeRate     float64
	DividendYield    float64
	Volatility       float64
	Steps            int
	OptionType       byte // 'C' or 'P'
	American         bool

	// Output Greeks
	Delta            float64
	Gamma            float64
	Theta            float64
	Vega             float64
	Rho              float64
	TheoreticalPrice float64
}

// Engine prices option contracts on a Leisen-Reimer calibrated binomial
// lattice. It holds no state between calls; every calculation builds its own
// contract chain, so a single Engine is safe for concurrent use.
type Engine struct {
	defaultSteps int
}

// NewEngine creates an engine with the default tree depth.
func NewEngine() *Engine {
	return &Engine{defaultSteps: DefaultSteps}
}

// NewEngineWithSteps creates an engine whose contracts default to the given
// tree depth.
func NewEngineWithSteps(steps int) *Engine {
	if steps < 1 {
		steps = DefaultSteps
	}
	return &Engine{defaultSteps: steps}
}

// PriceAndGreeks prices a single option and derives its five sensitivities
// on the LR lattice. The only validated input is the option-type token;
// every other out-of-domain parameter (zero volatility, zero expiry,
// non-positive spot or strike) produces NaN or Inf outputs that the caller
// must interpret.
func PriceAndGreeks(s0, k, r, t float64, n int, pu, pd, div, sigma float64, optionType string, american bool) (*PricingResult, error) {
	option, err := NewStockOption(s0, k, r, t, n, pu, pd, div, sigma, optionType, american)
	if err != nil {
		return nil, err
	}

	tree := NewBinomialTreeOption(option)
	lr := NewBinomialLROption(tree)
	greeks := NewBinomialLRWithGreeks(lr)
	return greeks.PriceAndGreeks(), nil
}

// Calculate fills the theoretical price and Greeks on every contract in the
// batch. Contracts without an explicit step count use the engine default.
func (e *Engine) Calculate(contracts []OptionContract) ([]OptionContract, error) {
	results := make([]OptionContract, len(contracts))
	for i, contract := range contracts {
		optionType, err := optionTypeToken(contract.OptionType)
		if err != nil {
			return nil, fmt.Errorf("contract %q: %w", contract.Symbol, err)
		}

		steps := contract.Steps
		if steps < 1 {
			steps = e.defaultSteps
		}

		res, err := PriceAndGreeks(
			contract.UnderlyingPrice,
			contract.StrikePrice,
			contract.RiskFreeRate,
			contract.TimeToExpiration,
			steps,
			0, 0,
			contract.DividendYield,
			contract.Volatility,
			optionType,
			contract.American,
		)
		if err != nil {
			return nil, fmt.Errorf("contract %q: %w", contract.Symbol, err)
		}

		results[i] = contract
		results[i].TheoreticalPrice = res.Price
		results[i].Delta = res.Delta
		results[i].Gamma = res.Gamma
		results[i].Theta = res.Theta
		results[i].Vega = res.Vega
		results[i].Rho = res.Rho
	}
	return results, nil
}

func optionTypeToken(flag byte) (string, error) {
	switch flag {
	case 'C', 'c':
		return "call", nil
	case 'P', 'p':
		return "put", nil
	default:
		return "", ErrInvalidOptionType
	}
}

// CRRMoveSizes returns generic-path up/down move sizes that reproduce the
// Cox-Ross-Rubinstein lattice (u = e^{sigma*sqrt(dt)}) for the given
// volatility, expiry and step count. The generic calibration takes move
// sizes rather than volatility, so this is how a volatility view is fed
// into the non-LR path.
func CRRMoveSizes(sigma, t float64, n int) (pu, pd float64) {
	if n < 1 {
		n = 1
	}
	dt := t / float64(n)
	u := math.Exp(sigma * math.Sqrt(dt))
	return u - 1.0, 1.0 - 1.0/u
}
