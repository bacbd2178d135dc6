package lattice

import (
	"errors"
	"math"
)

// ErrInvalidOptionType is returned when an option-type token is neither
// "call" nor "put". It is the only input error the package reports; every
// other out-of-domain input flows through as NaN or Inf.
var ErrInvalidOptionType = errors.New("invalid option type: must be \"call\" or \"put\"")

// StockOption holds the market and contract parameters for a single vanilla
// equity option, plus the mutable price lattice populated by a pricing pass.
//
// Fields are exported so the engine layers can read and bump them in place;
// a StockOption must not be shared across goroutines while a pricing or
// Greeks computation is running.
type StockOption struct {
	S0    float64 // spot price of the underlying
	K     float64 // strike price
	R     float64 // continuously compounded risk-free rate
	T     float64 // time to expiration, in years
	N     int     // number of tree steps, always >= 1
	Pu    float64 // up-move size for the generic (non-LR) calibration
	Pd    float64 // down-move size for the generic (non-LR) calibration
	Div   float64 // continuous dividend yield
	Sigma float64 // annualized volatility

	IsCall     bool
	IsEuropean bool

	// PriceTree is the recombining stock price lattice: level i holds i+1
	// node prices (ascending index = more down moves). It is empty until a
	// pricing pass builds it and is rebuilt from scratch on every pass.
	PriceTree [][]float64
}

// NewStockOption builds a contract from raw parameters. The step count is
// clamped to at least 1; nothing else is validated.
func NewStockOption(s0, k, r, t float64, n int, pu, pd, div, sigma float64, optionType string, american bool) (*StockOption, error) {
	var isCall bool
	switch optionType {
	case "call":
		isCall = true
	case "put":
		isCall = false
	default:
		return nil, ErrInvalidOptionType
	}

	if n < 1 {
		n = 1
	}

	return &StockOption{
		S0:         s0,
		K:          k,
		R:          r,
		T:          t,
		N:          n,
		Pu:         pu,
		Pd:         pd,
		Div:        div,
		Sigma:      sigma,
		IsCall:     isCall,
		IsEuropean: !american,
	}, nil
}

// Dt returns the time increment per tree step.
func (o *StockOption) Dt() float64 {
	return o.T / float64(o.N)
}

// Df returns the per-step discount factor exp(-(r-div)*dt).
func (o *StockOption) Df() float64 {
	return math.Exp(-1.0 * (o.R - o.Div) * o.Dt())
}
