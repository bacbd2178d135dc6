package models

// PriceRequest is the JSON body of a pricing call.
type PriceRequest struct {
	Symbol           string  `json:"symbol,omitempty"`
	UnderlyingPrice  float64 `json:"underlying_price"`
	StrikePrice      float64 `json:"strike_price"`
	RiskFreeRate     float64 `json:"risk_free_rate"`
	TimeToExpiration float64 `json:"time_to_expiration"` // years
	Steps            int     `json:"steps,omitempty"`    // tree depth, server default when omitted
	UpMoveSize       float64 `json:"up_move_size,omitempty"`
	DownMoveSize     float64 `json:"down_move_size,omitempty"`
	DividendYield    float64 `json:"dividend_yield,omitempty"`
	Volatility       float64 `json:"volatility"`
	OptionType       string  `json:"option_type"` // "call" or "put"
	American         bool    `json:"american,omitempty"`
}

// PriceResponse carries the price and Greeks for one contract. Non-finite
// values are sanitized to zero with the affected field listed in Warnings.
type PriceResponse struct {
	Success  bool     `json:"success"`
	Symbol   string   `json:"symbol,omitempty"`
	Price    float64  `json:"price"`
	Delta    float64  `json:"delta"`
	Gamma    float64  `json:"gamma"`
	Theta    float64  `json:"theta"`
	Vega     float64  `json:"vega"`
	Rho      float64  `json:"rho"`
	Steps    int      `json:"steps"`
	Engine   string   `json:"engine"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status"`
	Engine string `json:"engine"`
}
