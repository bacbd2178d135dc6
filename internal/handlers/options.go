package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jwaldner/lattice/internal/config"
	"github.com/jwaldner/lattice/internal/logger"
	"github.com/jwaldner/lattice/internal/models"
	lattice "github.com/jwaldner/lattice/lattice_lib"
)

// OptionsHandler serves the pricing API on top of the lattice engine.
type OptionsHandler struct {
	cfg    *config.Config
	engine *lattice.Engine
}

func NewOptionsHandler(cfg *config.Config, engine *lattice.Engine) *OptionsHandler {
	return &OptionsHandler{cfg: cfg, engine: engine}
}

// HealthHandler reports liveness.
func (h *OptionsHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.HealthResponse{
		Status: "ok",
		Engine: "binomial-lr",
	})
}

// PriceHandler prices one contract and returns its Greeks.
func (h *OptionsHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	// CORS headers for browser compatibility
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}

	var req models.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", errors.Wrap(err, "decode request").Error())
		return
	}

	steps := req.Steps
	if steps < 1 {
		steps = h.cfg.Engine.DefaultSteps
	}
	if steps > h.cfg.Engine.MaxSteps {
		logger.Warn.Printf("request steps %d above cap, clamping to %d", steps, h.cfg.Engine.MaxSteps)
		steps = h.cfg.Engine.MaxSteps
	}

	logger.Debug.Printf("pricing request: symbol=%q S0=%.4f K=%.4f r=%.4f T=%.4f n=%d sigma=%.4f type=%s american=%v",
		req.Symbol, req.UnderlyingPrice, req.StrikePrice, req.RiskFreeRate,
		req.TimeToExpiration, steps, req.Volatility, req.OptionType, req.American)

	res, err := lattice.PriceAndGreeks(
		req.UnderlyingPrice,
		req.StrikePrice,
		req.RiskFreeRate,
		req.TimeToExpiration,
		steps,
		req.UpMoveSize,
		req.DownMoveSize,
		req.DividendYield,
		req.Volatility,
		req.OptionType,
		req.American,
	)
	if err != nil {
		if errors.Is(err, lattice.ErrInvalidOptionType) {
			writeError(w, http.StatusBadRequest, "INVALID_OPTION_TYPE", err.Error())
			return
		}
		logger.Error.Printf("pricing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "PRICING_FAILED", err.Error())
		return
	}

	resp := models.PriceResponse{
		Success: true,
		Symbol:  req.Symbol,
		Price:   res.Price,
		Delta:   res.Delta,
		Gamma:   res.Gamma,
		Theta:   res.Theta,
		Vega:    res.Vega,
		Rho:     res.Rho,
		Steps:   steps,
		Engine:  "binomial-lr",
	}
	sanitizeResponse(&resp)

	json.NewEncoder(w).Encode(resp)
}

// sanitizeResponse replaces non-finite values with zero and records the
// affected fields, since encoding/json cannot represent NaN or Inf. The
// engine passes degeneracy through untouched; this is the service boundary
// where it has to be made representable.
func sanitizeResponse(resp *models.PriceResponse) {
	fields := []struct {
		name  string
		value *float64
	}{
		{"price", &resp.Price},
		{"delta", &resp.Delta},
		{"gamma", &resp.Gamma},
		{"theta", &resp.Theta},
		{"vega", &resp.Vega},
		{"rho", &resp.Rho},
	}

	for _, f := range fields {
		if math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			logger.Warn.Printf("non-finite %s in response for %q, zeroing (out-of-domain input?)", f.name, resp.Symbol)
			*f.value = 0
			resp.Warnings = append(resp.Warnings, f.name+" was non-finite and has been zeroed")
		}
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
