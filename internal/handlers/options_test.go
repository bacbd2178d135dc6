package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaldner/lattice/internal/config"
	"github.com/jwaldner/lattice/internal/logger"
	"github.com/jwaldner/lattice/internal/models"
	lattice "github.com/jwaldner/lattice/lattice_lib"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "handlers-test")
	if err != nil {
		panic(err)
	}
	if err := logger.InitWithConfig("error", filepath.Join(dir, "test.log")); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestHandler() *OptionsHandler {
	cfg := &config.Config{
		Port: "8080",
		Engine: config.EngineConfig{
			DefaultSteps: 300,
			MaxSteps:     1000,
		},
	}
	return NewOptionsHandler(cfg, lattice.NewEngine())
}

func postPrice(t *testing.T, h *OptionsHandler, req models.PriceRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.PriceHandler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/price", bytes.NewReader(body)))
	return rec
}

func TestPriceHandlerCall(t *testing.T) {
	rec := postPrice(t, newTestHandler(), models.PriceRequest{
		Symbol:           "XYZ",
		UnderlyingPrice:  50,
		StrikePrice:      52,
		RiskFreeRate:     0.05,
		TimeToExpiration: 2,
		Volatility:       0.3,
		OptionType:       "call",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "XYZ", resp.Symbol)
	assert.InDelta(t, 9.70, resp.Price, 0.10)
	assert.Greater(t, resp.Delta, 0.0)
	assert.Less(t, resp.Delta, 1.0)
	assert.Greater(t, resp.Vega, 0.0)
	assert.Equal(t, 300, resp.Steps)
	assert.Empty(t, resp.Warnings)
}

func TestPriceHandlerInvalidOptionType(t *testing.T) {
	rec := postPrice(t, newTestHandler(), models.PriceRequest{
		UnderlyingPrice:  50,
		StrikePrice:      52,
		RiskFreeRate:     0.05,
		TimeToExpiration: 2,
		Volatility:       0.3,
		OptionType:       "butterfly",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_OPTION_TYPE", resp.Error)
}

func TestPriceHandlerBadBody(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.PriceHandler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/price", bytes.NewReader([]byte("{not json"))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriceHandlerMethodNotAllowed(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.PriceHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/price", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPriceHandlerClampsSteps(t *testing.T) {
	rec := postPrice(t, newTestHandler(), models.PriceRequest{
		UnderlyingPrice:  50,
		StrikePrice:      52,
		RiskFreeRate:     0.05,
		TimeToExpiration: 2,
		Steps:            100000,
		Volatility:       0.3,
		OptionType:       "put",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1000, resp.Steps)
}

func TestPriceHandlerSanitizesNonFinite(t *testing.T) {
	// Zero volatility degenerates the LR calibration; the JSON response
	// must still be well formed, with warnings instead of NaN.
	rec := postPrice(t, newTestHandler(), models.PriceRequest{
		UnderlyingPrice:  50,
		StrikePrice:      52,
		RiskFreeRate:     0.05,
		TimeToExpiration: 2,
		Volatility:       0,
		OptionType:       "call",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Warnings)
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}
