package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	models "Hermes/internal/domain/models"
	domsvc "Hermes/internal/domain/service"
	"Hermes/internal/service/marketdata"
	"Hermes/internal/service/ratelimit"
	"Hermes/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	res  *models.CycleResult
	err  error
	last usecase.RunCycleParams
}

func (f *fakeRunner) RunCycle(_ context.Context, p usecase.RunCycleParams) (*models.CycleResult, error) {
	f.last = p
	return f.res, f.err
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, h *CycleEchoHandler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var env envelope
	if rec.Code != http.StatusOK || method == http.MethodPost {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	rec, _ := serve(t, NewCycleEchoHandler(nil, &fakeRunner{}, nil, nil), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRunCycleNoTrade(t *testing.T) {
	runner := &fakeRunner{res: &models.CycleResult{CycleID: "c-1", Env: "dev"}}
	rec, env := serve(t, NewCycleEchoHandler(nil, runner, nil, nil), http.MethodPost, "/btc/run_cycle")

	require.Equal(t, http.StatusOK, rec.Code)
	var out models.RunCycleResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.False(t, out.TradeExecuted)
	assert.Nil(t, out.ExecutedTrade)
	assert.Equal(t, NoTradeMessage, out.Message)
	assert.Equal(t, usecase.RunCycleParams{Env: "dev", HorizonMinutes: 60}, runner.last)
}

func TestRunCycleTrade(t *testing.T) {
	trade := &models.ExecutedTrade{BrokerTradeID: "SIM-1", Status: models.StatusFilled, Plan: &models.TradePlan{Side: models.SideLong}}
	runner := &fakeRunner{res: &models.CycleResult{CycleID: "c-2", Trade: trade}}
	rec, env := serve(t, NewCycleEchoHandler(nil, runner, nil, nil), http.MethodPost, "/btc/run_cycle?horizon_minutes=15&env=uat")

	require.Equal(t, http.StatusOK, rec.Code)
	var out models.RunCycleResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.True(t, out.TradeExecuted)
	require.NotNil(t, out.ExecutedTrade)
	assert.Equal(t, "SIM-1", out.ExecutedTrade.BrokerTradeID)
	assert.Empty(t, out.Message)
	assert.Equal(t, usecase.RunCycleParams{Env: "uat", HorizonMinutes: 15}, runner.last)
}

func TestRunCycleValidation(t *testing.T) {
	runner := &fakeRunner{}
	rec, env := serve(t, NewCycleEchoHandler(nil, runner, nil, nil), http.MethodPost, "/btc/run_cycle?horizon_minutes=5000")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Contains(t, string(env.Data), "horizon_minutes")
	assert.Empty(t, runner.last.Env)
}

func TestRunCycleErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("unknown environment: %w", domsvc.ErrConfiguration), http.StatusBadRequest},
		{fmt.Errorf("ibkr: %w", domsvc.ErrNotSupported), http.StatusNotImplemented},
		{fmt.Errorf("ibkr: %w", domsvc.ErrNotImplemented), http.StatusNotImplemented},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec, env := serve(t, NewCycleEchoHandler(nil, &fakeRunner{err: tc.err}, nil, nil), http.MethodPost, "/btc/run_cycle")
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
		assert.Equal(t, tc.want, env.Status, tc.err.Error())
	}
}

func TestRunCycleErrorCarriesRequestParams(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("ibkr: %w", domsvc.ErrNotSupported)}
	rec, env := serve(t, NewCycleEchoHandler(nil, runner, nil, nil), http.MethodPost, "/btc/run_cycle?env=prod&horizon_minutes=30")
	require.Equal(t, http.StatusNotImplemented, rec.Code)

	var errs []struct {
		Code   string         `json:"code"`
		Params map[string]any `json:"params"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "prod", errs[0].Params["env"])
	assert.Equal(t, 30.0, errs[0].Params["horizon_minutes"])
}

func TestRunCycleRateLimited(t *testing.T) {
	h := NewCycleEchoHandler(nil, &fakeRunner{res: &models.CycleResult{}}, nil, ratelimit.New(0.001, 1))
	e := echo.New()
	h.RegisterRoutes(e)

	codes := make([]int, 2)
	for i := range codes {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/btc/run_cycle", nil))
		codes[i] = rec.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRunCycleEndToEnd(t *testing.T) {
	sel := usecase.NewBackendSelector(marketdata.NewSimulated(), nil)
	uc := usecase.NewCycleUseCase(usecase.OrchestratorConfig{
		Env:             "dev",
		Symbol:          "BTC-USD",
		HorizonMinutes:  60,
		MaxPositionSize: 1,
	}, sel, nil, nil, nil)
	h := NewCycleEchoHandler(nil, uc, nil, nil)

	rec, env := serve(t, h, http.MethodPost, "/btc/run_cycle?env=dev")
	require.Equal(t, http.StatusOK, rec.Code)
	var out models.RunCycleResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.NotEmpty(t, out.CycleID)
	assert.Equal(t, out.TradeExecuted, out.ExecutedTrade != nil)

	rec, _ = serve(t, h, http.MethodPost, "/btc/run_cycle?env=prod")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec, _ = serve(t, h, http.MethodPost, "/btc/run_cycle?env=mars")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
