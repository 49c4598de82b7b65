package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSink struct {
	err   error
	calls int
	last  *models.TradeDiagnostics
}

func (s *stubSink) Name() string { return "stub" }

func (s *stubSink) Send(_ context.Context, _ *models.ExecutedTrade, d *models.TradeDiagnostics) error {
	s.calls++
	s.last = d
	return s.err
}

func path(prices ...float64) models.PricePath {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := make(models.PricePath, len(prices))
	for i, p := range prices {
		out[i] = models.PricePoint{Time: t0.Add(time.Duration(i) * time.Minute), Price: p}
	}
	return out
}

func trade(side models.Side, entry float64) *models.ExecutedTrade {
	return &models.ExecutedTrade{
		BrokerTradeID: "SIM-7",
		Plan:          &models.TradePlan{Symbol: "BTC-USD", Side: side},
		FilledPrice:   entry,
	}
}

func TestFeedbackLong(t *testing.T) {
	sink := &stubSink{}
	m := newRecordingMetrics()
	f := NewFeedback("BTC-USD", []drepo.DiagnosticsSink{sink}, m, nil)

	p := path(100, 105)
	d, err := f.UpdateFromTrade(context.Background(), trade(models.SideLong, 100), p)
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, 5.0, d.PnL)
	assert.Equal(t, 5.0, d.MFE)
	assert.Equal(t, 0.0, d.MAE)
	assert.Equal(t, "SIM-7", d.BrokerTradeID)
	assert.Equal(t, p[0].Time, d.Start)
	assert.Equal(t, p[1].Time, d.End)
	assert.Equal(t, 1, sink.calls)
	assert.Same(t, d, sink.last)
	assert.Equal(t, []float64{5}, m.feedback)
}

func TestFeedbackShort(t *testing.T) {
	d := Diagnose("BTC-USD", trade(models.SideShort, 100), path(100, 95, 110))
	require.NotNil(t, d)
	assert.Equal(t, -10.0, d.PnL)
	assert.Equal(t, -10.0, d.MAE)
	assert.Equal(t, 5.0, d.MFE)
	assert.Equal(t, models.SideShort, d.Side)
}

func TestFeedbackEmptyPathIsNoOp(t *testing.T) {
	sink := &stubSink{}
	f := NewFeedback("BTC-USD", []drepo.DiagnosticsSink{sink}, nil, nil)

	d, err := f.UpdateFromTrade(context.Background(), trade(models.SideLong, 100), nil)
	assert.NoError(t, err)
	assert.Nil(t, d)
	assert.Zero(t, sink.calls)
}

func TestFeedbackSinkFailureDoesNotFail(t *testing.T) {
	failing := &stubSink{err: errors.New("broker down")}
	ok := &stubSink{}
	m := newRecordingMetrics()
	f := NewFeedback("BTC-USD", []drepo.DiagnosticsSink{failing, ok}, m, nil)

	d, err := f.UpdateFromTrade(context.Background(), trade(models.SideLong, 100), path(100, 101))
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, m.errors["sink_stub"])
}

func TestFeedbackRejectsTradeWithoutPlan(t *testing.T) {
	f := NewFeedback("BTC-USD", nil, nil, nil)
	_, err := f.UpdateFromTrade(context.Background(), &models.ExecutedTrade{}, path(1))
	assert.Error(t, err)
}
