package metrics

import (
	"testing"

	"Hermes/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := NewWithRegisterer(prometheus.NewRegistry())

	r.RecordCycle("dev", "traded")
	r.RecordCycle("dev", "traded")
	r.RecordCycle("dev", "no_trade")
	r.RecordLayer("live_pattern", 0.2, true)
	r.RecordLayer("live_pattern", 0.1, false)
	r.RecordTrade("BTC-USD", models.SideLong, 0.5)
	r.RecordFeedback("BTC-USD", -3)
	r.RecordError("execute")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cycles.WithLabelValues("dev", "traded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cycles.WithLabelValues("dev", "no_trade")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.layerTimeouts.WithLabelValues("live_pattern")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.tradesTotal.WithLabelValues("BTC-USD", "long")))
	assert.Equal(t, -3.0, testutil.ToFloat64(r.lastPnL.WithLabelValues("BTC-USD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("execute")))
}

func TestNewIsSharedAcrossCalls(t *testing.T) {
	var first, second *Recorder
	assert.NotPanics(t, func() {
		first = New()
		second = New()
	})
	assert.Same(t, first, second)
}
