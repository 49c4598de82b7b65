package metrics

import (
	"sync"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cycles        *prometheus.CounterVec
	layerDuration *prometheus.HistogramVec
	layerTimeouts *prometheus.CounterVec
	decisions     *prometheus.CounterVec
	tradesTotal   *prometheus.CounterVec
	tradeSize     *prometheus.HistogramVec
	pnl           *prometheus.HistogramVec
	lastPnL       *prometheus.GaugeVec
	errorsTotal   *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

var (
	defaultOnce     sync.Once
	defaultRecorder *Recorder
)

// New returns the recorder registered with the default Prometheus registry.
// It is created on first use and shared afterwards.
func New() *Recorder {
	defaultOnce.Do(func() {
		defaultRecorder = NewWithRegisterer(prometheus.DefaultRegisterer)
	})
	return defaultRecorder
}

// NewWithRegisterer creates a recorder registered with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		cycles: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hermes_cycles_total",
				Help: "Decision cycles by environment and outcome",
			},
			[]string{"env", "outcome"},
		),
		layerDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hermes_layer_duration_seconds",
				Help:    "Duration of layer evaluations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"layer"},
		),
		layerTimeouts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hermes_layer_timeouts_total",
				Help: "Layers replaced by a neutral output after timing out",
			},
			[]string{"layer"},
		),
		decisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hermes_decisions_total",
				Help: "Decision outcomes: long, short or no_trade",
			},
			[]string{"outcome"},
		),
		tradesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hermes_trades_total",
				Help: "Executed trades by symbol and side",
			},
			[]string{"symbol", "side"},
		),
		tradeSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hermes_trade_size",
				Help:    "Filled size of executed trades",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
			},
			[]string{"symbol"},
		),
		pnl: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hermes_trade_pnl",
				Help:    "Realized PnL per trade reported by feedback",
				Buckets: []float64{-1000, -100, -10, -1, 0, 1, 10, 100, 1000},
			},
			[]string{"symbol"},
		),
		lastPnL: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hermes_last_trade_pnl",
				Help: "PnL of the most recent trade for a symbol",
			},
			[]string{"symbol"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hermes_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hermes_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordCycle(env, outcome string) {
	r.cycles.WithLabelValues(env, outcome).Inc()
}

func (r *Recorder) RecordLayer(layer string, seconds float64, timedOut bool) {
	r.layerDuration.WithLabelValues(layer).Observe(seconds)
	if timedOut {
		r.layerTimeouts.WithLabelValues(layer).Inc()
	}
}

func (r *Recorder) RecordDecision(outcome string) {
	r.decisions.WithLabelValues(outcome).Inc()
}

func (r *Recorder) RecordTrade(symbol string, side models.Side, size float64) {
	r.tradesTotal.WithLabelValues(symbol, string(side)).Inc()
	r.tradeSize.WithLabelValues(symbol).Observe(size)
}

// RecordFeedback records the PnL of a trade once its price path is known.
func (r *Recorder) RecordFeedback(symbol string, pnl float64) {
	r.pnl.WithLabelValues(symbol).Observe(pnl)
	r.lastPnL.WithLabelValues(symbol).Set(pnl)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

var _ drepo.Metrics = (*Recorder)(nil)
