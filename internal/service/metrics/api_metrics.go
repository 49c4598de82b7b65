package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hermes",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of engine API endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hermes",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by engine API endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	StreamSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hermes",
			Subsystem: "stream",
			Name:      "subscribers",
			Help:      "Connected cycle stream websocket clients",
		},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(APILatency, APIErrors, StreamSubscribers)
	})
}
