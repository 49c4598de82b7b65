package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"
)

type fakeMarket struct {
	closes []float64
	err    error
	calls  atomic.Int32
}

func (f *fakeMarket) GetRecentOHLCV(_ context.Context, _ string, _ drepo.Interval, limit int) ([]models.Candle, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	closes := f.closes
	if len(closes) > limit {
		closes = closes[len(closes)-limit:]
	}
	out := make([]models.Candle, len(closes))
	for i, c := range closes {
		out[i] = models.Candle{Open: c, High: c, Low: c, Close: c, Volume: 1}
	}
	return out, nil
}

func (f *fakeMarket) GetLatestPrice(context.Context, string) (float64, error) {
	if len(f.closes) == 0 {
		return 0, f.err
	}
	return f.closes[len(f.closes)-1], f.err
}

func rising(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func flat(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100
	}
	return out
}

type recordingMetrics struct {
	mu       sync.Mutex
	cycles   map[string]int
	errors   map[string]int
	timeouts map[string]int
	feedback []float64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{cycles: map[string]int{}, errors: map[string]int{}, timeouts: map[string]int{}}
}

func (m *recordingMetrics) RecordCycle(env, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles[env+"/"+outcome]++
}

func (m *recordingMetrics) RecordLayer(layer string, _ float64, timedOut bool) {
	if !timedOut {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeouts[layer]++
}

func (m *recordingMetrics) RecordDecision(string)                    {}
func (m *recordingMetrics) RecordTrade(string, models.Side, float64) {}
func (m *recordingMetrics) RecordLatency(string, float64)            {}

func (m *recordingMetrics) RecordFeedback(_ string, pnl float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = append(m.feedback, pnl)
}

func (m *recordingMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}
