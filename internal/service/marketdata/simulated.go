package marketdata

import (
	"context"
	"fmt"
	"math"
	"time"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SimOption configures Simulated.
type SimOption func(*Simulated)

// WithAnchorPrice sets the price the random walk starts from.
func WithAnchorPrice(p float64) SimOption {
	return func(s *Simulated) {
		if p > 0 {
			s.anchor = p
		}
	}
}

// WithSeed fixes the generator seed.
func WithSeed(seed int64) SimOption {
	return func(s *Simulated) {
		s.seed = seed
		s.randomize = false
	}
}

// WithRandomSeed makes every call draw a fresh seed; output is no longer reproducible.
func WithRandomSeed() SimOption {
	return func(s *Simulated) { s.randomize = true }
}

// WithClock overrides the time source used to stamp candles.
func WithClock(now func() time.Time) SimOption {
	return func(s *Simulated) {
		if now != nil {
			s.now = now
		}
	}
}

// Simulated generates a random walk in log-price space around an anchor price.
// Every call re-seeds its own generator, so identical parameters give identical candles.
type Simulated struct {
	anchor    float64
	seed      int64
	randomize bool
	stepScale float64
	now       func() time.Time
}

// NewSimulated creates a simulated client seeded with 42 around 50000.
func NewSimulated(opts ...SimOption) *Simulated {
	s := &Simulated{
		anchor:    50000,
		seed:      42,
		stepScale: 0.001,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulated) series(limit int, step time.Duration) ([]float64, []time.Time) {
	seed := s.seed
	if s.randomize {
		seed = time.Now().UnixNano()
	}
	steps := distuv.Normal{Mu: 0, Sigma: s.stepScale, Src: rand.NewSource(uint64(seed))}

	prices := make([]float64, limit)
	stamps := make([]time.Time, limit)
	logP := math.Log(s.anchor)
	end := s.now().UTC().Truncate(step)
	for i := 0; i < limit; i++ {
		logP += steps.Rand()
		prices[i] = math.Exp(logP)
		stamps[i] = end.Add(-time.Duration(limit-1-i) * step)
	}
	return prices, stamps
}

func (s *Simulated) GetRecentOHLCV(ctx context.Context, symbol string, interval drepo.Interval, limit int) ([]models.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	prices, stamps := s.series(limit, interval.Duration())

	out := make([]models.Candle, limit)
	for i, p := range prices {
		open := p
		if i > 0 {
			open = prices[i-1]
		}
		out[i] = models.Candle{
			Bucket: stamps[i],
			Open:   open,
			High:   math.Max(open, p),
			Low:    math.Min(open, p),
			Close:  p,
			Volume: 1,
		}
	}
	return out, nil
}

func (s *Simulated) GetLatestPrice(ctx context.Context, symbol string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prices, _ := s.series(1, time.Minute)
	return prices[0], nil
}

var _ drepo.MarketDataClient = (*Simulated)(nil)
