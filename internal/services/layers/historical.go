package layers

import (
	"context"
	"fmt"
	"math"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"
	domsvc "Hermes/internal/domain/service"
	"Hermes/internal/services/features"
)

const (
	historyLimit   = 100
	historyMinimum = 50
	smaFast        = 20
	smaSlow        = 50
	riskWindow     = 50
)

// HistoricalPerformance reads hourly trend from a fast/slow SMA crossover.
type HistoricalPerformance struct {
	cfg Config
}

func NewHistoricalPerformance(cfg Config) *HistoricalPerformance {
	return &HistoricalPerformance{cfg: cfg}
}

func (l *HistoricalPerformance) Name() string { return NameHistoricalPerformance }

func (l *HistoricalPerformance) Run(ctx context.Context) (models.LayerOutput, error) {
	if l.cfg.MarketData == nil {
		return Neutral(l.cfg, l.Name(), ReasonNoMarketData), nil
	}
	cs, err := l.cfg.MarketData.GetRecentOHLCV(ctx, l.cfg.Symbol, drepo.Interval1h, historyLimit)
	if err != nil {
		return models.LayerOutput{}, fmt.Errorf("%s ohlcv: %w", l.Name(), err)
	}
	closes := models.Closes(cs)
	if len(closes) < historyMinimum {
		return Neutral(l.cfg, l.Name(), ReasonInsufficientHistory), nil
	}

	fast := features.SMA(closes, smaFast)
	slow := features.SMA(closes, smaSlow)
	distance := math.Abs(fast-slow) / math.Max(slow, 1e-9)

	return models.LayerOutput{
		Timestamp:      l.cfg.now(),
		HorizonMinutes: l.cfg.HorizonMinutes,
		Direction:      models.DirectionOf(fast - slow),
		Confidence:     features.Clamp(distance*10, 0, 1),
		Risk:           features.StdDev(features.Tail(features.PctReturns(closes), riskWindow)),
		Extras: models.Extras{
			"layer":    Tag(l.Name()),
			"sma_fast": fast,
			"sma_slow": slow,
		},
	}, nil
}

var _ domsvc.Layer = (*HistoricalPerformance)(nil)
