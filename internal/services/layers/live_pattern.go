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
	patternLimit   = 50
	patternMinimum = 10
	momentumWindow = 5
)

// LivePattern scores short-term momentum on five-minute bars.
type LivePattern struct {
	cfg Config
}

func NewLivePattern(cfg Config) *LivePattern {
	return &LivePattern{cfg: cfg}
}

func (l *LivePattern) Name() string { return NameLivePattern }

func (l *LivePattern) Run(ctx context.Context) (models.LayerOutput, error) {
	if l.cfg.MarketData == nil {
		return Neutral(l.cfg, l.Name(), ReasonNoMarketData), nil
	}
	cs, err := l.cfg.MarketData.GetRecentOHLCV(ctx, l.cfg.Symbol, drepo.Interval5m, patternLimit)
	if err != nil {
		return models.LayerOutput{}, fmt.Errorf("%s ohlcv: %w", l.Name(), err)
	}
	closes := models.Closes(cs)
	if len(closes) < patternMinimum {
		return Neutral(l.cfg, l.Name(), ReasonInsufficientHistory), nil
	}

	recent := features.Tail(features.PctReturns(closes), momentumWindow)
	momentum := features.Mean(recent)

	return models.LayerOutput{
		Timestamp:      l.cfg.now(),
		HorizonMinutes: l.cfg.HorizonMinutes,
		Direction:      models.DirectionOf(momentum),
		Confidence:     features.Clamp(math.Abs(momentum)*1000, 0, 1),
		Risk:           features.StdDev(recent),
		Extras: models.Extras{
			"layer":    Tag(l.Name()),
			"momentum": momentum,
		},
	}, nil
}

var _ domsvc.Layer = (*LivePattern)(nil)
