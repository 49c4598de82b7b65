package usecase

import (
	"math"
	"sort"
	"time"

	"Hermes/internal/domain/models"
	domsvc "Hermes/internal/domain/service"
	"Hermes/internal/services/features"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TieBreakDirection is the side taken when weighted layer directions cancel out exactly.
const TieBreakDirection = models.Short

// DecisionConfig parameterizes the aggregate decision layer.
type DecisionConfig struct {
	Symbol                string
	MaxPositionSize       float64
	DefaultHorizonMinutes int
	Now                   func() time.Time
}

// Decision is a confidence-weighted vote over layer outputs refined by strategies.
type Decision struct {
	cfg        DecisionConfig
	strategies []domsvc.Strategy
}

// NewDecision applies strategies in the order given.
func NewDecision(cfg DecisionConfig, strategies []domsvc.Strategy) *Decision {
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Decision{cfg: cfg, strategies: strategies}
}

// Decide returns nil when there are no outputs or no layer carries any confidence.
func (d *Decision) Decide(layers map[string]models.LayerOutput) *models.TradePlan {
	if len(layers) == 0 {
		return nil
	}

	used := make([]string, 0, len(layers))
	for name := range layers {
		used = append(used, name)
	}
	sort.Strings(used)

	// summed in name order
	dirs := make([]float64, len(used))
	weights := make([]float64, len(used))
	horizons := make([]float64, len(used))
	for i, name := range used {
		out := layers[name]
		dirs[i] = float64(out.Direction)
		weights[i] = math.Max(out.Confidence, 0)
		horizons[i] = float64(out.HorizonMinutes)
	}
	totalWeight := floats.Sum(weights)
	if totalWeight == 0 {
		return nil
	}
	weightedDirection := stat.Mean(dirs, weights)

	direction := TieBreakDirection
	if weightedDirection > 0 {
		direction = models.Long
	} else if weightedDirection < 0 {
		direction = models.Short
	}

	aggConfidence := features.Clamp(totalWeight/float64(len(layers)), 0, 1)
	if aggConfidence == 0 {
		return nil
	}

	horizon := int(math.Round(features.Mean(horizons)))
	if horizon <= 0 {
		horizon = d.cfg.DefaultHorizonMinutes
	}

	side := models.SideShort
	if direction == models.Long {
		side = models.SideLong
	}

	// prices stay zero until a live price feed is wired into planning
	plan := &models.TradePlan{
		Timestamp:          d.cfg.Now(),
		Symbol:             d.cfg.Symbol,
		Side:               side,
		Size:               d.cfg.MaxPositionSize * aggConfidence,
		TimeHorizonMinutes: horizon,
		Metadata: map[string]any{
			models.MetaAggConfidence: aggConfidence,
			models.MetaLayersUsed:    used,
		},
	}

	for _, s := range d.strategies {
		if s.ShouldTrade(layers) {
			plan = s.BuildTradePlan(plan, layers)
		}
	}
	return plan
}

var _ domsvc.DecisionLayer = (*Decision)(nil)
