package service

import (
	"context"

	"Hermes/internal/domain/models"
)

// Layer produces an independent directional opinion for the configured symbol and horizon.
type Layer interface {
	Name() string
	Run(ctx context.Context) (models.LayerOutput, error)
}

// Strategy refines a base trade plan when it sees its pattern in the layer outputs.
type Strategy interface {
	Name() string
	ShouldTrade(layers map[string]models.LayerOutput) bool
	BuildTradePlan(plan *models.TradePlan, layers map[string]models.LayerOutput) *models.TradePlan
}

// DecisionLayer combines layer outputs into at most one trade plan.
type DecisionLayer interface {
	Decide(layers map[string]models.LayerOutput) *models.TradePlan
}

// ExecutionAgent turns a trade plan into an executed trade.
type ExecutionAgent interface {
	Execute(ctx context.Context, plan *models.TradePlan) (*models.ExecutedTrade, error)
}

// FeedbackAgent consumes realized outcomes. A nil result means nothing was computed.
type FeedbackAgent interface {
	UpdateFromTrade(ctx context.Context, trade *models.ExecutedTrade, path models.PricePath) (*models.TradeDiagnostics, error)
}
