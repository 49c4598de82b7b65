package layers

import (
	"time"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"
	domsvc "Hermes/internal/domain/service"
)

// Layer names as they appear in cycle results and metrics.
const (
	NameHistoricalPerformance = "historical_performance"
	NameLivePattern           = "live_pattern"
	NameGeoPolitical          = "geopolitical"
	NameSentiment             = "sentiment"
)

// Neutral reasons.
const (
	ReasonNoMarketData        = "no_market_data_client"
	ReasonInsufficientHistory = "insufficient_history"
	ReasonTimeout             = "timeout"
)

// Config is shared by all layers of one orchestrator.
type Config struct {
	Symbol         string
	HorizonMinutes int
	MarketData     drepo.MarketDataClient
	// Now stamps layer outputs; defaults to time.Now in UTC.
	Now func() time.Time
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}

// All builds the four layers in their canonical order.
func All(cfg Config) []domsvc.Layer {
	return []domsvc.Layer{
		NewHistoricalPerformance(cfg),
		NewLivePattern(cfg),
		NewGeoPolitical(cfg),
		NewSentiment(cfg),
	}
}

// Tag returns the short letter a layer reports in its extras.
func Tag(name string) string {
	switch name {
	case NameHistoricalPerformance:
		return "A"
	case NameLivePattern:
		return "B"
	case NameGeoPolitical:
		return "C"
	case NameSentiment:
		return "D"
	}
	return name
}

// Neutral is the output for a layer that has nothing to say.
func Neutral(cfg Config, name, reason string) models.LayerOutput {
	return models.NeutralOutput(cfg.now(), cfg.HorizonMinutes, Tag(name), reason)
}
