package strategies

import (
	"fmt"

	"Hermes/internal/domain/models"
	domsvc "Hermes/internal/domain/service"
)

const (
	NameTrendFollowing = "trend_following"
	NameMeanReversion  = "mean_reversion"
	NameBreakout       = "breakout"
)

// DefaultOrder is the order strategies are applied in when none is configured.
var DefaultOrder = []string{NameTrendFollowing, NameMeanReversion, NameBreakout}

// annotating is eligible for every cycle and only records itself on the plan.
// Directional gating keyed on specific layers hooks in here.
type annotating struct {
	name string
}

func (s annotating) Name() string { return s.name }

func (s annotating) ShouldTrade(map[string]models.LayerOutput) bool { return true }

func (s annotating) BuildTradePlan(plan *models.TradePlan, _ map[string]models.LayerOutput) *models.TradePlan {
	plan.AppendStrategy(s.name)
	return plan
}

// TrendFollowing rides the aggregate direction.
func TrendFollowing() domsvc.Strategy { return annotating{name: NameTrendFollowing} }

// MeanReversion fades stretched moves.
func MeanReversion() domsvc.Strategy { return annotating{name: NameMeanReversion} }

// Breakout will gate on live pattern confidence.
func Breakout() domsvc.Strategy { return annotating{name: NameBreakout} }

var registry = map[string]func() domsvc.Strategy{
	NameTrendFollowing: TrendFollowing,
	NameMeanReversion:  MeanReversion,
	NameBreakout:       Breakout,
}

// Build returns strategies in the given order, or DefaultOrder when names is empty.
// Unknown or repeated names are configuration errors.
func Build(names []string) ([]domsvc.Strategy, error) {
	if len(names) == 0 {
		names = DefaultOrder
	}
	seen := make(map[string]bool, len(names))
	out := make([]domsvc.Strategy, 0, len(names))
	for _, n := range names {
		ctor, ok := registry[n]
		if !ok {
			return nil, fmt.Errorf("unknown strategy %q: %w", n, domsvc.ErrConfiguration)
		}
		if seen[n] {
			return nil, fmt.Errorf("strategy %q listed twice: %w", n, domsvc.ErrConfiguration)
		}
		seen[n] = true
		out = append(out, ctor())
	}
	return out, nil
}
