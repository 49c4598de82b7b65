package usecase

import (
	"testing"
	"time"

	"Hermes/internal/domain/models"
	"Hermes/internal/services/strategies"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDecision(t *testing.T, maxSize float64) *Decision {
	t.Helper()
	ss, err := strategies.Build(nil)
	require.NoError(t, err)
	return NewDecision(DecisionConfig{
		Symbol:                "BTC-USD",
		MaxPositionSize:       maxSize,
		DefaultHorizonMinutes: 60,
		Now:                   func() time.Time { return time.Unix(0, 0).UTC() },
	}, ss)
}

func out(dir models.Direction, conf float64) models.LayerOutput {
	return models.LayerOutput{HorizonMinutes: 60, Direction: dir, Confidence: conf}
}

func TestDecideEmptyIsNil(t *testing.T) {
	d := newTestDecision(t, 1)
	assert.Nil(t, d.Decide(nil))
	assert.Nil(t, d.Decide(map[string]models.LayerOutput{}))
}

func TestDecideZeroWeightIsNil(t *testing.T) {
	d := newTestDecision(t, 1)
	assert.Nil(t, d.Decide(map[string]models.LayerOutput{
		"A": out(models.Long, 0),
		"B": out(models.Short, 0),
	}))
	// negative confidence carries no weight
	assert.Nil(t, d.Decide(map[string]models.LayerOutput{
		"A": out(models.Long, -0.7),
	}))
}

func TestDecideWeightedVote(t *testing.T) {
	plan := newTestDecision(t, 1).Decide(map[string]models.LayerOutput{
		"A": out(models.Long, 0.8),
		"B": out(models.Short, 0.2),
	})
	require.NotNil(t, plan)

	assert.Equal(t, models.SideLong, plan.Side)
	assert.InDelta(t, 0.5, plan.Size, 1e-12)
	assert.InDelta(t, 0.5, plan.Metadata[models.MetaAggConfidence], 1e-12)
	assert.Equal(t, []string{"A", "B"}, plan.Metadata[models.MetaLayersUsed])
	assert.Equal(t, "BTC-USD", plan.Symbol)
	assert.Equal(t, 60, plan.TimeHorizonMinutes)
	assert.Zero(t, plan.EntryPrice)
	assert.Zero(t, plan.StopLoss)
	assert.Zero(t, plan.TakeProfit)
	assert.Equal(t, strategies.DefaultOrder, plan.Strategies())
}

func TestDecideTieGoesToTieBreakDirection(t *testing.T) {
	require.Equal(t, models.Short, TieBreakDirection)

	plan := newTestDecision(t, 1).Decide(map[string]models.LayerOutput{
		"A": out(models.Long, 0.5),
		"B": out(models.Short, 0.5),
	})
	require.NotNil(t, plan)
	assert.Equal(t, models.SideShort, plan.Side)

	// confident but flat layers also tie
	plan = newTestDecision(t, 1).Decide(map[string]models.LayerOutput{"A": out(models.Flat, 0.4)})
	require.NotNil(t, plan)
	assert.Equal(t, models.SideShort, plan.Side)
}

func TestDecideSizeScalesWithMaxPosition(t *testing.T) {
	cases := []struct {
		name    string
		maxSize float64
		layers  map[string]models.LayerOutput
		want    float64
	}{
		{"mean weight", 2, map[string]models.LayerOutput{"A": out(models.Long, 0.9), "B": out(models.Long, 0.9), "C": out(models.Flat, 0.9)}, 1.8},
		{"clamped at one", 3, map[string]models.LayerOutput{"A": out(models.Long, 4)}, 3},
		{"diluted by neutral layers", 1, map[string]models.LayerOutput{"A": out(models.Short, 1), "B": out(0, 0), "C": out(0, 0), "D": out(0, 0)}, 0.25},
		{"zero max", 0, map[string]models.LayerOutput{"A": out(models.Long, 1)}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan := newTestDecision(t, tc.maxSize).Decide(tc.layers)
			require.NotNil(t, plan)
			assert.InDelta(t, tc.want, plan.Size, 1e-12)
			assert.GreaterOrEqual(t, plan.Size, 0.0)
		})
	}
}

func TestDecideHorizon(t *testing.T) {
	d := newTestDecision(t, 1)

	plan := d.Decide(map[string]models.LayerOutput{
		"A": {HorizonMinutes: 60, Direction: models.Long, Confidence: 1},
		"B": {HorizonMinutes: 31, Direction: models.Long, Confidence: 1},
	})
	require.NotNil(t, plan)
	assert.Equal(t, 46, plan.TimeHorizonMinutes)

	plan = d.Decide(map[string]models.LayerOutput{"A": {Direction: models.Long, Confidence: 1}})
	require.NotNil(t, plan)
	assert.Equal(t, 60, plan.TimeHorizonMinutes)
}

func TestDecideWithoutStrategiesReturnsBasePlan(t *testing.T) {
	d := NewDecision(DecisionConfig{Symbol: "BTC-USD", MaxPositionSize: 1, DefaultHorizonMinutes: 60}, nil)
	plan := d.Decide(map[string]models.LayerOutput{"A": out(models.Long, 1)})
	require.NotNil(t, plan)
	assert.Empty(t, plan.Strategies())
	assert.False(t, plan.Timestamp.IsZero())
}
