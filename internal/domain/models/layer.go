package models

import "time"

// Direction is a layer's or plan's directional opinion.
type Direction int

const (
	Short Direction = -1
	Flat  Direction = 0
	Long  Direction = 1
)

// DirectionOf returns the sign of v as a Direction.
func DirectionOf(v float64) Direction {
	switch {
	case v > 0:
		return Long
	case v < 0:
		return Short
	default:
		return Flat
	}
}

// Extras carries free-form diagnostics attached by layers and agents.
type Extras map[string]any

// LayerOutput is the signal a layer produces for one cycle.
type LayerOutput struct {
	Timestamp      time.Time `json:"timestamp"`
	HorizonMinutes int       `json:"horizon_minutes"`
	Direction      Direction `json:"direction"`
	Confidence     float64   `json:"confidence"` // [0, 1]
	Risk           float64   `json:"risk"`       // layer-specific volatility proxy
	Extras         Extras    `json:"extras,omitempty"`
}

// NeutralOutput builds a flat, zero-confidence output tagged with a reason.
func NeutralOutput(now time.Time, horizon int, tag, reason string) LayerOutput {
	extras := Extras{"layer": tag}
	if reason != "" {
		extras["reason"] = reason
	}
	return LayerOutput{
		Timestamp:      now,
		HorizonMinutes: horizon,
		Direction:      Flat,
		Extras:         extras,
	}
}
