package models

import "time"

// CycleResult is what one orchestrator cycle produced. Trade is nil when no plan was made.
type CycleResult struct {
	CycleID     string                 `json:"cycle_id"`
	Env         string                 `json:"env"`
	Symbol      string                 `json:"symbol"`
	StartedAt   time.Time              `json:"started_at"`
	Duration    time.Duration          `json:"duration_ns"`
	Layers      map[string]LayerOutput `json:"layers,omitempty"`
	Trade       *ExecutedTrade         `json:"trade,omitempty"`
	Diagnostics *TradeDiagnostics      `json:"diagnostics,omitempty"`
}

// TradeExecuted reports whether the cycle ended with an executed trade.
func (r *CycleResult) TradeExecuted() bool { return r != nil && r.Trade != nil }
