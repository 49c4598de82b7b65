package models

import "time"

// Side of a planned or executed trade.
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// TradeStatus reported by an execution backend.
type TradeStatus string

const (
	StatusFilled          TradeStatus = "filled"
	StatusPartiallyFilled TradeStatus = "partially_filled"
	StatusRejected        TradeStatus = "rejected"
	StatusCancelled       TradeStatus = "cancelled"
)

// Metadata keys written on a TradePlan.
const (
	MetaAggConfidence = "agg_confidence"
	MetaLayersUsed    = "layers_used"
	MetaStrategies    = "strategies"
	MetaCycleID       = "cycle_id"
)

// TradePlan is an intended, not yet executed trade.
type TradePlan struct {
	Timestamp          time.Time      `json:"timestamp"`
	Symbol             string         `json:"symbol"`
	Side               Side           `json:"side"`
	Size               float64        `json:"size"`
	EntryPrice         float64        `json:"entry_price"`
	StopLoss           float64        `json:"stop_loss"`
	TakeProfit         float64        `json:"take_profit"`
	TimeHorizonMinutes int            `json:"time_horizon_minutes"`
	Metadata           map[string]any `json:"metadata"`
}

// AppendStrategy records a strategy name in metadata, preserving order.
func (p *TradePlan) AppendStrategy(name string) {
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}
	applied, _ := p.Metadata[MetaStrategies].([]string)
	p.Metadata[MetaStrategies] = append(applied, name)
}

// Strategies returns the strategy names applied so far.
func (p *TradePlan) Strategies() []string {
	applied, _ := p.Metadata[MetaStrategies].([]string)
	return applied
}

// ExecutedTrade is the outcome of submitting a TradePlan. It is not mutated after creation.
type ExecutedTrade struct {
	BrokerTradeID string      `json:"broker_trade_id"`
	Plan          *TradePlan  `json:"plan"`
	FilledPrice   float64     `json:"filled_price"`
	FilledSize    float64     `json:"filled_size"`
	Status        TradeStatus `json:"status"`
	Fees          float64     `json:"fees"`
	Extras        Extras      `json:"extras,omitempty"`
}

// TradeDiagnostics summarizes how an executed trade performed along a price path.
type TradeDiagnostics struct {
	Symbol        string    `json:"symbol"`
	BrokerTradeID string    `json:"broker_trade_id"`
	Side          Side      `json:"side"`
	PnL           float64   `json:"pnl"`
	MAE           float64   `json:"mae"`
	MFE           float64   `json:"mfe"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}
