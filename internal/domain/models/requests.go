package models

// Requests for the cycle HTTP endpoints. Defined in domain for consistency and reuse.

type RunCycleRequest struct {
	HorizonMinutes int    `query:"horizon_minutes" json:"horizon_minutes" default:"60" validate:"gte=1,lte=1440"`
	Env            string `query:"env" json:"env" default:"dev" validate:"required"`
}

type RunCycleResponse struct {
	TradeExecuted bool           `json:"trade_executed"`
	ExecutedTrade *ExecutedTrade `json:"executed_trade,omitempty"`
	CycleID       string         `json:"cycle_id,omitempty"`
	Message       string         `json:"message,omitempty"`
}
