package repository

import (
	"context"

	"Hermes/internal/domain/models"
)

// MarketDataClient supplies candles and prices for a symbol.
type MarketDataClient interface {
	// GetRecentOHLCV returns up to limit candles ordered oldest to newest.
	GetRecentOHLCV(ctx context.Context, symbol string, interval Interval, limit int) ([]models.Candle, error)
	GetLatestPrice(ctx context.Context, symbol string) (float64, error)
}

// CandleStore provides read-only access to recorded candles.
type CandleStore interface {
	GetLatestNCandles(ctx context.Context, symbol string, n int, iv Interval) ([]models.Candle, error)
}

// DiagnosticsSink receives trade diagnostics and executed trades for persistence or fan-out.
type DiagnosticsSink interface {
	Name() string
	Send(ctx context.Context, trade *models.ExecutedTrade, d *models.TradeDiagnostics) error
}

type Metrics interface {
	RecordCycle(env, outcome string)
	RecordLayer(layer string, seconds float64, timedOut bool)
	RecordDecision(outcome string)
	RecordTrade(symbol string, side models.Side, size float64)
	RecordFeedback(symbol string, pnl float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
