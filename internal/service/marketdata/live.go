package marketdata

import (
	"fmt"

	drepo "Hermes/internal/domain/repository"
	domsvc "Hermes/internal/domain/service"
)

// Live exchange and broker feeds are declared but not connected yet.
// Their constructors fail so a misconfigured environment never half-starts.

// NewBinance will stream BTCUSDT klines over WebSocket with REST backfill.
func NewBinance() (drepo.MarketDataClient, error) {
	return nil, fmt.Errorf("binance market data: %w", domsvc.ErrNotSupported)
}

// NewQuantConnect will serve data handed in by a Lean algorithm.
func NewQuantConnect() (drepo.MarketDataClient, error) {
	return nil, fmt.Errorf("quantconnect market data: %w", domsvc.ErrNotSupported)
}

// NewIBKR will request history and stream quotes from TWS / IB Gateway.
func NewIBKR() (drepo.MarketDataClient, error) {
	return nil, fmt.Errorf("ibkr market data: %w", domsvc.ErrNotSupported)
}
