package marketdata

import (
	"context"
	"fmt"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"
)

// Recorded serves candles previously captured into a CandleStore.
type Recorded struct {
	store drepo.CandleStore
}

func NewRecorded(store drepo.CandleStore) *Recorded {
	return &Recorded{store: store}
}

func (r *Recorded) GetRecentOHLCV(ctx context.Context, symbol string, interval drepo.Interval, limit int) ([]models.Candle, error) {
	cs, err := r.store.GetLatestNCandles(ctx, symbol, limit, interval)
	if err != nil {
		return nil, fmt.Errorf("recorded ohlcv: %w", err)
	}
	return cs, nil
}

func (r *Recorded) GetLatestPrice(ctx context.Context, symbol string) (float64, error) {
	cs, err := r.store.GetLatestNCandles(ctx, symbol, 1, drepo.Interval1m)
	if err != nil {
		return 0, fmt.Errorf("recorded latest price: %w", err)
	}
	if len(cs) == 0 {
		return 0, fmt.Errorf("recorded latest price: no candles for %s", symbol)
	}
	return cs[len(cs)-1].Close, nil
}

var _ drepo.MarketDataClient = (*Recorded)(nil)
