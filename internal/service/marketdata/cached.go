package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"
	icache "Hermes/internal/service/cache"
	applogger "Hermes/pkg/logger"
)

// Cached memoizes OHLCV responses of another client. Latest prices always go to the source.
type Cached struct {
	src   drepo.MarketDataClient
	cache icache.BytesCache
	ttl   time.Duration
	l     *applogger.Logger
}

func NewCached(src drepo.MarketDataClient, cache icache.BytesCache, ttl time.Duration, l *applogger.Logger) *Cached {
	if l == nil {
		l = applogger.Nop()
	}
	return &Cached{src: src, cache: cache, ttl: ttl, l: l}
}

func cacheKey(symbol string, iv drepo.Interval, limit int) string {
	return fmt.Sprintf("ohlcv:%s:%s:%d", symbol, iv, limit)
}

func (c *Cached) GetRecentOHLCV(ctx context.Context, symbol string, interval drepo.Interval, limit int) ([]models.Candle, error) {
	key := cacheKey(symbol, interval, limit)
	if b, ok, err := c.cache.GetBytes(ctx, key); err != nil {
		// cache errors are logged and the source is queried anyway
		c.l.Warn("ohlcv cache read failed", applogger.String("key", key), applogger.Error(err))
	} else if ok {
		var cs []models.Candle
		if err := json.Unmarshal(b, &cs); err == nil {
			return cs, nil
		}
	}

	cs, err := c.src.GetRecentOHLCV(ctx, symbol, interval, limit)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(cs); err == nil {
		if err := c.cache.SetBytes(ctx, key, b, c.ttl); err != nil {
			c.l.Warn("ohlcv cache write failed", applogger.String("key", key), applogger.Error(err))
		}
	}
	return cs, nil
}

func (c *Cached) GetLatestPrice(ctx context.Context, symbol string) (float64, error) {
	return c.src.GetLatestPrice(ctx, symbol)
}

var _ drepo.MarketDataClient = (*Cached)(nil)
