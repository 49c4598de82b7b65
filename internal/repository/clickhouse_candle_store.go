package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"Hermes/internal/domain/models"
	domrepo "Hermes/internal/domain/repository"
	applogger "Hermes/pkg/logger"
)

// CHCandleStore implements CandleStore backed by ClickHouse candle tables.
type CHCandleStore struct {
	db       *sql.DB
	database string
	l        *applogger.Logger
}

func NewCHCandleStore(db *sql.DB, database string, l *applogger.Logger) *CHCandleStore {
	if l == nil {
		l = applogger.Nop()
	}
	return &CHCandleStore{db: db, database: database, l: l}
}

func (s *CHCandleStore) GetLatestNCandles(ctx context.Context, symbol string, n int, iv domrepo.Interval) ([]models.Candle, error) {
	start := time.Now()
	table, err := candleTable(s.database, iv)
	if err != nil {
		return nil, err
	}
	l := s.l.With(
		applogger.String("table", table),
		applogger.String("symbol", symbol),
		applogger.Int("limit", n),
	)

	rows, err := s.db.QueryContext(ctx, latestCandlesQuery(table), symbol, n)
	if err != nil {
		l.Error("clickhouse latest_candles query error", applogger.Error(err))
		return nil, fmt.Errorf("get latest candles: %w", err)
	}
	defer rows.Close()

	out := make([]models.Candle, 0, n)
	for rows.Next() {
		var c models.Candle
		if err := rows.Scan(&c.Bucket, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			l.Error("clickhouse latest_candles scan error", applogger.Error(err))
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		l.Error("clickhouse latest_candles rows error", applogger.Error(err))
		return nil, fmt.Errorf("rows: %w", err)
	}
	// query is newest first
	slices.Reverse(out)

	l.Debug("clickhouse latest_candles ok",
		applogger.Int("rows", len(out)),
		applogger.Duration("duration", time.Since(start)),
	)
	return out, nil
}

func latestCandlesQuery(table string) string {
	return fmt.Sprintf(`
        SELECT bucket, open, high, low, close, volume
        FROM %s
        WHERE symbol = ?
        ORDER BY bucket DESC
        LIMIT ?
    `, table)
}

func candleTable(database string, iv domrepo.Interval) (string, error) {
	if !domrepo.IsValidInterval(iv) {
		return "", fmt.Errorf("unsupported interval: %s", iv)
	}
	return fmt.Sprintf("%s.btc_candles_%s", database, iv), nil
}

// CandleSchema returns DDL for the candle tables of every interval.
func CandleSchema(database string) []string {
	stmts := []string{fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database)}
	for _, iv := range []domrepo.Interval{domrepo.Interval1m, domrepo.Interval5m, domrepo.Interval15m, domrepo.Interval1h} {
		table, _ := candleTable(database, iv)
		stmts = append(stmts, fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            symbol LowCardinality(String),
            bucket DateTime64(3, 'UTC'),
            open Float64,
            high Float64,
            low Float64,
            close Float64,
            volume Float64
        ) ENGINE = ReplacingMergeTree
        ORDER BY (symbol, bucket)
    `, table))
	}
	return stmts
}

var _ domrepo.CandleStore = (*CHCandleStore)(nil)
