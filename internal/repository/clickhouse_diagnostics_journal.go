package repository

import (
	"context"
	"database/sql"
	"fmt"

	"Hermes/internal/domain/models"
	domrepo "Hermes/internal/domain/repository"
)

// CHDiagnosticsJournal appends trade diagnostics to a ClickHouse table.
type CHDiagnosticsJournal struct {
	db    *sql.DB
	table string
}

func NewCHDiagnosticsJournal(db *sql.DB, database string) *CHDiagnosticsJournal {
	return &CHDiagnosticsJournal{db: db, table: database + ".trade_diagnostics"}
}

func (j *CHDiagnosticsJournal) Name() string { return "clickhouse" }

func (j *CHDiagnosticsJournal) Send(ctx context.Context, trade *models.ExecutedTrade, d *models.TradeDiagnostics) error {
	if d == nil {
		return nil
	}
	args := diagnosticsRow(trade, d)
	q := fmt.Sprintf("INSERT INTO %s (cycle_id, broker_trade_id, symbol, side, size, entry_price, pnl, mae, mfe, start_at, end_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", j.table)
	if _, err := j.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert diagnostics: %w", err)
	}
	return nil
}

func diagnosticsRow(trade *models.ExecutedTrade, d *models.TradeDiagnostics) []any {
	var cycleID string
	var size, entry float64
	if trade != nil {
		size, entry = trade.FilledSize, trade.FilledPrice
		if trade.Plan != nil {
			cycleID, _ = trade.Plan.Metadata[models.MetaCycleID].(string)
		}
	}
	return []any{
		cycleID,
		d.BrokerTradeID,
		d.Symbol,
		string(d.Side),
		size,
		entry,
		d.PnL,
		d.MAE,
		d.MFE,
		d.Start,
		d.End,
	}
}

// DiagnosticsSchema returns DDL for the diagnostics journal.
func DiagnosticsSchema(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s.trade_diagnostics (
            cycle_id String,
            broker_trade_id String,
            symbol LowCardinality(String),
            side LowCardinality(String),
            size Float64,
            entry_price Float64,
            pnl Float64,
            mae Float64,
            mfe Float64,
            start_at DateTime64(3, 'UTC'),
            end_at DateTime64(3, 'UTC')
        ) ENGINE = MergeTree
        ORDER BY (symbol, start_at)
    `, database),
	}
}

var _ domrepo.DiagnosticsSink = (*CHDiagnosticsJournal)(nil)
