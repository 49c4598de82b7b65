package usecase

import (
	"context"
	"fmt"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"
	domsvc "Hermes/internal/domain/service"
	applogger "Hermes/pkg/logger"
)

// Feedback computes PnL and excursion diagnostics for executed trades and fans them out to sinks.
type Feedback struct {
	symbol  string
	sinks   []drepo.DiagnosticsSink
	metrics drepo.Metrics
	l       *applogger.Logger
}

func NewFeedback(symbol string, sinks []drepo.DiagnosticsSink, metrics drepo.Metrics, l *applogger.Logger) *Feedback {
	if l == nil {
		l = applogger.Nop()
	}
	return &Feedback{symbol: symbol, sinks: sinks, metrics: metricsOrNop(metrics), l: l}
}

// Diagnose is the pure part of UpdateFromTrade. It returns nil for an empty path.
func Diagnose(symbol string, trade *models.ExecutedTrade, path models.PricePath) *models.TradeDiagnostics {
	if len(path) == 0 || trade == nil || trade.Plan == nil {
		return nil
	}
	entry := trade.FilledPrice
	exit := path[len(path)-1].Price
	lo, hi := path[0].Price, path[0].Price
	for _, p := range path[1:] {
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}

	d := &models.TradeDiagnostics{
		Symbol:        symbol,
		BrokerTradeID: trade.BrokerTradeID,
		Side:          trade.Plan.Side,
		Start:         path[0].Time,
		End:           path[len(path)-1].Time,
	}
	if trade.Plan.Side == models.SideLong {
		d.PnL = exit - entry
		d.MAE = lo - entry
		d.MFE = hi - entry
	} else {
		d.PnL = entry - exit
		d.MAE = entry - hi
		d.MFE = entry - lo
	}
	return d
}

func (f *Feedback) UpdateFromTrade(ctx context.Context, trade *models.ExecutedTrade, path models.PricePath) (*models.TradeDiagnostics, error) {
	if len(path) == 0 {
		return nil, nil
	}
	if trade == nil || trade.Plan == nil {
		return nil, fmt.Errorf("feedback: trade without plan")
	}
	d := Diagnose(f.symbol, trade, path)

	f.l.Info("trade diagnostics",
		applogger.String("symbol", d.Symbol),
		applogger.String("broker_trade_id", d.BrokerTradeID),
		applogger.String("side", string(d.Side)),
		applogger.Float64("pnl", d.PnL),
		applogger.Float64("mae", d.MAE),
		applogger.Float64("mfe", d.MFE),
		applogger.Time("start", d.Start),
		applogger.Time("end", d.End),
	)
	f.metrics.RecordFeedback(d.Symbol, d.PnL)

	for _, s := range f.sinks {
		if err := s.Send(ctx, trade, d); err != nil {
			f.metrics.RecordError("sink_" + s.Name())
			f.l.Warn("diagnostics sink failed", applogger.String("sink", s.Name()), applogger.Error(err))
		}
	}
	return d, nil
}

var _ domsvc.FeedbackAgent = (*Feedback)(nil)
