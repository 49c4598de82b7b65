package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"
	domsvc "Hermes/internal/domain/service"
	"Hermes/internal/services/layers"
	"Hermes/internal/services/strategies"
	applogger "Hermes/pkg/logger"

	"github.com/google/uuid"
)

// OrchestratorConfig fixes everything one orchestrator needs at construction.
type OrchestratorConfig struct {
	Env             string
	Symbol          string
	HorizonMinutes  int
	MaxPositionSize float64
	Strategies      []string
	LayerTimeout    time.Duration
}

// Orchestrator drives decision cycles: layers, decision, execution, feedback.
// Backends are chosen once in NewOrchestrator and never change afterwards.
type Orchestrator struct {
	cfg      OrchestratorConfig
	runner   *LayerRunner
	decision domsvc.DecisionLayer
	exec     domsvc.ExecutionAgent
	feedback domsvc.FeedbackAgent
	metrics  drepo.Metrics
	l        *applogger.Logger
	now      func() time.Time
}

func NewOrchestrator(
	cfg OrchestratorConfig,
	selector *BackendSelector,
	feedback domsvc.FeedbackAgent,
	metrics drepo.Metrics,
	l *applogger.Logger,
) (*Orchestrator, error) {
	if l == nil {
		l = applogger.Nop()
	}
	metrics = metricsOrNop(metrics)
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.HorizonMinutes <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d: %w", cfg.HorizonMinutes, domsvc.ErrConfiguration)
	}

	backends, err := selector.Select(cfg.Env)
	if err != nil {
		metrics.RecordError("select_backends")
		return nil, err
	}
	strats, err := strategies.Build(cfg.Strategies)
	if err != nil {
		return nil, err
	}

	layerCfg := layers.Config{
		Symbol:         cfg.Symbol,
		HorizonMinutes: cfg.HorizonMinutes,
		MarketData:     backends.MarketData,
	}
	if feedback == nil {
		feedback = NewFeedback(cfg.Symbol, nil, metrics, l)
	}

	return &Orchestrator{
		cfg:    cfg,
		runner: NewLayerRunner(layers.All(layerCfg), layerCfg, cfg.LayerTimeout, metrics, l),
		decision: NewDecision(DecisionConfig{
			Symbol:                cfg.Symbol,
			MaxPositionSize:       cfg.MaxPositionSize,
			DefaultHorizonMinutes: cfg.HorizonMinutes,
		}, strats),
		exec:     backends.Execution,
		feedback: feedback,
		metrics:  metrics,
		l:        l.With(applogger.String("env", cfg.Env), applogger.String("symbol", cfg.Symbol)),
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// RunCycle runs one decision cycle. The result's Trade is nil when no plan was produced.
func (o *Orchestrator) RunCycle(ctx context.Context) (*models.CycleResult, error) {
	res := &models.CycleResult{
		CycleID:   uuid.NewString(),
		Env:       o.cfg.Env,
		Symbol:    o.cfg.Symbol,
		StartedAt: o.now(),
	}
	l := o.l.With(applogger.String("cycle_id", res.CycleID))
	defer func() {
		res.Duration = time.Since(res.StartedAt)
		o.metrics.RecordLatency("cycle", res.Duration.Seconds())
	}()

	outputs, err := o.runner.Run(ctx)
	if err != nil {
		o.fail("layers")
		return nil, fmt.Errorf("run layers: %w", err)
	}
	res.Layers = outputs

	plan := o.decision.Decide(outputs)
	if plan == nil {
		o.metrics.RecordDecision("no_trade")
		o.metrics.RecordCycle(o.cfg.Env, "no_trade")
		l.Info("No trade plan generated for this cycle.")
		return res, nil
	}
	o.metrics.RecordDecision(string(plan.Side))
	plan.Metadata[models.MetaCycleID] = res.CycleID

	trade, err := o.exec.Execute(ctx, plan)
	if err != nil {
		o.fail("execute")
		return nil, fmt.Errorf("execute plan: %w", err)
	}
	res.Trade = trade
	o.metrics.RecordTrade(plan.Symbol, plan.Side, trade.FilledSize)
	l.Info("trade executed",
		applogger.String("broker_trade_id", trade.BrokerTradeID),
		applogger.String("side", string(plan.Side)),
		applogger.Float64("size", trade.FilledSize),
		applogger.Strings("strategies", plan.Strategies()),
	)

	diag, err := o.feedback.UpdateFromTrade(ctx, trade, PlaceholderPricePath(plan))
	if err != nil {
		o.fail("feedback")
		return nil, fmt.Errorf("feedback: %w", err)
	}
	res.Diagnostics = diag

	o.metrics.RecordCycle(o.cfg.Env, "traded")
	return res, nil
}

func (o *Orchestrator) fail(stage string) {
	o.metrics.RecordError(stage)
	o.metrics.RecordCycle(o.cfg.Env, "error")
}

// PlaceholderPricePath is a flat path at the entry price spanning the plan's horizon.
// It stands in for realized prices until a live feed backs the feedback loop.
func PlaceholderPricePath(plan *models.TradePlan) models.PricePath {
	end := plan.Timestamp.Add(time.Duration(plan.TimeHorizonMinutes) * time.Minute)
	return models.PricePath{
		{Time: plan.Timestamp, Price: plan.EntryPrice},
		{Time: end, Price: plan.EntryPrice},
	}
}
