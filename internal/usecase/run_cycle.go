package usecase

import (
	"context"
	"time"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"
	domsvc "Hermes/internal/domain/service"
	applogger "Hermes/pkg/logger"
)

// CycleUseCase builds an orchestrator per request parameters and runs one cycle on it.
type CycleUseCase struct {
	base     OrchestratorConfig
	selector *BackendSelector
	feedback domsvc.FeedbackAgent
	metrics  drepo.Metrics
	l        *applogger.Logger
	timeout  time.Duration
}

func NewCycleUseCase(base OrchestratorConfig, selector *BackendSelector, feedback domsvc.FeedbackAgent, metrics drepo.Metrics, l *applogger.Logger) *CycleUseCase {
	if l == nil {
		l = applogger.Nop()
	}
	return &CycleUseCase{
		base:     base,
		selector: selector,
		feedback: feedback,
		metrics:  metricsOrNop(metrics),
		l:        l,
		timeout:  30 * time.Second,
	}
}

type RunCycleParams struct {
	Env            string
	HorizonMinutes int
}

// Orchestrator builds an orchestrator for p, falling back to the configured env and horizon.
func (uc *CycleUseCase) Orchestrator(p RunCycleParams) (*Orchestrator, error) {
	cfg := uc.base
	if p.Env != "" {
		cfg.Env = p.Env
	}
	if p.HorizonMinutes > 0 {
		cfg.HorizonMinutes = p.HorizonMinutes
	}
	return NewOrchestrator(cfg, uc.selector, uc.feedback, uc.metrics, uc.l)
}

// RunCycle fails before any layer runs if the environment cannot be served.
func (uc *CycleUseCase) RunCycle(ctx context.Context, p RunCycleParams) (*models.CycleResult, error) {
	o, err := uc.Orchestrator(p)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return o.RunCycle(ctx)
}
