package usecase

import (
	"context"
	"time"

	"Hermes/internal/domain/models"
	applogger "Hermes/pkg/logger"
)

// CycleSink receives every scheduled cycle result.
type CycleSink interface {
	Broadcast(res *models.CycleResult)
}

// CycleScheduler runs cycles on a fixed interval. Cycles never overlap;
// a slow cycle delays the next tick. Failures are logged and the loop continues.
type CycleScheduler struct {
	orch     *Orchestrator
	interval time.Duration
	sink     CycleSink
	l        *applogger.Logger
}

func NewCycleScheduler(orch *Orchestrator, interval time.Duration, sink CycleSink, l *applogger.Logger) *CycleScheduler {
	if l == nil {
		l = applogger.Nop()
	}
	return &CycleScheduler{orch: orch, interval: interval, sink: sink, l: l}
}

// Start launches the loop in the background until ctx is cancelled.
func (s *CycleScheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *CycleScheduler) loop(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	s.l.Info("cycle scheduler started", applogger.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.l.Info("cycle scheduler stopped")
			return
		case <-t.C:
			s.tick(ctx)
		}
	}
}

func (s *CycleScheduler) tick(ctx context.Context) {
	res, err := s.orch.RunCycle(ctx)
	if err != nil {
		s.l.Error("scheduled cycle failed", applogger.Error(err))
		return
	}
	if s.sink != nil {
		s.sink.Broadcast(res)
	}
}
