package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"Hermes/internal/domain/models"
	domsvc "Hermes/internal/domain/service"
)

// NoOpExecution fills every plan in full at its entry price without touching a broker.
// Trade ids come from an atomic counter so concurrent cycles never collide.
type NoOpExecution struct {
	seq atomic.Uint64
	now func() time.Time
}

func NewNoOpExecution() *NoOpExecution {
	return &NoOpExecution{now: func() time.Time { return time.Now().UTC() }}
}

func (e *NoOpExecution) Execute(ctx context.Context, plan *models.TradePlan) (*models.ExecutedTrade, error) {
	if plan == nil {
		return nil, fmt.Errorf("execute: nil plan")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := e.seq.Add(1)
	return &models.ExecutedTrade{
		BrokerTradeID: fmt.Sprintf("SIM-%d", id),
		Plan:          plan,
		FilledPrice:   plan.EntryPrice,
		FilledSize:    plan.Size,
		Status:        models.StatusFilled,
		Fees:          0,
		Extras: models.Extras{
			"simulated":   true,
			"executed_at": e.now().Format(time.RFC3339Nano),
		},
	}, nil
}

// NewIBKRExecution is the live broker backend. It is not wired yet.
func NewIBKRExecution() (domsvc.ExecutionAgent, error) {
	return nil, fmt.Errorf("ibkr execution: %w", domsvc.ErrNotImplemented)
}

var _ domsvc.ExecutionAgent = (*NoOpExecution)(nil)
