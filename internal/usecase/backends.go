package usecase

import (
	"fmt"
	"strings"

	drepo "Hermes/internal/domain/repository"
	domsvc "Hermes/internal/domain/service"
	"Hermes/internal/service/marketdata"
)

// Environment tags.
const (
	EnvDev  = "dev"
	EnvUAT  = "uat"
	EnvProd = "prod"
)

// Backends is the market data and execution pair an environment runs against.
type Backends struct {
	MarketData drepo.MarketDataClient
	Execution  domsvc.ExecutionAgent
}

// BackendSelector maps environment tags to backends.
// The NoOp agent is shared by every selection so simulated trade ids stay unique per process.
type BackendSelector struct {
	simMarket drepo.MarketDataClient
	noop      *NoOpExecution
}

func NewBackendSelector(simMarket drepo.MarketDataClient, noop *NoOpExecution) *BackendSelector {
	if noop == nil {
		noop = NewNoOpExecution()
	}
	return &BackendSelector{simMarket: simMarket, noop: noop}
}

// Select resolves env to backends. prod fails with ErrNotSupported until live backends exist;
// an unknown tag fails with ErrConfiguration. Neither falls back to simulation.
func (s *BackendSelector) Select(env string) (Backends, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case EnvDev, EnvUAT:
		// uat will host the engine inside a QuantConnect algorithm; until then it simulates.
		return Backends{MarketData: s.simMarket, Execution: s.noop}, nil
	case EnvProd:
		md, err := marketdata.NewIBKR()
		if err != nil {
			return Backends{}, fmt.Errorf("select %s backends: %w", EnvProd, err)
		}
		exec, err := NewIBKRExecution()
		if err != nil {
			return Backends{}, fmt.Errorf("select %s backends: %w", EnvProd, err)
		}
		return Backends{MarketData: md, Execution: exec}, nil
	default:
		return Backends{}, fmt.Errorf("unknown environment %q: %w", env, domsvc.ErrConfiguration)
	}
}
