//go:build wireinject
// +build wireinject

package di

import (
	"Hermes/internal/usecase"
	"Hermes/pkg/config"
	"Hermes/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisCache,
		ProvideBytesCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Backends and sinks
		ProvideMarketData,
		ProvideBackendSelector,
		ProvideDiagnosticsSinks,
		ProvideFeedback,

		// Use cases
		ProvideCycleUseCase,
		ProvideCycleScheduler,

		// HTTP
		ProvideStreamHub,
		ProvideRateLimiter,
		ProvideCycleHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeCycleUseCase wires the engine without the HTTP surface, for one-shot runs.
func InitializeCycleUseCase(cfg *config.Config) (*usecase.CycleUseCase, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideRedisCache,
		ProvideBytesCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideMarketData,
		ProvideBackendSelector,
		ProvideDiagnosticsSinks,
		ProvideFeedback,
		ProvideCycleUseCase,
	)
	return nil, nil, nil
}
