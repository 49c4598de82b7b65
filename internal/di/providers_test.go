package di

import (
	"context"
	"testing"

	domsvc "Hermes/internal/domain/service"
	icache "Hermes/internal/service/cache"
	"Hermes/internal/service/marketdata"
	"Hermes/internal/usecase"
	"Hermes/pkg/config"
	pkgkafka "Hermes/pkg/kafka"
	applogger "Hermes/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discardWriter struct{}

func (discardWriter) WriteMessages(context.Context, ...kafka.Message) error { return nil }
func (discardWriter) Close() error                                          { return nil }

func TestInitializeAppWithoutInfrastructure(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Environment = "dev"
	cfg.Scheduler.Enabled = true

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)
	cleanup()

	uc, cleanup, err := InitializeCycleUseCase(cfg)
	require.NoError(t, err)
	require.NotNil(t, uc)
	cleanup()
}

func TestProvideMarketData(t *testing.T) {
	cfg := defaultConfig(t)
	l := applogger.Nop()

	md, err := ProvideMarketData(cfg, nil, icache.NewTTLCache(), l)
	require.NoError(t, err)
	assert.IsType(t, &marketdata.Cached{}, md)

	cfg.MarketData.CacheTTL = 0
	md, err = ProvideMarketData(cfg, nil, nil, l)
	require.NoError(t, err)
	assert.IsType(t, &marketdata.Simulated{}, md)

	cfg.MarketData.Source = "clickhouse"
	_, err = ProvideMarketData(cfg, nil, nil, l)
	assert.ErrorIs(t, err, domsvc.ErrConfiguration)
}

func TestProvideDiagnosticsSinks(t *testing.T) {
	cfg := defaultConfig(t)
	assert.Empty(t, ProvideDiagnosticsSinks(cfg, nil, nil))

	producer := pkgkafka.NewProducerWithWriter(discardWriter{}, "gzip")
	sinks := ProvideDiagnosticsSinks(cfg, nil, producer)
	require.Len(t, sinks, 1)
	assert.Equal(t, "kafka", sinks[0].Name())
}

func TestProvideCycleUseCaseRejectsBadEngineConfig(t *testing.T) {
	cfg := defaultConfig(t)
	l := applogger.Nop()
	sel := usecase.NewBackendSelector(marketdata.NewSimulated(), nil)

	cfg.Environment = "mars"
	_, err := ProvideCycleUseCase(cfg, sel, nil, nil, l)
	assert.ErrorIs(t, err, domsvc.ErrConfiguration)

	cfg.Environment = "prod"
	_, err = ProvideCycleUseCase(cfg, sel, nil, nil, l)
	assert.ErrorIs(t, err, domsvc.ErrNotSupported)

	cfg.Environment = "dev"
	cfg.Engine.Strategies = []string{"martingale"}
	_, err = ProvideCycleUseCase(cfg, sel, nil, nil, l)
	assert.ErrorIs(t, err, domsvc.ErrConfiguration)
}

func TestProvideRateLimiter(t *testing.T) {
	cfg := defaultConfig(t)
	assert.NotNil(t, ProvideRateLimiter(cfg))

	cfg.Server.RateLimit.PerSecond = 0
	assert.Nil(t, ProvideRateLimiter(cfg))
}

func TestProvideCycleSchedulerDisabled(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Scheduler.Enabled = false
	s, err := ProvideCycleScheduler(cfg, nil, nil, applogger.Nop())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}
