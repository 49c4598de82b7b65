package di

import (
	"context"
	"fmt"
	"time"

	"Hermes/internal/domain/repository"
	domsvc "Hermes/internal/domain/service"
	"Hermes/internal/handler/api"
	internalrepo "Hermes/internal/repository"
	icache "Hermes/internal/service/cache"
	"Hermes/internal/service/marketdata"
	"Hermes/internal/service/ratelimit"
	"Hermes/internal/service/stream"
	"Hermes/internal/usecase"
	pkgch "Hermes/pkg/clickhouse"
	"Hermes/pkg/config"
	xhttp "Hermes/pkg/http"
	pkgkafka "Hermes/pkg/kafka"
	applogger "Hermes/pkg/logger"
	"Hermes/pkg/metrics"
	"Hermes/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment), applogger.String("symbol", cfg.Symbol)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRedisCache connects to Redis when enabled; nil otherwise.
func ProvideRedisCache(cfg *config.Config, l *applogger.Logger) (*icache.RedisCache, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	rc, err := icache.NewRedisCache(ctx, icache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	l.Info("redis cache connected", applogger.String("addr", cfg.Redis.Addr))
	cleanup := func() {
		if err := rc.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}
	return rc, cleanup, nil
}

// ProvideBytesCache prefers Redis and falls back to the in-process TTL cache.
func ProvideBytesCache(rc *icache.RedisCache) icache.BytesCache {
	if rc != nil {
		return rc
	}
	return icache.NewTTLCache()
}

// ProvideClickHouseClient connects to ClickHouse and prepares the schema when enabled; nil otherwise.
func ProvideClickHouseClient(cfg *config.Config, l *applogger.Logger) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := pkgch.NewClient(ctx,
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}

	schema := append(internalrepo.CandleSchema(cfg.ClickHouse.Database), internalrepo.DiagnosticsSchema(cfg.ClickHouse.Database)...)
	if err := client.InitSchema(ctx, schema); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	l.Info("clickhouse connected and schema ready", applogger.String("database", cfg.ClickHouse.Database))

	cleanup := func() {
		if err := client.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	return client, cleanup, nil
}

// ProvideKafkaProducer creates a Kafka producer when enabled; nil otherwise.
func ProvideKafkaProducer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	l.Info("kafka producer ready", applogger.Strings("brokers", cfg.Kafka.Brokers))

	cleanup := func() {
		if err := producer.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	return producer, cleanup, nil
}

// ProvideMarketData builds the simulated or recorded source, fronted by the candle cache.
func ProvideMarketData(cfg *config.Config, ch *pkgch.Client, cache icache.BytesCache, l *applogger.Logger) (repository.MarketDataClient, error) {
	var src repository.MarketDataClient
	switch cfg.MarketData.Source {
	case "clickhouse":
		if ch == nil {
			return nil, fmt.Errorf("market data source clickhouse needs a clickhouse client: %w", domsvc.ErrConfiguration)
		}
		src = marketdata.NewRecorded(internalrepo.NewCHCandleStore(ch.DB(), cfg.ClickHouse.Database, l))
	default:
		opts := []marketdata.SimOption{marketdata.WithAnchorPrice(cfg.MarketData.AnchorPrice)}
		if cfg.MarketData.Randomize {
			opts = append(opts, marketdata.WithRandomSeed())
		} else {
			opts = append(opts, marketdata.WithSeed(cfg.MarketData.Seed))
		}
		src = marketdata.NewSimulated(opts...)
	}

	if cfg.MarketData.CacheTTL <= 0 {
		return src, nil
	}
	return marketdata.NewCached(src, cache, cfg.MarketData.CacheTTL, l), nil
}

// ProvideBackendSelector shares one NoOp execution agent across every cycle.
func ProvideBackendSelector(md repository.MarketDataClient) *usecase.BackendSelector {
	return usecase.NewBackendSelector(md, usecase.NewNoOpExecution())
}

// ProvideDiagnosticsSinks collects the enabled diagnostics destinations.
func ProvideDiagnosticsSinks(cfg *config.Config, ch *pkgch.Client, producer *pkgkafka.Producer) []repository.DiagnosticsSink {
	var sinks []repository.DiagnosticsSink
	if ch != nil {
		sinks = append(sinks, internalrepo.NewCHDiagnosticsJournal(ch.DB(), cfg.ClickHouse.Database))
	}
	if producer != nil {
		sinks = append(sinks, internalrepo.NewKafkaDiagnosticsSink(producer, cfg.Kafka.TradesTopic, cfg.Kafka.DiagnosticsTopic))
	}
	return sinks
}

// ProvideFeedback creates the feedback agent.
func ProvideFeedback(cfg *config.Config, sinks []repository.DiagnosticsSink, m repository.Metrics, l *applogger.Logger) domsvc.FeedbackAgent {
	return usecase.NewFeedback(cfg.Symbol, sinks, m, l)
}

// ProvideCycleUseCase creates the cycle use case and checks the configured defaults build an orchestrator.
func ProvideCycleUseCase(
	cfg *config.Config,
	selector *usecase.BackendSelector,
	feedback domsvc.FeedbackAgent,
	m repository.Metrics,
	l *applogger.Logger,
) (*usecase.CycleUseCase, error) {
	uc := usecase.NewCycleUseCase(usecase.OrchestratorConfig{
		Env:             cfg.Environment,
		Symbol:          cfg.Symbol,
		HorizonMinutes:  cfg.Engine.HorizonMinutes,
		MaxPositionSize: cfg.Engine.MaxPositionSize,
		Strategies:      cfg.Engine.Strategies,
		LayerTimeout:    cfg.Engine.LayerTimeout,
	}, selector, feedback, m, l)

	if _, err := uc.Orchestrator(usecase.RunCycleParams{}); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return uc, nil
}

// ProvideStreamHub creates the websocket hub for scheduled cycle results.
func ProvideStreamHub(l *applogger.Logger) (*stream.Hub, func()) {
	hub := stream.NewHub(30*time.Second, l)
	return hub, hub.Close
}

// ProvideRateLimiter limits run_cycle per client address.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if cfg.Server.RateLimit.PerSecond <= 0 {
		return nil
	}
	return ratelimit.New(cfg.Server.RateLimit.PerSecond, cfg.Server.RateLimit.Burst)
}

// ProvideCycleHandler creates the HTTP handler.
func ProvideCycleHandler(l *applogger.Logger, uc *usecase.CycleUseCase, hub *stream.Hub, rl *ratelimit.Limiter) *api.CycleEchoHandler {
	return api.NewCycleEchoHandler(l, uc, hub, rl)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h *api.CycleEchoHandler, l *applogger.Logger) *xhttp.Server {
	metricsPath := cfg.Metrics.Path
	if !cfg.Metrics.Enabled {
		metricsPath = ""
	}
	return xhttp.NewServer(h, l,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)
}

// ProvideCycleScheduler creates the periodic cycle runner when enabled; nil otherwise.
func ProvideCycleScheduler(cfg *config.Config, uc *usecase.CycleUseCase, hub *stream.Hub, l *applogger.Logger) (*usecase.CycleScheduler, error) {
	if !cfg.Scheduler.Enabled {
		return nil, nil
	}
	orch, err := uc.Orchestrator(usecase.RunCycleParams{})
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	return usecase.NewCycleScheduler(orch, cfg.Scheduler.Interval, hub, l), nil
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server, sched *usecase.CycleScheduler) *server.App {
	return server.New(cfg, l, srv, sched)
}
