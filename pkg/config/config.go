package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvVar is consulted when no environment tag is configured explicitly.
const EnvVar = "HERMES_ENV"

type Config struct {
	Environment string `yaml:"environment"`
	Symbol      string `yaml:"symbol" default:"BTC-USD" validate:"required"`
	Log         struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port" default:"8000" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		RateLimit       struct {
			PerSecond float64 `yaml:"per_second" default:"2"`
			Burst     int     `yaml:"burst" default:"5"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Engine struct {
		HorizonMinutes  int           `yaml:"horizon_minutes" default:"60" validate:"gte=1,lte=1440"`
		MaxPositionSize float64       `yaml:"max_position_size" default:"1" validate:"gte=0"`
		Strategies      []string      `yaml:"strategies"`
		LayerTimeout    time.Duration `yaml:"layer_timeout" default:"5s"`
	} `yaml:"engine"`
	MarketData struct {
		Source      string        `yaml:"source" default:"simulated" validate:"oneof=simulated clickhouse"`
		AnchorPrice float64       `yaml:"anchor_price" default:"50000" validate:"gt=0"`
		Seed        int64         `yaml:"seed" default:"42"`
		Randomize   bool          `yaml:"randomize"`
		CacheTTL    time.Duration `yaml:"cache_ttl" default:"30s"`
	} `yaml:"market_data"`
	Scheduler struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval" default:"1m"`
	} `yaml:"scheduler"`
	Kafka struct {
		Enabled          bool     `yaml:"enabled"`
		Brokers          []string `yaml:"brokers"`
		DiagnosticsTopic string   `yaml:"diagnostics_topic" default:"hermes.btc.diagnostics"`
		TradesTopic      string   `yaml:"trades_topic" default:"hermes.btc.trades"`
		RequiredAcks     int      `yaml:"required_acks" default:"-1"`
		Compression      string   `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		Producer         struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			Linger       time.Duration `yaml:"linger" default:"200ms"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"hermes"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr" default:"localhost:6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix" default:"hermes"`
	} `yaml:"redis"`
}

var validate = validator.New()

// Default returns a configuration populated from struct defaults only.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	c.Environment = ResolveEnvironment("")
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads .env (if present), the YAML file, and then applies environment overrides.
// The environment tag is resolved here once: explicit value, else HERMES_ENV, else "dev".
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("HERMES_SYMBOL"); v != "" {
		c.Symbol = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	c.Environment = ResolveEnvironment(c.Environment)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ResolveEnvironment picks the environment tag: explicit, else HERMES_ENV, else "dev".
func ResolveEnvironment(explicit string) string {
	env := explicit
	if env == "" {
		env = os.Getenv(EnvVar)
	}
	if env == "" {
		env = "dev"
	}
	return strings.ToLower(strings.TrimSpace(env))
}

// Validate checks if the configuration is valid.
// The environment tag itself is checked by the engine when backends are selected.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.MarketData.Source == "clickhouse" && !c.ClickHouse.Enabled {
		return fmt.Errorf("market_data.source=clickhouse requires clickhouse.enabled")
	}
	if c.Scheduler.Enabled && c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be positive")
	}
	return nil
}
