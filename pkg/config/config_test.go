package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestResolveEnvironment(t *testing.T) {
	t.Setenv(EnvVar, "")
	assert.Equal(t, "dev", ResolveEnvironment(""))
	assert.Equal(t, "uat", ResolveEnvironment(" UAT "))

	t.Setenv(EnvVar, "Prod")
	assert.Equal(t, "prod", ResolveEnvironment(""))
	assert.Equal(t, "dev", ResolveEnvironment("dev"))
}

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, "engine:\n  horizon_minutes: 15\n"))
	require.NoError(t, err)
	assert.Equal(t, 15, c.Engine.HorizonMinutes)
	assert.Equal(t, "BTC-USD", c.Symbol)
	assert.Equal(t, 5*time.Second, c.Engine.LayerTimeout)
	assert.Equal(t, 50000.0, c.MarketData.AnchorPrice)
	assert.Equal(t, "simulated", c.MarketData.Source)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv(EnvVar, "uat")
	t.Setenv("HERMES_SYMBOL", "BTC-USDT")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "uat", c.Environment)
	assert.Equal(t, "BTC-USDT", c.Symbol)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
}

func TestValidate(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	c.Kafka.Enabled = true
	assert.Error(t, c.Validate())

	c, err = Default()
	require.NoError(t, err)
	c.MarketData.Source = "clickhouse"
	assert.Error(t, c.Validate())

	c, err = Default()
	require.NoError(t, err)
	c.Engine.HorizonMinutes = 0
	assert.Error(t, c.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultResolvesEnvironment(t *testing.T) {
	t.Setenv(EnvVar, " UAT")
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "uat", c.Environment)
	assert.Equal(t, 8000, c.Server.Port)
	assert.Equal(t, []string(nil), c.Engine.Strategies)
}
