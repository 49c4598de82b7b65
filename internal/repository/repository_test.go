package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"Hermes/internal/domain/models"
	domrepo "Hermes/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic string
	key   string
	value interface{}
}

type memPublisher struct {
	out []published
	err error
}

func (p *memPublisher) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.out = append(p.out, published{topic: topic, key: string(key), value: value})
	return nil
}

func sampleTrade() (*models.ExecutedTrade, *models.TradeDiagnostics) {
	plan := &models.TradePlan{Symbol: "BTC-USD", Side: models.SideLong, Metadata: map[string]any{models.MetaCycleID: "cyc-1"}}
	tr := &models.ExecutedTrade{BrokerTradeID: "SIM-3", Plan: plan, FilledPrice: 100, FilledSize: 0.5}
	d := &models.TradeDiagnostics{Symbol: "BTC-USD", BrokerTradeID: "SIM-3", Side: models.SideLong, PnL: 2, Start: time.Unix(0, 0), End: time.Unix(60, 0)}
	return tr, d
}

func TestKafkaSinkPublishesTradeAndDiagnostics(t *testing.T) {
	pub := &memPublisher{}
	sink := NewKafkaDiagnosticsSink(pub, "trades", "diag")
	tr, d := sampleTrade()

	require.NoError(t, sink.Send(context.Background(), tr, d))
	require.Len(t, pub.out, 2)
	assert.Equal(t, published{topic: "trades", key: "SIM-3", value: tr}, pub.out[0])
	assert.Equal(t, published{topic: "diag", key: "BTC-USD", value: d}, pub.out[1])
	assert.Equal(t, "kafka", sink.Name())
}

func TestKafkaSinkPropagatesErrors(t *testing.T) {
	boom := errors.New("no brokers")
	tr, d := sampleTrade()
	err := NewKafkaDiagnosticsSink(&memPublisher{err: boom}, "trades", "diag").Send(context.Background(), tr, d)
	assert.ErrorIs(t, err, boom)
}

func TestDiagnosticsRow(t *testing.T) {
	tr, d := sampleTrade()
	row := diagnosticsRow(tr, d)
	require.Len(t, row, 11)
	assert.Equal(t, "cyc-1", row[0])
	assert.Equal(t, "SIM-3", row[1])
	assert.Equal(t, "long", row[3])
	assert.Equal(t, 0.5, row[4])
	assert.Equal(t, 100.0, row[5])
	assert.Equal(t, 2.0, row[6])
}

func TestCandleTable(t *testing.T) {
	table, err := candleTable("hermes", domrepo.Interval5m)
	require.NoError(t, err)
	assert.Equal(t, "hermes.btc_candles_5m", table)

	_, err = candleTable("hermes", domrepo.Interval("2h"))
	assert.Error(t, err)

	assert.Len(t, CandleSchema("hermes"), 5)
	assert.Contains(t, latestCandlesQuery(table), "ORDER BY bucket DESC")
}
