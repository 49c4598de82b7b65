package repository

import (
	"context"
	"fmt"

	"Hermes/internal/domain/models"
	domrepo "Hermes/internal/domain/repository"
)

// Publisher is the producer surface the Kafka sink needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

// KafkaDiagnosticsSink publishes executed trades and their diagnostics as JSON.
// Trades are keyed by broker trade id, diagnostics by symbol.
type KafkaDiagnosticsSink struct {
	pub              Publisher
	tradesTopic      string
	diagnosticsTopic string
}

func NewKafkaDiagnosticsSink(pub Publisher, tradesTopic, diagnosticsTopic string) *KafkaDiagnosticsSink {
	return &KafkaDiagnosticsSink{pub: pub, tradesTopic: tradesTopic, diagnosticsTopic: diagnosticsTopic}
}

func (s *KafkaDiagnosticsSink) Name() string { return "kafka" }

func (s *KafkaDiagnosticsSink) Send(ctx context.Context, trade *models.ExecutedTrade, d *models.TradeDiagnostics) error {
	if trade != nil && s.tradesTopic != "" {
		if err := s.pub.Publish(ctx, s.tradesTopic, []byte(trade.BrokerTradeID), trade); err != nil {
			return fmt.Errorf("publish trade: %w", err)
		}
	}
	if d != nil && s.diagnosticsTopic != "" {
		if err := s.pub.Publish(ctx, s.diagnosticsTopic, []byte(d.Symbol), d); err != nil {
			return fmt.Errorf("publish diagnostics: %w", err)
		}
	}
	return nil
}

var _ domrepo.DiagnosticsSink = (*KafkaDiagnosticsSink)(nil)
