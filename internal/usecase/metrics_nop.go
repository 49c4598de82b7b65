package usecase

import (
	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"
)

type nopMetrics struct{}

func (nopMetrics) RecordCycle(string, string)               {}
func (nopMetrics) RecordLayer(string, float64, bool)        {}
func (nopMetrics) RecordDecision(string)                    {}
func (nopMetrics) RecordTrade(string, models.Side, float64) {}
func (nopMetrics) RecordFeedback(string, float64)           {}
func (nopMetrics) RecordError(string)                       {}
func (nopMetrics) RecordLatency(string, float64)            {}

func metricsOrNop(m drepo.Metrics) drepo.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
