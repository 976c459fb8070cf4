package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"sheetCalc/contracts"
)

const MetricsNamespace = "sheetcalc"

const resultOk = "ok"

type EvaluationMetrics struct {
	evaluations *prometheus.CounterVec
	tokens      prometheus.Histogram
}

func NewEvaluationMetrics(registerer prometheus.Registerer) *EvaluationMetrics {
	metrics := &EvaluationMetrics{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "formula_evaluations_total",
			Help:      "Formula evaluations by result (ok or error code)",
		}, []string{"result"}),

		tokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "formula_tokens",
			Help:      "Number of tokens in evaluated formulas",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}

	registerer.MustRegister(metrics.evaluations, metrics.tokens)

	return metrics
}

func (m *EvaluationMetrics) ObserveEvaluation(formula contracts.Formula, result contracts.EvaluationResult) {
	resultLabel := resultOk
	if !result.Ok() {
		resultLabel = result.Error
	}

	m.evaluations.WithLabelValues(resultLabel).Inc()
	m.tokens.Observe(float64(len(formula)))
}
