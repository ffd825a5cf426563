// Package metrics provides Prometheus metrics for ingestion runs and
// conversation flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ingestion metrics
	IngestProgramsTotal    *prometheus.CounterVec
	IngestDurationSeconds  prometheus.Histogram
	ScraperRequestsTotal   *prometheus.CounterVec
	ScraperDurationSeconds prometheus.Histogram

	// Conversation metrics
	FlowsTotal          *prometheus.CounterVec
	ModelCallsTotal     *prometheus.CounterVec
	ModelLatencySeconds prometheus.Histogram

	// Corpus metrics
	CorpusPrograms prometheus.Gauge
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		IngestProgramsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "abit_ingest_programs_total",
				Help: "Total number of program ingestion attempts by outcome",
			},
			[]string{"outcome"}, // outcome: success, error
		),

		IngestDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "abit_ingest_duration_seconds",
				Help:    "Duration of a full ingestion run in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
			},
		),

		ScraperRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "abit_scraper_requests_total",
				Help: "Total number of scraper requests by kind and status",
			},
			[]string{"kind", "status"}, // kind: page, plan; status: success, error
		),

		ScraperDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "abit_scraper_duration_seconds",
				Help:    "Scraper request duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
			},
		),

		FlowsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "abit_flows_total",
				Help: "Completed conversation flows by kind and outcome",
			},
			[]string{"kind", "outcome"}, // kind: recommendation, question; outcome: success, error, cancelled
		),

		ModelCallsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "abit_model_calls_total",
				Help: "Language model invocations by provider and status",
			},
			[]string{"provider", "status"}, // status: success, error
		),

		ModelLatencySeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "abit_model_latency_seconds",
				Help:    "Language model invocation latency in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 90},
			},
		),

		CorpusPrograms: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "abit_corpus_programs",
				Help: "Number of program records currently persisted",
			},
		),
	}

	return m
}

// RecordIngestOutcome records one per-slug ingestion outcome.
func (m *Metrics) RecordIngestOutcome(success bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "error"
	}
	m.IngestProgramsTotal.WithLabelValues(outcome).Inc()
}

// RecordScraperRequest records one fetch against the admission site.
// Kind distinguishes program pages from study plan downloads.
func (m *Metrics) RecordScraperRequest(kind string, err error, seconds float64) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.ScraperRequestsTotal.WithLabelValues(kind, status).Inc()
	m.ScraperDurationSeconds.Observe(seconds)
}

// RecordFlow records a completed conversation flow.
func (m *Metrics) RecordFlow(kind, outcome string) {
	if m == nil {
		return
	}
	m.FlowsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordModelCall records one language model invocation.
func (m *Metrics) RecordModelCall(provider string, err error, seconds float64) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.ModelCallsTotal.WithLabelValues(provider, status).Inc()
	m.ModelLatencySeconds.Observe(seconds)
}
