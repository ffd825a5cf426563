package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordIngestOutcome(true)
	m.RecordIngestOutcome(false)
	m.RecordIngestOutcome(false)

	if got := testutil.ToFloat64(m.IngestProgramsTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("Expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.IngestProgramsTotal.WithLabelValues("error")); got != 2 {
		t.Errorf("Expected 2 errors, got %v", got)
	}
}

func TestRecordModelCall(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordModelCall("openai", nil, 1.5)
	m.RecordModelCall("openai", errors.New("rate limited"), 0.2)

	if got := testutil.ToFloat64(m.ModelCallsTotal.WithLabelValues("openai", "success")); got != 1 {
		t.Errorf("Expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.ModelCallsTotal.WithLabelValues("openai", "error")); got != 1 {
		t.Errorf("Expected 1 error, got %v", got)
	}
}

func TestRecordScraperRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordScraperRequest("page", nil, 0.8)
	m.RecordScraperRequest("plan", nil, 1.2)
	m.RecordScraperRequest("page", errors.New("connection refused"), 0.1)

	if got := testutil.ToFloat64(m.ScraperRequestsTotal.WithLabelValues("page", "success")); got != 1 {
		t.Errorf("Expected 1 page success, got %v", got)
	}
	if got := testutil.ToFloat64(m.ScraperRequestsTotal.WithLabelValues("page", "error")); got != 1 {
		t.Errorf("Expected 1 page error, got %v", got)
	}
	if got := testutil.ToFloat64(m.ScraperRequestsTotal.WithLabelValues("plan", "success")); got != 1 {
		t.Errorf("Expected 1 plan success, got %v", got)
	}
}

func TestRecordFlow(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordFlow("recommendation", "success")
	m.RecordFlow("question", "error")

	if got := testutil.ToFloat64(m.FlowsTotal.WithLabelValues("recommendation", "success")); got != 1 {
		t.Errorf("Expected 1 recommendation success, got %v", got)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordIngestOutcome(true)
	m.RecordFlow("question", "success")
	m.RecordModelCall("gemini", nil, 0.1)
	m.RecordScraperRequest("page", nil, 0.3)
}
