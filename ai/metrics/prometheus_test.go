package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSummarize(t *testing.T) {
	exporter := NewPrometheusExporter(DefaultConfig())

	exporter.RecordSummarize("heuristic", time.Millisecond)
	exporter.RecordSummarize("heuristic", 2*time.Millisecond)
	exporter.RecordSummarize("degraded", 30*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(exporter.summarizeRequests.WithLabelValues("heuristic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.summarizeRequests.WithLabelValues("degraded")))
	assert.Equal(t, 0.0, testutil.ToFloat64(exporter.summarizeRequests.WithLabelValues("llm")))
}

func TestRecordItemOperation(t *testing.T) {
	exporter := NewPrometheusExporter(DefaultConfig())

	exporter.RecordItemOperation("create", "success")
	exporter.RecordItemOperation("create", "invalid")
	exporter.RecordItemOperation("delete", "not_found")

	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.itemOperations.WithLabelValues("create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.itemOperations.WithLabelValues("delete", "not_found")))
}

func TestPrometheusExporterHandler(t *testing.T) {
	exporter := NewPrometheusExporter(DefaultConfig())
	exporter.RecordSummarize("llm", 100*time.Millisecond)
	exporter.RecordItemOperation("list", "success")

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	w := httptest.NewRecorder()
	exporter.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "alemeno_ml_summarize_requests_total")
	assert.Contains(t, body, "alemeno_ml_summarize_latency_seconds")
	assert.Contains(t, body, "alemeno_store_item_operations_total")
}

func TestPrometheusExporterCustomRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	exporter := NewPrometheusExporter(Config{Registry: registry})
	exporter.RecordSummarize("empty", 0)

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func BenchmarkRecordSummarize(b *testing.B) {
	exporter := NewPrometheusExporter(DefaultConfig())
	for i := 0; i < b.N; i++ {
		exporter.RecordSummarize("heuristic", 100*time.Microsecond)
	}
}
