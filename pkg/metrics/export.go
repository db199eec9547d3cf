package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ExportMetrics records export and grouping outcomes.
type ExportMetrics struct {
	rows     *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewExportMetrics registers the export metrics on the provided registerer.
func NewExportMetrics(reg prometheus.Registerer) *ExportMetrics {
	if reg == nil {
		return &ExportMetrics{}
	}
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "export_rows_total",
		Help: "Card rows written to export files.",
	}, []string{"format"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "export_failures_total",
		Help: "Export attempts rejected or aborted.",
	}, []string{"reason"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grouping_duration_seconds",
		Help:    "Duration of grouping and regrouping operations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(rows, failures, duration)
	return &ExportMetrics{
		rows:     rows,
		failures: failures,
		duration: duration,
	}
}

// AddRows records rows written for the given format.
func (m *ExportMetrics) AddRows(format string, n int) {
	if m == nil || m.rows == nil {
		return
	}
	m.rows.WithLabelValues(normalizeLabel(format)).Add(float64(n))
}

// IncFailure increments the failure counter for the named reason.
func (m *ExportMetrics) IncFailure(reason string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveGrouping records the duration for the named grouping operation.
func (m *ExportMetrics) ObserveGrouping(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
