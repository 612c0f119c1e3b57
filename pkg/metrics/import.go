package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics records the outcome of importer runs.
type ImportMetrics struct {
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	records  prometheus.Counter
	lastRun  prometheus.Gauge
}

// NewImportMetrics registers the importer metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	if reg == nil {
		return &ImportMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vendas_import_duration_seconds",
		Help:    "Duration of sales file imports in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendas_import_runs_total",
		Help: "Importer runs by outcome.",
	}, []string{"outcome"})
	records := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vendas_import_records_total",
		Help: "Sales records committed by the importer.",
	})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vendas_import_last_success_timestamp_seconds",
		Help: "Unix time of the last committed import.",
	})
	reg.MustRegister(duration, runs, records, lastRun)
	return &ImportMetrics{
		duration: duration,
		runs:     runs,
		records:  records,
		lastRun:  lastRun,
	}
}

// ObserveSuccess records a committed run of n records.
func (m *ImportMetrics) ObserveSuccess(n int, duration time.Duration) {
	if m == nil || m.runs == nil {
		return
	}
	m.duration.WithLabelValues(OutcomeSuccess).Observe(duration.Seconds())
	m.runs.WithLabelValues(OutcomeSuccess).Inc()
	m.records.Add(float64(n))
	m.lastRun.SetToCurrentTime()
}

// ObserveFailure records a rolled back run. outcome is usually the error code.
func (m *ImportMetrics) ObserveFailure(outcome string, duration time.Duration) {
	if m == nil || m.runs == nil {
		return
	}
	outcome = normalizeLabel(outcome)
	m.duration.WithLabelValues(outcome).Observe(duration.Seconds())
	m.runs.WithLabelValues(outcome).Inc()
}

// OutcomeSuccess labels committed runs.
const OutcomeSuccess = "success"

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
