// Package telemetry exposes Prometheus metrics for the inventory engine.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its own registry so tests can build as many as they like.
type Metrics struct {
	reg *prometheus.Registry

	Assignments  *prometheus.CounterVec
	BaysAssigned prometheus.Counter
	Records      prometheus.Gauge
	ApplySeconds prometheus.Histogram
}

// New registers the engine metrics. sessions, when non-nil, is sampled on
// every scrape for the active-session gauge.
func New(sessions func() int) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		Assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "estufas",
			Name:      "assignments_total",
			Help:      "Bulk assignments by result (ok, empty_selection, error).",
		}, []string{"result"}),
		BaysAssigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "estufas",
			Name:      "bays_assigned_total",
			Help:      "Bays written by successful bulk assignments.",
		}),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "estufas",
			Name:      "inventory_records",
			Help:      "Records in the most recently rebuilt inventory.",
		}),
		ApplySeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "estufas",
			Name:      "apply_duration_seconds",
			Help:      "Time spent applying an assignment and rebuilding the inventory.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	m.reg.MustRegister(m.Assignments, m.BaysAssigned, m.Records, m.ApplySeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if sessions != nil {
		m.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "estufas",
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory.",
		}, func() float64 { return float64(sessions()) }))
	}
	return m
}

// ObserveApply records one bulk assignment.
func (m *Metrics) ObserveApply(result string, bays, records int, took time.Duration) {
	m.Assignments.WithLabelValues(result).Inc()
	m.ApplySeconds.Observe(took.Seconds())
	if result == "ok" {
		m.BaysAssigned.Add(float64(bays))
		m.Records.Set(float64(records))
	}
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
