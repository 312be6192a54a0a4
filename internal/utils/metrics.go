package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the airspace service
type Metrics struct {
	passDuration    prometheus.Histogram
	passesTotal     *prometheus.CounterVec
	activeThreats   *prometheus.GaugeVec
	trackedObjects  *prometheus.GaugeVec
	skippedObjects  *prometheus.CounterVec
	exportsTotal    *prometheus.CounterVec
	datasetsImports prometheus.Counter
}

// NewMetrics creates and registers all airspace metrics
func NewMetrics() *Metrics {
	return &Metrics{
		passDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "airspace_pass_duration_ms",
				Help:    "Latency of a full classification pass in milliseconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		passesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airspace_passes_total",
				Help: "Total number of classification passes",
			},
			[]string{"mode", "outcome"},
		),
		activeThreats: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airspace_active_threats",
				Help: "Number of threats found by the latest pass, per tier",
			},
			[]string{"tier"},
		),
		trackedObjects: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airspace_tracked_objects",
				Help: "Number of objects in the latest snapshot, per collection",
			},
			[]string{"collection"},
		),
		skippedObjects: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airspace_skipped_objects_total",
				Help: "Total objects excluded from passes due to invalid position data",
			},
			[]string{"collection"},
		),
		exportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airspace_threat_exports_total",
				Help: "Total number of threat export operations",
			},
			[]string{"outcome"},
		),
		datasetsImports: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "airspace_dataset_imports_total",
				Help: "Total number of dataset archives imported",
			},
		),
	}
}

// ObservePassDuration records the latency of one classification pass
func (m *Metrics) ObservePassDuration(ms float64) {
	m.passDuration.Observe(ms)
}

// IncrementPasses increments the pass counter for the given mode and outcome
func (m *Metrics) IncrementPasses(mode, outcome string) {
	m.passesTotal.WithLabelValues(mode, outcome).Inc()
}

// SetActiveThreats sets the active threat gauge for a tier
func (m *Metrics) SetActiveThreats(tier string, count int) {
	m.activeThreats.WithLabelValues(tier).Set(float64(count))
}

// SetTrackedObjects sets the tracked object gauge for a collection
func (m *Metrics) SetTrackedObjects(collection string, count int) {
	m.trackedObjects.WithLabelValues(collection).Set(float64(count))
}

// AddSkippedObjects adds to the skipped object counter for a collection
func (m *Metrics) AddSkippedObjects(collection string, count int) {
	m.skippedObjects.WithLabelValues(collection).Add(float64(count))
}

// IncrementExports increments the export counter
func (m *Metrics) IncrementExports(outcome string) {
	m.exportsTotal.WithLabelValues(outcome).Inc()
}

// IncrementDatasetImports increments the dataset import counter
func (m *Metrics) IncrementDatasetImports() {
	m.datasetsImports.Inc()
}
