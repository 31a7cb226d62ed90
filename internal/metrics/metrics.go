// Package metrics exposes Prometheus collectors for the labeling service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "labeler"

// Outcome labels
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusDeclined = "declined"
	StatusError    = "error"
)

var (
	// operationsTotal counts lifecycle operations by outcome
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of annotation lifecycle operations",
		},
		[]string{"op", "status"},
	)

	annotationsCurrent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "annotations",
			Help:      "Number of finalized annotations in the open session",
		},
	)

	autosaveWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "autosave_writes_total",
			Help:      "Total number of autosave snapshot writes",
		},
		[]string{"trigger", "status"}, // trigger: mutation, timer, load, manual
	)

	autosaveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "autosave_duration_seconds",
			Help:      "Duration of autosave snapshot writes in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
	)

	exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total number of export archives written",
		},
		[]string{"sink", "status"},
	)

	exportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Duration of export archive builds and uploads in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"sink"},
	)

	recoveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recoveries_total",
			Help:      "Total number of autosave recovery offers by outcome",
		},
		[]string{"status"}, // restored, declined, none
	)
)

var allMetrics = []prometheus.Collector{
	operationsTotal,
	annotationsCurrent,
	autosaveWritesTotal,
	autosaveDuration,
	exportsTotal,
	exportDuration,
	recoveriesTotal,
}

var (
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// Registry returns the process registry holding every labeler collector
// plus the Go runtime and process collectors
func Registry() *prometheus.Registry {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
		for _, c := range allMetrics {
			registry.MustRegister(c)
		}
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
	return registry
}

// Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

// RecordOperation counts a lifecycle operation outcome
func RecordOperation(op, status string) {
	operationsTotal.WithLabelValues(op, status).Inc()
}

// SetAnnotationCount records the size of the interval store
func SetAnnotationCount(n int) {
	annotationsCurrent.Set(float64(n))
}

// RecordAutosave counts a snapshot write and observes its duration
func RecordAutosave(trigger, status string, durationSeconds float64) {
	autosaveWritesTotal.WithLabelValues(trigger, status).Inc()
	if status == StatusSuccess {
		autosaveDuration.Observe(durationSeconds)
	}
}

// RecordExport counts an export and observes its duration
func RecordExport(sink, status string, durationSeconds float64) {
	exportsTotal.WithLabelValues(sink, status).Inc()
	exportDuration.WithLabelValues(sink).Observe(durationSeconds)
}

// RecordRecovery counts the outcome of an autosave recovery check
func RecordRecovery(status string) {
	recoveriesTotal.WithLabelValues(status).Inc()
}
