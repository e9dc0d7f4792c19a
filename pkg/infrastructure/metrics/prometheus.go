// Package metrics provides Prometheus metrics for BOM processing runs
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a processing run
const (
	OutcomeCompleted        = "completed"
	OutcomeValidationFailed = "validation_failed"
	OutcomeConfigError      = "config_error"
	OutcomeDefect           = "defect"
)

// Recorder owns the processing metrics registered on one registry
type Recorder struct {
	registry *prometheus.Registry

	RunsTotal      *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
	PartsProcessed *prometheus.CounterVec
	InvalidParts   *prometheus.CounterVec
	ImportsTotal   *prometheus.CounterVec
	SlicedRows     prometheus.Counter
	BOMsActive     prometheus.Gauge
	UndoTotal      prometheus.Counter
}

// NewRecorder registers the processing metrics on a fresh registry
func NewRecorder() *Recorder {
	return NewRecorderWith(prometheus.NewRegistry())
}

// NewRecorderWith registers the processing metrics on the given registry
func NewRecorderWith(registry *prometheus.Registry) *Recorder {
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,

		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prettybom_processing_runs_total",
				Help: "Total number of processing runs by outcome",
			},
			[]string{"outcome"},
		),

		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prettybom_processing_duration_seconds",
				Help:    "Time taken by a processing run",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"outcome"},
		),

		PartsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prettybom_parts_processed_total",
				Help: "Total number of parts committed by processing runs, by type",
			},
			[]string{"type"},
		),

		InvalidParts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prettybom_invalid_parts_total",
				Help: "Total number of parts rejected by validation, by category",
			},
			[]string{"category"},
		),

		ImportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prettybom_imports_total",
				Help: "Total number of part list imports",
			},
			[]string{"status"},
		),

		SlicedRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "prettybom_import_sliced_rows_total",
			Help: "Total number of imported rows skipped for a wrong column count",
		}),

		BOMsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "prettybom_boms_active",
			Help: "Number of bills of materials currently held in memory",
		}),

		UndoTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "prettybom_undo_total",
			Help: "Total number of undone processing runs",
		}),
	}
}

// Registry returns the registry the metrics are registered on
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordRun records the outcome and duration of one processing run
func (r *Recorder) RecordRun(outcome string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(outcome).Inc()
	r.RunDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordParts records committed parts per type
func (r *Recorder) RecordParts(partType string, count int) {
	r.PartsProcessed.WithLabelValues(partType).Add(float64(count))
}

// RecordInvalidParts records parts rejected by validation
func (r *Recorder) RecordInvalidParts(category string, count int) {
	if count > 0 {
		r.InvalidParts.WithLabelValues(category).Add(float64(count))
	}
}

// RecordImport records an import and the rows it had to skip
func (r *Recorder) RecordImport(status string, slicedRows int) {
	r.ImportsTotal.WithLabelValues(status).Inc()
	r.SlicedRows.Add(float64(slicedRows))
}

// SetBOMsActive sets the number of BOMs currently held
func (r *Recorder) SetBOMsActive(count int) {
	r.BOMsActive.Set(float64(count))
}

// RecordUndo records an undone processing run
func (r *Recorder) RecordUndo() {
	r.UndoTotal.Inc()
}
