// Package metrics exposes Prometheus collectors for supplier imports.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// importRuns counts finished import runs.
	importRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "supplier_import_runs_total",
		Help: "Total number of import runs by pricing mode and config source",
	}, []string{"mode", "source"})

	// importFailures counts runs that aborted before producing a result.
	importFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "supplier_import_failures_total",
		Help: "Total number of aborted import runs by reason",
	}, []string{"reason"}) // reason: empty_input, decode, store

	// importDuration tracks how long a run takes end to end.
	importDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "supplier_import_duration_seconds",
		Help:    "Time taken by an import run",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15, 60},
	}, []string{"mode"})

	// importRows counts rows by outcome.
	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "supplier_import_rows_total",
		Help: "Total number of rows by outcome",
	}, []string{"outcome"}) // outcome: priced, rejected

	// importWarnings counts parser and resolver warnings.
	importWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "supplier_import_warnings_total",
		Help: "Total number of import warnings",
	})

	// mismatchRuns counts runs whose pricing mode did not fit the supplier's discount structure.
	mismatchRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "supplier_import_discount_mismatch_total",
		Help: "Import runs with a pricing mode and discount structure mismatch",
	}, []string{"mode"})

	// activeImports tracks runs in progress.
	activeImports = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "supplier_import_active_runs",
		Help: "Number of import runs in progress",
	})
)

// Recorder records import metrics
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// RunStarted marks a run as in progress. Call the returned func when it ends.
func (r *Recorder) RunStarted() func() {
	activeImports.Inc()
	return activeImports.Dec
}

// RecordRun records a finished run
func (r *Recorder) RecordRun(mode, source string, duration time.Duration, priced, rejected, warnings int) {
	importRuns.WithLabelValues(mode, source).Inc()
	importDuration.WithLabelValues(mode).Observe(duration.Seconds())
	importRows.WithLabelValues("priced").Add(float64(priced))
	importRows.WithLabelValues("rejected").Add(float64(rejected))
	importWarnings.Add(float64(warnings))
}

// RecordFailure records an aborted run
func (r *Recorder) RecordFailure(reason string) {
	importFailures.WithLabelValues(reason).Inc()
}

// RecordMismatch records a pricing mode and discount structure mismatch
func (r *Recorder) RecordMismatch(mode string) {
	mismatchRuns.WithLabelValues(mode).Inc()
}
