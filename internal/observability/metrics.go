package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "isd_loader"

// Metrics holds the Prometheus counters, histograms, and gauges for the loader.
type Metrics struct {
	LinesRead       prometheus.Counter
	RecordsDecoded  prometheus.Counter
	RecordsInserted prometheus.Counter
	Duplicates      prometheus.Counter
	FilesProcessed  prometheus.Counter
	WorkerErrors    prometheus.Counter
	WorkersActive   prometheus.Gauge

	// Batch flush metrics.
	Flushes       prometheus.Counter
	BatchSize     prometheus.Histogram
	FlushDuration prometheus.Histogram

	// Stations counts station history rows written.
	Stations prometheus.Counter
}

var (
	batchBuckets = []float64{1, 10, 50, 100, 200, 400, 800, 1600, 5000}
	flushBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
)

// NewMetrics creates and registers all loader metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	prometheus.NewRegistry().MustRegister(m.collectors()...)
	return m
}

func newMetrics() *Metrics {
	return &Metrics{
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_read_total",
			Help:      "Total input lines selected for decoding.",
		}),
		RecordsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_decoded_total",
			Help:      "Total observation lines decoded into records.",
		}),
		RecordsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_inserted_total",
			Help:      "Total records accepted by the store.",
		}),
		Duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_total",
			Help:      "Total records rejected for an existing key.",
		}),
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_processed_total",
			Help:      "Total work items (files or shards) fully processed.",
		}),
		WorkerErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_errors_total",
			Help:      "Total workers that stopped on an error.",
		}),
		WorkersActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers_active",
			Help:      "Number of workers currently running.",
		}),
		Flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushes_total",
			Help:      "Total bulk insert calls.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of records per bulk insert.",
			Buckets:   batchBuckets,
		}),
		FlushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flush_duration_seconds",
			Help:      "Duration of a bulk insert call.",
			Buckets:   flushBuckets,
		}),
		Stations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_inserted_total",
			Help:      "Total station history rows written.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.LinesRead,
		m.RecordsDecoded,
		m.RecordsInserted,
		m.Duplicates,
		m.FilesProcessed,
		m.WorkerErrors,
		m.WorkersActive,
		m.Flushes,
		m.BatchSize,
		m.FlushDuration,
		m.Stations,
	}
}
