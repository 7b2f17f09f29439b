package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the extremes service.
type Metrics struct {
	RequestsConsumed prometheus.Counter
	ResultsProduced  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Estimation metrics.
	Estimations        *prometheus.CounterVec   // labels: method, source={kafka,http}, outcome={success,invalid,unsupported}
	EstimationDuration *prometheus.HistogramVec // labels: method
	SampleSize         *prometheus.HistogramVec // labels: method
}

var (
	sampleSizeBuckets = []float64{2, 5, 10, 20, 30, 50, 100, 250, 500, 1000}
	durationBuckets   = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}
)

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_extremes",
			Name:      "requests_consumed_total",
			Help:      "Total analysis requests read from the source topic.",
		}),
		ResultsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_extremes",
			Name:      "results_produced_total",
			Help:      "Total design wind results written to the sink topic.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_extremes",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_extremes",
			Name:      "batch_size",
			Help:      "Number of analysis requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_extremes",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-estimate-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		Estimations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_extremes",
			Name:      "estimations_total",
			Help:      "Estimator runs by method, source, and outcome.",
		}, []string{"method", "source", "outcome"}),
		EstimationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storm_extremes",
			Name:      "estimation_duration_seconds",
			Help:      "Time spent fitting and tabulating a single request.",
			Buckets:   durationBuckets,
		}, []string{"method"}),
		SampleSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storm_extremes",
			Name:      "sample_size",
			Help:      "Number of gust observations per analysis request.",
			Buckets:   sampleSizeBuckets,
		}, []string{"method"}),
	}

	prometheus.MustRegister(
		m.RequestsConsumed,
		m.ResultsProduced,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.Estimations,
		m.EstimationDuration,
		m.SampleSize,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_extremes", Name: "requests_consumed_total"}),
		ResultsProduced:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_extremes", Name: "results_produced_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_extremes", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_extremes", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_extremes", Name: "batch_processing_duration_seconds"}),
		Estimations:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "storm_extremes", Name: "estimations_total"}, []string{"method", "source", "outcome"}),
		EstimationDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "storm_extremes", Name: "estimation_duration_seconds"}, []string{"method"}),
		SampleSize:              prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "storm_extremes", Name: "sample_size"}, []string{"method"}),
	}
}
