package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the counters describing one seeding run.
// It includes counters for generated, dropped and written records, a counter of upload
// outcomes, a gauge for the last successful run and a histogram for run duration.
type Metrics struct {
	RecordsGenerated  prometheus.Counter
	RecordsDropped    prometheus.Counter
	RecordsWritten    prometheus.Counter
	EmailCollisions   prometheus.Counter
	Uploads           *prometheus.CounterVec
	LastSuccessfulRun prometheus.Gauge
	RunDuration       prometheus.Histogram
}

// NewMetrics creates a new Metrics instance registered on reg.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		RecordsGenerated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "daedalus_records_generated_total",
			Help: "Total number of raw employee records produced by the generator.",
		}),
		RecordsDropped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "daedalus_records_dropped_total",
			Help: "Total number of records discarded because a field was empty after sanitization.",
		}),
		RecordsWritten: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "daedalus_records_written_total",
			Help: "Total number of records written to the dataset file.",
		}),
		EmailCollisions: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "daedalus_email_collisions_total",
			Help: "Total number of generated emails rejected because they were already issued.",
		}),
		Uploads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "daedalus_uploads_total",
			Help: "Upload attempts by outcome.",
		}, []string{"outcome"}), // outcome: 'success', 'permission_denied', 'api_error', 'unexpected'
		LastSuccessfulRun: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "daedalus_last_successful_run_timestamp",
			Help: "Last time the dataset was generated and uploaded successfully",
		}),
		RunDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "daedalus_run_duration_seconds",
			Help:    "Measures how long generation plus upload takes",
			Buckets: prometheus.DefBuckets,
		}),
	}

	return metrics
}

// Push sends everything gathered by gatherer to a Prometheus Pushgateway.
func Push(url, job string, gatherer prometheus.Gatherer) error {
	if err := push.New(url, job).Gatherer(gatherer).Push(); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}

	return nil
}
