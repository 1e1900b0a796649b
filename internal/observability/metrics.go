package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "asteroid_api"

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	// Feed client metrics.
	FeedRequests        *prometheus.CounterVec // labels: outcome={success,remote_error,parse_error}
	FeedRequestDuration prometheus.Histogram

	// Selection metrics.
	Selections        *prometheus.CounterVec // labels: outcome={success,error}
	HazardousSelected prometheus.Histogram

	// Report publishing metrics.
	ReportsPublished    prometheus.Counter
	ReportPublishErrors prometheus.Counter
	ReportsEnabled      prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FeedRequests,
		m.FeedRequestDuration,
		m.Selections,
		m.HazardousSelected,
		m.ReportsPublished,
		m.ReportPublishErrors,
		m.ReportsEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "NeoWs feed requests by outcome.",
		}, []string{"outcome"}),
		FeedRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_request_duration_seconds",
			Help:      "NeoWs feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Hazard selections by outcome.",
		}, []string{"outcome"}),
		HazardousSelected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hazardous_selected",
			Help:      "Number of asteroids returned per selection.",
			Buckets:   []float64{0, 1, 2, 3},
		}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_published_total",
			Help:      "Hazard reports written to the report topic.",
		}),
		ReportPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_publish_errors_total",
			Help:      "Hazard reports that failed to publish.",
		}),
		ReportsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reports_enabled",
			Help:      "1 when hazard report publishing is enabled, 0 otherwise.",
		}),
	}
}
