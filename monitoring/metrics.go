package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application. Each instance
// carries its own registry so the serve mode can expose it on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	ReportsTotal       prometheus.Counter
	FetchErrorsTotal   *prometheus.CounterVec
	ComparablesDropped prometheus.Counter
	ReportDuration     prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ReportsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "estate_reports_generated_total",
			Help: "The total number of reports generated",
		}),
		FetchErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "estate_fetch_errors_total",
			Help: "The total number of page fetch failures",
		}, []string{"type"}), // 'blocked' or 'fetch_failed'
		ComparablesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "estate_comparables_dropped_total",
			Help: "Comparable candidates dropped because fetch or parse failed",
		}),
		ReportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "estate_report_duration_seconds",
			Help:    "Wall time of one report generation pipeline",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Handler exposes this instance's registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncReports() {
	m.ReportsTotal.Inc()
}

func (m *Metrics) IncFetchError(errorType string) {
	m.FetchErrorsTotal.WithLabelValues(errorType).Inc()
}

func (m *Metrics) AddComparablesDropped(n int) {
	m.ComparablesDropped.Add(float64(n))
}

func (m *Metrics) ObserveReportDuration(seconds float64) {
	m.ReportDuration.Observe(seconds)
}
