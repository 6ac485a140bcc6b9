package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exposes the Prometheus metrics of the screener.
type Recorder struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	scoredSymbols   *prometheus.CounterVec
	providerErrors  *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screener_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		scoredSymbols: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_scored_symbols_total",
				Help: "Total number of symbols scored, by strategy",
			},
			[]string{"strategy"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_provider_errors_total",
				Help: "Total number of market data provider errors",
			},
			[]string{"source"},
		),
	}
}

// RecordRequest records a completed HTTP request.
func (r *Recorder) RecordRequest(path, method, status string, seconds float64) {
	r.requestsTotal.WithLabelValues(path, method, status).Inc()
	r.requestDuration.WithLabelValues(path, method).Observe(seconds)
}

// RecordScored records symbols scored under a strategy.
func (r *Recorder) RecordScored(strategy string, count int) {
	r.scoredSymbols.WithLabelValues(strategy).Add(float64(count))
}

// RecordProviderError records a market data provider failure.
func (r *Recorder) RecordProviderError(source string) {
	r.providerErrors.WithLabelValues(source).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
