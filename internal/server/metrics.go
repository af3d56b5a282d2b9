package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus collectors are process-wide singletons. promauto registers
// them on the default registry at package init, so NewMetrics can be
// called any number of times without duplicate-registration panics.
var (
	requestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bigcalc_requests_total",
		Help: "Total number of HTTP requests received.",
	})

	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bigcalc_active_requests",
		Help: "Number of HTTP requests currently being served.",
	})

	evalDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bigcalc_eval_duration_seconds",
		Help:    "Wall time of one expression evaluation, by engine.",
		Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 5, 15, 60, 300},
	}, []string{"engine"})

	evalErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigcalc_eval_errors_total",
		Help: "Total number of requests that did not produce a result, by reason.",
	}, []string{"reason"})
)

// Metrics is the server's view of the Prometheus collectors plus the
// exposition handler that serves them.
type Metrics struct {
	handler http.Handler
}

// NewMetrics returns a Metrics serving the default registry, which also
// carries the standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// IncrementRequests counts one received request.
func (m *Metrics) IncrementRequests() {
	requestsTotal.Inc()
}

// IncrementActiveRequests marks one request as in flight.
func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
}

// DecrementActiveRequests marks one in-flight request as finished.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// ObserveEvalDuration records the wall time of one evaluation.
func (m *Metrics) ObserveEvalDuration(engine string, seconds float64) {
	evalDuration.WithLabelValues(engine).Observe(seconds)
}

// IncrementEvalErrors counts one failed request under the given reason.
func (m *Metrics) IncrementEvalErrors(reason string) {
	evalErrors.WithLabelValues(reason).Inc()
}

// WritePrometheus serves the text exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// metricsMiddleware counts the request and tracks it as active for its
// duration.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementRequests()
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves GET /metrics with the Prometheus exposition.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.metrics.WritePrometheus(w, r)
}
