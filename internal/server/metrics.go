package server

import (
	"net/http"

	"github.com/agbru/einteger/internal/metrics"
)

// Metrics exposes the server's Prometheus collector over HTTP.
type Metrics struct {
	collector *metrics.Collector
	handler   http.Handler
}

// NewMetrics creates a collector with its own registry.
func NewMetrics() *Metrics {
	c := metrics.NewCollector()
	return &Metrics{collector: c, handler: c.Handler()}
}

// Collector returns the underlying collector; it is the evaluator's
// observer.
func (m *Metrics) Collector() *metrics.Collector { return m.collector }

func (m *Metrics) IncrementActiveRequests() { m.collector.IncActive() }

func (m *Metrics) DecrementActiveRequests() { m.collector.DecActive() }

// WritePrometheus writes the exposition text for all series.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware counts the request and tracks it as in flight while
// next runs.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.collector.ObserveRequest(r.Method, rec.status)
	}
}
