package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every series exported by Collector.
const Namespace = "eintcalc"

// Outcome labels for the operations counter.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
	OutcomeCanceled = "canceled"
)

// Collector owns a private Prometheus registry holding the evaluation and
// HTTP series plus the Go runtime and process collectors. Each instance is
// independent, so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	operations     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	operandWords   *prometheus.HistogramVec
	requests       *prometheus.CounterVec
	activeRequests prometheus.Gauge
}

// NewCollector registers all series on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Evaluated operations by name and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall time of engine calls.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"op"}),
		operandWords: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operand_words",
			Help:      "Largest operand size in 16-bit limbs.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"op"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
	}
	mem := NewMemoryCollector()
	heap := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "heap_alloc_bytes",
		Help:      "Bytes of allocated heap objects.",
	}, func() float64 { return float64(mem.Snapshot().HeapAlloc) })

	c.registry.MustRegister(
		c.operations, c.duration, c.operandWords, c.requests, c.activeRequests, heap,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry exposes the underlying registry so callers can add collectors.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Observe records one evaluation. It satisfies calc.Observer.
func (c *Collector) Observe(op string, operandWords int, d time.Duration, err error) {
	c.operations.WithLabelValues(op, Outcome(err)).Inc()
	c.duration.WithLabelValues(op).Observe(d.Seconds())
	c.operandWords.WithLabelValues(op).Observe(float64(operandWords))
}

// ObserveRequest counts one finished HTTP request.
func (c *Collector) ObserveRequest(method string, code int) {
	c.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

// IncActive and DecActive track in-flight HTTP requests.
func (c *Collector) IncActive() { c.activeRequests.Inc() }

func (c *Collector) DecActive() { c.activeRequests.Dec() }

// Outcome classifies an evaluation error into an outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	}
	return OutcomeError
}
