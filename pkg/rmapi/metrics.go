package rmapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus instrumentation for API exchanges.
type Metrics struct {
	requests *prometheus.CounterVec   // requests by kind and status code
	errors   *prometheus.CounterVec   // failed exchanges by kind
	latency  *prometheus.HistogramVec // exchange latency by kind
}

// NewMetrics creates the collectors and registers them with registerer.
// A nil registerer leaves them unregistered, which suits tests.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rmapi",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total API requests by entity kind and status code",
		}, []string{"kind", "code"}),

		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rmapi",
			Subsystem: "client",
			Name:      "request_errors_total",
			Help:      "Total API requests that failed by entity kind",
		}, []string{"kind"}),

		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rmapi",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "API request latency by entity kind",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}

	if registerer == nil {
		return m, nil
	}

	var err error

	m.requests, err = register(registerer, m.requests)
	if err != nil {
		return nil, err
	}

	m.errors, err = register(registerer, m.errors)
	if err != nil {
		return nil, err
	}

	m.latency, err = register(registerer, m.latency)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// register registers collector, reusing the existing collector when an
// identical one is already registered.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}

	are := prometheus.AlreadyRegisteredError{}
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return collector, fmt.Errorf("registering metrics: %w", err)
}

// RequestInterceptor records the request start time.
func (m *Metrics) RequestInterceptor() RequestInterceptor {
	return TimingInterceptor()
}

// ResponseInterceptor records the outcome of each exchange.
func (m *Metrics) ResponseInterceptor() ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		kind := kindFromPath(req.Path)

		m.requests.WithLabelValues(kind, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.Error != nil || resp.StatusCode >= 400 {
			m.errors.WithLabelValues(kind).Inc()
		}

		if startTime, ok := req.Metadata["start_time"].(time.Time); ok {
			m.latency.WithLabelValues(kind).Observe(time.Since(startTime).Seconds())
		}

		return nil
	}
}

// Requests returns the request counter, for inspection.
func (m *Metrics) Requests() *prometheus.CounterVec {
	return m.requests
}

// Errors returns the error counter, for inspection.
func (m *Metrics) Errors() *prometheus.CounterVec {
	return m.errors
}

// kindFromPath maps "/character/1,2" to "character" to keep label
// cardinality bounded.
func kindFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return "root"
	}

	kind, _, _ := strings.Cut(trimmed, "/")

	return kind
}
