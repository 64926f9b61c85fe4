// Package metrics exposes Prometheus collectors for the API.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labaid/labaid-api/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create independent instances
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	vials           *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "labaid",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "labaid",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		vials: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "labaid",
			Name:      "vials",
			Help:      "Vials across all labs by status.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.vials,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// VialCounter is the query the vial gauge is refreshed from
type VialCounter interface {
	CountByStatus(ctx context.Context) ([]repository.StatusCount, error)
}

// RefreshVials resets the vial gauge from the database
func (m *Metrics) RefreshVials(ctx context.Context, counter VialCounter) error {
	counts, err := counter.CountByStatus(ctx)
	if err != nil {
		return err
	}
	m.vials.Reset()
	for _, c := range counts {
		m.vials.WithLabelValues(string(c.Status)).Set(float64(c.Count))
	}
	return nil
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
