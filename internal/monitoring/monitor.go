package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor collects operational metrics for the advisory service. It keeps
// a simple in-process map for the JSON metrics endpoint and prometheus
// collectors for the scrape endpoint.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time

	registry         *prometheus.Registry
	advisoryRequests *prometheus.CounterVec
	advisoryDuration *prometheus.HistogramVec
}

// NewMonitor creates a new monitoring instance with its own prometheus
// registry, so instances created in tests do not collide on registration
func NewMonitor() *Monitor {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
		registry:  registry,
		advisoryRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "larder_advisory_requests_total",
			Help: "Advisory requests by request kind and terminal tier.",
		}, []string{"kind", "tier"}),
		advisoryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "larder_advisory_duration_seconds",
			Help:    "Advisory request duration by request kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}

// Handler returns the scrape handler for this monitor's registry
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordAdvisory records one advisory request reaching a terminal tier
func (m *Monitor) RecordAdvisory(kind, tier string, elapsed time.Duration) {
	m.advisoryRequests.WithLabelValues(kind, tier).Inc()
	m.advisoryDuration.WithLabelValues(kind).Observe(elapsed.Seconds())

	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	key := kind + "_" + tier + "_total"
	count, _ := m.metrics[key].(int)
	m.metrics[key] = count + 1
	m.metrics["last_"+kind+"_tier"] = tier
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all map-backed metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}
