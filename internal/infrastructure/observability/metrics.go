package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the process-local Prometheus instruments. A nil
// *Metrics is safe to use everywhere so tests can skip registration.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	Subscribers         prometheus.Gauge
	EventsPublished     *prometheus.CounterVec
	SubscribersDropped  prometheus.Counter
}

// InitMetrics registers the panel's instruments with the default registry
func InitMetrics() (*Metrics, error) {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panel_http_requests_total",
				Help: "HTTP requests handled, by method, path pattern and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "panel_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		Subscribers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "panel_subscribers",
				Help: "Currently connected live-update subscribers",
			},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panel_events_published_total",
				Help: "Panel events broadcast, by event type",
			},
			[]string{"type"},
		),
		SubscribersDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "panel_subscribers_dropped_total",
				Help: "Subscribers pruned because they stopped draining events",
			},
		),
	}

	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.Subscribers,
		m.EventsPublished,
		m.SubscribersDropped,
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveRequest records one handled HTTP request
func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// SubscriberConnected adjusts the subscriber gauge on connect
func (m *Metrics) SubscriberConnected() {
	if m == nil {
		return
	}
	m.Subscribers.Inc()
}

// SubscriberGone adjusts the subscriber gauge on disconnect
func (m *Metrics) SubscriberGone() {
	if m == nil {
		return
	}
	m.Subscribers.Dec()
}

// EventPublished records one broadcast event
func (m *Metrics) EventPublished(eventType string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(eventType).Inc()
}

// SubscriberDropped records one pruned subscriber
func (m *Metrics) SubscriberDropped() {
	if m == nil {
		return
	}
	m.SubscribersDropped.Inc()
}
