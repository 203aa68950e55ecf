package diseaseapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes used as the "outcome" label.
const (
	outcomeOK      = "ok"
	outcomeNetwork = "network_error"
	outcomeStatus  = "status_error"
	outcomeSchema  = "schema_error"
)

// Metrics holds the Prometheus collectors for upstream requests.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlight        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outbreak_upstream_requests_total",
				Help: "Total upstream API requests by endpoint and outcome.",
			},
			[]string{"endpoint", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "outbreak_upstream_request_duration_seconds",
				Help:    "Upstream API request latency in seconds.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "outbreak_upstream_requests_in_flight",
				Help: "Number of upstream API requests currently outstanding.",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.InFlight)
	}
	return m
}

func (m *Metrics) begin() {
	if m == nil {
		return
	}
	m.InFlight.Inc()
}

func (m *Metrics) observe(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.InFlight.Dec()
	m.RequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
