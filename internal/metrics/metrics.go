package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the server's Prometheus collectors on a private
// registry so tests can create as many instances as they like.
type Metrics struct {
	reg *prometheus.Registry

	Connections prometheus.Gauge
	Rooms       prometheus.Gauge
	Events      *prometheus.CounterVec
	Executions  *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wecode_connections_active",
			Help: "Currently open WebSocket connections.",
		}),
		Rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wecode_rooms_active",
			Help: "Currently live rooms.",
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wecode_events_total",
			Help: "Inbound room events processed, by type.",
		}, []string{"type"}),
		Executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wecode_executions_total",
			Help: "Code execution requests, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.Connections,
		m.Rooms,
		m.Events,
		m.Executions,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry for mounting at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// ObserveEvent counts one processed inbound event. Nil-safe so the core
// can run without metrics in tests.
func (m *Metrics) ObserveEvent(kind string) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(kind).Inc()
}

// ObserveExecution counts one execution request outcome.
func (m *Metrics) ObserveExecution(outcome string) {
	if m == nil {
		return
	}
	m.Executions.WithLabelValues(outcome).Inc()
}

// ConnOpened / ConnClosed track the connection gauge.
func (m *Metrics) ConnOpened() {
	if m != nil {
		m.Connections.Inc()
	}
}

func (m *Metrics) ConnClosed() {
	if m != nil {
		m.Connections.Dec()
	}
}

// SetRooms records the current live-room count.
func (m *Metrics) SetRooms(n int) {
	if m != nil {
		m.Rooms.Set(float64(n))
	}
}
