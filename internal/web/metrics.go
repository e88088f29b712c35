package web

import (
	"net/http"

	"adventure/internal/transcript"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts sessions and transcript growth on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	sessions prometheus.Counter
	active   prometheus.Gauge
	ended    prometheus.Counter
	submits  prometheus.Counter
	entries  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adventure_sessions_total",
			Help: "Browser sessions started.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adventure_sessions_active",
			Help: "Browser sessions held in memory.",
		}),
		ended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adventure_sessions_evicted_total",
			Help: "Sessions dropped for idleness or to stay under the cap.",
		}),
		submits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adventure_submits_total",
			Help: "Commands submitted across all sessions.",
		}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adventure_entries_total",
			Help: "Transcript entries appended, by kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.sessions, m.active, m.ended, m.submits, m.entries)
	return m
}

// Observe is installed as a controller observer.
func (m *Metrics) Observe(entry transcript.Entry) {
	if m == nil {
		return
	}
	m.entries.WithLabelValues(entry.Kind.String()).Inc()
	if entry.Kind == transcript.UserCommand {
		m.submits.Inc()
	}
}

func (m *Metrics) sessionStarted() {
	if m == nil {
		return
	}
	m.sessions.Inc()
	m.active.Inc()
}

func (m *Metrics) sessionsEnded(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.active.Sub(float64(n))
	m.ended.Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
